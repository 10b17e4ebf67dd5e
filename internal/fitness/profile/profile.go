package profile

import (
	"time"
)

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
	SexOther  Sex = "other"
)

type FitnessLevel string

const (
	LevelBeginner     FitnessLevel = "beginner"
	LevelIntermediate FitnessLevel = "intermediate"
	LevelAdvanced     FitnessLevel = "advanced"
)

type Goal string

const (
	GoalWeightLoss     Goal = "weight-loss"
	GoalMuscleGain     Goal = "muscle-gain"
	GoalGeneralFitness Goal = "general-fitness"
	GoalEndurance      Goal = "endurance"
)

type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// Defaults used when the enum fields are absent from the raw payload.
const (
	DefaultFitnessLevel  = LevelBeginner
	DefaultGoal          = GoalGeneralFitness
	DefaultActivityLevel = ActivityModerate
)

// UserProfile is the canonical, validated profile. Values are always within range.
type UserProfile struct {
	Age           int           `json:"age" field:"age" validate:"min=13,max=100"`
	Sex           Sex           `json:"sex" field:"sex" validate:"oneof=male female other"`
	HeightCM      int           `json:"height_cm" field:"height_cm" validate:"min=100,max=250"`
	WeightKG      float64       `json:"weight_kg" field:"weight_kg" validate:"gte=30,lte=300"`
	FitnessLevel  FitnessLevel  `json:"fitness_level" field:"fitness_level" validate:"oneof=beginner intermediate advanced"`
	Goal          Goal          `json:"goal" field:"goal" validate:"oneof=weight-loss muscle-gain general-fitness endurance"`
	ActivityLevel ActivityLevel `json:"activity_level" field:"activity_level" validate:"oneof=sedentary light moderate active very_active"`

	// DefaultedFields lists the enum fields filled in by defaults rather than supplied by the user.
	DefaultedFields []string  `json:"defaulted_fields,omitempty" field:"-"`
	UpdatedAt       time.Time `json:"updated_at,omitempty" field:"-"`
}

// Raw converts the profile back into the raw key/value shape accepted by Validate.
func (p UserProfile) Raw() map[string]any {
	return map[string]any{
		"age":            p.Age,
		"sex":            string(p.Sex),
		"height_cm":      p.HeightCM,
		"weight_kg":      p.WeightKG,
		"fitness_level":  string(p.FitnessLevel),
		"goal":           string(p.Goal),
		"activity_level": string(p.ActivityLevel),
	}
}
