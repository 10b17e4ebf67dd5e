package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

func initValidator() {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := fld.Tag.Get("field")
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// field order used for reporting
var fieldOrder = []string{"age", "sex", "height_cm", "weight_kg", "fitness_level", "goal", "activity_level"}

var fieldAliases = map[string][]string{
	"age":            {"age"},
	"sex":            {"sex", "gender"},
	"height_cm":      {"height_cm", "heightCm", "heightCM", "height"},
	"weight_kg":      {"weight_kg", "weightKg", "weightKG", "weight"},
	"fitness_level":  {"fitness_level", "fitnessLevel"},
	"goal":           {"goal"},
	"activity_level": {"activity_level", "activityLevel"},
}

type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError lists every missing or invalid field of a raw profile.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Reason)
	}
	return "invalid profile: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

type fieldErrors map[string]string

func (fe fieldErrors) add(field, reason string) {
	if _, exists := fe[field]; exists {
		return
	}
	fe[field] = reason
}

// Validate normalizes a raw key/value payload into a canonical UserProfile.
// Out-of-range values are rejected, never clamped. It has no side effects.
func Validate(raw map[string]any) (UserProfile, error) {
	initValidator()

	errs := fieldErrors{}
	var p UserProfile

	if v, ok := lookup(raw, "age"); !ok {
		errs.add("age", "is required")
	} else if age, err := toInt(v); err != nil {
		errs.add("age", err.Error())
	} else {
		p.Age = age
	}

	if v, ok := lookup(raw, "height_cm"); !ok {
		errs.add("height_cm", "is required")
	} else if h, err := toInt(v); err != nil {
		errs.add("height_cm", err.Error())
	} else {
		p.HeightCM = h
	}

	if v, ok := lookup(raw, "weight_kg"); !ok {
		errs.add("weight_kg", "is required")
	} else if w, err := toFloat(v); err != nil {
		errs.add("weight_kg", err.Error())
	} else {
		p.WeightKG = w
	}

	if v, ok := lookup(raw, "sex"); !ok {
		errs.add("sex", "is required")
	} else if s, err := toEnum(v); err != nil {
		errs.add("sex", err.Error())
	} else {
		p.Sex = normalizeSex(s)
	}

	if v, ok := lookup(raw, "fitness_level"); !ok {
		p.FitnessLevel = DefaultFitnessLevel
		p.DefaultedFields = append(p.DefaultedFields, "fitness_level")
	} else if s, err := toEnum(v); err != nil {
		errs.add("fitness_level", err.Error())
	} else {
		p.FitnessLevel = FitnessLevel(s)
	}

	if v, ok := lookup(raw, "goal"); !ok {
		p.Goal = DefaultGoal
		p.DefaultedFields = append(p.DefaultedFields, "goal")
	} else if s, err := toEnum(v); err != nil {
		errs.add("goal", err.Error())
	} else {
		p.Goal = Goal(strings.NewReplacer("_", "-", " ", "-").Replace(s))
	}

	if v, ok := lookup(raw, "activity_level"); !ok {
		p.ActivityLevel = DefaultActivityLevel
		p.DefaultedFields = append(p.DefaultedFields, "activity_level")
	} else if s, err := toEnum(v); err != nil {
		errs.add("activity_level", err.Error())
	} else {
		p.ActivityLevel = ActivityLevel(strings.NewReplacer("-", "_", " ", "_").Replace(s))
	}

	if err := validate.Struct(p); err != nil {
		var vErrs validator.ValidationErrors
		if !errors.As(err, &vErrs) {
			return UserProfile{}, fmt.Errorf("validate profile: %w", err)
		}
		for _, fe := range vErrs {
			errs.add(fe.Field(), reasonFor(fe))
		}
	}

	if len(errs) > 0 {
		return UserProfile{}, errs.toValidationError()
	}

	return p, nil
}

func (fe fieldErrors) toValidationError() *ValidationError {
	ve := &ValidationError{}
	for _, name := range fieldOrder {
		if reason, ok := fe[name]; ok {
			ve.Fields = append(ve.Fields, FieldError{Field: name, Reason: reason})
		}
	}
	// anything not in the canonical order (should not happen) goes last, sorted
	var rest []string
	for name := range fe {
		if !contains(fieldOrder, name) {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		ve.Fields = append(ve.Fields, FieldError{Field: name, Reason: fe[name]})
	}
	return ve
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "is invalid"
	}
}

func lookup(raw map[string]any, field string) (any, bool) {
	for _, key := range fieldAliases[field] {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			continue
		}
		return v, true
	}
	return nil, false
}

func toFloat(v any) (float64, error) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, errors.New("must be a number")
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, errors.New("must be a number")
		}
		f = parsed
	default:
		return 0, errors.New("must be a number")
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.New("must be a finite number")
	}
	return f, nil
}

func toInt(v any) (int, error) {
	f, err := toFloat(v)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, errors.New("must be a whole number")
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, errors.New("is out of range")
	}
	return int(f), nil
}

func toEnum(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", errors.New("must be a string")
	}
	return strings.ToLower(strings.TrimSpace(s)), nil
}

func normalizeSex(s string) Sex {
	switch s {
	case "m":
		return SexMale
	case "f":
		return SexFemale
	default:
		return Sex(s)
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
