// Package memstore holds in-memory implementations of the fitness stores,
// used by the development environment and tests.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/2beens/fitplan/internal/fitness/plan"
	"github.com/2beens/fitplan/internal/fitness/profile"
	"github.com/2beens/fitplan/internal/fitness/progress"
	"github.com/2beens/fitplan/pkg"

	"github.com/google/uuid"
)

var (
	_ profile.Store  = (*ProfileStore)(nil)
	_ plan.Store     = (*PlanStore)(nil)
	_ progress.Store = (*ProgressStore)(nil)
)

type ProfileStore struct {
	profiles map[uuid.UUID]profile.UserProfile
	mutex    sync.RWMutex
}

func NewProfileStore() *ProfileStore {
	return &ProfileStore{
		profiles: make(map[uuid.UUID]profile.UserProfile),
	}
}

func (s *ProfileStore) Save(_ context.Context, userID uuid.UUID, p profile.UserProfile) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}
	p.DefaultedFields = append([]string(nil), p.DefaultedFields...)
	s.profiles[userID] = p
	return nil
}

func (s *ProfileStore) Get(_ context.Context, userID uuid.UUID) (*profile.UserProfile, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, profile.ErrProfileNotFound
	}
	p.DefaultedFields = append([]string(nil), p.DefaultedFields...)
	return &p, nil
}

type PlanStore struct {
	plans map[uuid.UUID]plan.FitnessPlan
	mutex sync.RWMutex
}

func NewPlanStore() *PlanStore {
	return &PlanStore{
		plans: make(map[uuid.UUID]plan.FitnessPlan),
	}
}

// Replace swaps the whole plan under the write lock.
func (s *PlanStore) Replace(_ context.Context, userID uuid.UUID, p plan.FitnessPlan) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.plans[userID] = clonePlan(p)
	return nil
}

func (s *PlanStore) Get(_ context.Context, userID uuid.UUID) (*plan.FitnessPlan, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	p, ok := s.plans[userID]
	if !ok {
		return nil, plan.ErrPlanNotFound
	}
	cloned := clonePlan(p)
	return &cloned, nil
}

func clonePlan(p plan.FitnessPlan) plan.FitnessPlan {
	p.Recommendations = append([]string(nil), p.Recommendations...)
	schedule := make([]plan.ScheduleEntry, len(p.WeeklySchedule))
	for i, e := range p.WeeklySchedule {
		e.Exercises = append([]string(nil), e.Exercises...)
		schedule[i] = e
	}
	p.WeeklySchedule = schedule
	return p
}

// days is keyed by the date string, time.Time values are not reliable map keys.
type userProgress struct {
	days   map[string]progress.DailyProgress
	latest *pkg.Date
	streak progress.StreakState
}

type ProgressStore struct {
	users map[uuid.UUID]*userProgress
	mutex sync.Mutex
}

func NewProgressStore() *ProgressStore {
	return &ProgressStore{
		users: make(map[uuid.UUID]*userProgress),
	}
}

// Update holds the store lock while fn runs, so merges never interleave.
func (s *ProgressStore) Update(_ context.Context, userID uuid.UUID, fn progress.UpdateFunc) (progress.Result, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	u, ok := s.users[userID]
	if !ok {
		u = &userProgress{days: make(map[string]progress.DailyProgress)}
	}

	var latest *progress.DailyProgress
	if u.latest != nil {
		rec := cloneProgress(u.days[u.latest.String()])
		latest = &rec
	}

	res, err := fn(latest, u.streak)
	if err != nil {
		return progress.Result{}, err
	}

	day := res.Progress.Date
	u.days[day.String()] = cloneProgress(res.Progress)
	if u.latest == nil || day.After(*u.latest) {
		u.latest = &day
	}
	u.streak = res.Streak
	s.users[userID] = u

	return res, nil
}

func (s *ProgressStore) Get(_ context.Context, userID uuid.UUID, day pkg.Date) (*progress.DailyProgress, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, progress.ErrProgressNotFound
	}
	rec, ok := u.days[day.String()]
	if !ok {
		return nil, progress.ErrProgressNotFound
	}
	rec = cloneProgress(rec)
	return &rec, nil
}

func (s *ProgressStore) List(_ context.Context, userID uuid.UUID, from, to pkg.Date) ([]progress.DailyProgress, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, nil
	}
	var records []progress.DailyProgress
	for _, rec := range u.days {
		if rec.Date.Before(from) || rec.Date.After(to) {
			continue
		}
		records = append(records, cloneProgress(rec))
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
	return records, nil
}

func (s *ProgressStore) Streak(_ context.Context, userID uuid.UUID) (progress.StreakState, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return progress.StreakState{}, nil
	}
	return u.streak, nil
}

func cloneProgress(p progress.DailyProgress) progress.DailyProgress {
	if p.WeightKG != nil {
		w := *p.WeightKG
		p.WeightKG = &w
	}
	return p
}
