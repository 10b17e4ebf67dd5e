//go:build integration_test || all_tests

package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/2beens/fitplan/internal/fitness/api"
	"github.com/2beens/fitplan/internal/fitness/engine"
	"github.com/2beens/fitplan/internal/fitness/plan"
	"github.com/2beens/fitplan/internal/fitness/progress"
	"github.com/2beens/fitplan/pkg"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

func (s *IntegrationTestSuite) doRequest(method, path string, userID uuid.UUID, body any) (int, []byte) {
	var reader io.Reader
	if body != nil {
		bodyJson, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(bodyJson)
	}

	req, err := http.NewRequest(method, serverEndpoint+path, reader)
	s.Require().NoError(err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(api.TimezoneHeader, "UTC")
	if userID != uuid.Nil {
		req.Header.Set("X-User-Id", userID.String())
	}

	resp, err := s.httpClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp.StatusCode, respBytes
}

func randomProfile() map[string]any {
	return map[string]any{
		"age":            gofakeit.Number(18, 70),
		"sex":            gofakeit.RandomString([]string{"male", "female", "other"}),
		"height_cm":      gofakeit.Number(150, 200),
		"weight_kg":      gofakeit.Float64Range(50, 120),
		"fitness_level":  gofakeit.RandomString([]string{"beginner", "intermediate", "advanced"}),
		"goal":           gofakeit.RandomString([]string{"weight-loss", "muscle-gain", "general-fitness", "endurance"}),
		"activity_level": gofakeit.RandomString([]string{"sedentary", "light", "moderate", "active", "very_active"}),
	}
}

func (s *IntegrationTestSuite) TestProfileAndPlan() {
	userID := uuid.New()

	status, _ := s.doRequest(http.MethodGet, "/profile", userID, nil)
	s.Equal(http.StatusNotFound, status)

	status, body := s.doRequest(http.MethodPut, "/profile", userID, randomProfile())
	s.Require().Equal(http.StatusOK, status, string(body))

	var saved api.SaveProfileResponse
	s.Require().NoError(json.Unmarshal(body, &saved))
	s.Equal(plan.SourceFallback, saved.Plan.Source)
	s.Len(saved.Plan.WeeklySchedule, 7)

	status, body = s.doRequest(http.MethodGet, "/plan", userID, nil)
	s.Require().Equal(http.StatusOK, status)
	var stored plan.FitnessPlan
	s.Require().NoError(json.Unmarshal(body, &stored))
	s.Equal(saved.Plan.DailyCalories, stored.DailyCalories)
	s.Equal(saved.Plan.WeeklySchedule, stored.WeeklySchedule)

	status, body = s.doRequest(http.MethodPut, "/profile", userID, map[string]any{"age": 5})
	s.Equal(http.StatusUnprocessableEntity, status, string(body))
}

func (s *IntegrationTestSuite) TestPlanGenerate_RateLimited() {
	userID := uuid.New()
	status, _ := s.doRequest(http.MethodPut, "/profile", userID, randomProfile())
	s.Require().Equal(http.StatusOK, status)

	limit := getTestConfig("", "").PlanGenerateRateLimitPerMin
	for i := 0; i < limit; i++ {
		status, body := s.doRequest(http.MethodPost, "/plan/generate", userID, nil)
		s.Require().Equal(http.StatusOK, status, string(body))
	}

	status, _ = s.doRequest(http.MethodPost, "/plan/generate", userID, nil)
	s.Equal(http.StatusTooManyRequests, status)

	// other users have their own budget
	otherUser := uuid.New()
	status, _ = s.doRequest(http.MethodPut, "/profile", otherUser, randomProfile())
	s.Require().Equal(http.StatusOK, status)
	status, _ = s.doRequest(http.MethodPost, "/plan/generate", otherUser, nil)
	s.Equal(http.StatusOK, status)
}

func (s *IntegrationTestSuite) TestProgressAndDashboard() {
	userID := uuid.New()
	today := pkg.DateOf(time.Now().UTC())

	status, _ := s.doRequest(http.MethodPut, "/profile", userID, randomProfile())
	s.Require().Equal(http.StatusOK, status)

	status, body := s.doRequest(http.MethodPost, "/progress", userID, progress.Delta{Steps: 4000, WaterML: 500})
	s.Require().Equal(http.StatusOK, status, string(body))
	status, body = s.doRequest(http.MethodPost, "/progress", userID, progress.Delta{Steps: 1000, WorkoutsCompleted: 1})
	s.Require().Equal(http.StatusOK, status, string(body))

	var rec progress.DailyProgress
	s.Require().NoError(json.Unmarshal(body, &rec))
	s.Equal(5000, rec.Steps)
	s.Equal(500, rec.WaterML)
	s.Equal(1, rec.WorkoutsCompleted)
	s.True(today.Equal(rec.Date))

	status, _ = s.doRequest(http.MethodPost, "/progress", userID, progress.Delta{Steps: -6000})
	s.Equal(http.StatusBadRequest, status)

	status, _ = s.doRequest(http.MethodPost, "/progress", userID, progress.Delta{Date: today.AddDays(-1), Steps: 10})
	s.Equal(http.StatusConflict, status)

	status, body = s.doRequest(http.MethodGet, "/progress/"+today.String(), userID, nil)
	s.Require().Equal(http.StatusOK, status)
	s.Require().NoError(json.Unmarshal(body, &rec))
	s.Equal(5000, rec.Steps)

	status, body = s.doRequest(http.MethodGet, "/streak", userID, nil)
	s.Require().Equal(http.StatusOK, status)
	var streak progress.StreakState
	s.Require().NoError(json.Unmarshal(body, &streak))
	s.Equal(1, streak.CurrentStreak)
	s.Equal(1, streak.LongestStreak)

	status, body = s.doRequest(http.MethodGet, "/dashboard", userID, nil)
	s.Require().Equal(http.StatusOK, status, string(body))
	var dashboard engine.Dashboard
	s.Require().NoError(json.Unmarshal(body, &dashboard))
	s.Equal(5000, dashboard.Progress.Steps)
	s.Equal(1, dashboard.Week.DaysLogged)
	s.Equal(5000, dashboard.Week.TotalSteps)
	s.NotNil(dashboard.TodayWorkout)
}

func (s *IntegrationTestSuite) TestProgress_ConcurrentUpdates() {
	userID := uuid.New()
	today := pkg.DateOf(time.Now().UTC())

	const workers = 20
	var wg sync.WaitGroup
	statuses := make(chan int, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status, _ := s.doRequest(http.MethodPost, "/progress", userID, progress.Delta{Steps: 100, WaterML: 10})
			statuses <- status
		}()
	}
	wg.Wait()
	close(statuses)

	for status := range statuses {
		s.Equal(http.StatusOK, status)
	}

	status, body := s.doRequest(http.MethodGet, fmt.Sprintf("/progress/%s", today), userID, nil)
	s.Require().Equal(http.StatusOK, status)
	var rec progress.DailyProgress
	s.Require().NoError(json.Unmarshal(body, &rec))
	s.Equal(workers*100, rec.Steps)
	s.Equal(workers*10, rec.WaterML)
}

func (s *IntegrationTestSuite) TestHealth() {
	status, body := s.doRequest(http.MethodGet, "/healthz", uuid.Nil, nil)
	s.Equal(http.StatusOK, status, string(body))

	status, _ = s.doRequest(http.MethodGet, "/dashboard", uuid.Nil, nil)
	s.Equal(http.StatusUnauthorized, status)
}
