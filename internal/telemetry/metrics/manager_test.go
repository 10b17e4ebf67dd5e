package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager_RegistersEverything(t *testing.T) {
	m, reg := NewTestManagerAndRegistry()

	m.CounterRequests.WithLabelValues("GET", "200").Inc()
	m.CounterPlansGenerated.WithLabelValues("fallback").Inc()
	m.CounterPlanFallbacks.WithLabelValues("timeout").Inc()
	m.CounterProgressUpdates.WithLabelValues("applied").Inc()
	m.CounterProfileValidations.WithLabelValues("valid").Inc()
	m.HistogramRequestDuration.WithLabelValues("/plan", "GET", "200").Observe(0.01)
	m.HistStreakLength.Observe(3)
	m.GaugeLifeSignal.Set(1)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := map[string]*dto.MetricFamily{}
	for _, mf := range families {
		names[mf.GetName()] = mf
	}

	for _, expected := range []string{
		"fitplan_test_server_request",
		"fitplan_test_server_handle_request_panic",
		"fitplan_test_server_rate_limited_requests",
		"fitplan_test_server_plans_generated",
		"fitplan_test_server_plan_fallbacks",
		"fitplan_test_server_progress_updates",
		"fitplan_test_server_profile_validations",
		"fitplan_test_server_current_requests",
		"fitplan_test_server_life_signal",
		"fitplan_test_server_request_duration_seconds",
		"fitplan_test_server_streak_length_days",
	} {
		assert.Contains(t, names, expected)
	}

	streak := names["fitplan_test_server_streak_length_days"]
	require.Len(t, streak.GetMetric(), 1)
	assert.Equal(t, uint64(1), streak.GetMetric()[0].GetHistogram().GetSampleCount())
	assert.Equal(t, float64(3), streak.GetMetric()[0].GetHistogram().GetSampleSum())
}

func TestManager_CountersByLabel(t *testing.T) {
	m := NewTestManager()

	m.CounterPlansGenerated.WithLabelValues("ai").Inc()
	m.CounterPlansGenerated.WithLabelValues("fallback").Inc()
	m.CounterPlansGenerated.WithLabelValues("fallback").Inc()

	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterPlansGenerated.WithLabelValues("ai")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.CounterPlansGenerated.WithLabelValues("fallback")))
}

func TestManagers_DoNotShareRegistry(t *testing.T) {
	// two managers on separate registries must not panic with duplicate registration
	a := NewTestManager()
	b := NewTestManager()
	a.CounterRateLimitedRequests.Inc()

	assert.Equal(t, float64(1), testutil.ToFloat64(a.CounterRateLimitedRequests))
	assert.Equal(t, float64(0), testutil.ToFloat64(b.CounterRateLimitedRequests))
}

func TestSetupPrometheus_ExtraCollectors(t *testing.T) {
	extra := prometheus.NewCounter(prometheus.CounterOpts{Name: "fitplan_extra_total", Help: "extra"})
	reg := SetupPrometheus(extra, nil)
	extra.Inc()

	err := testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP fitplan_extra_total extra
# TYPE fitplan_extra_total counter
fitplan_extra_total 1
`), "fitplan_extra_total")
	assert.NoError(t, err)
}
