package factory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/leave-planner/engine"
	"github.com/warp/leave-planner/factory"
)

func TestParse_FullDefinition(t *testing.T) {
	f := factory.NewCategoryFactory()

	cat, err := f.Parse(`{
		"id": "remote",
		"name": "Remote Work",
		"color": "#60a5fa",
		"window": {"start": "2025-07-03", "end": "2025-08-02"},
		"days_of_week": [1, 3, 5],
		"quotas": {
			"weekly": {"max_days": 1},
			"weeks_per_month": {"max_weeks": 4},
			"total": {"max_days": 20}
		}
	}`)
	require.NoError(t, err)

	assert.Equal(t, engine.CategoryID("remote"), cat.ID)
	assert.Equal(t, "Remote Work", cat.Name)
	assert.Equal(t, engine.DateRange{Start: "2025-07-03", End: "2025-08-02"}, cat.Window)
	assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday, time.Friday}, cat.DaysOfWeek)
	require.True(t, cat.Weekly.IsLimited())
	assert.Equal(t, 1, cat.Weekly.Max())
	require.True(t, cat.WeeksPerMonth.IsLimited())
	assert.Equal(t, 4, cat.WeeksPerMonth.Max())
	require.True(t, cat.Total.IsLimited())
	assert.Equal(t, 20, cat.Total.Max())
}

func TestParse_MinimalDefinition(t *testing.T) {
	// Omitted quota blocks mean unlimited, omitted days mean all days.
	f := factory.NewCategoryFactory()

	cat, err := f.Parse(`{
		"id": "sick",
		"name": "Sick Leave",
		"window": {"start": "2025-01-01", "end": "2025-12-31"}
	}`)
	require.NoError(t, err)

	assert.False(t, cat.Weekly.IsLimited())
	assert.False(t, cat.WeeksPerMonth.IsLimited())
	assert.False(t, cat.Total.IsLimited())
	assert.Empty(t, cat.DaysOfWeek)
	for d := time.Sunday; d <= time.Saturday; d++ {
		assert.True(t, cat.AllowsWeekday(d))
	}
}

func TestParse_ZeroQuotaIsACap(t *testing.T) {
	// An explicit max_days of 0 is a real cap, not "unlimited".
	f := factory.NewCategoryFactory()

	cat, err := f.Parse(`{
		"id": "frozen",
		"name": "Frozen",
		"window": {"start": "2025-01-01", "end": "2025-12-31"},
		"quotas": {"weekly": {"max_days": 0}}
	}`)
	require.NoError(t, err)

	require.True(t, cat.Weekly.IsLimited())
	assert.Equal(t, 0, cat.Weekly.Max())
}

func TestParse_Rejections(t *testing.T) {
	f := factory.NewCategoryFactory()

	cases := map[string]string{
		"missing id":         `{"name": "X", "window": {"start": "2025-01-01", "end": "2025-12-31"}}`,
		"missing name":       `{"id": "x", "window": {"start": "2025-01-01", "end": "2025-12-31"}}`,
		"missing window":     `{"id": "x", "name": "X"}`,
		"weekday out of range": `{
			"id": "x", "name": "X",
			"window": {"start": "2025-01-01", "end": "2025-12-31"},
			"days_of_week": [7]}`,
		"duplicate weekday": `{
			"id": "x", "name": "X",
			"window": {"start": "2025-01-01", "end": "2025-12-31"},
			"days_of_week": [1, 1]}`,
		"non-canonical date": `{
			"id": "x", "name": "X",
			"window": {"start": "2025-1-1", "end": "2025-12-31"}}`,
		"malformed JSON": `{"id": `,
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.Parse(input)
			assert.Error(t, err)
		})
	}
}

func TestParse_InvalidWindowOrder(t *testing.T) {
	f := factory.NewCategoryFactory()

	_, err := f.Parse(`{
		"id": "x", "name": "X",
		"window": {"start": "2025-12-31", "end": "2025-01-01"}
	}`)
	assert.ErrorIs(t, err, engine.ErrInvalidWindow)
}

func TestToJSON_RoundTrip(t *testing.T) {
	f := factory.NewCategoryFactory()

	original := engine.Category{
		ID:         "remote",
		Name:       "Remote Work",
		Color:      "#60a5fa",
		Window:     engine.DateRange{Start: "2025-07-03", End: "2025-08-02"},
		DaysOfWeek: []time.Weekday{time.Friday},
		Weekly:     engine.Limited(1),
	}

	back, err := f.FromJSON(factory.ToJSON(original))
	require.NoError(t, err)
	assert.Equal(t, original, back)
}

func TestToJSON_OmitsUnconfiguredQuotas(t *testing.T) {
	cj := factory.ToJSON(engine.Category{
		ID:     "sick",
		Name:   "Sick Leave",
		Window: engine.DateRange{Start: "2025-01-01", End: "2025-12-31"},
	})

	assert.Nil(t, cj.Quotas, "no quotas block when nothing is configured")
	assert.Nil(t, cj.DaysOfWeek)
}
