package nutrition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestSumDailyEmpty(t *testing.T) {
	got := SumDaily(nil)
	assert.Equal(t, DailyTotals{}, got)
}

func TestSumDailyNilFieldsContributeZero(t *testing.T) {
	records := []Nutrients{
		{Calories: f(350), Protein: f(20)},
		{Calories: f(120)},
		{Protein: f(5), Fiber: f(2.5)},
	}

	got := SumDaily(records)

	assert.Equal(t, 470.0, got.TotalCalories)
	assert.Equal(t, 25.0, got.TotalProtein)
	assert.Equal(t, 0.0, got.TotalCarbs)
	assert.Equal(t, 2.5, got.TotalFiber)
	assert.Equal(t, 3, got.MealCount)
}

func TestSumDailyRounding(t *testing.T) {
	records := []Nutrients{
		{Calories: f(0.1), Protein: f(0.125)},
		{Calories: f(0.2), Protein: f(0.125)},
	}

	got := SumDaily(records)

	assert.Equal(t, 0.3, got.TotalCalories)
	assert.Equal(t, 0.25, got.TotalProtein)
}

func TestBandSetCategorize(t *testing.T) {
	at := func(hour int) time.Time {
		return time.Date(2024, 3, 15, hour, 30, 0, 0, time.Local)
	}

	cases := []struct {
		hour      int
		dashboard MealCategory
		compact   MealCategory
	}{
		{4, MealLateNight, MealLateNight},
		{5, MealBreakfast, MealLateNight},
		{6, MealBreakfast, MealBreakfast},
		{9, MealBreakfast, MealBreakfast},
		{10, MealMorningSnack, MealMorningSnack},
		{11, MealMorningSnack, MealMorningSnack},
		{12, MealLunch, MealLunch},
		{15, MealLunch, MealEveningSnack},
		{16, MealEveningSnack, MealEveningSnack},
		{18, MealDinner, MealDinner},
		{22, MealDinner, MealLateNight},
		{23, MealLateNight, MealLateNight},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.dashboard, DashboardBands.Categorize(at(tc.hour)),
			"dashboard bands at hour %d", tc.hour)
		assert.Equal(t, tc.compact, CompactBands.Categorize(at(tc.hour)),
			"compact bands at hour %d", tc.hour)
	}
}

func TestGroupByCategoryPreservesInputOrder(t *testing.T) {
	type meal struct {
		name string
		at   time.Time
	}
	day := func(hour, min int) time.Time {
		return time.Date(2024, 3, 15, hour, min, 0, 0, time.Local)
	}
	meals := []meal{
		{"late oats", day(9, 45)},
		{"early oats", day(7, 0)},
		{"soup", day(13, 0)},
		{"midnight snack", day(1, 15)},
	}

	groups := GroupByCategory(meals, DashboardBands, func(m meal) time.Time { return m.at })

	require.Len(t, groups[MealBreakfast], 2)
	assert.Equal(t, "late oats", groups[MealBreakfast][0].name, "input order is preserved, not re-sorted")
	assert.Equal(t, "early oats", groups[MealBreakfast][1].name)
	require.Len(t, groups[MealLunch], 1)
	require.Len(t, groups[MealLateNight], 1)
	assert.NotContains(t, groups, MealDinner, "empty categories are absent, not empty slices")
}
