package nutrition

import (
	"math"
	"time"
)

// MealCategory is a coarse time-of-day bucket derived from a record's
// creation timestamp.
type MealCategory string

const (
	MealBreakfast    MealCategory = "breakfast"
	MealMorningSnack MealCategory = "morning-snack"
	MealLunch        MealCategory = "lunch"
	MealEveningSnack MealCategory = "evening-snack"
	MealDinner       MealCategory = "dinner"
	MealLateNight    MealCategory = "late-night"
)

// Categories lists every meal category in display order.
var Categories = []MealCategory{
	MealBreakfast, MealMorningSnack, MealLunch,
	MealEveningSnack, MealDinner, MealLateNight,
}

// Band maps a half-open hour range [Start, End) to a meal category.
type Band struct {
	Start    int
	End      int
	Category MealCategory
}

// BandSet is an ordered hour-band table; hours outside every band fall
// through to late-night.
type BandSet []Band

// DashboardBands is the band table the nutrition dashboard uses.
//
// Note: DashboardBands and CompactBands disagree at several boundaries
// (breakfast starts at 5 vs 6, lunch ends at 16 vs 15). Different read paths
// historically used different tables; the table is deliberately kept as
// configuration rather than reconciled here.
var DashboardBands = BandSet{
	{5, 10, MealBreakfast},
	{10, 12, MealMorningSnack},
	{12, 16, MealLunch},
	{16, 18, MealEveningSnack},
	{18, 23, MealDinner},
}

// CompactBands is the alternate band table. See the note on DashboardBands.
var CompactBands = BandSet{
	{6, 10, MealBreakfast},
	{10, 12, MealMorningSnack},
	{12, 15, MealLunch},
	{15, 18, MealEveningSnack},
	{18, 22, MealDinner},
}

// Categorize buckets a timestamp by its local hour of day.
func (bs BandSet) Categorize(t time.Time) MealCategory {
	hour := t.Hour()
	for _, b := range bs {
		if hour >= b.Start && hour < b.End {
			return b.Category
		}
	}
	return MealLateNight
}

// DailyTotals is the summed nutrition for a set of records. Sums are rounded
// to 2 decimal places for display; MealCount is exact.
type DailyTotals struct {
	TotalCalories float64 `json:"totalCalories"`
	TotalProtein  float64 `json:"totalProtein"`
	TotalCarbs    float64 `json:"totalCarbs"`
	TotalFat      float64 `json:"totalFat"`
	TotalFiber    float64 `json:"totalFiber"`
	MealCount     int     `json:"mealCount"`
}

// SumDaily adds up nutrient columns across records. Nil fields contribute 0,
// and an empty input yields all-zero totals rather than an error.
func SumDaily(records []Nutrients) DailyTotals {
	var t DailyTotals
	for _, r := range records {
		t.TotalCalories += deref(r.Calories)
		t.TotalProtein += deref(r.Protein)
		t.TotalCarbs += deref(r.Carbs)
		t.TotalFat += deref(r.Fat)
		t.TotalFiber += deref(r.Fiber)
		t.MealCount++
	}
	t.TotalCalories = round2(t.TotalCalories)
	t.TotalProtein = round2(t.TotalProtein)
	t.TotalCarbs = round2(t.TotalCarbs)
	t.TotalFat = round2(t.TotalFat)
	t.TotalFiber = round2(t.TotalFiber)
	return t
}

// GroupByCategory partitions records by meal category, preserving input
// order within each group. The caller controls ordering: input pre-sorted
// most-recent-first stays most-recent-first, the grouping never re-sorts.
func GroupByCategory[T any](records []T, bands BandSet, at func(T) time.Time) map[MealCategory][]T {
	groups := make(map[MealCategory][]T)
	for _, r := range records {
		cat := bands.Categorize(at(r))
		groups[cat] = append(groups[cat], r)
	}
	return groups
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
