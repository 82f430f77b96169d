package services

import (
	"context"
	"time"

	"wellnessbuddy/models"
	"wellnessbuddy/nutrition"

	"gorm.io/gorm"
)

type StatsService struct{ db *gorm.DB }

func NewStatsService(db *gorm.DB) *StatsService { return &StatsService{db: db} }

// ---------- Overview (no date filter) ----------

type StatsCounters struct {
	Total               int64 `json:"total"`
	Today               int64 `json:"today"`
	ThisWeek            int64 `json:"thisWeek"`
	BackgroundProcessed int64 `json:"backgroundProcessed"`
	ManualProcessed     int64 `json:"manualProcessed"`
}

type WeeklyNutrition struct {
	TotalCalories float64 `json:"totalCalories"`
	TotalProtein  float64 `json:"totalProtein"`
	TotalCarbs    float64 `json:"totalCarbs"`
	TotalFat      float64 `json:"totalFat"`
	TotalFiber    float64 `json:"totalFiber"`
}

type DailyNutrition struct {
	Date     string  `json:"date"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Meals    int64   `json:"meals"`
}

type StatsOverview struct {
	Statistics      StatsCounters              `json:"statistics"`
	WeeklyNutrition WeeklyNutrition            `json:"weeklyNutrition"`
	DailyNutrition  []DailyNutrition           `json:"dailyNutrition"`
	RecentAnalyses  []models.NutritionAnalysis `json:"recentAnalyses"`
}

// Overview produces the stats the dashboard home screen shows: lifetime and
// rolling-week counters, summed weekly nutrition, a per-day breakdown of the
// last 7 days, and the 10 most recent analyses.
func (s *StatsService) Overview(ctx context.Context, userID string) (*StatsOverview, error) {
	now := time.Now()
	todayStart := dayStart(now)
	weekStart := todayStart.AddDate(0, 0, -7)

	out := &StatsOverview{}
	base := func() *gorm.DB {
		return s.db.WithContext(ctx).
			Model(&models.NutritionAnalysis{}).
			Where("user_id = ?", userID)
	}

	if err := base().Count(&out.Statistics.Total).Error; err != nil {
		return nil, err
	}
	if err := base().Where("created_at >= ?", todayStart).Count(&out.Statistics.Today).Error; err != nil {
		return nil, err
	}
	if err := base().Where("created_at >= ?", weekStart).Count(&out.Statistics.ThisWeek).Error; err != nil {
		return nil, err
	}
	if err := base().Where("processed_by = ?", nutrition.SourceBackground).
		Count(&out.Statistics.BackgroundProcessed).Error; err != nil {
		return nil, err
	}
	out.Statistics.ManualProcessed = out.Statistics.Total - out.Statistics.BackgroundProcessed

	if err := base().Where("created_at >= ?", weekStart).
		Select(`COALESCE(SUM(total_calories), 0) AS total_calories,
			COALESCE(SUM(total_protein), 0) AS total_protein,
			COALESCE(SUM(total_carbs), 0) AS total_carbs,
			COALESCE(SUM(total_fat), 0) AS total_fat,
			COALESCE(SUM(total_fiber), 0) AS total_fiber`).
		Scan(&out.WeeklyNutrition).Error; err != nil {
		return nil, err
	}

	type dailyRow struct {
		Date     time.Time
		Calories float64
		Protein  float64
		Carbs    float64
		Fat      float64
		Meals    int64
	}
	var daily []dailyRow
	if err := base().Where("created_at >= ?", weekStart).
		Select(`DATE(created_at) AS date,
			COALESCE(SUM(total_calories), 0) AS calories,
			COALESCE(SUM(total_protein), 0) AS protein,
			COALESCE(SUM(total_carbs), 0) AS carbs,
			COALESCE(SUM(total_fat), 0) AS fat,
			COUNT(*) AS meals`).
		Group("DATE(created_at)").
		Order("date DESC").
		Scan(&daily).Error; err != nil {
		return nil, err
	}
	for _, d := range daily {
		out.DailyNutrition = append(out.DailyNutrition, DailyNutrition{
			Date:     d.Date.Format("2006-01-02"),
			Calories: d.Calories,
			Protein:  d.Protein,
			Carbs:    d.Carbs,
			Fat:      d.Fat,
			Meals:    d.Meals,
		})
	}

	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(10).
		Find(&out.RecentAnalyses).Error; err != nil {
		return nil, err
	}

	return out, nil
}

// ---------- Range aggregation ----------

type MealGroup struct {
	Category nutrition.MealCategory     `json:"category"`
	Meals    []models.NutritionAnalysis `json:"meals"`
}

type RangeStats struct {
	StartDate string                     `json:"startDate"`
	EndDate   string                     `json:"endDate"`
	Totals    nutrition.DailyTotals      `json:"totals"`
	ByMeal    []MealGroup                `json:"byMealCategory,omitempty"`
	Records   []models.NutritionAnalysis `json:"records,omitempty"`
}

// Range sums nutrition per the configured band set over [from, to). When
// detailed is set the records are returned too, partitioned by meal category
// in most-recent-first order.
func (s *StatsService) Range(ctx context.Context, userID string, from, to time.Time, bands nutrition.BandSet, detailed bool) (*RangeStats, error) {
	var rows []models.NutritionAnalysis
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, from, to).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	nutrients := make([]nutrition.Nutrients, 0, len(rows))
	for _, r := range rows {
		nutrients = append(nutrients, nutrition.Nutrients{
			Calories: r.TotalCalories,
			Protein:  r.TotalProtein,
			Carbs:    r.TotalCarbs,
			Fat:      r.TotalFat,
			Fiber:    r.TotalFiber,
		})
	}

	out := &RangeStats{
		StartDate: from.Format("2006-01-02"),
		EndDate:   to.AddDate(0, 0, -1).Format("2006-01-02"),
		Totals:    nutrition.SumDaily(nutrients),
	}

	if !detailed {
		return out, nil
	}

	out.Records = rows
	groups := nutrition.GroupByCategory(rows, bands, func(r models.NutritionAnalysis) time.Time {
		return r.CreatedAt
	})
	for _, cat := range nutrition.Categories {
		if meals, ok := groups[cat]; ok {
			out.ByMeal = append(out.ByMeal, MealGroup{Category: cat, Meals: meals})
		}
	}
	return out, nil
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
