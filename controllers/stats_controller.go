package controllers

import (
	"net/http"
	"time"

	"wellnessbuddy/nutrition"
	"wellnessbuddy/services"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	Svc *services.StatsService
}

func NewStatsController(svc *services.StatsService) *StatsController {
	return &StatsController{Svc: svc}
}

// UserStats answers both query styles: without a date filter it returns the
// dashboard overview; with ?date= or ?startDate=&endDate= it aggregates the
// range. ?detailed itemizes records by meal category and ?bands=compact
// selects the alternate hour-band table.
func (h *StatsController) UserStats(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "UserId is required"})
		return
	}

	date := c.Query("date")
	startDate := c.Query("startDate")
	endDate := c.Query("endDate")

	if date == "" && startDate == "" {
		out, err := h.Svc.Overview(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":         true,
			"userId":          userID,
			"statistics":      out.Statistics,
			"weeklyNutrition": out.WeeklyNutrition,
			"dailyNutrition":  out.DailyNutrition,
			"recentAnalyses":  out.RecentAnalyses,
		})
		return
	}

	loc := time.Now().Location()
	var from, to time.Time
	if date != "" {
		d, err := time.ParseInLocation("2006-01-02", date, loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid date"})
			return
		}
		from, to = d, d.AddDate(0, 0, 1)
	} else {
		start, err := time.ParseInLocation("2006-01-02", startDate, loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid startDate"})
			return
		}
		end, err := time.ParseInLocation("2006-01-02", endDate, loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid endDate"})
			return
		}
		if end.Before(start) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "endDate must be on/after startDate"})
			return
		}
		from, to = start, end.AddDate(0, 0, 1)
	}

	bands := nutrition.DashboardBands
	if c.Query("bands") == "compact" {
		bands = nutrition.CompactBands
	}
	detailed := c.Query("detailed") != "" && c.Query("detailed") != "false"

	out, err := h.Svc.Range(c.Request.Context(), userID, from, to, bands, detailed)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"userId":  userID,
		"stats":   out,
	})
}
