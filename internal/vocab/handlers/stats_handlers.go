package handlers

import (
	"sort"
	"time"

	apperrors "github.com/architect/vocab-trainer/internal/common/errors"
	"github.com/architect/vocab-trainer/internal/common/middleware"
	"github.com/architect/vocab-trainer/internal/common/validation"
	"github.com/architect/vocab-trainer/internal/vocab/models"
	"github.com/architect/vocab-trainer/internal/vocab/results"
	"github.com/architect/vocab-trainer/internal/vocab/stats"
	"github.com/gin-gonic/gin"
)

// GetMonthlyStatistics returns the daily aggregates for one calendar month
// GET /api/v1/statistics?month=YYYY-MM
func GetMonthlyStatistics(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		middleware.JSONErrorResponse(c, apperrors.Unauthorized("missing user identity"))
		return
	}

	month := c.DefaultQuery("month", time.Now().Format("2006-01"))
	if err := validation.ValidateMonth(month); err != nil {
		middleware.JSONErrorResponse(c, apperrors.BadRequest(err.Error()))
		return
	}

	days, err := stats.Month(userID, month)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(200, models.MonthlyStatisticsResponse{
		Month: month,
		Days:  days,
	})
}

// GetTypeResults returns per-range wrong counts and completion counts
// GET /api/v1/results/:type
func GetTypeResults(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		middleware.JSONErrorResponse(c, apperrors.Unauthorized("missing user identity"))
		return
	}

	qtype := c.Param("type")

	vectors, err := results.WrongVectors(userID, qtype)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	counts, err := results.Completions(userID, qtype)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	ranges := make([]string, 0, len(vectors))
	for qrange := range vectors {
		ranges = append(ranges, qrange)
	}
	sort.Strings(ranges)

	resp := models.TypeResultsResponse{
		Type:   qtype,
		Ranges: make([]models.RangeResult, 0, len(ranges)),
	}
	for _, qrange := range ranges {
		resp.Ranges = append(resp.Ranges, models.RangeResult{
			Range:      qrange,
			WrongCount: vectors[qrange],
			Completed:  counts[qrange],
		})
	}

	c.JSON(200, resp)
}
