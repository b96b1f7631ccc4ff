// Package stats maintains the per-day aggregate statistics document fed by
// completed sessions and read by the statistics page.
package stats

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/architect/vocab-trainer/internal/vocab/models"
	"github.com/architect/vocab-trainer/internal/vocab/session"
	"github.com/architect/vocab-trainer/internal/vocab/store"
)

const dateKeyLayout = "2006-01-02"

// Record folds a completed session into today's aggregate. Virtual sessions
// count toward the daily rate and word totals but never toward per-range
// perfect counters.
//
// The correctRate update is intentionally the historical rule: first session
// of the day sets it, later sessions average the stored value with the new
// score. It is not a weighted mean and must stay that way for compatibility
// with existing documents.
func Record(userID string, res session.Result, now time.Time) error {
	today := now.Format(dateKeyLayout)

	var stat models.DailyStatistic
	found, err := store.GetKey(store.CollectionStatistics, userID, today, &stat)
	if err != nil {
		return err
	}

	if found {
		stat.CorrectRate = (stat.CorrectRate + float64(res.Score)) / 2
		stat.NumberOfWords += len(res.Questions)
	} else {
		stat.CorrectRate = float64(res.Score)
		stat.NumberOfWords = len(res.Questions)
	}

	if res.Score == 100 && !res.Config.Virtual() {
		if stat.PerfectCounts == nil {
			stat.PerfectCounts = make(map[string]int)
		}
		stat.PerfectCounts[models.PerfectKey(res.Config.Type, res.Config.Range)]++
	}

	return store.SetKey(store.CollectionStatistics, userID, today, stat)
}

// Month returns the daily aggregates whose date keys fall in the given
// YYYY-MM month.
func Month(userID, month string) (map[string]models.DailyStatistic, error) {
	fields, found, err := store.Get(store.CollectionStatistics, userID)
	if err != nil {
		return nil, err
	}

	days := make(map[string]models.DailyStatistic)
	if !found {
		return days, nil
	}

	for key, raw := range fields {
		if !strings.HasPrefix(key, month+"-") {
			continue
		}
		var stat models.DailyStatistic
		if err := json.Unmarshal(raw, &stat); err != nil {
			continue
		}
		days[key] = stat
	}

	return days, nil
}
