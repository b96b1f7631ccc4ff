package stats

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/architect/vocab-trainer/internal/common/database"
	"github.com/architect/vocab-trainer/internal/vocab/models"
	"github.com/architect/vocab-trainer/internal/vocab/session"
	"github.com/architect/vocab-trainer/internal/vocab/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, store.AutoMigrate(db))

	database.DB = db
}

func resultWith(score, words int, cfg models.SessionConfig) session.Result {
	return session.Result{
		Config:    cfg,
		Questions: make([]models.QuestionRecord, words),
		Outcomes:  make([]int, words),
		Score:     score,
	}
}

var testNow = time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

func TestRecord_FirstSessionSetsRate(t *testing.T) {
	setupTestDB(t)

	cfg := models.SessionConfig{Type: "TOEIC", Range: "1-50"}
	require.NoError(t, Record("alice", resultWith(80, 10, cfg), testNow))

	var stat models.DailyStatistic
	found, err := store.GetKey(store.CollectionStatistics, "alice", "2026-01-15", &stat)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 80.0, stat.CorrectRate)
	assert.Equal(t, 10, stat.NumberOfWords)
	assert.Empty(t, stat.PerfectCounts)
}

func TestRecord_LaterSessionsAverageWithStoredRate(t *testing.T) {
	setupTestDB(t)

	cfg := models.SessionConfig{Type: "TOEIC", Range: "1-50"}
	require.NoError(t, Record("alice", resultWith(80, 10, cfg), testNow))
	require.NoError(t, Record("alice", resultWith(60, 5, cfg), testNow))

	var stat models.DailyStatistic
	found, err := store.GetKey(store.CollectionStatistics, "alice", "2026-01-15", &stat)
	require.NoError(t, err)
	require.True(t, found)
	// Running rule: (80 + 60) / 2, not a weighted mean over 15 words
	assert.Equal(t, 70.0, stat.CorrectRate)
	assert.Equal(t, 15, stat.NumberOfWords)

	// A third session averages against 70, so earlier sessions lose weight
	require.NoError(t, Record("alice", resultWith(100, 5, cfg), testNow))
	found, err = store.GetKey(store.CollectionStatistics, "alice", "2026-01-15", &stat)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 85.0, stat.CorrectRate)
}

func TestRecord_PerfectScoreCountsPerSet(t *testing.T) {
	setupTestDB(t)

	cfg := models.SessionConfig{Type: "TOEIC", Range: "1-50"}
	require.NoError(t, Record("alice", resultWith(100, 10, cfg), testNow))
	require.NoError(t, Record("alice", resultWith(100, 10, cfg), testNow))
	require.NoError(t, Record("alice", resultWith(90, 10, cfg), testNow))

	var stat models.DailyStatistic
	found, err := store.GetKey(store.CollectionStatistics, "alice", "2026-01-15", &stat)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 2, stat.PerfectCounts[models.PerfectKey("TOEIC", "1-50")])
}

func TestRecord_VirtualSessionsUpdateRateButNotPerfectCounts(t *testing.T) {
	setupTestDB(t)

	cfg := models.SessionConfig{Type: models.ReviewsType, Range: "2026-01-14"}
	require.NoError(t, Record("alice", resultWith(100, 20, cfg), testNow))

	var stat models.DailyStatistic
	found, err := store.GetKey(store.CollectionStatistics, "alice", "2026-01-15", &stat)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 100.0, stat.CorrectRate)
	assert.Equal(t, 20, stat.NumberOfWords)
	assert.Empty(t, stat.PerfectCounts)
}

func TestRecord_SeparateDays(t *testing.T) {
	setupTestDB(t)

	cfg := models.SessionConfig{Type: "TOEIC", Range: "1-50"}
	require.NoError(t, Record("alice", resultWith(80, 10, cfg), testNow))
	require.NoError(t, Record("alice", resultWith(40, 10, cfg), testNow.AddDate(0, 0, 1)))

	var stat models.DailyStatistic
	found, err := store.GetKey(store.CollectionStatistics, "alice", "2026-01-16", &stat)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 40.0, stat.CorrectRate)
}

func TestMonth_FiltersByPrefix(t *testing.T) {
	setupTestDB(t)

	cfg := models.SessionConfig{Type: "TOEIC", Range: "1-50"}
	require.NoError(t, Record("alice", resultWith(80, 10, cfg), time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, Record("alice", resultWith(70, 10, cfg), time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, Record("alice", resultWith(60, 10, cfg), time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)))

	days, err := Month("alice", "2026-01")
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, 80.0, days["2026-01-15"].CorrectRate)
	assert.Equal(t, 70.0, days["2026-01-31"].CorrectRate)
}

func TestMonth_NoDocument(t *testing.T) {
	setupTestDB(t)

	days, err := Month("nobody", "2026-01")
	require.NoError(t, err)
	assert.Empty(t, days)
}
