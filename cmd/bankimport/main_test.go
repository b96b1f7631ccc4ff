package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/architect/vocab-trainer/internal/vocab/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, rows string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "words.csv")
	require.NoError(t, os.WriteFile(path, []byte(rows), 0o644))
	return path
}

func readBank(t *testing.T, path string) []models.QuestionRecord {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var questions []models.QuestionRecord
	require.NoError(t, json.Unmarshal(data, &questions))
	return questions
}

func TestRunImport_ChunksIntoRanges(t *testing.T) {
	csv := "word,meaning,example,translation,remark\n"
	for i := 0; i < 5; i++ {
		csv += "apple,a fruit,an apple a day,der Apfel,common\n"
	}

	outDir := t.TempDir()
	result, err := runImport(importConfig{
		file:      writeCSV(t, csv),
		bankType:  "TOEIC",
		outDir:    outDir,
		rangeSize: 2,
		startRow:  2,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, result.processed)
	assert.Equal(t, 3, result.files)

	first := readBank(t, filepath.Join(outDir, "TOEIC", "1-2.json"))
	require.Len(t, first, 2)
	assert.Equal(t, 1, first[0].ID)
	assert.Equal(t, "apple", first[0].Word)
	assert.Equal(t, "a fruit", first[0].Meaning)
	assert.Equal(t, "der Apfel", first[0].Translation)

	// Final partial chunk keeps its true id span
	last := readBank(t, filepath.Join(outDir, "TOEIC", "5-5.json"))
	require.Len(t, last, 1)
	assert.Equal(t, 5, last[0].ID)
}

func TestRunImport_SkipsIncompleteRows(t *testing.T) {
	csv := "word,meaning\n" +
		"apple,a fruit\n" +
		"orphan,\n" +
		",\n" +
		"book,bound pages\n"

	outDir := t.TempDir()
	result, err := runImport(importConfig{
		file:      writeCSV(t, csv),
		bankType:  "TOEIC",
		outDir:    outDir,
		rangeSize: 50,
		startRow:  2,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.processed)
	assert.Equal(t, 2, result.skipped)
	// Only the half-filled row warrants a warning
	assert.Len(t, result.errors, 1)

	bank := readBank(t, filepath.Join(outDir, "TOEIC", "1-2.json"))
	assert.Equal(t, "book", bank[1].Word)
	assert.Equal(t, 2, bank[1].ID)
}

func TestRunImport_NoUsableRows(t *testing.T) {
	_, err := runImport(importConfig{
		file:      writeCSV(t, "word,meaning\n"),
		bankType:  "TOEIC",
		outDir:    t.TempDir(),
		rangeSize: 50,
		startRow:  2,
	})
	assert.Error(t, err)
}
