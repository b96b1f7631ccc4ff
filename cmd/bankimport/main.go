// bankimport converts spreadsheet word lists into the JSON question bank
// files served by the trainer. Each row becomes one question; rows are
// chunked into numeric ranges ("1-50", "51-100", ...) the way the question
// selection page expects them.
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/architect/vocab-trainer/internal/common/validation"
	"github.com/architect/vocab-trainer/internal/vocab/models"
	"github.com/xuri/excelize/v2"
)

type importConfig struct {
	file      string
	bankType  string
	outDir    string
	rangeSize int
	sheet     string
	startRow  int
}

type importResult struct {
	processed int
	files     int
	skipped   int
	errors    []string
}

// Fixed column layout: word, meaning, example, translation, remark
const (
	colWord = iota
	colMeaning
	colExample
	colTranslation
	colRemark
)

func main() {
	cfg := importConfig{}
	flag.StringVar(&cfg.file, "file", "", "Excel (.xlsx) or CSV file to import")
	flag.StringVar(&cfg.bankType, "type", "", "question bank type name (e.g. TOEIC)")
	flag.StringVar(&cfg.outDir, "out", "./data/questions", "question bank output directory")
	flag.IntVar(&cfg.rangeSize, "range-size", 50, "questions per range file")
	flag.StringVar(&cfg.sheet, "sheet", "Sheet1", "sheet name for Excel input")
	flag.IntVar(&cfg.startRow, "start-row", 2, "first data row (1-based; 2 skips a header)")
	flag.Parse()

	if cfg.file == "" || cfg.bankType == "" {
		flag.Usage()
		os.Exit(2)
	}
	if err := validation.ValidateIntRange(cfg.rangeSize, 1, 1000); err != nil {
		log.Fatalf("invalid -range-size: %v", err)
	}
	if err := validation.ValidateIntRange(cfg.startRow, 1, 1<<20); err != nil {
		log.Fatalf("invalid -start-row: %v", err)
	}

	result, err := runImport(cfg)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	fmt.Printf("Imported %d questions into %d range files (skipped %d rows)\n",
		result.processed, result.files, result.skipped)
	for _, e := range result.errors {
		fmt.Printf("  warning: %s\n", e)
	}
}

func runImport(cfg importConfig) (*importResult, error) {
	var (
		rows [][]string
		err  error
	)

	if strings.EqualFold(filepath.Ext(cfg.file), ".csv") {
		rows, err = readCSV(cfg.file)
	} else {
		rows, err = readExcel(cfg.file, cfg.sheet)
	}
	if err != nil {
		return nil, err
	}

	result := &importResult{}
	var questions []models.QuestionRecord

	for i, row := range rows {
		if i+1 < cfg.startRow {
			continue
		}

		word := cell(row, colWord)
		meaning := cell(row, colMeaning)
		if word == "" || meaning == "" {
			result.skipped++
			if word != "" || meaning != "" {
				result.errors = append(result.errors, fmt.Sprintf("row %d: missing word or meaning", i+1))
			}
			continue
		}

		questions = append(questions, models.QuestionRecord{
			ID:          len(questions) + 1,
			Word:        word,
			Meaning:     meaning,
			Example:     cell(row, colExample),
			Translation: cell(row, colTranslation),
			Remark:      cell(row, colRemark),
		})
	}
	result.processed = len(questions)

	if len(questions) == 0 {
		return nil, fmt.Errorf("no usable rows in %s", cfg.file)
	}

	typeDir := filepath.Join(cfg.outDir, cfg.bankType)
	if err := os.MkdirAll(typeDir, 0o755); err != nil {
		return nil, err
	}

	for start := 0; start < len(questions); start += cfg.rangeSize {
		end := start + cfg.rangeSize
		if end > len(questions) {
			end = len(questions)
		}

		// Range files are named by their id span so partial final chunks
		// still read naturally (e.g. "101-123").
		name := fmt.Sprintf("%d-%d", questions[start].ID, questions[end-1].ID)
		if err := writeRange(filepath.Join(typeDir, name+".json"), questions[start:end]); err != nil {
			return nil, err
		}
		result.files++
	}

	return result, nil
}

func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func writeRange(path string, questions []models.QuestionRecord) error {
	data, err := json.MarshalIndent(questions, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
