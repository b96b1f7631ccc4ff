// Package questionbank loads ordered question sets from the static JSON bank
// directory, including the synthesized review sets ("reviews" type and
// "overcome" range) that union previously studied banks.
package questionbank

import (
	"encoding/json"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/architect/vocab-trainer/internal/common/errors"
	"github.com/architect/vocab-trainer/internal/vocab/models"
	"github.com/architect/vocab-trainer/internal/vocab/results"
	"github.com/architect/vocab-trainer/internal/vocab/store"
)

const dateKeyLayout = "2006-01-02"

// Loader resolves (type, range) keys to ordered question sets
type Loader struct {
	dir string
	now func() time.Time
	rng *rand.Rand
}

// NewLoader creates a loader over the bank directory
func NewLoader(dir string) *Loader {
	return &Loader{
		dir: dir,
		now: time.Now,
	}
}

// Load reads the bank file for (type, range) in canonical order
func (l *Loader) Load(qtype, qrange string) ([]models.QuestionRecord, error) {
	path := filepath.Join(l.dir, qtype, qrange+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.LoadFailed("question set", err.Error())
	}

	var questions []models.QuestionRecord
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, errors.LoadFailed("question set", err.Error())
	}

	return questions, nil
}

// LoadForSession resolves the question set for a session config: virtual sets
// for the "reviews" type and "overcome" range, otherwise the static bank with
// an optional previously-wrong filter. An empty resolved set is an error; no
// session starts on it.
func (l *Loader) LoadForSession(userID string, cfg models.SessionConfig) ([]models.QuestionRecord, error) {
	var (
		questions []models.QuestionRecord
		err       error
	)

	switch {
	case cfg.Type == models.ReviewsType:
		questions, err = l.loadReviews(userID)
	case cfg.Range == models.OvercomeRange:
		questions, err = l.loadOvercome(userID, cfg.Type)
	case cfg.OnlyWrong:
		questions, err = l.loadOnlyWrong(userID, cfg.Type, cfg.Range)
	default:
		questions, err = l.Load(cfg.Type, cfg.Range)
	}
	if err != nil {
		return nil, err
	}

	if len(questions) == 0 {
		return nil, errors.EmptyResult("no questions matched the selected set")
	}

	return questions, nil
}

// ListSets enumerates available bank types and their range files, for the
// question selection page.
func (l *Loader) ListSets() (map[string][]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, errors.LoadFailed("question bank directory", err.Error())
	}

	sets := make(map[string][]string)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		files, err := os.ReadDir(filepath.Join(l.dir, entry.Name()))
		if err != nil {
			continue
		}

		var ranges []string
		for _, f := range files {
			if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
				continue
			}
			ranges = append(ranges, strings.TrimSuffix(f.Name(), ".json"))
		}
		if len(ranges) > 0 {
			sort.Strings(ranges)
			sets[entry.Name()] = ranges
		}
	}

	return sets, nil
}

// loadOnlyWrong filters the canonical bank to questions with a historical
// wrong count, preserving canonical relative order.
func (l *Loader) loadOnlyWrong(userID, qtype, qrange string) ([]models.QuestionRecord, error) {
	questions, err := l.Load(qtype, qrange)
	if err != nil {
		return nil, err
	}

	vectors, err := results.WrongVectors(userID, qtype)
	if err != nil {
		return nil, err
	}

	return filterWrong(questions, vectors[qrange]), nil
}

// loadReviews unions the banks studied yesterday per the review ledger
func (l *Loader) loadReviews(userID string) ([]models.QuestionRecord, error) {
	yesterday := l.now().AddDate(0, 0, -1).Format(dateKeyLayout)

	var pairs []models.ReviewPair
	found, err := store.GetKey(store.CollectionReviews, userID, yesterday, &pairs)
	if err != nil {
		return nil, err
	}
	if !found || len(pairs) == 0 {
		return nil, nil
	}

	var union []models.QuestionRecord
	for _, pair := range pairs {
		questions, err := l.Load(pair.Type, pair.Range)
		if err != nil {
			// A bank removed since yesterday should not sink the whole review
			continue
		}
		union = append(union, questions...)
	}

	return l.capShuffled(union), nil
}

// loadOvercome unions every range ever attempted for the type, keeping only
// historically-wrong questions.
func (l *Loader) loadOvercome(userID, qtype string) ([]models.QuestionRecord, error) {
	vectors, err := results.WrongVectors(userID, qtype)
	if err != nil {
		return nil, err
	}

	ranges := make([]string, 0, len(vectors))
	for qrange := range vectors {
		ranges = append(ranges, qrange)
	}
	sort.Strings(ranges)

	var union []models.QuestionRecord
	for _, qrange := range ranges {
		questions, err := l.Load(qtype, qrange)
		if err != nil {
			continue
		}
		union = append(union, filterWrong(questions, vectors[qrange])...)
	}

	return l.capShuffled(union), nil
}

// capShuffled shuffles the set and caps it at the review set size
func (l *Loader) capShuffled(questions []models.QuestionRecord) []models.QuestionRecord {
	swap := func(i, j int) { questions[i], questions[j] = questions[j], questions[i] }
	if l.rng != nil {
		l.rng.Shuffle(len(questions), swap)
	} else {
		rand.Shuffle(len(questions), swap)
	}

	if len(questions) > models.ReviewSetCap {
		questions = questions[:models.ReviewSetCap]
	}
	return questions
}

// filterWrong keeps questions whose canonical position has a positive wrong
// count. The vector is index-aligned to canonical bank order.
func filterWrong(questions []models.QuestionRecord, vector []int) []models.QuestionRecord {
	var filtered []models.QuestionRecord
	for i, q := range questions {
		if i < len(vector) && vector[i] > 0 {
			filtered = append(filtered, q)
		}
	}
	return filtered
}
