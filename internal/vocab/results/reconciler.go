// Package results folds a completed session's outcome vector into the
// persisted per-range wrong-count vectors, completion counters and the daily
// review ledger.
package results

import (
	"time"

	"github.com/architect/vocab-trainer/internal/vocab/models"
	"github.com/architect/vocab-trainer/internal/vocab/session"
	"github.com/architect/vocab-trainer/internal/vocab/store"
)

const dateKeyLayout = "2006-01-02"

// CanonicalLoader supplies the unshuffled bank ordering that wrong-count
// vectors are indexed by.
type CanonicalLoader interface {
	Load(qtype, qrange string) ([]models.QuestionRecord, error)
}

// Reconcile merges the session outcome into the user's persisted records.
// Virtual sessions (reviews type, overcome range) are skipped entirely: they
// replay other ranges' questions and must not pollute per-range history.
//
// Writes are read-modify-write with last-writer-wins replace at the type key;
// concurrent sessions on another device can lose updates. Known limitation.
func Reconcile(loader CanonicalLoader, userID string, res session.Result, now time.Time) error {
	cfg := res.Config
	if cfg.Virtual() {
		return nil
	}

	// Outcomes are keyed by question id, not session position, so shuffled
	// and filtered sessions land on the right canonical slots.
	outcomeByID := make(map[int]int, len(res.Outcomes))
	for i, q := range res.Questions {
		if i < len(res.Outcomes) {
			outcomeByID[q.ID] = res.Outcomes[i]
		}
	}

	canonical, err := loader.Load(cfg.Type, cfg.Range)
	if err != nil {
		return err
	}

	if err := mergeWrongVector(userID, cfg.Type, cfg.Range, canonical, outcomeByID); err != nil {
		return err
	}

	if err := incrementCompletion(userID, cfg.Type, cfg.Range); err != nil {
		return err
	}

	return appendReviewLedger(userID, cfg.Type, cfg.Range, now)
}

// WrongVectors returns the per-range wrong-count vectors stored under a type
func WrongVectors(userID, qtype string) (map[string][]int, error) {
	vectors := make(map[string][]int)
	if _, err := store.GetKey(store.CollectionResults, userID, qtype, &vectors); err != nil {
		return nil, err
	}
	return vectors, nil
}

// Completions returns the per-range session completion counts for a type
func Completions(userID, qtype string) (map[string]int, error) {
	counts := make(map[string]int)
	if _, err := store.GetKey(store.CollectionCompletions, userID, qtype, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

// mergeWrongVector adds this session's outcomes onto the stored vector,
// indexed by canonical bank position. Vectors grow to the canonical length
// when needed and never shrink.
func mergeWrongVector(userID, qtype, qrange string, canonical []models.QuestionRecord, outcomeByID map[int]int) error {
	vectors, err := WrongVectors(userID, qtype)
	if err != nil {
		return err
	}

	existing := vectors[qrange]
	size := len(canonical)
	if len(existing) > size {
		size = len(existing)
	}

	merged := make([]int, size)
	copy(merged, existing)
	for i, q := range canonical {
		merged[i] += outcomeByID[q.ID]
	}

	vectors[qrange] = merged
	return store.SetKey(store.CollectionResults, userID, qtype, vectors)
}

// incrementCompletion bumps the per-range completed-session counter
func incrementCompletion(userID, qtype, qrange string) error {
	counts, err := Completions(userID, qtype)
	if err != nil {
		return err
	}

	counts[qrange]++
	return store.SetKey(store.CollectionCompletions, userID, qtype, counts)
}

// appendReviewLedger records the (type, range) pair under today's date,
// deduplicated; repeated sessions on the same range do not duplicate it.
func appendReviewLedger(userID, qtype, qrange string, now time.Time) error {
	today := now.Format(dateKeyLayout)

	var pairs []models.ReviewPair
	if _, err := store.GetKey(store.CollectionReviews, userID, today, &pairs); err != nil {
		return err
	}

	for _, pair := range pairs {
		if pair.Type == qtype && pair.Range == qrange {
			return nil
		}
	}

	pairs = append(pairs, models.ReviewPair{Type: qtype, Range: qrange})
	return store.SetKey(store.CollectionReviews, userID, today, pairs)
}
