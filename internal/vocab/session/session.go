// Package session drives a single quiz run: question sequencing, the
// two-step confirmation flow and score computation. A Session is a plain
// value object owned by its caller; persistence happens elsewhere, after
// completion, from the outcome vector this package produces.
package session

import (
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/architect/vocab-trainer/internal/vocab/models"
)

// ErrInvalidTransition is returned when a session method is called in the
// wrong phase. The outcome vector is left untouched.
var ErrInvalidTransition = errors.New("invalid session transition")

// ErrNotComplete is returned when results are requested before the last
// question has been advanced past.
var ErrNotComplete = errors.New("session is not complete")

// Phase is the state of the confirmation flow for the current question.
type Phase int

const (
	PhaseAsking     Phase = iota // Question shown, no answer yet
	PhaseConfirming              // User claimed understood; awaiting self-grade
	PhaseRevealed                // Answer shown
	PhaseComplete                // Past the last question
)

func (p Phase) String() string {
	switch p {
	case PhaseAsking:
		return "asking"
	case PhaseConfirming:
		return "confirming"
	case PhaseRevealed:
		return "revealed"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Outcome values recorded per question
const (
	OutcomeCorrect = 0
	OutcomeWrong   = 1
)

// Session is the state of one quiz run. Outcomes is parallel to Questions in
// session order; shuffled sessions are realigned later via QuestionRecord.ID.
type Session struct {
	ID        string
	Config    models.SessionConfig
	CreatedAt time.Time

	questions []models.QuestionRecord
	position  int
	outcomes  []int
	correct   int
	phase     Phase
}

// Result is the completed session's outcome, consumed by the reconciler and
// the statistics aggregator.
type Result struct {
	Config    models.SessionConfig
	Questions []models.QuestionRecord
	Outcomes  []int
	Correct   int
	Score     int
}

// New creates a session over the loaded question set, shuffling it when the
// config asks for it.
func New(id string, cfg models.SessionConfig, questions []models.QuestionRecord) *Session {
	return NewWithRand(id, cfg, questions, nil)
}

// NewWithRand is New with an explicit random source for deterministic tests.
// A nil source falls back to the shared one.
func NewWithRand(id string, cfg models.SessionConfig, questions []models.QuestionRecord, r *rand.Rand) *Session {
	qs := make([]models.QuestionRecord, len(questions))
	copy(qs, questions)

	if cfg.Shuffle {
		swap := func(i, j int) { qs[i], qs[j] = qs[j], qs[i] }
		if r != nil {
			r.Shuffle(len(qs), swap)
		} else {
			rand.Shuffle(len(qs), swap)
		}
	}

	return &Session{
		ID:        id,
		Config:    cfg,
		CreatedAt: time.Now(),
		questions: qs,
		outcomes:  make([]int, 0, len(qs)),
		phase:     PhaseAsking,
	}
}

// SubmitUnderstood handles the initial claim on the current question. A
// not-understood claim is scored wrong immediately and reveals the answer; an
// understood claim defers scoring to Confirm so the user self-grades against
// the revealed answer first.
func (s *Session) SubmitUnderstood(understood bool) error {
	if s.phase != PhaseAsking {
		return ErrInvalidTransition
	}

	if understood {
		s.phase = PhaseConfirming
		return nil
	}

	s.outcomes = append(s.outcomes, OutcomeWrong)
	s.phase = PhaseRevealed
	return nil
}

// Confirm records the self-graded result of an understood claim
func (s *Session) Confirm(correct bool) error {
	if s.phase != PhaseConfirming {
		return ErrInvalidTransition
	}

	if correct {
		s.outcomes = append(s.outcomes, OutcomeCorrect)
		s.correct++
	} else {
		s.outcomes = append(s.outcomes, OutcomeWrong)
	}
	s.phase = PhaseRevealed
	return nil
}

// Advance moves to the next question, or completes the session after the last
func (s *Session) Advance() error {
	if s.phase != PhaseRevealed {
		return ErrInvalidTransition
	}

	s.position++
	if s.position >= len(s.questions) {
		s.phase = PhaseComplete
	} else {
		s.phase = PhaseAsking
	}
	return nil
}

// Phase returns the current phase
func (s *Session) Phase() Phase {
	return s.phase
}

// Complete reports whether every question has been answered and advanced past
func (s *Session) Complete() bool {
	return s.phase == PhaseComplete
}

// Current returns the question at the session position
func (s *Session) Current() (models.QuestionRecord, error) {
	if s.phase == PhaseComplete {
		return models.QuestionRecord{}, ErrInvalidTransition
	}
	return s.questions[s.position], nil
}

// Progress returns the 1-based position and the total question count
func (s *Session) Progress() (current, total int) {
	current = s.position + 1
	if s.phase == PhaseComplete {
		current = len(s.questions)
	}
	return current, len(s.questions)
}

// Questions returns the session-ordered question sequence
func (s *Session) Questions() []models.QuestionRecord {
	return s.questions
}

// Score computes the integer percentage score, rounded half-up
func (s *Session) Score() int {
	if len(s.questions) == 0 {
		return 0
	}
	return int(math.Round(float64(s.correct) / float64(len(s.questions)) * 100))
}

// Result returns the completed session's outcome vector and score
func (s *Session) Result() (Result, error) {
	if s.phase != PhaseComplete {
		return Result{}, ErrNotComplete
	}

	return Result{
		Config:    s.Config,
		Questions: s.questions,
		Outcomes:  s.outcomes,
		Correct:   s.correct,
		Score:     s.Score(),
	}, nil
}

// MessageForScore maps a final score to its result screen message tier
func MessageForScore(score int) string {
	switch {
	case score == 100:
		return "perfect"
	case score >= 80:
		return "great"
	case score >= 60:
		return "good"
	default:
		return "needs review"
	}
}
