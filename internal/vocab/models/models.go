package models

// Question direction modes
const (
	ModeNativeToTarget = "nativeToTarget"
	ModeTargetToNative = "targetToNative"
)

// Virtual question set keys. Sessions on these are review-only and never
// write back to per-range results or the review ledger.
const (
	ReviewsType   = "reviews"
	OvercomeRange = "overcome"
)

// ReviewSetCap limits the size of synthesized review question sets
const ReviewSetCap = 50

// QuestionRecord is a single vocabulary flashcard. ID is stable within a
// range's bank file and is the join key for realigning shuffled sessions.
type QuestionRecord struct {
	ID          int    `json:"id"`
	Word        string `json:"word"`
	Meaning     string `json:"meaning"`
	Example     string `json:"example"`
	Translation string `json:"translation"`
	Remark      string `json:"remark"`
}

// SessionConfig describes a single quiz run. Immutable after session start.
type SessionConfig struct {
	Type      string `json:"type"`
	Range     string `json:"range"`
	Mode      string `json:"mode"`
	Shuffle   bool   `json:"shuffle"`
	OnlyWrong bool   `json:"only_wrong"`
}

// Virtual reports whether the config targets a synthesized review set
func (c SessionConfig) Virtual() bool {
	return c.Type == ReviewsType || c.Range == OvercomeRange
}

// ReviewPair identifies a (type, range) studied on a given day
type ReviewPair struct {
	Type  string `json:"type"`
	Range string `json:"range"`
}

// DailyStatistic is the per-day aggregate stored in the statistics collection.
// CorrectRate uses the historical running-update rule: the first session of a
// day sets it, every later session averages the previous value with the new
// score. Changing this would break compatibility with stored data.
type DailyStatistic struct {
	CorrectRate   float64        `json:"correctRate"`
	NumberOfWords int            `json:"numberOfWords"`
	PerfectCounts map[string]int `json:"perfectCounts,omitempty"`
}

// PerfectKey builds the perfectCounts map key for a (type, range) pair
func PerfectKey(qtype, qrange string) string {
	return qtype + " " + qrange
}
