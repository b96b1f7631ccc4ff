package models

// API Request/Response DTOs

// StartSessionRequest - request to start an answer session
type StartSessionRequest struct {
	Type      string `json:"type" binding:"required,min=1,max=64"`
	Range     string `json:"range" binding:"required,min=1,max=64"`
	Mode      string `json:"mode" binding:"required,oneof=nativeToTarget targetToNative"`
	Shuffle   bool   `json:"shuffle"`
	OnlyWrong bool   `json:"only_wrong"`
}

// AnswerRequest - the user's initial understood / not-understood claim
type AnswerRequest struct {
	Understood *bool `json:"understood" binding:"required"`
}

// ConfirmRequest - self-graded confirmation after claiming understood
type ConfirmRequest struct {
	Correct *bool `json:"correct" binding:"required"`
}

// Progress - 1-based position within the session
type Progress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// QuestionView - the current card, with the answer side withheld until revealed
type QuestionView struct {
	Prompt      string      `json:"prompt"`
	Example     string      `json:"example,omitempty"`
	Translation string      `json:"translation,omitempty"`
	Answer      *AnswerView `json:"answer,omitempty"`
}

// AnswerView - the answer side of a card, present only once revealed
type AnswerView struct {
	Text        string `json:"text"`
	Translation string `json:"translation,omitempty"`
	Remark      string `json:"remark,omitempty"`
}

// SessionStateResponse - session snapshot returned by the session endpoints
type SessionStateResponse struct {
	SessionID string        `json:"session_id"`
	Phase     string        `json:"phase"`
	Progress  Progress      `json:"progress"`
	Question  *QuestionView `json:"question,omitempty"`
}

// SessionCompleteResponse - final score screen data
type SessionCompleteResponse struct {
	SessionID string `json:"session_id"`
	Phase     string `json:"phase"`
	Score     int    `json:"score"`
	Message   string `json:"message"`
}

// QuestionSetsResponse - available banks for the selection page
type QuestionSetsResponse struct {
	Types map[string][]string `json:"types"` // type -> ordered range names
}

// RangeResult - per-range wrong counts and completion count
type RangeResult struct {
	Range      string `json:"range"`
	WrongCount []int  `json:"wrong_count"`
	Completed  int    `json:"completed"`
}

// TypeResultsResponse - results overview for one question type
type TypeResultsResponse struct {
	Type   string        `json:"type"`
	Ranges []RangeResult `json:"ranges"`
}

// MonthlyStatisticsResponse - daily aggregates for one calendar month
type MonthlyStatisticsResponse struct {
	Month string                    `json:"month"`
	Days  map[string]DailyStatistic `json:"days"` // "YYYY-MM-DD" -> aggregate
}
