package handlers

import (
	"errors"
	"time"

	apperrors "github.com/architect/vocab-trainer/internal/common/errors"
	"github.com/architect/vocab-trainer/internal/common/middleware"
	"github.com/architect/vocab-trainer/internal/vocab/models"
	"github.com/architect/vocab-trainer/internal/vocab/questionbank"
	"github.com/architect/vocab-trainer/internal/vocab/results"
	"github.com/architect/vocab-trainer/internal/vocab/session"
	"github.com/architect/vocab-trainer/internal/vocab/stats"
	"github.com/architect/vocab-trainer/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionHandler manages the answer session endpoints
type SessionHandler struct {
	loader *questionbank.Loader
	hub    *Hub
}

// NewSessionHandler creates a session handler
func NewSessionHandler(loader *questionbank.Loader, hub *Hub) *SessionHandler {
	return &SessionHandler{
		loader: loader,
		hub:    hub,
	}
}

// StartSession creates a session over the selected question set
// POST /api/v1/sessions
func (h *SessionHandler) StartSession(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		middleware.JSONErrorResponse(c, apperrors.Unauthorized("missing user identity"))
		return
	}

	var req models.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, apperrors.Validation("invalid session request", err.Error()))
		return
	}

	cfg := models.SessionConfig{
		Type:      req.Type,
		Range:     req.Range,
		Mode:      req.Mode,
		Shuffle:   req.Shuffle,
		OnlyWrong: req.OnlyWrong,
	}

	questions, err := h.loader.LoadForSession(userID, cfg)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	s := session.New(uuid.NewString(), cfg, questions)
	h.hub.Put(userID, s)

	c.JSON(201, h.stateResponse(s))
}

// GetSession returns the current phase, progress and question
// GET /api/v1/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}

	c.JSON(200, h.stateResponse(s))
}

// SubmitUnderstood handles the initial understood / not-understood claim
// POST /api/v1/sessions/:id/understood
func (h *SessionHandler) SubmitUnderstood(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}

	var req models.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, apperrors.Validation("invalid answer", err.Error()))
		return
	}

	if err := s.SubmitUnderstood(*req.Understood); err != nil {
		h.transitionError(c, err)
		return
	}

	c.JSON(200, h.stateResponse(s))
}

// Confirm records the self-graded confirmation of an understood claim
// POST /api/v1/sessions/:id/confirm
func (h *SessionHandler) Confirm(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}

	var req models.ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, apperrors.Validation("invalid confirmation", err.Error()))
		return
	}

	if err := s.Confirm(*req.Correct); err != nil {
		h.transitionError(c, err)
		return
	}

	c.JSON(200, h.stateResponse(s))
}

// Advance moves to the next question; on the last question it finalizes the
// session, persists results best-effort and returns the score screen.
// POST /api/v1/sessions/:id/advance
func (h *SessionHandler) Advance(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	s, ok := h.lookup(c)
	if !ok {
		return
	}

	if err := s.Advance(); err != nil {
		h.transitionError(c, err)
		return
	}

	if !s.Complete() {
		c.JSON(200, h.stateResponse(s))
		return
	}

	res, err := s.Result()
	if err != nil {
		middleware.JSONErrorResponse(c, apperrors.Internal("failed to finalize session", err.Error()))
		return
	}

	// Persistence is best-effort: a store failure must not block the score
	// screen. The writes run sequentially, ledger after wrong counts.
	now := time.Now()
	if err := results.Reconcile(h.loader, userID, res, now); err != nil {
		logger.Error("failed to save session results",
			zap.String("user_id", userID),
			zap.String("type", res.Config.Type),
			zap.String("range", res.Config.Range),
			zap.Error(err),
		)
	}
	if err := stats.Record(userID, res, now); err != nil {
		logger.Error("failed to update daily statistics",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}

	h.hub.Delete(s.ID)

	c.JSON(200, models.SessionCompleteResponse{
		SessionID: s.ID,
		Phase:     s.Phase().String(),
		Score:     res.Score,
		Message:   session.MessageForScore(res.Score),
	})
}

// AbandonSession discards a session without persisting anything
// DELETE /api/v1/sessions/:id
func (h *SessionHandler) AbandonSession(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}

	h.hub.Delete(s.ID)
	c.JSON(204, nil)
}

// ListQuestionSets returns the available bank types and ranges
// GET /api/v1/questions/sets
func (h *SessionHandler) ListQuestionSets(c *gin.Context) {
	sets, err := h.loader.ListSets()
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(200, models.QuestionSetsResponse{Types: sets})
}

func (h *SessionHandler) lookup(c *gin.Context) (*session.Session, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		middleware.JSONErrorResponse(c, apperrors.Unauthorized("missing user identity"))
		return nil, false
	}

	s, found := h.hub.Get(userID, c.Param("id"))
	if !found {
		middleware.JSONErrorResponse(c, apperrors.NotFound("session"))
		return nil, false
	}
	return s, true
}

func (h *SessionHandler) transitionError(c *gin.Context, err error) {
	if errors.Is(err, session.ErrInvalidTransition) {
		middleware.JSONErrorResponse(c, apperrors.InvalidTransition("operation not allowed in current phase"))
		return
	}
	middleware.JSONErrorResponse(c, err)
}

func (h *SessionHandler) stateResponse(s *session.Session) models.SessionStateResponse {
	current, total := s.Progress()
	resp := models.SessionStateResponse{
		SessionID: s.ID,
		Phase:     s.Phase().String(),
		Progress:  models.Progress{Current: current, Total: total},
	}

	if q, err := s.Current(); err == nil {
		view := questionView(q, s.Config.Mode)
		if s.Phase() == session.PhaseRevealed {
			view.Answer = answerView(q, s.Config.Mode)
		}
		resp.Question = &view
	}

	return resp
}

// questionView shows the prompt side of the card for the session direction
func questionView(q models.QuestionRecord, mode string) models.QuestionView {
	if mode == models.ModeNativeToTarget {
		return models.QuestionView{
			Prompt:      q.Meaning,
			Example:     q.Example,
			Translation: q.Translation,
		}
	}
	return models.QuestionView{
		Prompt:  q.Word,
		Example: q.Example,
	}
}

// answerView shows the hidden side once revealed
func answerView(q models.QuestionRecord, mode string) *models.AnswerView {
	if mode == models.ModeNativeToTarget {
		return &models.AnswerView{
			Text:   q.Word,
			Remark: q.Remark,
		}
	}
	return &models.AnswerView{
		Text:        q.Meaning,
		Translation: q.Translation,
		Remark:      q.Remark,
	}
}
