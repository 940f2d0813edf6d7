package controllers

import (
	"net/http"
	"strconv"

	"github.com/bellapacxx/bingo-engine/game"
	"github.com/bellapacxx/bingo-engine/services"
	"github.com/gin-gonic/gin"
)

var (
	registry *game.Registry
	hub      *services.Hub
	store    *services.GameStore
)

// Init wires the shared engine registry and adapters into the handlers.
func Init(r *game.Registry, h *services.Hub, s *services.GameStore) {
	registry = r
	hub = h
	store = s
}

// statusFor maps engine error kinds to HTTP statuses.
func statusFor(err error) int {
	kind, ok := game.KindOf(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch kind {
	case game.KindInvalidEntryPrice, game.KindUnmarkedOrUncalled:
		return http.StatusBadRequest
	case game.KindSessionNotFound, game.KindUnknownParticipant:
		return http.StatusNotFound
	case game.KindDuplicateParticipant, game.KindCartelaTaken,
		game.KindCapacityExceeded, game.KindIllegalState:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func abortWith(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func sessionFromParam(c *gin.Context) (*game.Session, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return nil, false
	}
	session, err := registry.Get(id)
	if err != nil {
		abortWith(c, err)
		return nil, false
	}
	return session, true
}

// CreateSession opens a new waiting session at one of the allowed prices.
func CreateSession(c *gin.Context) {
	var req struct {
		EntryPrice int `json:"entry_price" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := registry.Create(req.EntryPrice)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusCreated, session.Snapshot())
}

// ListSessions returns the sessions still accepting joins.
func ListSessions(c *gin.Context) {
	c.JSON(http.StatusOK, registry.ListOpen())
}

// GetSession returns a full snapshot, finished sessions included.
func GetSession(c *gin.Context) {
	session, ok := sessionFromParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, session.Snapshot())
}

// JoinSession registers a participant, debiting their stake first when a
// database is attached. A requested cartela of 0 means auto-assign.
func JoinSession(c *gin.Context) {
	session, ok := sessionFromParam(c)
	if !ok {
		return
	}

	var req struct {
		UserID  int64 `json:"user_id" binding:"required"`
		Cartela int   `json:"cartela"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !store.DebitStake(req.UserID, session.EntryPrice()) {
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "insufficient balance"})
		return
	}

	var card game.Card
	cartela := req.Cartela
	var err error
	if cartela > 0 {
		card, err = session.JoinCartela(req.UserID, cartela)
	} else {
		card, cartela, err = session.Join(req.UserID)
	}
	if err != nil {
		store.RefundStake(req.UserID, session.EntryPrice())
		abortWith(c, err)
		return
	}

	hub.Broadcast(session.ID())
	c.JSON(http.StatusOK, gin.H{
		"session_id": session.ID(),
		"cartela":    cartela,
		"card":       card,
		"state":      session.State(),
	})
}

// DrawNumber calls the next number. Exhaustion answers 410 Gone: the
// session has finished with no winner.
func DrawNumber(c *gin.Context) {
	session, ok := sessionFromParam(c)
	if !ok {
		return
	}

	call, drawn, err := session.Draw()
	if err != nil {
		abortWith(c, err)
		return
	}
	hub.Broadcast(session.ID())
	if !drawn {
		c.JSON(http.StatusGone, gin.H{"exhausted": true, "state": session.State()})
		return
	}
	c.JSON(http.StatusOK, call)
}

// MarkNumber marks a called number on the participant's card.
func MarkNumber(c *gin.Context) {
	session, ok := sessionFromParam(c)
	if !ok {
		return
	}

	var req struct {
		UserID int64 `json:"user_id" binding:"required"`
		Number int   `json:"number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := session.Mark(req.UserID, req.Number); err != nil {
		abortWith(c, err)
		return
	}
	hub.Broadcast(session.ID())
	c.JSON(http.StatusOK, gin.H{"marked": req.Number})
}

// CheckBingo runs winner detection for the participant.
func CheckBingo(c *gin.Context) {
	session, ok := sessionFromParam(c)
	if !ok {
		return
	}

	var req struct {
		UserID int64 `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := session.CheckWinner(req.UserID)
	if err != nil {
		abortWith(c, err)
		return
	}
	if res.Won {
		hub.Broadcast(session.ID())
	}
	c.JSON(http.StatusOK, gin.H{
		"won":     res.Won,
		"pattern": res.Pattern.String(),
		"prize":   res.Prize,
	})
}
