package room

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/majeanson/newjo-sub000/internal/game/engine"
	"github.com/majeanson/newjo-sub000/internal/storage"
	"github.com/majeanson/newjo-sub000/internal/utils"
)

// Handler exposes game actions over HTTP. The action endpoints are thin: the
// engine decides legality, the handler just maps its errors to status codes.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/games", h.Create)
	rg.GET("/games/:id", h.State)
	rg.POST("/games/:id/join", h.Join)
	rg.POST("/games/:id/leave", h.Leave)
	rg.POST("/games/:id/ready", h.Ready)
	rg.POST("/games/:id/team", h.Team)
	rg.POST("/games/:id/bet", h.Bet)
	rg.POST("/games/:id/play", h.Play)
	rg.POST("/games/:id/next-round", h.NextRound)
}

type readyRequest struct {
	Ready *bool `json:"ready" binding:"required"`
}

type teamRequest struct {
	Team engine.Team `json:"team" binding:"required"`
}

type betRequest struct {
	Rank  engine.BetRank `json:"rank"`
	Trump bool           `json:"trump"`
}

type playRequest struct {
	Color engine.Color `json:"color" binding:"required"`
	Value *int         `json:"value" binding:"required"`
}

func (h *Handler) Create(c *gin.Context) {
	roomID, err := h.svc.CreateRoom(c.Request.Context())
	if err != nil {
		utils.Log.Error("create game", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create game"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"roomId": roomID})
}

func (h *Handler) State(c *gin.Context) {
	state, err := h.svc.State(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *Handler) Join(c *gin.Context) {
	name := c.GetString("playerName")
	if name == "" {
		name = "guest"
	}
	h.action(c, func(playerID string) (*engine.GameState, error) {
		return h.svc.Join(c.Request.Context(), c.Param("id"), playerID, name)
	})
}

func (h *Handler) Leave(c *gin.Context) {
	h.action(c, func(playerID string) (*engine.GameState, error) {
		return h.svc.Leave(c.Request.Context(), c.Param("id"), playerID)
	})
}

func (h *Handler) Ready(c *gin.Context) {
	var req readyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ready flag is required"})
		return
	}
	h.action(c, func(playerID string) (*engine.GameState, error) {
		return h.svc.SetReady(c.Request.Context(), c.Param("id"), playerID, *req.Ready)
	})
}

func (h *Handler) Team(c *gin.Context) {
	var req teamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "team is required"})
		return
	}
	if req.Team != engine.TeamA && req.Team != engine.TeamB {
		c.JSON(http.StatusBadRequest, gin.H{"error": "team must be A or B"})
		return
	}
	h.action(c, func(playerID string) (*engine.GameState, error) {
		return h.svc.SelectTeam(c.Request.Context(), c.Param("id"), playerID, req.Team)
	})
}

func (h *Handler) Bet(c *gin.Context) {
	var req betRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bet"})
		return
	}
	h.action(c, func(playerID string) (*engine.GameState, error) {
		return h.svc.PlaceBet(c.Request.Context(), c.Param("id"), playerID, req.Rank, req.Trump)
	})
}

func (h *Handler) Play(c *gin.Context) {
	var req playRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "color and value are required"})
		return
	}
	h.action(c, func(playerID string) (*engine.GameState, error) {
		card := engine.Card{Color: req.Color, Value: *req.Value}
		return h.svc.PlayCard(c.Request.Context(), c.Param("id"), playerID, card)
	})
}

func (h *Handler) NextRound(c *gin.Context) {
	h.action(c, func(playerID string) (*engine.GameState, error) {
		return h.svc.StartNextRound(c.Request.Context(), c.Param("id"))
	})
}

func (h *Handler) action(c *gin.Context, fn func(playerID string) (*engine.GameState, error)) {
	playerID := c.GetString("playerId")
	if playerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return
	}
	state, err := fn(playerID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// writeError maps engine and storage errors onto HTTP. Rule and turn
// violations are client mistakes, phase violations mean the client raced a
// transition.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
	case errors.Is(err, engine.ErrPhase):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, engine.ErrTurn):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, engine.ErrRule):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		utils.Log.Error("game action", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
