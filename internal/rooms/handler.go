package rooms

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/majeanson/newjo-sub000/internal/utils"
)

// Handler exposes the lobby over HTTP. All routes expect the auth middleware
// to have set "playerId" on the context.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/match/join", h.JoinQueue)
	rg.POST("/match/cancel", h.CancelQueue)
	rg.GET("/rooms", h.ListRooms)
}

func (h *Handler) JoinQueue(c *gin.Context) {
	playerID := c.GetString("playerId")
	if playerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return
	}
	var req JoinQueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	info, queued, err := h.svc.JoinQueue(c.Request.Context(), playerID, req.Name)
	if err != nil {
		utils.Log.Error("join queue", "player", playerID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "queue unavailable"})
		return
	}
	resp := JoinQueueResponse{Queued: queued}
	if info != nil {
		resp.RoomID = info.ID
		resp.Players = info.Players
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) CancelQueue(c *gin.Context) {
	playerID := c.GetString("playerId")
	if playerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return
	}
	if err := h.svc.LeaveQueue(c.Request.Context(), playerID); err != nil {
		utils.Log.Error("cancel queue", "player", playerID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "queue unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) ListRooms(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		utils.Log.Error("list rooms", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lobby unavailable"})
		return
	}
	if list == nil {
		list = []RoomInfo{}
	}
	c.JSON(http.StatusOK, gin.H{"rooms": list})
}
