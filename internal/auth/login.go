package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenLifetime = 24 * time.Hour

type LoginRequest struct {
	Name string `json:"name" binding:"required"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
}

type Handler struct {
	secret []byte
}

func NewHandler(secret []byte) *Handler {
	return &Handler{secret: secret}
}

// Login issues a guest session: a fresh player id plus a signed token
// carrying it. There are no accounts, the display name is whatever the
// player typed.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	if len(req.Name) > 32 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name too long"})
		return
	}

	playerID := uuid.NewString()
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  playerID,
		"name": req.Name,
		"iat":  now.Unix(),
		"exp":  now.Add(tokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(h.secret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: signed, PlayerID: playerID, Name: req.Name})
}
