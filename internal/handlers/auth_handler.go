package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/irwhub/employee-contract-app/internal/auth"
	"github.com/irwhub/employee-contract-app/internal/identity"
)

type AuthHandler struct {
	svc *auth.Service
	idp *identity.Client
}

func NewAuthHandler(svc *auth.Service, idp *identity.Client) *AuthHandler {
	return &AuthHandler{svc: svc, idp: idp}
}

type loginInput struct {
	Name string `json:"name"`
	DOB  string `json:"dob"`
	PIN  string `json:"pin"`
}

// Login exchanges a (name, dob, pin) triple for a bearer session.
func (h *AuthHandler) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	result, err := h.svc.Login(c.Request.Context(), input.Name, input.DOB, input.PIN)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Refresh exchanges a refresh token for a fresh session.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.RefreshToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "refresh_token is required"})
		return
	}

	session, err := h.idp.RefreshGrant(c.Request.Context(), input.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// HealthHandler is the unauthenticated liveness probe.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "now": time.Now().UTC().Format(time.RFC3339)})
}
