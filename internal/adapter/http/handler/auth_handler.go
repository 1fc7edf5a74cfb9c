package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tharun69CS/EcoFinds/internal/adapter/http/middleware"
	"github.com/tharun69CS/EcoFinds/internal/auth"
	"github.com/tharun69CS/EcoFinds/internal/platform/logger"
	"github.com/tharun69CS/EcoFinds/internal/user/usecase"
)

type AuthHandler struct {
	users  *usecase.UserUsecase
	tokens *auth.TokenManager
	logger *logger.Logger
}

func NewAuthHandler(users *usecase.UserUsecase, tokens *auth.TokenManager, log *logger.Logger) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, logger: log}
}

type registerRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "validation failed",
			"errors":  bindingErrors(err),
		})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, _, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.logger.Error("AuthHandler.Register: failed to issue token", "user_id", user.ID.String(), "error", err.Error())
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, gin.H{
		"user":  toUserResponse(user),
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "validation failed",
			"errors":  bindingErrors(err),
		})
		return
	}

	user, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, _, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.logger.Error("AuthHandler.Login: failed to issue token", "user_id", user.ID.String(), "error", err.Error())
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{
		"user":  toUserResponse(user),
		"token": token,
	})
}

// Me returns the profile of the resolved identity.
func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "not authorized"})
		return
	}

	user, err := h.users.Profile(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, toUserResponse(user))
}
