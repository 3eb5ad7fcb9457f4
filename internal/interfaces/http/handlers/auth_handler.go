package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"payzen.backend/internal/domain/entities"
	domainerrors "payzen.backend/internal/domain/errors"
	"payzen.backend/internal/interfaces/http/middleware"
	"payzen.backend/internal/interfaces/http/response"
)

type AuthService interface {
	Challenge(ctx context.Context, walletAddress string) (string, error)
	Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error)
	Register(ctx context.Context, input *entities.RegisterInput) (*entities.AuthResponse, error)
	UsernameAvailable(ctx context.Context, username string) (bool, error)
	GetUserByWallet(ctx context.Context, walletAddress string) (*entities.User, error)
}

// AuthHandler handles wallet authentication endpoints
type AuthHandler struct {
	authUsecase AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase AuthService) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase}
}

// Nonce issues a signature challenge
// POST /api/v1/auth/nonce
func (h *AuthHandler) Nonce(c *gin.Context) {
	var input entities.NonceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	message, err := h.authUsecase.Challenge(c.Request.Context(), input.WalletAddress)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": message,
	})
}

// Login verifies a signed challenge and issues a session token
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	authResponse, err := h.authUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, authResponse)
}

// Register creates a user and issues a session token
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input entities.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	authResponse, err := h.authUsecase.Register(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, authResponse)
}

// UsernameCheck reports username availability
// GET /api/v1/auth/username/check?username=alice
func (h *AuthHandler) UsernameCheck(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		response.Error(c, domainerrors.BadRequest("username query parameter is required"))
		return
	}

	available, err := h.authUsecase.UsernameAvailable(c.Request.Context(), username)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"username":  username,
		"available": available,
	})
}

// Me returns the authenticated caller's profile
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	wallet, ok := middleware.GetWalletAddress(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("missing authentication context"))
		return
	}

	user, err := h.authUsecase.GetUserByWallet(c.Request.Context(), wallet)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}
