package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/middlewares"
	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/responses"
	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/services"
	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "All fields are required")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			responses.Fail(c, http.StatusBadRequest, err, verr.Message)
		case errors.Is(err, services.ErrEmailExists):
			responses.Fail(c, http.StatusBadRequest, err, "Email already exists")
		case errors.Is(err, services.ErrUserExists):
			responses.Fail(c, http.StatusBadRequest, err, "Username or email already exists")
		default:
			log.Printf("Registration error: %v", err)
			responses.Fail(c, http.StatusInternalServerError, err, "Server error")
		}
		return
	}

	responses.Success(c, http.StatusCreated, user.Profile(), "User registered successfully!")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid Format")
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			responses.Fail(c, http.StatusBadRequest, err, "Invalid credentials")
			return
		}
		log.Printf("Login error: %v", err)
		responses.Fail(c, http.StatusInternalServerError, err, "Server error")
		return
	}

	responses.Success(c, http.StatusOK, gin.H{"access_token": token}, "Login successful!")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	claims, _ := c.Get(middlewares.ClaimsKey)
	tokenClaims, _ := claims.(*utils.Claims)

	if err := h.authService.Logout(c.Request.Context(), tokenClaims); err != nil {
		log.Printf("Logout error: %v", err)
		responses.Fail(c, http.StatusInternalServerError, err, "Could not revoke token")
		return
	}

	responses.Success(c, http.StatusOK, nil, "Logged out successfully")
}

func (h *AuthHandler) Me(c *gin.Context) {
	value, _ := c.Get(middlewares.UserIDKey)
	userID, ok := value.(uuid.UUID)
	if !ok {
		responses.Fail(c, http.StatusUnauthorized, nil, "Unauthorized")
		return
	}

	profile, err := h.authService.Me(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			responses.Fail(c, http.StatusNotFound, err, "User not found")
			return
		}
		responses.Fail(c, http.StatusInternalServerError, err, "Server error")
		return
	}

	responses.Success(c, http.StatusOK, profile, "")
}
