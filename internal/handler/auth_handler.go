package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/class-scheduler-api/internal/middleware"
	"github.com/noah-isme/class-scheduler-api/internal/models"
	appErrors "github.com/noah-isme/class-scheduler-api/pkg/errors"
	"github.com/noah-isme/class-scheduler-api/pkg/response"
)

type authService interface {
	Signup(ctx context.Context, req models.SignupRequest) error
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
}

// AuthHandler manages authentication endpoints.
type AuthHandler struct {
	service authService
}

// NewAuthHandler constructs a new AuthHandler.
func NewAuthHandler(svc authService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Signup godoc
// @Summary Register a student or admin account
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.SignupRequest true "Account"
// @Success 201 {object} response.MessageBody
// @Failure 400 {object} response.MessageBody
// @Router /signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.service.Signup(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "User registered successfully")
}

// Login godoc
// @Summary Log in as teacher, student or admin
// @Description Teachers send their faculty name in the email field.
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} response.MessageBody
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// Me godoc
// @Summary Return the claims of the current token
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.JWTClaims
// @Failure 401 {object} response.MessageBody
// @Router /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := middleware.Claims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.JSON(c, http.StatusOK, claims)
}
