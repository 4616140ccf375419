package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"user-crud-service/internal/usecase/user"
	apperrors "user-crud-service/pkg/errors"
	"user-crud-service/pkg/logger"
	"user-crud-service/pkg/security"
)

// Fixed response bodies for input rejected before the usecase runs
const (
	msgInvalidBody     = "Invalid request body"
	msgInvalidID       = "Invalid user ID"
	msgInternal        = "internal server error"
	msgHello           = "Hello, World!"
	healthStatusOK     = "healthy"
	healthStatusFailed = "unhealthy"
)

// HealthCheck pings one dependency
type HealthCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	uc      user.UserUsecase
	log     *zap.Logger
	service string
	checks  []HealthCheck
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.UserUsecase, log *zap.Logger, service string, checks ...HealthCheck) *UserHandler {
	return &UserHandler{
		uc:      uc,
		log:     log,
		service: service,
		checks:  checks,
	}
}

// CreateUserRequest represents the HTTP request body for creating a user.
// Blank fields are rejected by the usecase, not by binding.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserResponse represents the HTTP response for user data
type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	log := logger.WithContext(c.Request.Context(), h.log)

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("invalid create user request", zap.Error(err))
		c.String(http.StatusBadRequest, msgInvalidBody)
		return
	}

	resp, err := h.uc.CreateUser(c.Request.Context(), user.CreateUserRequest{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(resp))
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.uc.GetAllUsers(c.Request.Context())
	if err != nil {
		logger.WithContext(c.Request.Context(), h.log).Error("list users failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "Error: "+err.Error())
		return
	}

	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = toResponse(&users[i])
	}

	c.JSON(http.StatusOK, out)
}

// GetUser handles GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	raw := c.Param("id")
	id, err := security.ParseUserID(raw)
	if err != nil {
		logger.WithContext(c.Request.Context(), h.log).Warn("invalid user id", zap.String("id", raw))
		c.String(http.StatusBadRequest, msgInvalidID)
		return
	}

	resp, err := h.uc.FindUserByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(resp))
}

// Hello handles GET /hello
func (h *UserHandler) Hello(c *gin.Context) {
	c.String(http.StatusOK, msgHello)
}

// Health handles GET /health
func (h *UserHandler) Health(c *gin.Context) {
	for _, check := range h.checks {
		if err := check.Ping(c.Request.Context()); err != nil {
			logger.WithContext(c.Request.Context(), h.log).Error("health check failed",
				zap.String("component", check.Name), zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    healthStatusFailed,
				"service":   h.service,
				"component": check.Name,
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  healthStatusOK,
		"service": h.service,
	})
}

// handleError converts usecase errors to plain-text HTTP responses
func (h *UserHandler) handleError(c *gin.Context, err error) {
	log := logger.WithContext(c.Request.Context(), h.log)
	status := apperrors.HTTPStatus(err)

	var vErr *apperrors.ValidationError
	var nfErr *apperrors.NotFoundError
	switch {
	case errors.As(err, &vErr), errors.As(err, &nfErr):
		log.Info("request rejected", zap.Int("status", status), zap.Error(err))
		c.String(status, err.Error())
	case apperrors.IsKnown(err):
		log.Error("request failed", zap.Int("status", status), zap.Error(err))
		c.String(status, err.Error())
	default:
		log.Error("unexpected error", zap.Error(err))
		c.String(http.StatusInternalServerError, msgInternal)
	}
}

func toResponse(u *user.UserResponse) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}
