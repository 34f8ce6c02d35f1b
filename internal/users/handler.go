package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"codereview-backend/internal/shared/server/middleware"
	"codereview-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the users repo.
type Handler struct {
	Repo Repo
}

// NewHandler constructs a Handler.
func NewHandler(repo Repo) *Handler {
	return &Handler{Repo: repo}
}

// RegisterRoutes attaches user routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/users/me", h.getMe)
	rg.PUT("/users/me", h.upsertMe)
}

type upsertMeRequest struct {
	Username string `json:"username" binding:"required"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

func (h *Handler) getMe(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	user, err := h.Repo.GetByID(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch user", nil)
		}
		return
	}
	respond.OK(c, user)
}

func (h *Handler) upsertMe(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req upsertMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "username is required", nil)
		return
	}

	user := User{
		ID:       userID,
		Username: req.Username,
		Name:     req.Name,
		Email:    req.Email,
	}
	if err := h.Repo.Upsert(c.Request.Context(), user); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save user", nil)
		return
	}

	saved, err := h.Repo.GetByID(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch user", nil)
		return
	}
	respond.OK(c, saved)
}
