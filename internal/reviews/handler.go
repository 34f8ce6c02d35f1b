package reviews

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"codereview-backend/internal/shared/server/middleware"
	"codereview-backend/internal/shared/server/respond"
	"codereview-backend/internal/users"
)

// Handler wires HTTP handlers to the reviews service.
type Handler struct {
	Svc      *Service
	Progress *users.Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, progress *users.Service) *Handler {
	return &Handler{Svc: svc, Progress: progress}
}

// RegisterRoutes attaches review routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reviews", h.submitReview)
	rg.GET("/reviews", h.listReviews)
	rg.GET("/reviews/progress", h.getProgress)
	rg.GET("/reviews/:id", h.getReview)
	rg.POST("/reviews/:id/comments", h.addReviewComment)
	rg.POST("/reviews/findings/:id/comments", h.addFindingComment)
	rg.PATCH("/reviews/findings/:id/status", h.updateFindingStatus)
}

func (h *Handler) submitReview(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "code and language are required", nil)
		return
	}

	review, err := h.Svc.Submit(c.Request.Context(), SubmitInput{
		Title:            req.Title,
		Description:      req.Description,
		Code:             req.Code,
		Language:         req.Language,
		FileName:         req.FileName,
		CustomGuidelines: req.CustomGuidelines,
		UserID:           userID,
	})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to submit review", nil)
		return
	}

	c.Set("reviewId", review.ID)
	respond.JSON(c, http.StatusCreated, review)
}

func (h *Handler) getReview(c *gin.Context) {
	reviewID := c.Param("id")
	if reviewID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "review id is required", nil)
		return
	}

	review, err := h.Svc.Get(c.Request.Context(), reviewID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "review not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch review", nil)
		}
		return
	}

	findings, err := h.Svc.Repo.ListFindings(c.Request.Context(), reviewID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch review", nil)
		return
	}
	details := make([]FindingDetail, 0, len(findings))
	for _, f := range findings {
		comments, err := h.Svc.Repo.ListFindingComments(c.Request.Context(), f.ID)
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch review", nil)
			return
		}
		if comments == nil {
			comments = []Comment{}
		}
		details = append(details, FindingDetail{Finding: f, Comments: comments})
	}

	comments, err := h.Svc.Repo.ListReviewComments(c.Request.Context(), reviewID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch review", nil)
		return
	}
	if comments == nil {
		comments = []Comment{}
	}

	c.Set("reviewId", review.ID)
	respond.OK(c, ReviewDetail{Review: review, Findings: details, Comments: comments})
}

func (h *Handler) listReviews(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	summaries, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list reviews", nil)
		return
	}
	if summaries == nil {
		summaries = []ReviewSummary{}
	}
	respond.OK(c, summaries)
}

func (h *Handler) getProgress(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	progress, err := h.Progress.Progress(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch progress", nil)
		}
		return
	}
	respond.OK(c, progress)
}

func (h *Handler) addReviewComment(c *gin.Context) {
	h.addComment(c, Comment{ReviewID: c.Param("id")})
}

func (h *Handler) addFindingComment(c *gin.Context) {
	h.addComment(c, Comment{FindingID: c.Param("id")})
}

func (h *Handler) addComment(c *gin.Context, comment Comment) {
	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "content is required", nil)
		return
	}
	comment.Content = req.Content
	comment.UserID = middleware.UserIDFromContext(c)

	created, err := h.Svc.AddComment(c.Request.Context(), comment)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrFindingNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "comment target not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to add comment", nil)
		}
		return
	}
	respond.JSON(c, http.StatusCreated, created)
}

func (h *Handler) updateFindingStatus(c *gin.Context) {
	var req UpdateFindingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "status is required", nil)
		return
	}

	if err := h.Svc.UpdateFindingStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		switch {
		case errors.Is(err, ErrFindingNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "finding not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update finding", nil)
		}
		return
	}
	respond.OK(c, gin.H{"ok": true})
}
