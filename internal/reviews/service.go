package reviews

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"codereview-backend/internal/llm"
	"codereview-backend/internal/shared/metrics"
	"codereview-backend/internal/shared/telemetry"
	"codereview-backend/internal/users"
)

// SubmitInput carries a new code submission.
type SubmitInput struct {
	Title            string
	Description      string
	Code             string
	Language         string
	FileName         string
	CustomGuidelines string
	UserID           string
}

// Service contains the review analysis pipeline.
type Service struct {
	Repo     Repo
	Progress *users.Service
	LLM      llm.Client
	Model    string
}

// Submit persists a pending review and kicks off detached analysis. The
// caller gets the created review immediately; analysis outcome is only
// observable by polling review status.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (Review, error) {
	if input.Code == "" || input.Language == "" || input.UserID == "" {
		return Review{}, errors.New("code, language, and userID are required")
	}
	if input.Title == "" {
		input.Title = "Code review"
	}

	review := Review{
		ID:               uuid.NewString(),
		UserID:           input.UserID,
		Title:            input.Title,
		Description:      input.Description,
		Code:             input.Code,
		Language:         input.Language,
		FileName:         input.FileName,
		CustomGuidelines: input.CustomGuidelines,
		Status:           StatusPending,
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.Repo.CreateReview(ctx, review); err != nil {
		return Review{}, err
	}

	go s.analyze(context.Background(), review.ID)

	return review, nil
}

// Get returns a review by ID.
func (s *Service) Get(ctx context.Context, reviewID string) (Review, error) {
	if reviewID == "" {
		return Review{}, errors.New("reviewID is required")
	}
	return s.Repo.GetReview(ctx, reviewID)
}

// List returns the user's reviews newest-first with derived counts.
func (s *Service) List(ctx context.Context, userID string) ([]ReviewSummary, error) {
	if userID == "" {
		return nil, errors.New("userID is required")
	}
	return s.Repo.ListByUser(ctx, userID)
}

// AddComment attaches a comment to a review or a finding.
func (s *Service) AddComment(ctx context.Context, comment Comment) (Comment, error) {
	if comment.Content == "" || comment.UserID == "" {
		return Comment{}, errors.New("content and userID are required")
	}
	if (comment.ReviewID == "") == (comment.FindingID == "") {
		return Comment{}, errors.New("exactly one of reviewID or findingID is required")
	}
	comment.ID = uuid.NewString()
	comment.CreatedAt = time.Now().UTC()
	if err := s.Repo.CreateComment(ctx, comment); err != nil {
		return Comment{}, err
	}
	return comment, nil
}

// UpdateFindingStatus mutates a finding's status field.
func (s *Service) UpdateFindingStatus(ctx context.Context, findingID, status string) error {
	if findingID == "" || status == "" {
		return errors.New("findingID and status are required")
	}
	return s.Repo.UpdateFindingStatus(ctx, findingID, status)
}

// analyze runs the full analysis sequence for one review. It never
// returns an error: every failure path ends in a terminal failed status,
// decoupled from the submitter.
func (s *Service) analyze(ctx context.Context, reviewID string) {
	defer func() {
		if r := recover(); r != nil {
			s.failReview(ctx, reviewID, "", fmt.Errorf("panic: %v", r), nil)
		}
	}()

	startedAt := time.Now().UTC()
	if err := s.Repo.UpdateReviewStatus(ctx, reviewID, StatusInProgress); err != nil {
		s.failReview(ctx, reviewID, "", fmt.Errorf("set in_progress failed: %w", err), &startedAt)
		return
	}

	review, err := s.Repo.GetReview(ctx, reviewID)
	if err != nil {
		s.failReview(ctx, reviewID, "", fmt.Errorf("review lookup: %w", err), &startedAt)
		return
	}
	metrics.IncReviewStarted()
	telemetry.Info("review.status", map[string]any{
		"user_id":           review.UserID,
		"review_id":         review.ID,
		"status":            StatusInProgress,
		"status_transition": "pending->in_progress",
	})
	if s.LLM == nil {
		s.failReview(ctx, reviewID, review.UserID, errors.New("missing llm client"), &startedAt)
		return
	}

	result := s.runModel(ctx, review)

	if err := s.Repo.UpdateReviewAnalysis(ctx, reviewID, result.Summary, result.EffortPoints); err != nil {
		s.failReview(ctx, reviewID, review.UserID, fmt.Errorf("set analysis result failed: %w", err), &startedAt)
		return
	}

	findings := make([]Finding, 0, len(result.Findings))
	now := time.Now().UTC()
	for _, f := range result.Findings {
		findings = append(findings, Finding{
			ID:          uuid.NewString(),
			ReviewID:    reviewID,
			Category:    f.Category,
			Severity:    f.Severity,
			Title:       f.Title,
			Description: f.Description,
			LineNumber:  f.LineNumber,
			CodeSnippet: f.CodeSnippet,
			Suggestion:  f.Suggestion,
			AutoFixCode: f.AutoFixCode,
			Status:      FindingStatusOpen,
			CreatedAt:   now,
		})
	}
	if err := s.Repo.CreateFindings(ctx, findings); err != nil {
		s.failReview(ctx, reviewID, review.UserID, fmt.Errorf("save findings failed: %w", err), &startedAt)
		return
	}

	if err := s.Repo.UpdateReviewStatus(ctx, reviewID, StatusCompleted); err != nil {
		s.failReview(ctx, reviewID, review.UserID, fmt.Errorf("set completed failed: %w", err), &startedAt)
		return
	}

	completedAt := time.Now().UTC()
	metrics.IncReviewCompleted()
	metrics.ObserveAnalysisDurationMs(durationMs(&startedAt, &completedAt))
	telemetry.Info("review.status", map[string]any{
		"user_id":           review.UserID,
		"review_id":         review.ID,
		"status":            StatusCompleted,
		"status_transition": "in_progress->completed",
		"score":             result.OverallScore,
		"findings":          len(findings),
		"duration_ms":       durationMs(&startedAt, &completedAt),
	})

	// The review is already terminal; a progress failure must not undo it.
	if s.Progress != nil {
		if err := s.Progress.RecordReview(ctx, review.UserID, result.OverallScore); err != nil {
			telemetry.Error("progress.update", map[string]any{
				"user_id":   review.UserID,
				"review_id": review.ID,
				"error":     err.Error(),
			})
		}
	}
}

// runModel calls the model and parses its output. A model failure is
// recovered locally with the fixed fallback result; the parser itself is
// total and never fails.
func (s *Service) runModel(ctx context.Context, review Review) AnalysisResult {
	prompt := BuildReviewPrompt(review.Code, review.Language, review.FileName, review.CustomGuidelines)

	raw, err := s.LLM.Generate(ctx, prompt)
	if err != nil {
		telemetry.Error("review.llm", map[string]any{
			"review_id": review.ID,
			"model":     s.Model,
			"error":     err.Error(),
		})
		return FallbackResult(review.Code)
	}

	result := ParseAnalysis(raw, review.Code)
	telemetry.Info("review.llm", map[string]any{
		"review_id": review.ID,
		"model":     s.Model,
		"score":     result.OverallScore,
		"findings":  len(result.Findings),
	})
	return result
}

func (s *Service) failReview(ctx context.Context, reviewID, userID string, err error, startedAt *time.Time) {
	if updateErr := s.Repo.UpdateReviewStatus(context.Background(), reviewID, StatusFailed); updateErr != nil {
		telemetry.Error("review.fail_update", map[string]any{
			"review_id": reviewID,
			"error":     updateErr.Error(),
			"cause":     err.Error(),
		})
	}
	completedAt := time.Now().UTC()
	metrics.IncReviewFailed()
	if startedAt != nil {
		metrics.ObserveAnalysisDurationMs(durationMs(startedAt, &completedAt))
	}
	telemetry.Info("review.status", map[string]any{
		"user_id":           userID,
		"review_id":         reviewID,
		"status":            StatusFailed,
		"status_transition": "in_progress->failed",
		"error":             err.Error(),
	})
}

func durationMs(startedAt, completedAt *time.Time) float64 {
	if startedAt == nil || completedAt == nil {
		return 0
	}
	return float64(completedAt.Sub(*startedAt).Microseconds()) / 1000.0
}
