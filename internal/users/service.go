package users

import (
	"context"
	"errors"
	"time"

	"codereview-backend/internal/shared/telemetry"
)

// Service aggregates per-user review progress.
type Service struct {
	Repo Repo
}

// RecordReview folds a completed review's overall score into the owner's
// running average. A missing user is skipped silently; the review outcome
// has already been persisted and must not be affected.
func (s *Service) RecordReview(ctx context.Context, userID string, score int) error {
	if userID == "" {
		return errors.New("userID is required")
	}
	err := s.Repo.RecordReviewScore(ctx, userID, score, time.Now().UTC())
	if errors.Is(err, ErrNotFound) {
		telemetry.Info("progress.skip", map[string]any{
			"user_id": userID,
			"reason":  "user not found",
		})
		return nil
	}
	return err
}

// Progress returns the user's progress snapshot.
func (s *Service) Progress(ctx context.Context, userID string) (Progress, error) {
	if userID == "" {
		return Progress{}, errors.New("userID is required")
	}
	return s.Repo.GetProgress(ctx, userID)
}
