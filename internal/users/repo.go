package users

import (
	"context"
	"time"
)

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "user not found" }

// Repo defines persistence operations for users and their progress.
type Repo interface {
	Upsert(ctx context.Context, user User) error
	GetByID(ctx context.Context, userID string) (User, error)
	GetProgress(ctx context.Context, userID string) (Progress, error)
	// RecordReviewScore folds a completed review score into the user's
	// running statistics in a single atomic step. Returns ErrNotFound
	// when the user does not exist.
	RecordReviewScore(ctx context.Context, userID string, score int, reviewedAt time.Time) error
}
