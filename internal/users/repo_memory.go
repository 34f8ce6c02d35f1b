package users

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo stores users in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]User
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]User)}
}

// Upsert stores or replaces the user.
func (r *MemoryRepo) Upsert(ctx context.Context, user User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byID[user.ID]; ok {
		user.Progress = existing.Progress
		user.CreatedAt = existing.CreatedAt
	} else if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	user.UpdatedAt = time.Now().UTC()
	r.byID[user.ID] = user
	return nil
}

// GetByID returns a user by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, userID string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byID[userID]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

// GetProgress returns the user's progress snapshot.
func (r *MemoryRepo) GetProgress(ctx context.Context, userID string) (Progress, error) {
	user, err := r.GetByID(ctx, userID)
	if err != nil {
		return Progress{}, err
	}
	return user.Progress, nil
}

// RecordReviewScore folds a score into the user's running statistics.
func (r *MemoryRepo) RecordReviewScore(ctx context.Context, userID string, score int, reviewedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.byID[userID]
	if !ok {
		return ErrNotFound
	}
	total := user.Progress.TotalReviews
	user.Progress.AverageScore = (user.Progress.AverageScore*float64(total) + float64(score)) / float64(total+1)
	user.Progress.TotalReviews = total + 1
	user.Progress.LastReviewDate = &reviewedAt
	user.UpdatedAt = time.Now().UTC()
	r.byID[userID] = user
	return nil
}
