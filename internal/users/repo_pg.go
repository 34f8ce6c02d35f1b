package users

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Upsert inserts or updates the user record, leaving progress untouched.
func (r *PGRepo) Upsert(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, username, name, email, created_at, updated_at)
VALUES ($1, $2, $3, $4, now(), now())
ON CONFLICT (id) DO UPDATE SET
  username = EXCLUDED.username,
  name = EXCLUDED.name,
  email = EXCLUDED.email,
  updated_at = now()`
	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.Name,
		nullableString(user.Email),
	)
	return err
}

// GetByID returns a user by ID.
func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	const query = `
SELECT id, username, name, email, total_reviews, average_score, last_review_date, improvement_streak, created_at, updated_at
FROM users
WHERE id = $1
LIMIT 1`
	var user User
	var email sql.NullString
	var lastReview sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&user.ID,
		&user.Username,
		&user.Name,
		&email,
		&user.Progress.TotalReviews,
		&user.Progress.AverageScore,
		&lastReview,
		&user.Progress.ImprovementStreak,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	if email.Valid {
		user.Email = email.String
	}
	if lastReview.Valid {
		t := lastReview.Time
		user.Progress.LastReviewDate = &t
	}
	return user, nil
}

// GetProgress returns the user's progress snapshot.
func (r *PGRepo) GetProgress(ctx context.Context, userID string) (Progress, error) {
	user, err := r.GetByID(ctx, userID)
	if err != nil {
		return Progress{}, err
	}
	return user.Progress, nil
}

// RecordReviewScore updates the running average in a single statement so
// concurrent completions for the same user cannot lose an increment.
func (r *PGRepo) RecordReviewScore(ctx context.Context, userID string, score int, reviewedAt time.Time) error {
	const query = `
UPDATE users SET
  average_score = (average_score * total_reviews + $2) / (total_reviews + 1),
  total_reviews = total_reviews + 1,
  last_review_date = $3,
  updated_at = now()
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, userID, score, reviewedAt)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
