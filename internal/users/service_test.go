package users

import (
	"context"
	"math"
	"testing"
	"time"
)

func seedUser(t *testing.T, repo *MemoryRepo, id string) {
	t.Helper()
	if err := repo.Upsert(context.Background(), User{
		ID:       id,
		Username: "dev",
		Name:     "Dev One",
	}); err != nil {
		t.Fatalf("upsert user: %v", err)
	}
}

func TestRecordReviewRunningAverage(t *testing.T) {
	repo := NewMemoryRepo()
	seedUser(t, repo, "user-1")
	svc := &Service{Repo: repo}

	for _, score := range []int{80, 60} {
		if err := svc.RecordReview(context.Background(), "user-1", score); err != nil {
			t.Fatalf("RecordReview(%d): %v", score, err)
		}
	}

	progress, err := svc.Progress(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if progress.TotalReviews != 2 {
		t.Fatalf("expected totalReviews=2, got %d", progress.TotalReviews)
	}
	if math.Abs(progress.AverageScore-70) > 1e-9 {
		t.Fatalf("expected averageScore=70, got %f", progress.AverageScore)
	}
	if progress.LastReviewDate == nil {
		t.Fatalf("expected lastReviewDate set")
	}
	if time.Since(*progress.LastReviewDate) > time.Minute {
		t.Fatalf("lastReviewDate too old: %v", progress.LastReviewDate)
	}
}

func TestRecordReviewMissingUserIsNoOp(t *testing.T) {
	repo := NewMemoryRepo()
	svc := &Service{Repo: repo}

	if err := svc.RecordReview(context.Background(), "ghost", 90); err != nil {
		t.Fatalf("expected missing user to be skipped, got %v", err)
	}
	if _, err := repo.GetByID(context.Background(), "ghost"); err != ErrNotFound {
		t.Fatalf("expected user to remain absent, got %v", err)
	}
}

func TestRecordReviewRequiresUserID(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	if err := svc.RecordReview(context.Background(), "", 50); err == nil {
		t.Fatalf("expected error for empty user id")
	}
}
