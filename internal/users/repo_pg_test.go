package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoRecordReviewScoreAtomicUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	reviewedAt := time.Now().UTC()

	mock.ExpectExec("UPDATE users SET").
		WithArgs("user-1", 85, reviewedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.RecordReviewScore(context.Background(), "user-1", 85, reviewedAt); err != nil {
		t.Fatalf("RecordReviewScore: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoRecordReviewScoreMissingUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	reviewedAt := time.Now().UTC()

	mock.ExpectExec("UPDATE users SET").
		WithArgs("ghost", 85, reviewedAt).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.RecordReviewScore(context.Background(), "ghost", 85, reviewedAt); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
