package reviews

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateReviewNullsEmptyOptionals(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	review := Review{
		ID:        "review-1",
		UserID:    "user-1",
		Title:     "Code review",
		Code:      "x = 1",
		Language:  "python",
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO reviews").
		WithArgs(
			review.ID,
			review.UserID,
			review.Title,
			nil, // description
			review.Code,
			review.Language,
			nil, // file_name
			nil, // custom_guidelines
			review.Status,
			review.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.CreateReview(context.Background(), review); err != nil {
		t.Fatalf("CreateReview: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetReviewNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT (.+) FROM reviews").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	repo := &PGRepo{DB: db}
	_, err = repo.GetReview(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPGRepoUpdateReviewStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectExec("UPDATE reviews SET status").
		WithArgs("review-1", StatusInProgress).
		WillReturnResult(sqlmock.NewResult(0, 1))
	if err := repo.UpdateReviewStatus(context.Background(), "review-1", StatusInProgress); err != nil {
		t.Fatalf("UpdateReviewStatus: %v", err)
	}

	mock.ExpectExec("UPDATE reviews SET status").
		WithArgs("missing", StatusInProgress).
		WillReturnResult(sqlmock.NewResult(0, 0))
	err = repo.UpdateReviewStatus(context.Background(), "missing", StatusInProgress)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound for zero rows", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCreateFindingsUsesOneTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()
	line := 5
	findings := []Finding{
		{
			ID:          "finding-1",
			ReviewID:    "review-1",
			Category:    "security",
			Severity:    "asap",
			Title:       "Hardcoded credentials",
			Description: "desc",
			LineNumber:  &line,
			CodeSnippet: "snippet",
			Suggestion:  "fix it",
			Status:      FindingStatusOpen,
			CreatedAt:   now,
		},
		{
			ID:          "finding-2",
			ReviewID:    "review-1",
			Category:    "style",
			Severity:    "low",
			Title:       "Naming",
			Description: "desc",
			Status:      FindingStatusOpen,
			CreatedAt:   now,
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO findings").
		WithArgs("finding-1", "review-1", "security", "asap", "Hardcoded credentials", "desc",
			5, "snippet", "fix it", nil, FindingStatusOpen, now).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO findings").
		WithArgs("finding-2", "review-1", "style", "low", "Naming", "desc",
			nil, nil, nil, nil, FindingStatusOpen, now).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	if err := repo.CreateFindings(context.Background(), findings); err != nil {
		t.Fatalf("CreateFindings: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCreateFindingsEmptyBatchNoQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	if err := repo.CreateFindings(context.Background(), nil); err != nil {
		t.Fatalf("CreateFindings: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateFindingStatusNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec("UPDATE findings SET status").
		WithArgs("missing", "resolved").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := &PGRepo{DB: db}
	err = repo.UpdateFindingStatus(context.Background(), "missing", "resolved")
	if !errors.Is(err, ErrFindingNotFound) {
		t.Fatalf("err = %v, want ErrFindingNotFound", err)
	}
}

func TestPGRepoListByUserScansCounts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "title", "description", "language", "file_name", "status",
		"summary_analysis", "overall_effort_points", "created_at", "updated_at",
		"finding_count", "comment_count",
	}).AddRow("review-1", "user-1", "Code review", nil, "go", nil, StatusCompleted,
		"Looks fine.", 2, now, now, 3, 1)

	mock.ExpectQuery("SELECT (.+) FROM reviews r").
		WithArgs("user-1").
		WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	summaries, err := repo.ListByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("summaries = %d, want 1", len(summaries))
	}
	s := summaries[0]
	if s.FindingCount != 3 || s.CommentCount != 1 {
		t.Fatalf("counts = %d/%d, want 3/1", s.FindingCount, s.CommentCount)
	}
	if s.Summary != "Looks fine." {
		t.Fatalf("summary = %q", s.Summary)
	}
	if s.EffortPoints == nil || *s.EffortPoints != 2 {
		t.Fatalf("effortPoints = %v, want 2", s.EffortPoints)
	}
}
