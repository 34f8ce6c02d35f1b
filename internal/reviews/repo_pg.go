package reviews

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// CreateReview inserts a new review in pending state.
func (r *PGRepo) CreateReview(ctx context.Context, review Review) error {
	const query = `
INSERT INTO reviews (id, user_id, title, description, code, language, file_name, custom_guidelines, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)`
	_, err := r.DB.ExecContext(ctx, query,
		review.ID,
		review.UserID,
		review.Title,
		nullableString(review.Description),
		review.Code,
		review.Language,
		nullableString(review.FileName),
		nullableString(review.CustomGuidelines),
		review.Status,
		review.CreatedAt,
	)
	return err
}

// GetReview returns a review by ID.
func (r *PGRepo) GetReview(ctx context.Context, reviewID string) (Review, error) {
	const query = `
SELECT id, user_id, title, description, code, language, file_name, custom_guidelines, status,
       summary_analysis, overall_effort_points, created_at, updated_at
FROM reviews
WHERE id = $1
LIMIT 1`
	var review Review
	var description, fileName, guidelines, summary sql.NullString
	var effort sql.NullInt64
	err := r.DB.QueryRowContext(ctx, query, reviewID).Scan(
		&review.ID,
		&review.UserID,
		&review.Title,
		&description,
		&review.Code,
		&review.Language,
		&fileName,
		&guidelines,
		&review.Status,
		&summary,
		&effort,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Review{}, ErrNotFound
		}
		return Review{}, err
	}
	review.Description = description.String
	review.FileName = fileName.String
	review.CustomGuidelines = guidelines.String
	review.Summary = summary.String
	if effort.Valid {
		points := int(effort.Int64)
		review.EffortPoints = &points
	}
	return review, nil
}

// ListByUser returns the user's reviews newest-first with counts.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]ReviewSummary, error) {
	const query = `
SELECT r.id, r.user_id, r.title, r.description, r.language, r.file_name, r.status,
       r.summary_analysis, r.overall_effort_points, r.created_at, r.updated_at,
       COUNT(DISTINCT f.id) AS finding_count,
       COUNT(DISTINCT c.id) AS comment_count
FROM reviews r
LEFT JOIN findings f ON f.review_id = r.id
LEFT JOIN review_comments c ON c.review_id = r.id
WHERE r.user_id = $1
GROUP BY r.id
ORDER BY r.created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []ReviewSummary
	for rows.Next() {
		var s ReviewSummary
		var description, fileName, summary sql.NullString
		var effort sql.NullInt64
		if err := rows.Scan(
			&s.ID,
			&s.UserID,
			&s.Title,
			&description,
			&s.Language,
			&fileName,
			&s.Status,
			&summary,
			&effort,
			&s.CreatedAt,
			&s.UpdatedAt,
			&s.FindingCount,
			&s.CommentCount,
		); err != nil {
			return nil, err
		}
		s.Description = description.String
		s.FileName = fileName.String
		s.Summary = summary.String
		if effort.Valid {
			points := int(effort.Int64)
			s.EffortPoints = &points
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// UpdateReviewStatus sets the review status.
func (r *PGRepo) UpdateReviewStatus(ctx context.Context, reviewID, status string) error {
	const query = `UPDATE reviews SET status = $2, updated_at = now() WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, reviewID, status)
	if err != nil {
		return err
	}
	return requireRow(res, ErrNotFound)
}

// UpdateReviewAnalysis stores the analysis summary and effort estimate.
func (r *PGRepo) UpdateReviewAnalysis(ctx context.Context, reviewID, summary string, effortPoints int) error {
	const query = `
UPDATE reviews SET summary_analysis = $2, overall_effort_points = $3, updated_at = now()
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, reviewID, summary, effortPoints)
	if err != nil {
		return err
	}
	return requireRow(res, ErrNotFound)
}

// CreateFindings inserts a batch of findings in one transaction.
func (r *PGRepo) CreateFindings(ctx context.Context, findings []Finding) error {
	if len(findings) == 0 {
		return nil
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const query = `
INSERT INTO findings (id, review_id, category, severity, title, description, line_number, code_snippet, suggestion, auto_fix_code, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	for _, f := range findings {
		var lineNumber any
		if f.LineNumber != nil {
			lineNumber = *f.LineNumber
		}
		if _, err := tx.ExecContext(ctx, query,
			f.ID,
			f.ReviewID,
			f.Category,
			f.Severity,
			f.Title,
			f.Description,
			lineNumber,
			nullableString(f.CodeSnippet),
			nullableString(f.Suggestion),
			nullableString(f.AutoFixCode),
			f.Status,
			f.CreatedAt,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListFindings returns a review's findings newest-first.
func (r *PGRepo) ListFindings(ctx context.Context, reviewID string) ([]Finding, error) {
	const query = `
SELECT id, review_id, category, severity, title, description, line_number, code_snippet, suggestion, auto_fix_code, status, created_at
FROM findings
WHERE review_id = $1
ORDER BY created_at DESC, id`
	rows, err := r.DB.QueryContext(ctx, query, reviewID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var findings []Finding
	for rows.Next() {
		var f Finding
		var lineNumber sql.NullInt64
		var snippet, suggestion, autoFix sql.NullString
		if err := rows.Scan(
			&f.ID,
			&f.ReviewID,
			&f.Category,
			&f.Severity,
			&f.Title,
			&f.Description,
			&lineNumber,
			&snippet,
			&suggestion,
			&autoFix,
			&f.Status,
			&f.CreatedAt,
		); err != nil {
			return nil, err
		}
		if lineNumber.Valid {
			n := int(lineNumber.Int64)
			f.LineNumber = &n
		}
		f.CodeSnippet = snippet.String
		f.Suggestion = suggestion.String
		f.AutoFixCode = autoFix.String
		findings = append(findings, f)
	}
	return findings, rows.Err()
}

// UpdateFindingStatus sets a finding's status.
func (r *PGRepo) UpdateFindingStatus(ctx context.Context, findingID, status string) error {
	const query = `UPDATE findings SET status = $2 WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, findingID, status)
	if err != nil {
		return err
	}
	return requireRow(res, ErrFindingNotFound)
}

// CreateComment inserts a comment attached to a review or a finding.
func (r *PGRepo) CreateComment(ctx context.Context, comment Comment) error {
	const query = `
INSERT INTO review_comments (id, content, user_id, review_id, finding_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.ExecContext(ctx, query,
		comment.ID,
		comment.Content,
		comment.UserID,
		nullableString(comment.ReviewID),
		nullableString(comment.FindingID),
		comment.CreatedAt,
	)
	return err
}

// ListReviewComments returns comments attached directly to a review.
func (r *PGRepo) ListReviewComments(ctx context.Context, reviewID string) ([]Comment, error) {
	return r.listComments(ctx, `review_id`, reviewID)
}

// ListFindingComments returns comments attached to a finding.
func (r *PGRepo) ListFindingComments(ctx context.Context, findingID string) ([]Comment, error) {
	return r.listComments(ctx, `finding_id`, findingID)
}

func (r *PGRepo) listComments(ctx context.Context, column, id string) ([]Comment, error) {
	query := `
SELECT id, content, user_id, review_id, finding_id, created_at
FROM review_comments
WHERE ` + column + ` = $1
ORDER BY created_at`
	rows, err := r.DB.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var c Comment
		var reviewID, findingID sql.NullString
		if err := rows.Scan(&c.ID, &c.Content, &c.UserID, &reviewID, &findingID, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.ReviewID = reviewID.String
		c.FindingID = findingID.String
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func requireRow(res sql.Result, missing error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return missing
	}
	return nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

var _ Repo = (*PGRepo)(nil)
