package reviews

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores reviews in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu       sync.RWMutex
	reviews  map[string]Review
	byUser   map[string][]string
	findings map[string][]Finding // keyed by review ID
	comments []Comment
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		reviews:  make(map[string]Review),
		byUser:   make(map[string][]string),
		findings: make(map[string][]Finding),
	}
}

// CreateReview stores the review.
func (r *MemoryRepo) CreateReview(ctx context.Context, review Review) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reviews[review.ID] = review
	r.byUser[review.UserID] = append(r.byUser[review.UserID], review.ID)
	return nil
}

// GetReview returns a review by its ID.
func (r *MemoryRepo) GetReview(ctx context.Context, reviewID string) (Review, error) {
	if err := ctx.Err(); err != nil {
		return Review{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	review, ok := r.reviews[reviewID]
	if !ok {
		return Review{}, ErrNotFound
	}
	return review, nil
}

// ListByUser returns the user's reviews newest-first with counts.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]ReviewSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byUser[userID]
	summaries := make([]ReviewSummary, 0, len(ids))
	for _, id := range ids {
		review := r.reviews[id]
		summary := ReviewSummary{Review: review}
		summary.FindingCount = len(r.findings[id])
		for _, c := range r.comments {
			if c.ReviewID == id {
				summary.CommentCount++
			}
		}
		summaries = append(summaries, summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	return summaries, nil
}

// UpdateReviewStatus sets the review status.
func (r *MemoryRepo) UpdateReviewStatus(ctx context.Context, reviewID, status string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.reviews[reviewID]
	if !ok {
		return ErrNotFound
	}
	review.Status = status
	review.UpdatedAt = time.Now().UTC()
	r.reviews[reviewID] = review
	return nil
}

// UpdateReviewAnalysis stores the analysis summary and effort estimate.
func (r *MemoryRepo) UpdateReviewAnalysis(ctx context.Context, reviewID, summary string, effortPoints int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.reviews[reviewID]
	if !ok {
		return ErrNotFound
	}
	review.Summary = summary
	review.EffortPoints = &effortPoints
	review.UpdatedAt = time.Now().UTC()
	r.reviews[reviewID] = review
	return nil
}

// CreateFindings stores a batch of findings.
func (r *MemoryRepo) CreateFindings(ctx context.Context, findings []Finding) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range findings {
		if _, ok := r.reviews[f.ReviewID]; !ok {
			return ErrNotFound
		}
		r.findings[f.ReviewID] = append(r.findings[f.ReviewID], f)
	}
	return nil
}

// ListFindings returns a review's findings newest-first.
func (r *MemoryRepo) ListFindings(ctx context.Context, reviewID string) ([]Finding, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	findings := append([]Finding(nil), r.findings[reviewID]...)
	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].CreatedAt.After(findings[j].CreatedAt)
	})
	return findings, nil
}

// UpdateFindingStatus sets a finding's status.
func (r *MemoryRepo) UpdateFindingStatus(ctx context.Context, findingID, status string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for reviewID, findings := range r.findings {
		for i := range findings {
			if findings[i].ID == findingID {
				findings[i].Status = status
				r.findings[reviewID] = findings
				return nil
			}
		}
	}
	return ErrFindingNotFound
}

// CreateComment stores the comment.
func (r *MemoryRepo) CreateComment(ctx context.Context, comment Comment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if comment.ReviewID != "" {
		if _, ok := r.reviews[comment.ReviewID]; !ok {
			return ErrNotFound
		}
	}
	if comment.FindingID != "" {
		if !r.findingExistsLocked(comment.FindingID) {
			return ErrFindingNotFound
		}
	}
	r.comments = append(r.comments, comment)
	return nil
}

func (r *MemoryRepo) findingExistsLocked(findingID string) bool {
	for _, findings := range r.findings {
		for i := range findings {
			if findings[i].ID == findingID {
				return true
			}
		}
	}
	return false
}

// ListReviewComments returns comments attached directly to a review.
func (r *MemoryRepo) ListReviewComments(ctx context.Context, reviewID string) ([]Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Comment
	for _, c := range r.comments {
		if c.ReviewID == reviewID {
			out = append(out, c)
		}
	}
	return out, nil
}

// ListFindingComments returns comments attached to a finding.
func (r *MemoryRepo) ListFindingComments(ctx context.Context, findingID string) ([]Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Comment
	for _, c := range r.comments {
		if c.FindingID == findingID {
			out = append(out, c)
		}
	}
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
