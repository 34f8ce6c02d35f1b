package reviews

import "context"

// Repo defines persistence operations for reviews, findings, and comments.
type Repo interface {
	CreateReview(ctx context.Context, review Review) error
	GetReview(ctx context.Context, reviewID string) (Review, error)
	ListByUser(ctx context.Context, userID string) ([]ReviewSummary, error)
	UpdateReviewStatus(ctx context.Context, reviewID, status string) error
	UpdateReviewAnalysis(ctx context.Context, reviewID, summary string, effortPoints int) error

	CreateFindings(ctx context.Context, findings []Finding) error
	ListFindings(ctx context.Context, reviewID string) ([]Finding, error)
	UpdateFindingStatus(ctx context.Context, findingID, status string) error

	CreateComment(ctx context.Context, comment Comment) error
	ListReviewComments(ctx context.Context, reviewID string) ([]Comment, error)
	ListFindingComments(ctx context.Context, findingID string) ([]Comment, error)
}
