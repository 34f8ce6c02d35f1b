package reviews

// SubmitReviewRequest is the submission payload.
type SubmitReviewRequest struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	Code             string `json:"code" binding:"required"`
	Language         string `json:"language" binding:"required"`
	FileName         string `json:"fileName"`
	CustomGuidelines string `json:"customGuidelines"`
}

// AddCommentRequest is the comment payload.
type AddCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// UpdateFindingStatusRequest is the finding status payload.
type UpdateFindingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// FindingDetail is a finding with its comments attached.
type FindingDetail struct {
	Finding
	Comments []Comment `json:"comments"`
}

// ReviewDetail is a review with its findings and comments attached.
type ReviewDetail struct {
	Review
	Findings []FindingDetail `json:"findings"`
	Comments []Comment       `json:"comments"`
}
