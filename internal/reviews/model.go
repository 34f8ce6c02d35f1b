package reviews

import "time"

const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// FindingStatusOpen is the initial status of every finding.
const FindingStatusOpen = "open"

// Categories a finding may carry. Unrecognized model output falls back
// to "style".
var validCategories = map[string]struct{}{
	"security":      {},
	"performance":   {},
	"bugs":          {},
	"style":         {},
	"documentation": {},
}

// Severities a finding may carry. Unrecognized model output falls back
// to "low".
var validSeverities = map[string]struct{}{
	"asap":   {},
	"high":   {},
	"medium": {},
	"low":    {},
	"info":   {},
}

// Review is one submitted code artifact together with its analysis lifecycle.
type Review struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	Title            string    `json:"title"`
	Description      string    `json:"description,omitempty"`
	Code             string    `json:"code"`
	Language         string    `json:"language"`
	FileName         string    `json:"fileName,omitempty"`
	CustomGuidelines string    `json:"customGuidelines,omitempty"`
	Status           string    `json:"status"`
	Summary          string    `json:"summary,omitempty"`
	EffortPoints     *int      `json:"effortPoints,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Finding is one discrete issue identified in submitted code.
type Finding struct {
	ID          string    `json:"id"`
	ReviewID    string    `json:"reviewId"`
	Category    string    `json:"category"`
	Severity    string    `json:"severity"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	LineNumber  *int      `json:"lineNumber,omitempty"`
	CodeSnippet string    `json:"codeSnippet,omitempty"`
	Suggestion  string    `json:"suggestion,omitempty"`
	AutoFixCode string    `json:"autoFixCode,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Comment is attached to either a review or a single finding.
type Comment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	UserID    string    `json:"userId"`
	ReviewID  string    `json:"reviewId,omitempty"`
	FindingID string    `json:"findingId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReviewSummary is a listing row with derived counts.
type ReviewSummary struct {
	Review
	FindingCount int `json:"findingCount"`
	CommentCount int `json:"commentCount"`
}

// AnalysisResult is the parsed, normalized outcome of one model call.
// It is transient; the orchestrator persists it as review fields plus a
// batch of findings.
type AnalysisResult struct {
	Summary      string
	OverallScore int
	EffortPoints int
	Findings     []ResultFinding
}

// ResultFinding is one finding extracted from model output, before it is
// given an ID and persisted.
type ResultFinding struct {
	Category    string
	Severity    string
	Title       string
	Description string
	LineNumber  *int
	CodeSnippet string
	Suggestion  string
	AutoFixCode string
}
