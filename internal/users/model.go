package users

import "time"

// User is a reviewer account with denormalized progress fields.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Progress  Progress  `json:"progress"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Progress tracks a user's running review statistics.
type Progress struct {
	TotalReviews      int        `json:"totalReviews"`
	AverageScore      float64    `json:"averageScore"`
	LastReviewDate    *time.Time `json:"lastReviewDate,omitempty"`
	ImprovementStreak int        `json:"improvementStreak"`
}
