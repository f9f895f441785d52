package model

import (
	"fmt"
	"time"
)

// GoalStatus is the lifecycle state of a campaign goal.
type GoalStatus string

// Goal status constants.
const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalFailed    GoalStatus = "failed"
)

// Valid reports whether s is one of the known statuses.
func (s GoalStatus) Valid() bool {
	switch s {
	case GoalActive, GoalCompleted, GoalFailed:
		return true
	}
	return false
}

// Goal represents a target amount for a campaign. Progress fields are
// derived by the backend's update-progress call, never client-side.
type Goal struct {
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	Deadline           *time.Time `json:"deadline"`
	DaysRemaining      *int       `json:"days_remaining"`
	Title              string     `json:"title"`
	Status             GoalStatus `json:"status"`
	ID                 int64      `json:"id"`
	CampaignID         int64      `json:"campaign_id"`
	TargetAmount       float64    `json:"target_amount"`
	CurrentAmount      float64    `json:"current_amount"`
	ProgressPercentage float64    `json:"progress_percentage"`
	RemainingAmount    float64    `json:"remaining_amount"`
}

// NewGoal holds the fields for creating a goal.
type NewGoal struct {
	Deadline     *time.Time `json:"deadline,omitempty"`
	Title        string     `json:"title"`
	CampaignID   int64      `json:"campaign_id"`
	TargetAmount float64    `json:"target_amount"`
}

// Validate checks a new goal before it is sent to the backend.
func (n *NewGoal) Validate() error {
	if n.Title == "" {
		return fmt.Errorf("title is required")
	}
	if n.TargetAmount <= 0 {
		return fmt.Errorf("target amount must be positive, got %.2f", n.TargetAmount)
	}
	return nil
}

// GoalUpdate holds the optional fields for updating a goal. Nil fields
// are left unchanged by the backend.
type GoalUpdate struct {
	Title         *string     `json:"title,omitempty"`
	TargetAmount  *float64    `json:"target_amount,omitempty"`
	CurrentAmount *float64    `json:"current_amount,omitempty"`
	Deadline      *time.Time  `json:"deadline,omitempty"`
	Status        *GoalStatus `json:"status,omitempty"`
}
