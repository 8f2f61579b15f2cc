package model

import "time"

// SessionStage tracks how far a user progressed through the order workflow.
type SessionStage string

const (
	StageAwaitingUDID  SessionStage = "awaiting_udid"
	StageAwaitingPlan  SessionStage = "awaiting_plan"
	StageAwaitingProof SessionStage = "awaiting_proof"
	StagePendingReview SessionStage = "pending_review"
)

// Session is the transient per-user workflow state. It lives in process
// memory only and is lost on restart.
type Session struct {
	UserID   int64
	Username string
	UDID     string
	Plan     Plan
	Stage    SessionStage
}

// PendingApproval tracks an order awaiting an admin decision.
// At most one exists per user at a time.
type PendingApproval struct {
	UserID      int64
	Username    string
	UDID        string
	Plan        Plan
	OrderID     int64
	SubmittedAt time.Time
}

// CompletedOrder is the last approved order for a user, kept for the
// details lookup. A later approval overwrites it.
type CompletedOrder struct {
	UserID      int64
	Username    string
	UDID        string
	Plan        Plan
	OrderID     int64
	CompletedAt time.Time
}
