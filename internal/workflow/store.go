package workflow

import (
	"sync"
	"time"

	domainErrors "github.com/nhoyhub/esignhub/internal/domain/errors"
	"github.com/nhoyhub/esignhub/internal/domain/model"
)

// Store owns all transient workflow state: sessions, pending approvals,
// completed orders, and scheduled follow-up timers. One coarse lock
// covers everything; each exported method is one atomic logical
// operation. Nothing here survives a restart.
type Store struct {
	mu        sync.Mutex
	sessions  map[int64]*model.Session
	pending   map[int64]model.PendingApproval
	completed map[int64]model.CompletedOrder
	followups map[int64]*time.Timer
}

// NewStore constructs an empty workflow state store.
func NewStore() *Store {
	return &Store{
		sessions:  make(map[int64]*model.Session),
		pending:   make(map[int64]model.PendingApproval),
		completed: make(map[int64]model.CompletedOrder),
		followups: make(map[int64]*time.Timer),
	}
}

// Reset discards the user's session and pending approval and cancels any
// scheduled follow-up. Completed order history is kept.
func (s *Store) Reset(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, userID)
	delete(s.pending, userID)
	s.stopFollowupLocked(userID)
}

// StartSession records a validated UDID and moves the user to plan
// selection. Any prior session is overwritten; a fresh UDID always
// restarts plan selection.
func (s *Store) StartSession(userID int64, username, udid string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[userID] = &model.Session{
		UserID:   userID,
		Username: username,
		UDID:     udid,
		Stage:    model.StageAwaitingPlan,
	}
}

// SelectPlan stores the chosen plan. Returns ErrSessionExpired when the
// user never submitted a UDID (or reset in between).
func (s *Store) SelectPlan(userID int64, plan model.Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return domainErrors.ErrSessionExpired
	}
	sess.Plan = plan
	sess.Stage = model.StageAwaitingProof
	return nil
}

// SessionForUpload returns the session if the user may submit a payment
// proof right now. An outstanding pending approval blocks a second
// upload; a missing or incomplete session requires a restart.
func (s *Store) SessionForUpload(userID int64) (model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.pending[userID]; exists {
		return model.Session{}, domainErrors.ErrAlreadyProcessing
	}
	sess, ok := s.sessions[userID]
	if !ok || sess.Plan.ID == 0 {
		return model.Session{}, domainErrors.ErrSessionExpired
	}
	return *sess, nil
}

// AddPending registers the approval tracker after a successful order
// creation and parks the session at the review stage.
func (s *Store) AddPending(p model.PendingApproval) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.pending[p.UserID]; exists {
		return domainErrors.ErrAlreadyProcessing
	}
	s.pending[p.UserID] = p
	if sess, ok := s.sessions[p.UserID]; ok {
		sess.Stage = model.StagePendingReview
	}
	return nil
}

// RemovePending drops the approval tracker, used to roll back when the
// admin alert could not be delivered.
func (s *Store) RemovePending(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.pending, userID)
	if sess, ok := s.sessions[userID]; ok {
		sess.Stage = model.StageAwaitingProof
	}
}

// ClaimApproval resolves an order id to its pending approval and settles
// it as approved: the tracker and session go away and a completed order
// record is written. A second claim of the same order id fails with
// ErrExpiredApproval, which makes admin decisions idempotent.
func (s *Store) ClaimApproval(orderID int64, at time.Time) (model.PendingApproval, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.findByOrderLocked(orderID)
	if !ok {
		return model.PendingApproval{}, domainErrors.ErrExpiredApproval
	}

	delete(s.pending, p.UserID)
	delete(s.sessions, p.UserID)
	s.completed[p.UserID] = model.CompletedOrder{
		UserID:      p.UserID,
		Username:    p.Username,
		UDID:        p.UDID,
		Plan:        p.Plan,
		OrderID:     p.OrderID,
		CompletedAt: at,
	}
	return p, nil
}

// ClaimRejection resolves an order id to its pending approval and settles
// it as rejected. The session survives at the proof stage so the user can
// submit a new screenshot without restarting.
func (s *Store) ClaimRejection(orderID int64) (model.PendingApproval, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.findByOrderLocked(orderID)
	if !ok {
		return model.PendingApproval{}, domainErrors.ErrExpiredApproval
	}

	delete(s.pending, p.UserID)
	if sess, ok := s.sessions[p.UserID]; ok {
		sess.Stage = model.StageAwaitingProof
	}
	return p, nil
}

// Linear scan; the pending set stays small.
func (s *Store) findByOrderLocked(orderID int64) (model.PendingApproval, bool) {
	for _, p := range s.pending {
		if p.OrderID == orderID {
			return p, true
		}
	}
	return model.PendingApproval{}, false
}

// PendingByUser returns the user's outstanding approval, if any.
func (s *Store) PendingByUser(userID int64) (model.PendingApproval, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pending[userID]
	return p, ok
}

// Completed returns the user's last approved order, if any.
func (s *Store) Completed(userID int64) (model.CompletedOrder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.completed[userID]
	return c, ok
}

// Session returns a copy of the user's session, if any.
func (s *Store) Session(userID int64) (model.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return model.Session{}, false
	}
	return *sess, true
}

// ScheduleFollowup arms the user's one-shot follow-up timer, replacing
// any previous one. Reset cancels it.
func (s *Store) ScheduleFollowup(userID int64, delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopFollowupLocked(userID)
	s.followups[userID] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.followups, userID)
		s.mu.Unlock()
		fn()
	})
}

func (s *Store) stopFollowupLocked(userID int64) {
	if t, ok := s.followups[userID]; ok {
		t.Stop()
		delete(s.followups, userID)
	}
}

// Close stops all outstanding follow-up timers.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for userID, t := range s.followups {
		t.Stop()
		delete(s.followups, userID)
	}
}
