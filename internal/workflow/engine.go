package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	domainErrors "github.com/nhoyhub/esignhub/internal/domain/errors"
	"github.com/nhoyhub/esignhub/internal/domain/model"
)

// Options tunes engine timeouts and the post-approval follow-up delay.
type Options struct {
	CreateTimeout time.Duration
	UpdateTimeout time.Duration
	SendTimeout   time.Duration
	FollowupDelay time.Duration
}

func (o *Options) applyDefaults() {
	if o.CreateTimeout <= 0 {
		o.CreateTimeout = 30 * time.Second
	}
	if o.UpdateTimeout <= 0 {
		o.UpdateTimeout = 10 * time.Second
	}
	if o.SendTimeout <= 0 {
		o.SendTimeout = 30 * time.Second
	}
	if o.FollowupDelay <= 0 {
		o.FollowupDelay = 30 * 24 * time.Hour
	}
}

// Engine drives each user's order workflow from UDID submission through
// payment proof to the admin decision. It is safe for concurrent use by
// the user-facing and admin-facing event loops.
type Engine struct {
	store    *Store
	orders   OrderService
	notifier Notifier
	files    FileFetcher
	logger   *slog.Logger
	opts     Options
}

// NewEngine constructs the workflow engine.
func NewEngine(store *Store, orders OrderService, notifier Notifier, files FileFetcher, opts Options, logger *slog.Logger) *Engine {
	opts.applyDefaults()
	return &Engine{
		store:    store,
		orders:   orders,
		notifier: notifier,
		files:    files,
		logger:   logger,
		opts:     opts,
	}
}

// HandleUserEvent dispatches one event from the user-facing session.
func (e *Engine) HandleUserEvent(ctx context.Context, ev InboundEvent) error {
	switch ev := ev.(type) {
	case TextReceived:
		return e.handleUserText(ctx, ev)
	case PhotoReceived:
		return e.handleUpload(ctx, ev)
	case ActionPressed:
		if _, ok := parsePlanAction(ev.ActionID); ok {
			return e.handlePlanSelection(ctx, ev)
		}
		e.logger.Warn("unknown user action", slog.String("action", ev.ActionID))
		return nil
	default:
		return nil
	}
}

// HandleAdminEvent dispatches one event from the admin-facing session.
func (e *Engine) HandleAdminEvent(ctx context.Context, ev InboundEvent) error {
	action, ok := ev.(ActionPressed)
	if !ok {
		return nil
	}
	if _, _, ok := parseDecisionAction(action.ActionID); ok {
		return e.handleDecision(ctx, action)
	}
	if _, ok := parseCopyAction(action.ActionID); ok {
		return e.handleCopyUDID(ctx, action)
	}
	e.logger.Warn("unknown admin action", slog.String("action", action.ActionID))
	return nil
}

func (e *Engine) handleUserText(ctx context.Context, ev TextReceived) error {
	text := strings.TrimSpace(ev.Text)
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "start"):
		return e.handleStart(ctx, ev.UserID, ev.Username)
	case lower == "/details":
		return e.handleDetails(ctx, ev.UserID)
	default:
		return e.handleUDID(ctx, ev.UserID, ev.Username, text)
	}
}

func (e *Engine) handleStart(ctx context.Context, userID int64, username string) error {
	e.store.Reset(userID)
	e.logger.Info("workflow reset", slog.Int64("user", userID))
	return e.notifyUser(ctx, userID, welcomeMessage(username))
}

func (e *Engine) handleDetails(ctx context.Context, userID int64) error {
	completed, ok := e.store.Completed(userID)
	if !ok {
		return e.notifyUser(ctx, userID, noDetailsMessage())
	}
	return e.notifyUser(ctx, userID, detailsMessage(completed))
}

func (e *Engine) handleUDID(ctx context.Context, userID int64, username, udid string) error {
	if !ValidateUDID(udid) {
		return e.notifyUser(ctx, userID, invalidUDIDMessage())
	}

	e.store.StartSession(userID, username, udid)
	e.logger.Info("udid accepted", slog.Int64("user", userID))
	return e.notifyUser(ctx, userID, planPromptMessage(udid))
}

func (e *Engine) handlePlanSelection(ctx context.Context, ev ActionPressed) error {
	planID, _ := parsePlanAction(ev.ActionID)
	plan, ok := model.PlanByID(planID)
	if !ok {
		return e.notifier.AnswerUserAction(ctx, ev.CallbackID, "Unknown plan.", true)
	}

	if err := e.store.SelectPlan(ev.UserID, plan); err != nil {
		return e.notifier.EditUserMessage(ctx, ev.UserID, ev.Message, "❌ Session expired. Please use /start again.")
	}

	if err := e.notifier.EditUserMessage(ctx, ev.UserID, ev.Message, planSelectedText(plan)); err != nil {
		e.logger.Warn("plan keyboard edit failed", slog.Int64("user", ev.UserID), slog.String("error", err.Error()))
	}

	sess, _ := e.store.Session(ev.UserID)
	e.logger.Info("plan selected", slog.Int64("user", ev.UserID), slog.Int("plan", plan.ID))
	return e.notifyUser(ctx, ev.UserID, paymentInstructionsMessage(sess))
}

func (e *Engine) handleUpload(ctx context.Context, ev PhotoReceived) error {
	sess, err := e.store.SessionForUpload(ev.UserID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrAlreadyProcessing):
			return e.notifyUser(ctx, ev.UserID, alreadyProcessingMessage())
		default:
			return e.notifyUser(ctx, ev.UserID, startFirstMessage())
		}
	}

	fetchCtx, cancel := context.WithTimeout(ctx, e.opts.SendTimeout)
	image, err := e.files.FetchFile(fetchCtx, ev.FileRef)
	cancel()
	if err != nil {
		e.logger.Error("photo fetch failed", slog.Int64("user", ev.UserID), slog.String("error", err.Error()))
		if nerr := e.notifyUser(ctx, ev.UserID, photoFetchFailedMessage()); nerr != nil {
			return nerr
		}
		return err
	}

	name := fmt.Sprintf("%s ($%d Plan)", displayName(sess.Username), sess.Plan.ID)

	createCtx, cancel := context.WithTimeout(ctx, e.opts.CreateTimeout)
	orderID, err := e.orders.CreateOrder(createCtx, name, sess.UDID, image)
	cancel()
	if err != nil {
		// Nothing advanced: the user may retry the upload from the same stage.
		e.logger.Error("order creation failed", slog.Int64("user", ev.UserID), slog.String("error", err.Error()))
		if nerr := e.notifyUser(ctx, ev.UserID, orderFailedMessage()); nerr != nil {
			return nerr
		}
		return err
	}

	pending := model.PendingApproval{
		UserID:      ev.UserID,
		Username:    sess.Username,
		UDID:        sess.UDID,
		Plan:        sess.Plan,
		OrderID:     orderID,
		SubmittedAt: time.Now(),
	}
	if err := e.store.AddPending(pending); err != nil {
		return e.notifyUser(ctx, ev.UserID, alreadyProcessingMessage())
	}
	e.logger.Info("order submitted", slog.Int64("user", ev.UserID), slog.Int64("order", orderID))

	if err := e.notifyUser(ctx, ev.UserID, processingMessage()); err != nil {
		e.logger.Warn("processing ack not delivered", slog.Int64("user", ev.UserID), slog.String("error", err.Error()))
	}

	if err := e.notifyAdmin(ctx, adminAlertMessage(pending)); err != nil {
		e.store.RemovePending(ev.UserID)
		e.logger.Error("admin alert failed", slog.Int64("order", orderID), slog.String("error", err.Error()))
		if nerr := e.notifyUser(ctx, ev.UserID, adminNotifyFailedMessage()); nerr != nil {
			return nerr
		}
		return err
	}
	return nil
}

func (e *Engine) handleDecision(ctx context.Context, ev ActionPressed) error {
	orderID, approved, _ := parseDecisionAction(ev.ActionID)

	var (
		pending model.PendingApproval
		err     error
	)
	if approved {
		pending, err = e.store.ClaimApproval(orderID, time.Now())
	} else {
		pending, err = e.store.ClaimRejection(orderID)
	}
	if err != nil {
		// Already resolved or lost to a restart. Informational, not a fault.
		return e.notifier.EditAdminMessage(ctx, ev.Message, expiredRequestText)
	}

	status := model.OrderStatusRejected
	if approved {
		status = model.OrderStatusApproved
	}

	updateCtx, cancel := context.WithTimeout(ctx, e.opts.UpdateTimeout)
	if err := e.orders.UpdateOrderStatus(updateCtx, orderID, status); err != nil {
		// The decision stands; the store row keeps its pending status until
		// an admin fixes it through the panel.
		e.logger.Error("status update failed", slog.Int64("order", orderID), slog.String("status", string(status)), slog.String("error", err.Error()))
	}
	cancel()

	var notifyErr error
	if approved {
		notifyErr = e.notifyUser(ctx, pending.UserID, approvedMessage(pending))
		e.store.ScheduleFollowup(pending.UserID, e.opts.FollowupDelay, func() {
			e.sendFollowup(pending.UserID)
		})
	} else {
		notifyErr = e.notifyUser(ctx, pending.UserID, rejectedMessage())
	}
	if notifyErr != nil {
		e.logger.Error("decision notice not delivered", slog.Int64("user", pending.UserID), slog.String("error", notifyErr.Error()))
	}

	if err := e.notifier.EditAdminMessage(ctx, ev.Message, decidedSummaryText(pending, approved, ev.Username)); err != nil {
		e.logger.Warn("admin summary edit failed", slog.Int64("order", orderID), slog.String("error", err.Error()))
	}

	e.logger.Info("order decided",
		slog.Int64("order", orderID),
		slog.Int64("user", pending.UserID),
		slog.Bool("approved", approved),
		slog.String("admin", ev.Username),
	)
	return notifyErr
}

func (e *Engine) handleCopyUDID(ctx context.Context, ev ActionPressed) error {
	userID, _ := parseCopyAction(ev.ActionID)
	pending, ok := e.store.PendingByUser(userID)
	if !ok {
		return e.notifier.AnswerAdminAction(ctx, ev.CallbackID, "❌ UDID not found or request expired", true)
	}
	return e.notifyAdmin(ctx, copyUDIDMessage(pending))
}

// sendFollowup fires from a timer goroutine after the approval delay.
func (e *Engine) sendFollowup(userID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), e.opts.SendTimeout)
	defer cancel()

	if err := e.notifier.NotifyUser(ctx, userID, followupMessage()); err != nil {
		e.logger.Error("follow-up not delivered", slog.Int64("user", userID), slog.String("error", err.Error()))
		return
	}
	e.logger.Info("follow-up delivered", slog.Int64("user", userID))
}

func (e *Engine) notifyUser(ctx context.Context, userID int64, msg Message) error {
	sendCtx, cancel := context.WithTimeout(ctx, e.opts.SendTimeout)
	defer cancel()
	return e.notifier.NotifyUser(sendCtx, userID, msg)
}

func (e *Engine) notifyAdmin(ctx context.Context, msg Message) error {
	sendCtx, cancel := context.WithTimeout(ctx, e.opts.SendTimeout)
	defer cancel()
	return e.notifier.NotifyAdmin(sendCtx, msg)
}
