package workflow

import (
	"fmt"
	"strconv"
	"strings"
)

// MessageRef opaquely identifies a delivered chat message so it can be
// edited later. Its format is owned by the notification adapter.
type MessageRef string

// InboundEvent is the closed set of events the engine consumes.
type InboundEvent interface {
	isInboundEvent()
}

// TextReceived is a plain text message from a chat session.
type TextReceived struct {
	UserID   int64
	Username string
	Text     string
}

// PhotoReceived is an image upload from a chat session. FileRef is the
// transport handle used to fetch the image bytes.
type PhotoReceived struct {
	UserID   int64
	Username string
	FileRef  string
}

// ActionPressed is a button press on a previously delivered message.
type ActionPressed struct {
	UserID     int64
	Username   string
	ActionID   string
	CallbackID string
	Message    MessageRef
}

func (TextReceived) isInboundEvent()  {}
func (PhotoReceived) isInboundEvent() {}
func (ActionPressed) isInboundEvent() {}

// Action identifier prefixes shared between the engine and the keyboards
// it sends out.
const (
	planActionPrefix    = "payment_"
	approveActionPrefix = "approve_"
	rejectActionPrefix  = "reject_"
	copyActionPrefix    = "copyudid_"
)

// PlanAction builds the action id of a plan selection button.
func PlanAction(planID int) string {
	return fmt.Sprintf("%s%d", planActionPrefix, planID)
}

// ApproveAction builds the action id of an admin approve button.
func ApproveAction(orderID int64) string {
	return fmt.Sprintf("%s%d", approveActionPrefix, orderID)
}

// RejectAction builds the action id of an admin reject button.
func RejectAction(orderID int64) string {
	return fmt.Sprintf("%s%d", rejectActionPrefix, orderID)
}

// CopyUDIDAction builds the action id of the admin copy-UDID button.
func CopyUDIDAction(userID, orderID int64) string {
	return fmt.Sprintf("%s%d_%d", copyActionPrefix, userID, orderID)
}

func parsePlanAction(actionID string) (int, bool) {
	raw, ok := strings.CutPrefix(actionID, planActionPrefix)
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return id, true
}

func parseDecisionAction(actionID string) (orderID int64, approved, ok bool) {
	raw, isApprove := strings.CutPrefix(actionID, approveActionPrefix)
	if !isApprove {
		var isReject bool
		raw, isReject = strings.CutPrefix(actionID, rejectActionPrefix)
		if !isReject {
			return 0, false, false
		}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, false
	}
	return id, isApprove, true
}

func parseCopyAction(actionID string) (userID int64, ok bool) {
	raw, isCopy := strings.CutPrefix(actionID, copyActionPrefix)
	if !isCopy {
		return 0, false
	}
	parts := strings.SplitN(raw, "_", 2)
	if len(parts) != 2 {
		return 0, false
	}
	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
