package workflow

import (
	"context"

	"github.com/nhoyhub/esignhub/internal/domain/model"
)

// Action is one labeled button attached to an outbound message. Exactly
// one of ID (callback action) or URL (link) is set.
type Action struct {
	Label string
	ID    string
	URL   string
}

// Message is an outbound notification, optionally carrying a photo and
// rows of action buttons.
type Message struct {
	Text      string
	PhotoURL  string
	ParseMode string
	Actions   [][]Action
}

// Notifier delivers messages to the user-facing and admin-facing chat
// sessions. The engine addresses sessions by role, never by transport
// identity.
type Notifier interface {
	NotifyUser(ctx context.Context, userID int64, msg Message) error
	NotifyAdmin(ctx context.Context, msg Message) error
	EditUserMessage(ctx context.Context, userID int64, ref MessageRef, text string) error
	EditAdminMessage(ctx context.Context, ref MessageRef, text string) error
	AnswerUserAction(ctx context.Context, callbackID, text string, alert bool) error
	AnswerAdminAction(ctx context.Context, callbackID, text string, alert bool) error
}

// FileFetcher resolves an inbound file reference to its bytes.
type FileFetcher interface {
	FetchFile(ctx context.Context, fileRef string) ([]byte, error)
}

// OrderService is the order store contract the engine depends on.
type OrderService interface {
	CreateOrder(ctx context.Context, displayName, udid string, image []byte) (int64, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
}
