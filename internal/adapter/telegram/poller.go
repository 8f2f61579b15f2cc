package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/nhoyhub/esignhub/internal/workflow"
)

// Handler consumes one inbound workflow event.
type Handler func(ctx context.Context, ev workflow.InboundEvent) error

// Poller long-polls one bot for updates and feeds them to a handler as
// workflow events, sequentially and in arrival order.
type Poller struct {
	client  *Client
	handler Handler
	timeout time.Duration
	logger  *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewPoller constructs a poller around the given client.
func NewPoller(client *Client, handler Handler, timeout time.Duration, logger *slog.Logger) *Poller {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Poller{
		client:  client,
		handler: handler,
		timeout: timeout,
		logger:  logger,
	}
}

// Start launches the polling loop.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.wg.Add(1)
	go p.run(runCtx)
}

// Stop halts polling and waits for the in-flight update to finish.
func (p *Poller) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *Poller) run(ctx context.Context) {
	defer p.wg.Done()

	var offset int64
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		updates, err := p.client.GetUpdates(ctx, offset, p.timeout)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			p.logger.Error("poll updates failed", slog.String("error", err.Error()))
			select {
			case <-ctx.Done():
				return
			case <-time.After(3 * time.Second):
			}
			continue
		}

		for _, update := range updates {
			offset = update.ID + 1
			p.dispatch(ctx, update)
		}
	}
}

func (p *Poller) dispatch(ctx context.Context, update Update) {
	ev, ok := toEvent(update)
	if !ok {
		return
	}
	if err := p.handler(ctx, ev); err != nil {
		p.logger.Error("handle update failed",
			slog.Int64("update", update.ID),
			slog.String("error", err.Error()),
		)
	}
}

func toEvent(update Update) (workflow.InboundEvent, bool) {
	if cb := update.Callback; cb != nil {
		var ref workflow.MessageRef
		if cb.Message != nil {
			ref = EncodeMessageRef(cb.Message.Chat.ID, cb.Message.MessageID)
		}
		return workflow.ActionPressed{
			UserID:     cb.From.ID,
			Username:   senderName(&cb.From),
			ActionID:   cb.Data,
			CallbackID: cb.ID,
			Message:    ref,
		}, true
	}

	msg := update.Message
	if msg == nil || msg.From == nil {
		return nil, false
	}

	if len(msg.Photo) > 0 {
		return workflow.PhotoReceived{
			UserID:   msg.From.ID,
			Username: senderName(msg.From),
			FileRef:  largestPhoto(msg.Photo).FileID,
		}, true
	}
	if msg.Text != "" {
		return workflow.TextReceived{
			UserID:   msg.From.ID,
			Username: senderName(msg.From),
			Text:     msg.Text,
		}, true
	}
	return nil, false
}

func senderName(u *User) string {
	if u.Username != "" {
		return u.Username
	}
	return u.First
}

// Telegram orders photo sizes smallest first, but the contract does not
// promise it, so pick by area.
func largestPhoto(sizes []PhotoSize) PhotoSize {
	best := sizes[0]
	for _, s := range sizes[1:] {
		if s.Width*s.Height > best.Width*best.Height {
			best = s
		}
	}
	return best
}

// EncodeMessageRef packs a chat and message id into an opaque reference.
func EncodeMessageRef(chatID, messageID int64) workflow.MessageRef {
	return workflow.MessageRef(fmt.Sprintf("%d:%d", chatID, messageID))
}

// DecodeMessageRef unpacks a reference produced by EncodeMessageRef.
func DecodeMessageRef(ref workflow.MessageRef) (chatID, messageID int64, err error) {
	parts := strings.SplitN(string(ref), ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed message ref %q", ref)
	}
	chatID, err = strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed message ref %q", ref)
	}
	messageID, err = strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed message ref %q", ref)
	}
	return chatID, messageID, nil
}
