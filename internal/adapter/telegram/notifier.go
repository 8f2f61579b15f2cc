package telegram

import (
	"context"

	"github.com/nhoyhub/esignhub/internal/workflow"
)

// Notifier delivers workflow messages through two bots: the user bot
// talks to each user's own chat, the admin bot talks to one shared
// admin chat. It implements workflow.Notifier and workflow.FileFetcher.
type Notifier struct {
	userBot     *Client
	adminBot    *Client
	adminChatID int64
}

// NewNotifier wires the two bot clients to the admin chat.
func NewNotifier(userBot, adminBot *Client, adminChatID int64) *Notifier {
	return &Notifier{
		userBot:     userBot,
		adminBot:    adminBot,
		adminChatID: adminChatID,
	}
}

// NotifyUser sends a message to the user's private chat.
func (n *Notifier) NotifyUser(ctx context.Context, userID int64, msg workflow.Message) error {
	_, err := n.userBot.Send(ctx, sendParams(userID, msg))
	return err
}

// NotifyAdmin sends a message to the admin chat.
func (n *Notifier) NotifyAdmin(ctx context.Context, msg workflow.Message) error {
	_, err := n.adminBot.Send(ctx, sendParams(n.adminChatID, msg))
	return err
}

// EditUserMessage rewrites a previously delivered user-chat message.
func (n *Notifier) EditUserMessage(ctx context.Context, userID int64, ref workflow.MessageRef, text string) error {
	chatID, messageID, err := DecodeMessageRef(ref)
	if err != nil {
		return err
	}
	return n.userBot.EditText(ctx, chatID, messageID, text)
}

// EditAdminMessage rewrites a previously delivered admin-chat message.
func (n *Notifier) EditAdminMessage(ctx context.Context, ref workflow.MessageRef, text string) error {
	chatID, messageID, err := DecodeMessageRef(ref)
	if err != nil {
		return err
	}
	return n.adminBot.EditText(ctx, chatID, messageID, text)
}

// AnswerUserAction acknowledges a button press in a user chat.
func (n *Notifier) AnswerUserAction(ctx context.Context, callbackID, text string, alert bool) error {
	return n.userBot.AnswerCallback(ctx, callbackID, text, alert)
}

// AnswerAdminAction acknowledges a button press in the admin chat.
func (n *Notifier) AnswerAdminAction(ctx context.Context, callbackID, text string, alert bool) error {
	return n.adminBot.AnswerCallback(ctx, callbackID, text, alert)
}

// FetchFile downloads an uploaded photo through the user bot.
func (n *Notifier) FetchFile(ctx context.Context, fileRef string) ([]byte, error) {
	return n.userBot.DownloadFile(ctx, fileRef)
}

func sendParams(chatID int64, msg workflow.Message) SendParams {
	return SendParams{
		ChatID:    chatID,
		Text:      msg.Text,
		PhotoURL:  msg.PhotoURL,
		ParseMode: msg.ParseMode,
		Keyboard:  toKeyboard(msg.Actions),
	}
}

func toKeyboard(actions [][]workflow.Action) *InlineKeyboard {
	if len(actions) == 0 {
		return nil
	}
	rows := make([][]InlineButton, 0, len(actions))
	for _, row := range actions {
		buttons := make([]InlineButton, 0, len(row))
		for _, a := range row {
			buttons = append(buttons, InlineButton{
				Text:         a.Label,
				CallbackData: a.ID,
				URL:          a.URL,
			})
		}
		rows = append(rows, buttons)
	}
	return &InlineKeyboard{Rows: rows}
}
