package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// ErrAPIFailure indicates the Bot API answered with ok=false or a
// non-2xx status.
var ErrAPIFailure = errors.New("telegram api failure")

// Update is one item from getUpdates. Only the fields the bots consume
// are mapped.
type Update struct {
	ID       int64          `json:"update_id"`
	Message  *IncomingMsg   `json:"message,omitempty"`
	Callback *CallbackQuery `json:"callback_query,omitempty"`
}

// IncomingMsg is an inbound chat message.
type IncomingMsg struct {
	MessageID int64       `json:"message_id"`
	From      *User       `json:"from,omitempty"`
	Chat      Chat        `json:"chat"`
	Text      string      `json:"text,omitempty"`
	Photo     []PhotoSize `json:"photo,omitempty"`
}

// CallbackQuery is an inline keyboard button press.
type CallbackQuery struct {
	ID      string       `json:"id"`
	From    User         `json:"from"`
	Message *IncomingMsg `json:"message,omitempty"`
	Data    string       `json:"data,omitempty"`
}

// User identifies the sender of a message or callback.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username,omitempty"`
	First    string `json:"first_name,omitempty"`
}

// Chat identifies the conversation a message belongs to.
type Chat struct {
	ID int64 `json:"id"`
}

// PhotoSize is one resolution of an uploaded photo.
type PhotoSize struct {
	FileID string `json:"file_id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// InlineKeyboard is the reply_markup payload for button rows.
type InlineKeyboard struct {
	Rows [][]InlineButton `json:"inline_keyboard"`
}

// InlineButton is one button in an inline keyboard.
type InlineButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data,omitempty"`
	URL          string `json:"url,omitempty"`
}

// SendParams describes an outbound sendMessage or sendPhoto call.
type SendParams struct {
	ChatID    int64
	Text      string
	PhotoURL  string
	ParseMode string
	Keyboard  *InlineKeyboard
}

// Client is a minimal Bot API client covering the calls the two bots
// actually make.
type Client struct {
	baseURL    *url.URL
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient builds a client for one bot token against the given API
// base, usually https://api.telegram.org.
func NewClient(apiBase, token string, logger *slog.Logger) (*Client, error) {
	parsed, err := url.Parse(apiBase)
	if err != nil {
		return nil, fmt.Errorf("parse telegram api base: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("telegram api base must be absolute")
	}
	if token == "" {
		return nil, fmt.Errorf("telegram token is empty")
	}
	return &Client{
		baseURL: parsed,
		token:   token,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 90 * time.Second,
		},
	}, nil
}

type apiEnvelope struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result,omitempty"`
	Description string          `json:"description,omitempty"`
}

func (c *Client) methodURL(method string) string {
	endpoint := *c.baseURL
	endpoint.Path = fmt.Sprintf("/bot%s/%s", c.token, method)
	return endpoint.String()
}

func (c *Client) call(ctx context.Context, method string, payload any, result any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL(method), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var envelope apiEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	if !envelope.OK {
		c.logger.Error("telegram call failed",
			slog.String("method", method),
			slog.Int("status", resp.StatusCode),
			slog.String("description", envelope.Description),
		)
		return fmt.Errorf("%w: %s: %s", ErrAPIFailure, method, envelope.Description)
	}
	if result != nil {
		if err := json.Unmarshal(envelope.Result, result); err != nil {
			return fmt.Errorf("decode %s result: %w", method, err)
		}
	}
	return nil
}

// GetUpdates long-polls for new updates after the given offset.
func (c *Client) GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]Update, error) {
	payload := map[string]any{
		"offset":  offset,
		"timeout": int(timeout.Seconds()),
	}
	var updates []Update
	if err := c.call(ctx, "getUpdates", payload, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

// Send delivers a text or photo message and returns the new message id.
func (c *Client) Send(ctx context.Context, p SendParams) (int64, error) {
	payload := map[string]any{"chat_id": p.ChatID}
	method := "sendMessage"
	if p.PhotoURL != "" {
		method = "sendPhoto"
		payload["photo"] = p.PhotoURL
		payload["caption"] = p.Text
	} else {
		payload["text"] = p.Text
	}
	if p.ParseMode != "" {
		payload["parse_mode"] = p.ParseMode
	}
	if p.Keyboard != nil {
		payload["reply_markup"] = p.Keyboard
	}

	var sent IncomingMsg
	if err := c.call(ctx, method, payload, &sent); err != nil {
		return 0, err
	}
	return sent.MessageID, nil
}

// EditText rewrites a previously sent message. Photo messages carry
// their text as a caption, so a text edit that fails with ErrAPIFailure
// is retried as a caption edit.
func (c *Client) EditText(ctx context.Context, chatID, messageID int64, text string) error {
	payload := map[string]any{
		"chat_id":    chatID,
		"message_id": messageID,
		"text":       text,
	}
	err := c.call(ctx, "editMessageText", payload, nil)
	if err == nil || !errors.Is(err, ErrAPIFailure) {
		return err
	}

	delete(payload, "text")
	payload["caption"] = text
	return c.call(ctx, "editMessageCaption", payload, nil)
}

// AnswerCallback acknowledges a button press, optionally with an alert
// popup.
func (c *Client) AnswerCallback(ctx context.Context, callbackID, text string, alert bool) error {
	payload := map[string]any{
		"callback_query_id": callbackID,
		"show_alert":        alert,
	}
	if text != "" {
		payload["text"] = text
	}
	return c.call(ctx, "answerCallbackQuery", payload, nil)
}

type fileInfo struct {
	FileID   string `json:"file_id"`
	FilePath string `json:"file_path"`
}

// DownloadFile resolves a file id and fetches its contents.
func (c *Client) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	var info fileInfo
	if err := c.call(ctx, "getFile", map[string]any{"file_id": fileID}, &info); err != nil {
		return nil, err
	}
	if info.FilePath == "" {
		return nil, fmt.Errorf("%w: getFile returned no path", ErrAPIFailure)
	}

	endpoint := *c.baseURL
	endpoint.Path = fmt.Sprintf("/file/bot%s/%s", c.token, info.FilePath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: download status %s", ErrAPIFailure, resp.Status)
	}
	return io.ReadAll(resp.Body)
}
