package orderapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/nhoyhub/esignhub/internal/domain/model"
)

// ErrOrderNotFound indicates the store no longer has the order.
var ErrOrderNotFound = errors.New("order not found")

// ErrOrderDecided indicates the order already left the pending state.
var ErrOrderDecided = errors.New("order already decided")

// Client talks to the order store HTTP API. It implements
// workflow.OrderService.
type Client struct {
	baseURL    *url.URL
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates an order store client. The token authorizes
// admin-only calls such as status updates.
func NewClient(baseURL, token string, logger *slog.Logger) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse order api url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("order api url must be absolute")
	}
	return &Client{
		baseURL: parsed,
		token:   token,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

type createResponse struct {
	ID int64 `json:"id"`
}

// CreateOrder submits a new order with its payment screenshot and
// returns the assigned order id.
func (c *Client) CreateOrder(ctx context.Context, displayName, udid string, image []byte) (int64, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("name", displayName); err != nil {
		return 0, err
	}
	if err := writer.WriteField("udid", udid); err != nil {
		return 0, err
	}
	part, err := writer.CreateFormFile("image", "payment.jpg")
	if err != nil {
		return 0, err
	}
	if _, err := part.Write(image); err != nil {
		return 0, err
	}
	if err := writer.Close(); err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/orders"), &body)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return 0, c.unexpected("create order", resp)
	}

	var created createResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return 0, fmt.Errorf("decode create order response: %w", err)
	}
	return created.ID, nil
}

// UpdateOrderStatus moves a pending order to its decided status.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	payload, err := json.Marshal(map[string]string{"status": string(status)})
	if err != nil {
		return err
	}

	target := c.endpoint(path.Join("/orders", strconv.FormatInt(orderID, 10), "status"))
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return ErrOrderNotFound
	case http.StatusConflict:
		return ErrOrderDecided
	default:
		return c.unexpected("update order status", resp)
	}
}

func (c *Client) endpoint(p string) string {
	target := *c.baseURL
	target.Path = path.Join(target.Path, p)
	return target.String()
}

func (c *Client) unexpected(op string, resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	c.logger.Error("order api request failed",
		slog.String("op", op),
		slog.Int("status", resp.StatusCode),
		slog.String("body", string(body)),
	)
	return fmt.Errorf("order api %s: %s", op, resp.Status)
}
