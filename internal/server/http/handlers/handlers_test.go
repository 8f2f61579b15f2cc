package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/nhoyhub/esignhub/internal/domain/errors"
	"github.com/nhoyhub/esignhub/internal/domain/model"
	"github.com/nhoyhub/esignhub/internal/domain/repository"
	"github.com/nhoyhub/esignhub/internal/server/http/dto"
	"github.com/nhoyhub/esignhub/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type facadeStub struct {
	loginFn       func(ctx context.Context, username, password string) (string, error)
	createOrderFn func(ctx context.Context, name, udid, imageName string, image []byte) (*model.Order, error)
	ordersFn      func(ctx context.Context, filter repository.OrderFilter, adminView bool) (*model.OrderPage, error)
	orderFn       func(ctx context.Context, id int64) (*model.Order, error)
	updateOrderFn func(ctx context.Context, id int64, params usecase.UpdateParams) (*model.Order, error)
	decideOrderFn func(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error)
	deleteOrderFn func(ctx context.Context, id int64) error
	settingsFn    func(ctx context.Context) (map[string]string, error)
	setPublicFn   func(ctx context.Context, url string) error
	setGalleryFn  func(ctx context.Context, slot int, url string) error
}

func (s facadeStub) Login(ctx context.Context, username, password string) (string, error) {
	return s.loginFn(ctx, username, password)
}

func (s facadeStub) CreateOrder(ctx context.Context, name, udid, imageName string, image []byte) (*model.Order, error) {
	return s.createOrderFn(ctx, name, udid, imageName, image)
}

func (s facadeStub) Orders(ctx context.Context, filter repository.OrderFilter, adminView bool) (*model.OrderPage, error) {
	return s.ordersFn(ctx, filter, adminView)
}

func (s facadeStub) Order(ctx context.Context, id int64) (*model.Order, error) {
	return s.orderFn(ctx, id)
}

func (s facadeStub) UpdateOrder(ctx context.Context, id int64, params usecase.UpdateParams) (*model.Order, error) {
	return s.updateOrderFn(ctx, id, params)
}

func (s facadeStub) DecideOrder(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error) {
	return s.decideOrderFn(ctx, id, status)
}

func (s facadeStub) DeleteOrder(ctx context.Context, id int64) error {
	return s.deleteOrderFn(ctx, id)
}

func (s facadeStub) Settings(ctx context.Context) (map[string]string, error) {
	return s.settingsFn(ctx)
}

func (s facadeStub) SetPublicImage(ctx context.Context, url string) error {
	return s.setPublicFn(ctx, url)
}

func (s facadeStub) SetGalleryImage(ctx context.Context, slot int, url string) error {
	return s.setGalleryFn(ctx, slot, url)
}

func performRequest(t *testing.T, method, route, target string, handler gin.HandlerFunc, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, route, handler)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func formBody(values url.Values) ([]byte, map[string]string) {
	return []byte(values.Encode()), map[string]string{"Content-Type": "application/x-www-form-urlencoded"}
}

func multipartBody(t *testing.T, fields map[string]string, fileField, fileName string, file []byte) ([]byte, map[string]string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		if err != nil {
			t.Fatalf("create file part: %v", err)
		}
		if _, err := part.Write(file); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return buf.Bytes(), map[string]string{"Content-Type": writer.FormDataContentType()}
}

func TestAuthHandlerLoginSuccess(t *testing.T) {
	handler := NewAuthHandler(facadeStub{loginFn: func(_ context.Context, username, password string) (string, error) {
		if username != "admin" || password != "secret" {
			t.Fatalf("unexpected credentials %q %q", username, password)
		}
		return "shared-token", nil
	}})

	body, headers := formBody(url.Values{"username": {"admin"}, "password": {"secret"}})
	resp := performRequest(t, http.MethodPost, "/login", "/login", handler.Login, body, headers)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var out dto.LoginResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Token != "shared-token" || out.Username != "admin" {
		t.Fatalf("unexpected response %+v", out)
	}
}

func TestAuthHandlerLoginFailures(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
		err    error
		status int
	}{
		{"missing credentials", url.Values{"username": {"admin"}}, nil, http.StatusBadRequest},
		{"invalid credentials", url.Values{"username": {"admin"}, "password": {"bad"}}, domainErrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"storage failure", url.Values{"username": {"admin"}, "password": {"x"}}, errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewAuthHandler(facadeStub{loginFn: func(context.Context, string, string) (string, error) {
				return "", tc.err
			}})
			body, headers := formBody(tc.values)
			resp := performRequest(t, http.MethodPost, "/login", "/login", handler.Login, body, headers)
			if resp.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, resp.Code)
			}
		})
	}
}

func TestOrderHandlerCreate(t *testing.T) {
	handler := NewOrderHandler(facadeStub{createOrderFn: func(_ context.Context, name, udid, imageName string, image []byte) (*model.Order, error) {
		if name != "buyer ($12 Plan)" || udid != "00008030-001A2B3C4D5E6F78" {
			t.Fatalf("unexpected fields %q %q", name, udid)
		}
		if imageName != "proof.jpg" || string(image) != "jpeg-bytes" {
			t.Fatalf("unexpected upload %q %q", imageName, image)
		}
		return &model.Order{ID: 501, Name: name, UDID: udid, Status: model.OrderStatusPending, CreatedAt: time.Now()}, nil
	}}, "secret")

	body, headers := multipartBody(t,
		map[string]string{"name": "buyer ($12 Plan)", "udid": "00008030-001A2B3C4D5E6F78"},
		"image", "proof.jpg", []byte("jpeg-bytes"))
	resp := performRequest(t, http.MethodPost, "/orders", "/orders", handler.Create, body, headers)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var out dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.ID != 501 || out.Status != "pending" {
		t.Fatalf("unexpected response %+v", out)
	}
}

func TestOrderHandlerCreateValidation(t *testing.T) {
	handler := NewOrderHandler(facadeStub{createOrderFn: func(context.Context, string, string, string, []byte) (*model.Order, error) {
		t.Fatal("facade should not be reached")
		return nil, nil
	}}, "secret")

	t.Run("missing fields", func(t *testing.T) {
		body, headers := multipartBody(t, map[string]string{"name": "x"}, "image", "p.jpg", []byte("img"))
		resp := performRequest(t, http.MethodPost, "/orders", "/orders", handler.Create, body, headers)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", resp.Code)
		}
	})

	t.Run("missing image", func(t *testing.T) {
		body, headers := multipartBody(t, map[string]string{"name": "x", "udid": "y"}, "", "", nil)
		resp := performRequest(t, http.MethodPost, "/orders", "/orders", handler.Create, body, headers)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", resp.Code)
		}
	})
}

func TestOrderHandlerListPassesAdminView(t *testing.T) {
	var gotAdmin bool
	handler := NewOrderHandler(facadeStub{ordersFn: func(_ context.Context, _ repository.OrderFilter, adminView bool) (*model.OrderPage, error) {
		gotAdmin = adminView
		return &model.OrderPage{Page: 1, PageSize: 12}, nil
	}}, "secret")

	resp := performRequest(t, http.MethodGet, "/orders", "/orders", handler.List, nil, nil)
	if resp.Code != http.StatusOK || gotAdmin {
		t.Fatalf("anonymous request must not be admin view (code %d, admin %v)", resp.Code, gotAdmin)
	}

	resp = performRequest(t, http.MethodGet, "/orders", "/orders", handler.List, nil, map[string]string{"Authorization": "Bearer secret"})
	if resp.Code != http.StatusOK || !gotAdmin {
		t.Fatalf("bearer request must be admin view (code %d, admin %v)", resp.Code, gotAdmin)
	}

	resp = performRequest(t, http.MethodGet, "/orders", "/orders", handler.List, nil, map[string]string{"Authorization": "Bearer wrong"})
	if resp.Code != http.StatusOK || gotAdmin {
		t.Fatalf("wrong bearer must not be admin view (code %d, admin %v)", resp.Code, gotAdmin)
	}
}

func TestOrderHandlerListParsesFilter(t *testing.T) {
	var gotFilter repository.OrderFilter
	handler := NewOrderHandler(facadeStub{ordersFn: func(_ context.Context, filter repository.OrderFilter, _ bool) (*model.OrderPage, error) {
		gotFilter = filter
		return &model.OrderPage{}, nil
	}}, "secret")

	resp := performRequest(t, http.MethodGet, "/orders", "/orders?status=pending&q=buyer&page=2&page_size=5&sort=id", handler.List, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotFilter.Status == nil || *gotFilter.Status != model.OrderStatusPending {
		t.Fatalf("status filter not parsed: %+v", gotFilter.Status)
	}
	if gotFilter.Query != "buyer" || gotFilter.Page != 2 || gotFilter.PageSize != 5 || !gotFilter.SortAsc {
		t.Fatalf("filter not parsed: %+v", gotFilter)
	}
}

func TestOrderHandlerListRejectsUnknownStatus(t *testing.T) {
	handler := NewOrderHandler(facadeStub{ordersFn: func(context.Context, repository.OrderFilter, bool) (*model.OrderPage, error) {
		t.Fatal("facade should not be reached")
		return nil, nil
	}}, "secret")

	resp := performRequest(t, http.MethodGet, "/orders", "/orders?status=shipped", handler.List, nil, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestOrderHandlerGet(t *testing.T) {
	handler := NewOrderHandler(facadeStub{orderFn: func(_ context.Context, id int64) (*model.Order, error) {
		if id != 501 {
			return nil, domainErrors.ErrNotFound
		}
		return &model.Order{ID: 501, Status: model.OrderStatusPending}, nil
	}}, "secret")

	resp := performRequest(t, http.MethodGet, "/orders/:id", "/orders/501", handler.Get, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/orders/:id", "/orders/999", handler.Get, nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/orders/:id", "/orders/abc", handler.Get, nil, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric id, got %d", resp.Code)
	}
}

func TestOrderHandlerUpdateMergesFormFields(t *testing.T) {
	var gotParams usecase.UpdateParams
	handler := NewOrderHandler(facadeStub{updateOrderFn: func(_ context.Context, id int64, params usecase.UpdateParams) (*model.Order, error) {
		if id != 501 {
			t.Fatalf("unexpected id %d", id)
		}
		gotParams = params
		return &model.Order{ID: 501}, nil
	}}, "secret")

	body, headers := multipartBody(t,
		map[string]string{"name": "new name", "download_link": "https://files.example/app.ipa"},
		"image", "new.jpg", []byte("img"))
	resp := performRequest(t, http.MethodPut, "/orders/:id", "/orders/501", handler.Update, body, headers)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotParams.Name == nil || *gotParams.Name != "new name" {
		t.Fatalf("name not forwarded: %+v", gotParams.Name)
	}
	if gotParams.UDID != nil {
		t.Fatal("absent field must stay nil")
	}
	if gotParams.DownloadLink == nil || *gotParams.DownloadLink != "https://files.example/app.ipa" {
		t.Fatalf("download link not forwarded: %+v", gotParams.DownloadLink)
	}
	if string(gotParams.Image) != "img" || gotParams.ImageName != "new.jpg" {
		t.Fatalf("image not forwarded: %q %q", gotParams.Image, gotParams.ImageName)
	}
}

func TestOrderHandlerUpdateStatus(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
		err    error
		status int
	}{
		{"approve", "/orders/501/status", `{"status":"approved"}`, nil, http.StatusOK},
		{"missing status", "/orders/501/status", `{}`, nil, http.StatusBadRequest},
		{"invalid status", "/orders/501/status", `{"status":"shipped"}`, domainErrors.ErrInvalidStatus, http.StatusBadRequest},
		{"unknown order", "/orders/999/status", `{"status":"approved"}`, domainErrors.ErrNotFound, http.StatusNotFound},
		{"already decided", "/orders/501/status", `{"status":"rejected"}`, domainErrors.ErrOrderDecided, http.StatusConflict},
		{"storage failure", "/orders/501/status", `{"status":"approved"}`, errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewOrderHandler(facadeStub{decideOrderFn: func(_ context.Context, id int64, status model.OrderStatus) (*model.Order, error) {
				if tc.err != nil {
					return nil, tc.err
				}
				return &model.Order{ID: id, Status: status}, nil
			}}, "secret")

			resp := performRequest(t, http.MethodPut, "/orders/:id/status", tc.target, handler.UpdateStatus,
				[]byte(tc.body), map[string]string{"Content-Type": "application/json"})
			if resp.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, resp.Code, resp.Body.String())
			}
		})
	}
}

func TestOrderHandlerDelete(t *testing.T) {
	handler := NewOrderHandler(facadeStub{deleteOrderFn: func(_ context.Context, id int64) error {
		if id != 501 {
			return domainErrors.ErrNotFound
		}
		return nil
	}}, "secret")

	resp := performRequest(t, http.MethodDelete, "/orders/:id", "/orders/501", handler.Delete, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "order deleted") {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}

	resp = performRequest(t, http.MethodDelete, "/orders/:id", "/orders/999", handler.Delete, nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestSettingsHandlerGet(t *testing.T) {
	handler := NewSettingsHandler(facadeStub{settingsFn: func(context.Context) (map[string]string, error) {
		return map[string]string{"public_image_url": "https://cdn.example/p.jpg"}, nil
	}})

	resp := performRequest(t, http.MethodGet, "/config", "/config", handler.Get, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var out map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out["public_image_url"] != "https://cdn.example/p.jpg" {
		t.Fatalf("unexpected snapshot %+v", out)
	}
}

func TestSettingsHandlerPutPublic(t *testing.T) {
	var gotURL string
	handler := NewSettingsHandler(facadeStub{setPublicFn: func(_ context.Context, url string) error {
		if url == "" {
			return domainErrors.ErrEmptyImageURL
		}
		gotURL = url
		return nil
	}})

	body, headers := formBody(url.Values{"public_image_url": {"https://cdn.example/new.jpg"}})
	resp := performRequest(t, http.MethodPut, "/config/public", "/config/public", handler.PutPublic, body, headers)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotURL != "https://cdn.example/new.jpg" {
		t.Fatalf("url not forwarded: %q", gotURL)
	}

	body, headers = formBody(url.Values{})
	resp = performRequest(t, http.MethodPut, "/config/public", "/config/public", handler.PutPublic, body, headers)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestSettingsHandlerPutGallery(t *testing.T) {
	handler := NewSettingsHandler(facadeStub{setGalleryFn: func(_ context.Context, slot int, url string) error {
		if slot < 1 || slot > 5 {
			return domainErrors.ErrInvalidGallerySlot
		}
		if url == "" {
			return domainErrors.ErrEmptyImageURL
		}
		return nil
	}})

	body, headers := formBody(url.Values{"image_url": {"https://cdn.example/g.jpg"}})
	resp := performRequest(t, http.MethodPut, "/config/esign_image/:n", "/config/esign_image/3", handler.PutGallery, body, headers)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPut, "/config/esign_image/:n", "/config/esign_image/9", handler.PutGallery, body, headers)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for slot out of range, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPut, "/config/esign_image/:n", "/config/esign_image/x", handler.PutGallery, body, headers)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric slot, got %d", resp.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	ok := NewHealthHandler(func(context.Context) error { return nil })
	resp := performRequest(t, http.MethodGet, "/", "/", ok.Get, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "Order API") {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}

	down := NewHealthHandler(func(context.Context) error { return errors.New("db down") })
	resp = performRequest(t, http.MethodGet, "/", "/", down.Get, nil, nil)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}
