package orderapi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nhoyhub/esignhub/internal/domain/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client, err := NewClient(server.URL, "api-token", logger)
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	return client
}

func TestNewClientValidatesURL(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	if _, err := NewClient(":://bad", "t", logger); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := NewClient("/relative", "t", logger); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestCreateOrderSendsMultipartForm(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/orders" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if r.FormValue("name") != "buyer ($12 Plan)" || r.FormValue("udid") != "udid-1" {
			t.Fatalf("unexpected fields %q %q", r.FormValue("name"), r.FormValue("udid"))
		}
		file, _, err := r.FormFile("image")
		if err != nil {
			t.Fatalf("image part missing: %v", err)
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		if string(data) != "jpeg-bytes" {
			t.Fatalf("unexpected image %q", data)
		}

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":501,"status":"pending"}`))
	})

	id, err := client.CreateOrder(context.Background(), "buyer ($12 Plan)", "udid-1", []byte("jpeg-bytes"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 501 {
		t.Fatalf("unexpected id %d", id)
	}
}

func TestCreateOrderServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	if _, err := client.CreateOrder(context.Background(), "n", "u", []byte("x")); err == nil {
		t.Fatal("expected error")
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	var gotAuth, gotBody string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/orders/501/status" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":501,"status":"approved"}`))
	})

	if err := client.UpdateOrderStatus(context.Background(), 501, model.OrderStatusApproved); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer api-token" {
		t.Fatalf("unexpected authorization %q", gotAuth)
	}
	if gotBody != `{"status":"approved"}` {
		t.Fatalf("unexpected body %q", gotBody)
	}
}

func TestUpdateOrderStatusErrorMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, ErrOrderNotFound},
		{http.StatusConflict, ErrOrderDecided},
	}

	for _, tc := range cases {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tc.status)
		})
		err := client.UpdateOrderStatus(context.Background(), 501, model.OrderStatusApproved)
		if !errors.Is(err, tc.want) {
			t.Fatalf("status %d: expected %v, got %v", tc.status, tc.want, err)
		}
	}
}

func TestUpdateOrderStatusUnexpectedFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	if err := client.UpdateOrderStatus(context.Background(), 501, model.OrderStatusRejected); err == nil {
		t.Fatal("expected error")
	}
}
