package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/cleanorder/internal/domain/errors"
	"github.com/polkiloo/cleanorder/internal/domain/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewHTTPClient(srv.URL, time.Second, staticToken(token), testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func TestNewHTTPClientValidatesURL(t *testing.T) {
	if _, err := NewHTTPClient("://bad-url", 0, nil, testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewHTTPClient("/relative", 0, nil, testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
	client, err := NewHTTPClient("http://example.com", 0, nil, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.httpClient.Timeout != 10*time.Second {
		t.Fatalf("expected default timeout, got %v", client.httpClient.Timeout)
	}
}

func TestBearerTokenIsAttached(t *testing.T) {
	var got string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}, "abc")

	if _, err := client.Promotions(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Bearer abc" {
		t.Fatalf("expected bearer header, got %q", got)
	}
}

func TestNoAuthorizationWithoutToken(t *testing.T) {
	var present bool
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header["Authorization"]
		_, _ = w.Write([]byte(`[]`))
	}, "")

	if _, err := client.Orders(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if present {
		t.Fatal("expected no authorization header")
	}
}

func TestLoginAndRegister(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		switch r.URL.Path {
		case "/api/auth/login":
			if body["email"] != "a@b.c" || body["password"] != "secret1" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte(`{"token":"login-token","tokenType":"Bearer"}`))
		case "/api/auth/register":
			if body["name"] != "Ann" || body["phone"] != "123" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			_, _ = w.Write([]byte(`{"token":"register-token"}`))
		}
	}, "")

	token, err := client.Login(context.Background(), "a@b.c", "secret1")
	if err != nil || token != "login-token" {
		t.Fatalf("unexpected login result %q %v", token, err)
	}

	token, err = client.Register(context.Background(), model.Registration{Email: "a@b.c", Password: "secret1", Name: "Ann", Phone: "123"})
	if err != nil || token != "register-token" {
		t.Fatalf("unexpected register result %q %v", token, err)
	}

	_, err = client.Login(context.Background(), "a@b.c", "wrong")
	var serverErr ServerError
	if !errors.As(err, &serverErr) || serverErr.Status != http.StatusUnauthorized {
		t.Fatalf("expected server error, got %v", err)
	}
	if serverErr.Message != UnknownErrorMessage {
		t.Fatalf("expected fallback message, got %q", serverErr.Message)
	}
}

func TestLoginWithoutTokenIsEmptyResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}, "")
	if _, err := client.Login(context.Background(), "a", "b"); !errors.Is(err, domainErrors.ErrEmptyResponse) {
		t.Fatalf("expected empty response error, got %v", err)
	}
}

func TestServerErrorCarriesBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("address is required\n"))
	}, "")

	_, err := client.Profile(context.Background())
	var serverErr ServerError
	if !errors.As(err, &serverErr) {
		t.Fatalf("expected server error, got %v", err)
	}
	if serverErr.Message != "address is required" || serverErr.Status != http.StatusBadRequest {
		t.Fatalf("unexpected server error: %+v", serverErr)
	}
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	client, err := NewHTTPClient(baseURL, time.Second, nil, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = client.Promotions(context.Background())
	var netErr NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected network error, got %v", err)
	}
	if netErr.Unwrap() == nil {
		t.Fatal("expected wrapped cause")
	}
}

func TestEmptyBodyIsHardErrorForReads(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, "")

	if _, err := client.Promotions(context.Background()); !errors.Is(err, domainErrors.ErrEmptyResponse) {
		t.Fatalf("expected empty response error, got %v", err)
	}
	if _, err := client.OrderDetails(context.Background(), "x"); !errors.Is(err, domainErrors.ErrEmptyResponse) {
		t.Fatalf("expected empty response error, got %v", err)
	}
}

func TestPromotionsDecoding(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/promotions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[{"id":1,"code":"WELCOME10","title":"Welcome","description":null,"discountPct":10.0,"active":true,"validFrom":"2024-01-01","validTo":null}]`))
	}, "")

	promos, err := client.Promotions(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(promos) != 1 {
		t.Fatalf("expected one promotion, got %d", len(promos))
	}
	p := promos[0]
	if p.Code != "WELCOME10" || !p.Active || !p.DiscountPct.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("unexpected promotion: %+v", p)
	}
	if p.ValidFrom == nil || p.ValidFrom.Year() != 2024 || p.ValidTo != nil || p.Description != nil {
		t.Fatalf("unexpected optional fields: %+v", p)
	}
}

func TestSearchOrdersQueryAndPage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/api/orders/search" || q.Get("q") != "coat" || q.Get("page") != "2" || q.Get("size") != "5" {
			t.Errorf("unexpected request %s", r.URL.String())
		}
		_, _ = w.Write([]byte(`{"content":[{"id":"o1","createdAt":"2024-05-01T10:00:00","scheduledDateTime":"2024-05-02T12:30:00","totalAmount":450.0,"status":"NEW"}],"totalPages":3,"totalElements":11,"number":2,"size":5}`))
	}, "")

	page, err := client.SearchOrders(context.Background(), "coat", 2, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.TotalPages != 3 || page.TotalElements != 11 || page.Number != 2 || page.Size != 5 {
		t.Fatalf("unexpected page meta: %+v", page)
	}
	if len(page.Content) != 1 || page.Content[0].ID != "o1" || page.Content[0].Status != model.OrderStatusNew {
		t.Fatalf("unexpected content: %+v", page.Content)
	}
	if page.Content[0].ScheduledAt.Hour() != 12 || page.Content[0].ScheduledAt.Minute() != 30 {
		t.Fatalf("unexpected scheduled time: %v", page.Content[0].ScheduledAt)
	}
}

func TestOrderDetails(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/orders/abc-1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"id":"abc-1","userId":7,"createdAt":"2024-05-01T10:00:00","scheduledDateTime":"2024-05-02T12:30:00","address":"Main 1","promoCode":"WELCOME10","totalAmount":450,"status":"READY","services":[1,3],"imageUrls":["/api/files/orders/a.jpg"]}`))
	}, "")

	order, err := client.OrderDetails(context.Background(), "abc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.UserID != 7 || order.Address != "Main 1" || order.Status != model.OrderStatusReady {
		t.Fatalf("unexpected order: %+v", order)
	}
	if order.PromoCode == nil || *order.PromoCode != "WELCOME10" {
		t.Fatalf("unexpected promo code: %v", order.PromoCode)
	}
	if len(order.Services) != 2 || order.Services[1] != 3 || len(order.ImageURLs) != 1 {
		t.Fatalf("unexpected collections: %+v", order)
	}
}

func TestUpdateProfile(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("unexpected method %s", r.Method)
		}
		var body profileUpdateRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		_ = json.NewEncoder(w).Encode(profileResponse{ID: 1, Email: "a@b.c", Name: body.Name, Phone: body.Phone, CreatedAt: "2024-01-01T00:00:00"})
	}, "t")

	profile, err := client.UpdateProfile(context.Background(), model.ProfileUpdate{Name: "Bob", Phone: "555"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Name != "Bob" || profile.Phone != "555" || profile.CreatedAt.IsZero() {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

func TestLogEventIgnoresResponseBody(t *testing.T) {
	var got map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
	}, "")

	userID := int64(3)
	if err := client.LogEvent(context.Background(), model.AnalyticsEvent{UserID: &userID, Type: "login_success"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["eventType"] != "login_success" || got["userId"] != float64(3) || got["details"] != nil {
		t.Fatalf("unexpected payload: %v", got)
	}
}

func TestParseTimestamp(t *testing.T) {
	if parseTimestamp("garbage").IsZero() != true {
		t.Fatal("expected zero time for garbage")
	}
	if ts := parseTimestamp("2024-05-01T10:00:00Z"); ts.UTC().Hour() != 10 {
		t.Fatalf("unexpected zoned parse: %v", ts)
	}
	if ts := parseTimestamp("2024-05-01T10:00:00.123"); ts.Nanosecond() == 0 {
		t.Fatalf("expected fractional seconds, got %v", ts)
	}
	empty := ""
	if parseOptionalTimestamp(&empty) != nil || parseOptionalTimestamp(nil) != nil {
		t.Fatal("expected nil for empty optional timestamp")
	}
	if !strings.HasPrefix(LocalDateTimeLayout, "2006-01-02T") {
		t.Fatal("unexpected layout")
	}
}
