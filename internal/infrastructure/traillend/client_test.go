package traillend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/example/traillend-client/internal/config"
	"github.com/example/traillend-client/internal/domain/inventory"
	"github.com/example/traillend-client/internal/domain/reservation"
)

var camera = inventory.ItemRef{ID: 7, Name: "DSLR Camera", Department: "SCITC"}

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(config.Config{
		BaseURL:     srv.URL + "/api",
		Timezone:    "UTC",
		HTTPTimeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func testSubmission(t *testing.T) reservation.Submission {
	t.Helper()
	return reservation.Submission{
		ItemID:    7,
		StartDate: "2025-07-22 14:00:00",
		EndDate:   "2025-07-22 15:30:00",
		Signature: "sig-data",
	}
}

func TestSubmitSuccess(t *testing.T) {
	var gotBody reservation.Submission
	var gotAuth string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/reserve/" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		_, _ = w.Write([]byte(`{"reservation":{"transaction_id":"T1","start_datetime":"2025-07-22 14:00:00","end_datetime":"2025-07-22 15:30:00","fee":"₱50.00"}}`))
	}))
	c.SetToken("jwt-access")

	receipt, err := c.Submit(context.Background(), camera, testSubmission(t))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if gotAuth != "Bearer jwt-access" {
		t.Errorf("authorization header = %q", gotAuth)
	}
	if gotBody.ItemID != 7 || gotBody.StartDate != "2025-07-22 14:00:00" {
		t.Errorf("wire body = %+v", gotBody)
	}
	if receipt.TransactionID != "T1" {
		t.Errorf("transaction id = %q", receipt.TransactionID)
	}
	if receipt.QRPayload() != "T1" {
		t.Errorf("qr payload = %q", receipt.QRPayload())
	}
	if receipt.Fee != "₱50.00" {
		t.Errorf("fee = %q", receipt.Fee)
	}
	if got := reservation.FormatReadable(receipt.Window.Start); got != "2025-07-22 2:00 PM" {
		t.Errorf("start displays as %q", got)
	}
}

func TestSubmitNumericTransactionID(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"reservation":{"transaction_id":4102,"start_datetime":"2025-07-22 14:00:00","end_datetime":"2025-07-22 15:30:00","fee":"Free"}}`))
	}))
	c.SetToken("jwt")

	receipt, err := c.Submit(context.Background(), camera, testSubmission(t))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if receipt.TransactionID != "4102" {
		t.Errorf("transaction id = %q", receipt.TransactionID)
	}
}

func TestSubmitWithoutTokenIsLocal(t *testing.T) {
	called := false
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := c.Submit(context.Background(), camera, testSubmission(t))
	if !errors.Is(err, reservation.ErrAuthenticationRequired) {
		t.Fatalf("got %v, want ErrAuthenticationRequired", err)
	}
	if called {
		t.Error("request reached the server despite missing token")
	}
}

func TestSubmitServerFailure(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"Item already reserved for that window."}`))
	}))
	c.SetToken("jwt")

	_, err := c.Submit(context.Background(), camera, testSubmission(t))
	var subErr *reservation.SubmissionError
	if !errors.As(err, &subErr) {
		t.Fatalf("got %v, want SubmissionError", err)
	}
	if subErr.Status != http.StatusConflict {
		t.Errorf("status = %d", subErr.Status)
	}
	if subErr.Message != "Item already reserved for that window." {
		t.Errorf("server message = %q", subErr.Message)
	}
}

func TestSubmitTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c, err := New(config.Config{BaseURL: srv.URL + "/api", Timezone: "UTC", HTTPTimeout: time.Second})
	if err != nil {
		t.Fatal(err)
	}
	c.SetToken("jwt")

	_, err = c.Submit(context.Background(), camera, testSubmission(t))
	var subErr *reservation.SubmissionError
	if !errors.As(err, &subErr) {
		t.Fatalf("got %v, want SubmissionError", err)
	}
	if subErr.Status != 0 {
		t.Errorf("transport failure carries status %d", subErr.Status)
	}
}

func TestSubmitMalformedResponses(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no reservation payload", `{"ok":true}`},
		{"missing transaction id", `{"reservation":{"start_datetime":"2025-07-22 14:00:00"}}`},
		{"not json", `<html>proxy error</html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			c.SetToken("jwt")

			_, err := c.Submit(context.Background(), camera, testSubmission(t))
			if !errors.Is(err, reservation.ErrMalformedResponse) {
				t.Errorf("got %v, want ErrMalformedResponse", err)
			}
		})
	}
}

func TestSubmitUnparseableEchoStillSucceeds(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"reservation":{"transaction_id":"T9","start_datetime":"soon","end_datetime":"later","fee":"Free"}}`))
	}))
	c.SetToken("jwt")

	receipt, err := c.Submit(context.Background(), camera, testSubmission(t))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !receipt.Window.IsZero() {
		t.Errorf("window composed from garbage echo: %+v", receipt.Window)
	}
	if got := reservation.FormatReadable(receipt.Window.Start); got != reservation.InvalidDateDisplay {
		t.Errorf("garbage echo displays as %q", got)
	}
}

func TestLogin(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/token/" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var creds struct{ Username, Password string }
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds.Username != "student1" || creds.Password != "hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"No active account found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access":"jwt-access","refresh":"jwt-refresh"}`))
	}))

	token, err := c.Login(context.Background(), "student1", "hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token != "jwt-access" {
		t.Errorf("token = %q", token)
	}

	if _, err := c.Login(context.Background(), "student1", "wrong"); err == nil {
		t.Error("expected error for bad credentials")
	}
}

func TestItems(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/items/" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[{"id":7,"name":"DSLR Camera","department":"SCITC","payment_type":"custom","custom_price":"50"}]`))
	}))

	items, err := c.Items(context.Background())
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if len(items) != 1 || items[0].Name != "DSLR Camera" {
		t.Fatalf("items = %+v", items)
	}
	if got := items[0].FeeDisplay(); got != "₱50.00" {
		t.Errorf("fee = %q", got)
	}
}

func TestReservationsAndCancel(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/reservations/user/42/":
			_, _ = w.Write([]byte(`[{"id":1,"item_name":"Tripod","status":"reserved","start_datetime":"2025-07-22 14:00:00","end_datetime":"2025-07-22 15:30:00"}]`))
		case "/api/reservations/1/cancel/":
			if r.Method != http.MethodPost {
				t.Errorf("cancel method = %s", r.Method)
			}
			_, _ = w.Write([]byte(`{"message":"cancelled"}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	c.SetToken("jwt")

	records, err := c.ReservationsForUser(context.Background(), 42)
	if err != nil {
		t.Fatalf("ReservationsForUser: %v", err)
	}
	if len(records) != 1 || records[0].Status != "reserved" {
		t.Fatalf("records = %+v", records)
	}

	if err := c.Cancel(context.Background(), 1); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
}

func TestNotificationsRequireToken(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"message":"Your reservation is due tomorrow."}]`))
	}))

	if _, err := c.Notifications(context.Background()); !errors.Is(err, reservation.ErrAuthenticationRequired) {
		t.Fatalf("got %v, want ErrAuthenticationRequired", err)
	}

	c.SetToken("jwt")
	notes, err := c.Notifications(context.Background())
	if err != nil {
		t.Fatalf("Notifications: %v", err)
	}
	if len(notes) != 1 || notes[0].Message == "" {
		t.Errorf("notes = %+v", notes)
	}
}
