package identity

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestHostedClientRegisterSendsPayload(t *testing.T) {
	var (
		gotPath   string
		gotQuery  string
		gotHeader http.Header
		gotBody   map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("redirect_to")
		gotHeader = r.Header.Clone()
		data, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(data, &gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"u_1"}`))
	}))
	defer srv.Close()

	client, err := NewHostedClient(srv.URL, "anon-key")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	err = client.Register(context.Background(), Registration{
		Email:      "ada@example.com",
		Password:   "secret123",
		RedirectTo: "https://skillswap.test/",
		RequestID:  "req-1",
		Profile: Profile{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Skills:    []string{"Math"},
		},
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if gotPath != "/auth/v1/signup" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotQuery != "https://skillswap.test/" {
		t.Fatalf("redirect_to = %q", gotQuery)
	}
	if gotHeader.Get("apikey") != "anon-key" || gotHeader.Get("Authorization") != "Bearer anon-key" {
		t.Fatalf("auth headers missing: %v", gotHeader)
	}
	if gotHeader.Get("X-Request-Id") != "req-1" {
		t.Fatalf("request id header = %q", gotHeader.Get("X-Request-Id"))
	}

	want := map[string]any{
		"email":    "ada@example.com",
		"password": "secret123",
		"data": map[string]any{
			"first_name": "Ada",
			"last_name":  "Lovelace",
			"bio":        "",
			"skills":     []any{"Math"},
		},
	}
	if diff := cmp.Diff(want, gotBody); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestHostedClientClassifiesResponses(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantDomain *DomainError
		wantErr    bool
	}{
		{name: "created", status: http.StatusOK, body: `{}`},
		{
			name:       "msg field",
			status:     http.StatusUnprocessableEntity,
			body:       `{"code":422,"error_code":"user_already_exists","msg":"User already registered"}`,
			wantDomain: &DomainError{Message: "User already registered", Code: "user_already_exists", Status: 422},
			wantErr:    true,
		},
		{
			name:       "error_description field",
			status:     http.StatusBadRequest,
			body:       `{"error":"invalid_grant","error_description":"Password should be at least 6 characters"}`,
			wantDomain: &DomainError{Message: "Password should be at least 6 characters", Status: 400},
			wantErr:    true,
		},
		{
			name:       "message kept verbatim",
			status:     http.StatusUnprocessableEntity,
			body:       `{"msg":"  User already registered \n"}`,
			wantDomain: &DomainError{Message: "  User already registered \n", Status: 422},
			wantErr:    true,
		},
		{
			name:       "blank message skipped",
			status:     http.StatusBadRequest,
			body:       `{"msg":"   ","message":"Signups are disabled"}`,
			wantDomain: &DomainError{Message: "Signups are disabled", Status: 400},
			wantErr:    true,
		},
		{name: "server error", status: http.StatusInternalServerError, body: `{"msg":"boom"}`, wantErr: true},
		{name: "malformed body", status: http.StatusBadRequest, body: `<html>`, wantErr: true},
		{name: "no message", status: http.StatusBadRequest, body: `{"code":400}`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			client, err := NewHostedClient(srv.URL, "key")
			if err != nil {
				t.Fatalf("new client: %v", err)
			}
			err = client.Register(context.Background(), Registration{Email: "a@b.c", Password: "secret"})
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			domain, ok := AsDomainError(err)
			if tc.wantDomain == nil {
				if ok {
					t.Fatalf("unexpected domain error %+v", domain)
				}
				return
			}
			if !ok {
				t.Fatalf("expected domain error, got %v", err)
			}
			if diff := cmp.Diff(tc.wantDomain, domain); diff != "" {
				t.Fatalf("domain error mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHostedClientTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client, err := NewHostedClient(url, "key", WithTimeout(time.Second))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	err = client.Register(context.Background(), Registration{Email: "a@b.c"})
	if err == nil {
		t.Fatalf("expected transport error")
	}
	if _, ok := AsDomainError(err); ok {
		t.Fatalf("transport failure classified as domain error: %v", err)
	}
}

func TestHostedClientHonoursCancellation(t *testing.T) {
	client, err := NewHostedClient("http://127.0.0.1:1", "key")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := client.Register(ctx, Registration{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestNewHostedClientValidatesInput(t *testing.T) {
	if _, err := NewHostedClient("", "key"); err == nil {
		t.Fatalf("expected error for empty url")
	}
	if _, err := NewHostedClient("ftp://example.com", "key"); err == nil {
		t.Fatalf("expected error for unsupported scheme")
	}
	if _, err := NewHostedClient("https://example.com", " "); err == nil {
		t.Fatalf("expected error for empty key")
	}
}

func TestHostedClientCustomSignupPath(t *testing.T) {
	client, err := NewHostedClient("https://id.example.com/base/", "key", WithSignupPath("register"))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if got := client.endpoint(""); got != "https://id.example.com/base/register" {
		t.Fatalf("endpoint = %q", got)
	}
}
