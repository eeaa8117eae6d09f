package chainrpc

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "claimerapi/contexts/snapshot-claims/claim-service/domain/errors"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return client
}

func TestGetTipHeight(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/tip" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"hash":"00ff","height":1234567}`))
	}))

	tip, err := client.GetTipHeight(context.Background())
	if err != nil {
		t.Fatalf("GetTipHeight returned error: %v", err)
	}
	if tip.Hash != "00ff" || tip.Height != 1234567 {
		t.Fatalf("unexpected tip %+v", tip)
	}
}

func TestGetBalanceParsesLargeValues(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"balance":"123456789012345678901234567890"}`))
	}))

	balance, err := client.GetBalance(context.Background(), "addr-1", 1)
	if err != nil {
		t.Fatalf("GetBalance returned error: %v", err)
	}
	if balance.String() != "123456789012345678901234567890" {
		t.Fatalf("balance = %s", balance.String())
	}
}

func TestNonSuccessStatusIsUnavailable(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))

	_, err := client.GetTipHeight(context.Background())
	if !errors.Is(err, domainerrors.ErrChainUnavailable) {
		t.Fatalf("expected ErrChainUnavailable, got %v", err)
	}
}

func TestMalformedBodyIsUnavailable(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))

	_, err := client.GetBalance(context.Background(), "addr-1", 1)
	if !errors.Is(err, domainerrors.ErrChainUnavailable) {
		t.Fatalf("expected ErrChainUnavailable, got %v", err)
	}
}

func TestNegativeVerificationIsNotAnError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/verifymessage" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"verified":false}`))
	}))

	verified, err := client.VerifySignature(context.Background(), "addr-1", "message", "sig")
	if err != nil {
		t.Fatalf("a well-formed negative answer must not error: %v", err)
	}
	if verified {
		t.Fatal("expected verified == false")
	}
}
