package libs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateIntent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/create-payment-intent" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		var payload map[string]interface{}
		json.NewDecoder(r.Body).Decode(&payload)

		if payload["amount"] != 14.45 {
			t.Errorf("expected amount 14.45, got %v", payload["amount"])
		}
		if payload["idempotency_key"] == "" {
			t.Error("missing idempotency key")
		}

		json.NewEncoder(w).Encode(map[string]string{
			"id":            "pi_123",
			"client_secret": "pi_123_secret",
			"status":        "requires_payment_method",
		})
	}))
	defer srv.Close()

	client := NewPaymentsClient(srv.URL)
	intent, err := client.CreateIntent(context.Background(), 14.45, "ORD-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if intent.ID != "pi_123" {
		t.Fatalf("expected pi_123, got %s", intent.ID)
	}
}

func TestCreateIntentRejectsEmptyID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "failed"})
	}))
	defer srv.Close()

	client := NewPaymentsClient(srv.URL)
	if _, err := client.CreateIntent(context.Background(), 10, "ORD-1"); err == nil {
		t.Fatal("expected error for missing intent id")
	}
}

func TestVerifyPayment(t *testing.T) {
	t.Run("paid", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{"paid": true, "status": "succeeded"})
		}))
		defer srv.Close()

		client := NewPaymentsClient(srv.URL)
		paid, err := client.VerifyPayment(context.Background(), "pi_123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !paid {
			t.Fatal("expected paid=true")
		}
	})

	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := NewPaymentsClient(srv.URL)
		if _, err := client.VerifyPayment(context.Background(), "pi_123"); err == nil {
			t.Fatal("expected error on 500")
		}
	})
}

func TestClientRequiresBaseURL(t *testing.T) {
	client := NewPaymentsClient("")
	if _, err := client.CreateIntent(context.Background(), 10, "ORD-1"); err == nil {
		t.Fatal("expected error for empty baseURL")
	}
}
