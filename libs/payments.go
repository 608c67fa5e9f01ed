package libs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PaymentsClient calls the serverless payment function endpoints:
// create-payment-intent, verify-payment, and confirm-pickup-payment.
//
// The payment function charges the customer's saved payment method
// synchronously: create-payment-intent submits the charge itself, with no
// separate client-side confirmation step, so VerifyPayment can be called
// immediately after CreateIntent returns.
type PaymentsClient struct {
	baseURL string
	client  *http.Client
}

func NewPaymentsClient(baseURL string) *PaymentsClient {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	return &PaymentsClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}

type createIntentPayload struct {
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
	OrderReference string  `json:"order_reference"`
	IdempotencyKey string  `json:"idempotency_key"`
}

// CreateIntent submits a synchronous charge for the grand total and returns
// the resulting intent, ready for VerifyPayment. Amount is the rounded
// total; a fresh idempotency key is attached per attempt.
func (p *PaymentsClient) CreateIntent(ctx context.Context, amount float64, orderReference string) (*PaymentIntent, error) {
	if p.baseURL == "" {
		return nil, fmt.Errorf("payments client baseURL is empty")
	}

	payload := createIntentPayload{
		Amount:         amount,
		Currency:       "usd",
		OrderReference: orderReference,
		IdempotencyKey: uuid.NewString(),
	}

	var intent PaymentIntent
	if err := p.post(ctx, "/create-payment-intent", payload, &intent); err != nil {
		return nil, err
	}
	if intent.ID == "" {
		return nil, fmt.Errorf("payment service returned no intent id")
	}
	return &intent, nil
}

type verifyPayload struct {
	PaymentIntentID string `json:"payment_intent_id"`
}

type verifyResult struct {
	Paid   bool   `json:"paid"`
	Status string `json:"status"`
}

// VerifyPayment checks whether an intent has been paid.
func (p *PaymentsClient) VerifyPayment(ctx context.Context, paymentIntentID string) (bool, error) {
	if p.baseURL == "" {
		return false, fmt.Errorf("payments client baseURL is empty")
	}

	var result verifyResult
	if err := p.post(ctx, "/verify-payment", verifyPayload{PaymentIntentID: paymentIntentID}, &result); err != nil {
		return false, err
	}
	return result.Paid, nil
}

type pickupPaymentPayload struct {
	PickupOrderNumber string  `json:"pickup_order_number"`
	Amount            float64 `json:"amount"`
	IdempotencyKey    string  `json:"idempotency_key"`
}

// ConfirmPickupPayment charges the service fee for a grocery-run order.
func (p *PaymentsClient) ConfirmPickupPayment(ctx context.Context, orderNumber string, amount float64) (*PaymentIntent, error) {
	if p.baseURL == "" {
		return nil, fmt.Errorf("payments client baseURL is empty")
	}

	payload := pickupPaymentPayload{
		PickupOrderNumber: orderNumber,
		Amount:            amount,
		IdempotencyKey:    uuid.NewString(),
	}

	var intent PaymentIntent
	if err := p.post(ctx, "/confirm-pickup-payment", payload, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

func (p *PaymentsClient) post(ctx context.Context, path string, payload, out interface{}) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("payment request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("payment service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to decode payment response: %w", err)
		}
	}
	return nil
}
