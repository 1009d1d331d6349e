package mercadopago

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/josecleyvison-eng/jau-emprega/internal/common"
	"github.com/josecleyvison-eng/jau-emprega/internal/domain/payment"
)

// Client calls the Mercado Pago payments API to create PIX charges and read
// their settlement state.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

func NewClient(baseURL, accessToken string, httpClient *http.Client) *Client {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:     trimmed,
		accessToken: strings.TrimSpace(accessToken),
		httpClient:  httpClient,
	}
}

type createPaymentRequest struct {
	TransactionAmount float64      `json:"transaction_amount"`
	Description       string       `json:"description"`
	PaymentMethodID   string       `json:"payment_method_id"`
	NotificationURL   string       `json:"notification_url,omitempty"`
	Payer             paymentPayer `json:"payer"`
}

type paymentPayer struct {
	Email string `json:"email"`
}

type paymentResponse struct {
	ID                 json.Number         `json:"id"`
	Status             string              `json:"status"`
	PointOfInteraction *pointOfInteraction `json:"point_of_interaction,omitempty"`
}

type pointOfInteraction struct {
	TransactionData transactionData `json:"transaction_data"`
}

type transactionData struct {
	QRCode       string `json:"qr_code"`
	QRCodeBase64 string `json:"qr_code_base64"`
}

func (c *Client) CreateCharge(ctx context.Context, in payment.CreateChargeInput) (*payment.Charge, error) {
	if in.AmountCents <= 0 {
		return nil, common.NewError(common.CodeGatewayRejected, "charge amount must be positive", nil)
	}
	payload := createPaymentRequest{
		TransactionAmount: float64(in.AmountCents) / 100,
		Description:       in.Description,
		PaymentMethodID:   "pix",
		NotificationURL:   in.CallbackURL,
		Payer:             paymentPayer{Email: in.PayerEmail},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode charge request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/payments", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create charge request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, common.NewError(common.CodeGatewayUnavailable, "payment provider unreachable", err)
	}
	defer resp.Body.Close()
	payloadBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, common.NewError(common.CodeGatewayUnavailable, "failed to read provider response", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, mapStatusError(resp.StatusCode, payloadBytes)
	}
	var parsed paymentResponse
	if err := json.Unmarshal(payloadBytes, &parsed); err != nil {
		return nil, common.NewError(common.CodeGatewayUnavailable, "failed to decode provider response", err)
	}
	charge := &payment.Charge{
		ID:     parsed.ID.String(),
		Status: parsed.Status,
	}
	if parsed.PointOfInteraction != nil {
		charge.QRCode = parsed.PointOfInteraction.TransactionData.QRCode
		charge.QRCodeBase64 = parsed.PointOfInteraction.TransactionData.QRCodeBase64
	}
	if charge.ID == "" || charge.ID == "0" {
		return nil, common.NewError(common.CodeGatewayUnavailable, "provider returned no charge id", nil)
	}
	return charge, nil
}

func (c *Client) GetChargeStatus(ctx context.Context, chargeID string) (string, error) {
	if strings.TrimSpace(chargeID) == "" {
		return "", common.NewError(common.CodeGatewayRejected, "charge id is required", nil)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/payments/"+chargeID, nil)
	if err != nil {
		return "", fmt.Errorf("create status request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", common.NewError(common.CodeGatewayUnavailable, "payment provider unreachable", err)
	}
	defer resp.Body.Close()
	payloadBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", common.NewError(common.CodeGatewayUnavailable, "failed to read provider response", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", mapStatusError(resp.StatusCode, payloadBytes)
	}
	var parsed paymentResponse
	if err := json.Unmarshal(payloadBytes, &parsed); err != nil {
		return "", common.NewError(common.CodeGatewayUnavailable, "failed to decode provider response", err)
	}
	return parsed.Status, nil
}

func mapStatusError(status int, body []byte) error {
	message := "provider rejected the request"
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		message = parsed.Message
	}
	if status >= 500 {
		return common.NewError(common.CodeGatewayUnavailable, "provider error "+strconv.Itoa(status)+": "+message, nil)
	}
	return common.NewError(common.CodeGatewayRejected, "provider error "+strconv.Itoa(status)+": "+message, nil)
}
