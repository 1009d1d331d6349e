package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/josecleyvison-eng/jau-emprega/internal/app"
	"github.com/josecleyvison-eng/jau-emprega/internal/observability"
	"github.com/josecleyvison-eng/jau-emprega/internal/payment/mercadopago"
)

// WebhookHandler receives payment notifications from the provider. After the
// signature check passes it always answers 200: a non-2xx response would only
// trigger redelivery storms, and reconciliation is idempotent anyway.
type WebhookHandler struct {
	listings      *app.ListingService
	webhookSecret string
	logger        *slog.Logger
}

func NewWebhookHandler(listings *app.ListingService, webhookSecret string, logger *slog.Logger) *WebhookHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebhookHandler{listings: listings, webhookSecret: webhookSecret, logger: logger}
}

type webhookPayload struct {
	Type string `json:"type,omitempty"`
	Data struct {
		ID any `json:"id"`
	} `json:"data"`
}

func (h *WebhookHandler) Notify(w http.ResponseWriter, r *http.Request) {
	var payload webhookPayload
	if err := decodeJSON(r, &payload); err != nil {
		h.logger.Warn("invalid webhook payload",
			slog.String("request_id", observability.RequestIDFromContext(r.Context())))
		w.WriteHeader(http.StatusOK)
		return
	}
	chargeID := coerceChargeID(payload.Data.ID)

	if !mercadopago.VerifyWebhookSignature(h.webhookSecret, r.Header.Get("x-signature"), r.Header.Get("x-request-id"), chargeID) {
		h.logger.Warn("webhook signature rejected",
			slog.String("request_id", observability.RequestIDFromContext(r.Context())),
			slog.String("charge_id", chargeID))
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if err := h.listings.Reconcile(r.Context(), chargeID); err != nil {
		// Dropped on purpose: the provider will retry on its own schedule and
		// reconciliation is safe to reapply.
		h.logger.Error("reconciliation failed",
			slog.String("request_id", observability.RequestIDFromContext(r.Context())),
			slog.String("charge_id", chargeID),
			slog.String("error", err.Error()))
	}
	w.WriteHeader(http.StatusOK)
}

func coerceChargeID(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
