package handlers

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/josecleyvison-eng/jau-emprega/internal/app"
	"github.com/josecleyvison-eng/jau-emprega/internal/common"
	"github.com/josecleyvison-eng/jau-emprega/internal/domain/listing"
	"github.com/josecleyvison-eng/jau-emprega/internal/domain/payment"
)

type fakeListingRepo struct {
	mu       sync.Mutex
	listings map[common.UUID]*listing.Listing
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: make(map[common.UUID]*listing.Listing)}
}

func (f *fakeListingRepo) Create(ctx context.Context, l listing.Listing) (*listing.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if l.ID == "" {
		l.ID = common.NewUUID()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	stored := l
	f.listings[l.ID] = &stored
	return &l, nil
}

func (f *fakeListingRepo) GetByID(ctx context.Context, id common.UUID) (*listing.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.listings[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "listing not found", nil)
	}
	copied := *l
	return &copied, nil
}

func (f *fakeListingRepo) GetByChargeID(ctx context.Context, chargeID string) (*listing.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.listings {
		if l.ChargeID == chargeID {
			copied := *l
			return &copied, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "listing not found", nil)
}

func (f *fakeListingRepo) UpdateStatus(ctx context.Context, id common.UUID, status listing.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.listings[id]
	if !ok {
		return common.NewError(common.CodeNotFound, "listing not found", nil)
	}
	l.Status = status
	return nil
}

func (f *fakeListingRepo) UpdateStatusByChargeID(ctx context.Context, chargeID string, from, to listing.Status, chargeStatus string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.listings {
		if l.ChargeID == chargeID && l.Status == from {
			l.Status = to
			l.ChargeStatus = chargeStatus
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeListingRepo) UpdateChargeStatus(ctx context.Context, chargeID, chargeStatus string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.listings {
		if l.ChargeID == chargeID {
			l.ChargeStatus = chargeStatus
		}
	}
	return nil
}

func (f *fakeListingRepo) Delete(ctx context.Context, id common.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.listings[id]; !ok {
		return common.NewError(common.CodeNotFound, "listing not found", nil)
	}
	delete(f.listings, id)
	return nil
}

func (f *fakeListingRepo) ListByStatus(ctx context.Context, status listing.Status) ([]listing.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []listing.Listing
	for _, l := range f.listings {
		if l.Status == status {
			out = append(out, *l)
		}
	}
	return out, nil
}

type fakeGateway struct {
	statuses map[string]string
}

func (f *fakeGateway) CreateCharge(ctx context.Context, in payment.CreateChargeInput) (*payment.Charge, error) {
	return &payment.Charge{ID: "charge-1", QRCode: "qr", Status: "pending"}, nil
}

func (f *fakeGateway) GetChargeStatus(ctx context.Context, chargeID string) (string, error) {
	status, ok := f.statuses[chargeID]
	if !ok {
		return "", common.NewError(common.CodeGatewayRejected, "charge not found", nil)
	}
	return status, nil
}

func signWebhook(secret, dataID, requestID, ts string) string {
	manifest := "id:" + dataID + ";request-id:" + requestID + ";ts:" + ts + ";"
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(manifest))
	return "ts=" + ts + ",v1=" + hex.EncodeToString(mac.Sum(nil))
}

func newWebhookFixture(t *testing.T, secret string) (*WebhookHandler, *fakeListingRepo, *fakeGateway) {
	t.Helper()
	repo := newFakeListingRepo()
	gateway := &fakeGateway{statuses: make(map[string]string)}
	service := app.NewListingService(repo, gateway, slog.Default(), app.ListingConfig{FeeCents: 500})
	return NewWebhookHandler(service, secret, slog.Default()), repo, gateway
}

func seedAwaiting(t *testing.T, repo *fakeListingRepo, chargeID string) common.UUID {
	t.Helper()
	created, err := repo.Create(context.Background(), listing.Listing{
		Title:    "Cook",
		Company:  "Diner",
		Status:   listing.StatusAwaitingPayment,
		ChargeID: chargeID,
	})
	if err != nil {
		t.Fatalf("failed to seed listing: %v", err)
	}
	return created.ID
}

func postWebhook(handler *WebhookHandler, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	handler.Notify(rec, req)
	return rec
}

func TestWebhookApprovedAdvancesListing(t *testing.T) {
	handler, repo, gateway := newWebhookFixture(t, "")
	id := seedAwaiting(t, repo, "charge-1")
	gateway.statuses["charge-1"] = payment.StatusApproved

	rec := postWebhook(handler, `{"type":"payment","data":{"id":"charge-1"}}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	got, err := repo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("failed to load listing: %v", err)
	}
	if got.Status != listing.StatusPendingReview {
		t.Fatalf("expected pending_review, got %s", got.Status)
	}
}

func TestWebhookNumericChargeID(t *testing.T) {
	handler, repo, gateway := newWebhookFixture(t, "")
	id := seedAwaiting(t, repo, "12345")
	gateway.statuses["12345"] = payment.StatusApproved

	rec := postWebhook(handler, `{"type":"payment","data":{"id":12345}}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	got, err := repo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("failed to load listing: %v", err)
	}
	if got.Status != listing.StatusPendingReview {
		t.Fatalf("expected pending_review, got %s", got.Status)
	}
}

func TestWebhookBadSignature(t *testing.T) {
	handler, repo, gateway := newWebhookFixture(t, "topsecret")
	id := seedAwaiting(t, repo, "charge-1")
	gateway.statuses["charge-1"] = payment.StatusApproved

	rec := postWebhook(handler, `{"type":"payment","data":{"id":"charge-1"}}`, map[string]string{
		"x-signature":  "ts=1700000000,v1=deadbeef",
		"x-request-id": "req-1",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for forged signature, got %d", rec.Code)
	}

	got, err := repo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("failed to load listing: %v", err)
	}
	if got.Status != listing.StatusAwaitingPayment {
		t.Fatalf("expected listing untouched, got %s", got.Status)
	}
}

func TestWebhookValidSignature(t *testing.T) {
	handler, repo, gateway := newWebhookFixture(t, "topsecret")
	id := seedAwaiting(t, repo, "charge-1")
	gateway.statuses["charge-1"] = payment.StatusApproved

	rec := postWebhook(handler, `{"type":"payment","data":{"id":"charge-1"}}`, map[string]string{
		"x-signature":  signWebhook("topsecret", "charge-1", "req-1", "1700000000"),
		"x-request-id": "req-1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	got, err := repo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("failed to load listing: %v", err)
	}
	if got.Status != listing.StatusPendingReview {
		t.Fatalf("expected pending_review, got %s", got.Status)
	}
}

func TestWebhookMalformedBody(t *testing.T) {
	handler, _, _ := newWebhookFixture(t, "")

	rec := postWebhook(handler, `{not json`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for malformed payload, got %d", rec.Code)
	}
}
