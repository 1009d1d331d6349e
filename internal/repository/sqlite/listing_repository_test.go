package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/josecleyvison-eng/jau-emprega/internal/common"
	"github.com/josecleyvison-eng/jau-emprega/internal/domain/listing"
)

func newTestRepo(t *testing.T) *ListingRepository {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	repo, err := NewListingRepository(db)
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}
	return repo
}

func testListing(status listing.Status, chargeID string) listing.Listing {
	return listing.Listing{
		Title:       "Cozinheiro",
		Company:     "Restaurante Central",
		Description: "Preparo de refeicoes",
		Salary:      "R$ 2.000",
		Contact:     "rh@central.com.br",
		Status:      status,
		ChargeID:    chargeID,
	}
}

func TestListingRepositoryCreateAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, testListing(listing.StatusPendingReview, ""))
	if err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected id to be assigned")
	}
	if created.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be assigned")
	}

	loaded, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("expected get to succeed, got %v", err)
	}
	if loaded.Title != created.Title || loaded.Status != listing.StatusPendingReview {
		t.Fatalf("unexpected listing loaded: %+v", loaded)
	}
	if loaded.ChargeID != "" {
		t.Fatalf("expected empty charge id, got %q", loaded.ChargeID)
	}
}

func TestListingRepositoryGetByIDNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetByID(context.Background(), common.NewUUID())
	if !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListingRepositoryListByStatusNewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, testListing(listing.StatusPublished, ""))
	if err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	second, err := repo.Create(ctx, testListing(listing.StatusPublished, ""))
	if err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}
	if _, err := repo.Create(ctx, testListing(listing.StatusPendingReview, "")); err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}

	items, err := repo.ListByStatus(ctx, listing.StatusPublished)
	if err != nil {
		t.Fatalf("expected list to succeed, got %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 published listings, got %d", len(items))
	}
	if items[0].ID != second.ID || items[1].ID != first.ID {
		t.Fatalf("expected newest first ordering, got %v then %v", items[0].ID, items[1].ID)
	}
}

func TestListingRepositoryReconcileByChargeID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, testListing(listing.StatusAwaitingPayment, "charge-123"))
	if err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}

	moved, err := repo.UpdateStatusByChargeID(ctx, "charge-123", listing.StatusAwaitingPayment, listing.StatusPendingReview, "approved")
	if err != nil {
		t.Fatalf("expected reconcile to succeed, got %v", err)
	}
	if !moved {
		t.Fatal("expected first reconcile to move the listing")
	}

	// Redelivery of the same webhook must not match a second time.
	moved, err = repo.UpdateStatusByChargeID(ctx, "charge-123", listing.StatusAwaitingPayment, listing.StatusPendingReview, "approved")
	if err != nil {
		t.Fatalf("expected redelivery to succeed, got %v", err)
	}
	if moved {
		t.Fatal("expected redelivery to be a no-op")
	}

	loaded, err := repo.GetByChargeID(ctx, "charge-123")
	if err != nil {
		t.Fatalf("expected get by charge id to succeed, got %v", err)
	}
	if loaded.ID != created.ID {
		t.Fatalf("expected listing %s, got %s", created.ID, loaded.ID)
	}
	if loaded.Status != listing.StatusPendingReview {
		t.Fatalf("expected pending_review, got %s", loaded.Status)
	}
	if loaded.ChargeStatus != "approved" {
		t.Fatalf("expected mirrored charge status approved, got %q", loaded.ChargeStatus)
	}
}

func TestListingRepositoryReconcileUnknownCharge(t *testing.T) {
	repo := newTestRepo(t)

	moved, err := repo.UpdateStatusByChargeID(context.Background(), "missing", listing.StatusAwaitingPayment, listing.StatusPendingReview, "approved")
	if err != nil {
		t.Fatalf("expected unknown charge to be a clean no-op, got %v", err)
	}
	if moved {
		t.Fatal("expected no row to match")
	}
}

func TestListingRepositoryDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, testListing(listing.StatusPublished, ""))
	if err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}
	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("expected delete to succeed, got %v", err)
	}
	if _, err := repo.GetByID(ctx, created.ID); !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := repo.Delete(ctx, created.ID); !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected not found on double delete, got %v", err)
	}
}
