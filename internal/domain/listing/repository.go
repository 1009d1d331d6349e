package listing

import (
	"context"

	"github.com/josecleyvison-eng/jau-emprega/internal/common"
)

type Repository interface {
	Create(ctx context.Context, l Listing) (*Listing, error)
	GetByID(ctx context.Context, id common.UUID) (*Listing, error)
	GetByChargeID(ctx context.Context, chargeID string) (*Listing, error)
	UpdateStatus(ctx context.Context, id common.UUID, status Status) error
	// UpdateStatusByChargeID moves a listing from one status to another keyed
	// by its external charge id, recording the provider-reported charge
	// status. The returned bool is false when no row matched (unknown charge
	// or the listing already left the source status), which callers rely on
	// for idempotent webhook redelivery.
	UpdateStatusByChargeID(ctx context.Context, chargeID string, from, to Status, chargeStatus string) (bool, error)
	UpdateChargeStatus(ctx context.Context, chargeID, chargeStatus string) error
	Delete(ctx context.Context, id common.UUID) error
	ListByStatus(ctx context.Context, status Status) ([]Listing, error)
}
