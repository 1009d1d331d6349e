package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/josecleyvison-eng/jau-emprega/internal/common"
	"github.com/josecleyvison-eng/jau-emprega/internal/domain/listing"
)

type ListingRepository struct {
	db *sql.DB
}

func NewListingRepository(db *sql.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

const listingColumns = `id, title, company, description, salary, contact, whatsapp, category, status, charge_id, charge_status, created_at`

func (r *ListingRepository) Create(ctx context.Context, l listing.Listing) (*listing.Listing, error) {
	l.ID = common.NewUUID()
	l.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `INSERT INTO listings (id, title, company, description, salary, contact, whatsapp, category, status, charge_id, charge_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		l.ID, l.Title, l.Company, l.Description, l.Salary, l.Contact, l.Whatsapp, l.Category, l.Status, nullString(l.ChargeID), nullString(l.ChargeStatus), l.CreatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeStorage, "failed to create listing", err)
	}
	return &l, nil
}

func (r *ListingRepository) GetByID(ctx context.Context, id common.UUID) (*listing.Listing, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+listingColumns+` FROM listings WHERE id = $1`, id)
	return scanListing(row)
}

func (r *ListingRepository) GetByChargeID(ctx context.Context, chargeID string) (*listing.Listing, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+listingColumns+` FROM listings WHERE charge_id = $1`, chargeID)
	return scanListing(row)
}

func (r *ListingRepository) UpdateStatus(ctx context.Context, id common.UUID, status listing.Status) error {
	result, err := r.db.ExecContext(ctx, `UPDATE listings SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return common.NewError(common.CodeStorage, "failed to update listing status", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "listing not found", sql.ErrNoRows)
	}
	return nil
}

func (r *ListingRepository) UpdateStatusByChargeID(ctx context.Context, chargeID string, from, to listing.Status, chargeStatus string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE listings SET status = $1, charge_status = $2 WHERE charge_id = $3 AND status = $4`,
		to, chargeStatus, chargeID, from)
	if err != nil {
		return false, common.NewError(common.CodeStorage, "failed to reconcile listing", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, common.NewError(common.CodeStorage, "failed to reconcile listing", err)
	}
	return rows > 0, nil
}

func (r *ListingRepository) UpdateChargeStatus(ctx context.Context, chargeID, chargeStatus string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE listings SET charge_status = $1 WHERE charge_id = $2`, chargeStatus, chargeID)
	if err != nil {
		return common.NewError(common.CodeStorage, "failed to update charge status", err)
	}
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeStorage, "failed to delete listing", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "listing not found", sql.ErrNoRows)
	}
	return nil
}

func (r *ListingRepository) ListByStatus(ctx context.Context, status listing.Status) ([]listing.Listing, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+listingColumns+` FROM listings WHERE status = $1 ORDER BY created_at DESC`, status)
	if err != nil {
		return nil, common.NewError(common.CodeStorage, "failed to list listings", err)
	}
	defer rows.Close()
	var items []listing.Listing
	for rows.Next() {
		item, err := scanListingRow(rows)
		if err != nil {
			return nil, common.NewError(common.CodeStorage, "failed to scan listing", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeStorage, "failed to list listings", err)
	}
	return items, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanListing(row *sql.Row) (*listing.Listing, error) {
	item, err := scanListingRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "listing not found", err)
		}
		return nil, common.NewError(common.CodeStorage, "failed to load listing", err)
	}
	return item, nil
}

func scanListingRow(row rowScanner) (*listing.Listing, error) {
	var l listing.Listing
	var chargeID, chargeStatus sql.NullString
	if err := row.Scan(&l.ID, &l.Title, &l.Company, &l.Description, &l.Salary, &l.Contact, &l.Whatsapp, &l.Category, &l.Status, &chargeID, &chargeStatus, &l.CreatedAt); err != nil {
		return nil, err
	}
	l.ChargeID = chargeID.String
	l.ChargeStatus = chargeStatus.String
	return &l, nil
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}
