package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/josecleyvison-eng/jau-emprega/internal/common"
	"github.com/josecleyvison-eng/jau-emprega/internal/domain/banner"
)

const bannerSchema = `
CREATE TABLE IF NOT EXISTS banners (
    id         TEXT PRIMARY KEY,
    image      TEXT NOT NULL,
    position   INTEGER NOT NULL UNIQUE,
    updated_at DATETIME NOT NULL
);
`

type BannerRepository struct {
	db *sql.DB
}

func NewBannerRepository(db *sql.DB) (*BannerRepository, error) {
	if _, err := db.Exec(bannerSchema); err != nil {
		return nil, common.NewError(common.CodeStorage, "failed to initialize banners schema", err)
	}
	return &BannerRepository{db: db}, nil
}

func (r *BannerRepository) Upsert(ctx context.Context, b banner.Banner) (*banner.Banner, error) {
	b.ID = common.NewUUID()
	b.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `INSERT INTO banners (id, image, position, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(position) DO UPDATE SET image = excluded.image, updated_at = excluded.updated_at`,
		b.ID, b.Image, b.Position, b.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeStorage, "failed to upsert banner", err)
	}
	row := r.db.QueryRowContext(ctx, `SELECT id FROM banners WHERE position = ?`, b.Position)
	if err := row.Scan(&b.ID); err != nil {
		return nil, common.NewError(common.CodeStorage, "failed to load banner", err)
	}
	return &b, nil
}

func (r *BannerRepository) List(ctx context.Context) ([]banner.Banner, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, image, position, updated_at FROM banners ORDER BY position`)
	if err != nil {
		return nil, common.NewError(common.CodeStorage, "failed to list banners", err)
	}
	defer rows.Close()
	var items []banner.Banner
	for rows.Next() {
		var b banner.Banner
		if err := rows.Scan(&b.ID, &b.Image, &b.Position, &b.UpdatedAt); err != nil {
			return nil, common.NewError(common.CodeStorage, "failed to scan banner", err)
		}
		items = append(items, b)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeStorage, "failed to list banners", err)
	}
	return items, nil
}

func (r *BannerRepository) DeleteByPosition(ctx context.Context, position int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM banners WHERE position = ?`, position)
	if err != nil {
		return common.NewError(common.CodeStorage, "failed to delete banner", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "banner not found", sql.ErrNoRows)
	}
	return nil
}
