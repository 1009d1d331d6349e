package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/josecleyvison-eng/jau-emprega/internal/common"
	"github.com/josecleyvison-eng/jau-emprega/internal/domain/banner"
)

type BannerService struct {
	repo   banner.Repository
	logger *slog.Logger
}

func NewBannerService(repo banner.Repository, logger *slog.Logger) *BannerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &BannerService{repo: repo, logger: logger}
}

func (s *BannerService) Upsert(ctx context.Context, b banner.Banner) (*banner.Banner, error) {
	fields := map[string]string{}
	if strings.TrimSpace(b.Image) == "" {
		fields["image"] = "image is required"
	}
	if b.Position <= 0 {
		fields["position"] = "position must be positive"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid banner", fields)
	}
	saved, err := s.repo.Upsert(ctx, b)
	if err != nil {
		return nil, err
	}
	s.logger.Info("banner upserted", slog.Int("position", saved.Position))
	return saved, nil
}

func (s *BannerService) List(ctx context.Context) ([]banner.Banner, error) {
	return s.repo.List(ctx)
}

func (s *BannerService) DeleteByPosition(ctx context.Context, position int) error {
	if err := s.repo.DeleteByPosition(ctx, position); err != nil {
		return err
	}
	s.logger.Info("banner removed", slog.Int("position", position))
	return nil
}
