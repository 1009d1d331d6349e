package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/josecleyvison-eng/jau-emprega/internal/common"
	"github.com/josecleyvison-eng/jau-emprega/internal/domain/listing"
	"github.com/josecleyvison-eng/jau-emprega/internal/domain/payment"
)

// fallbackPayerEmail is used when the submitted contact is not an email
// address; the provider requires one on every charge.
const fallbackPayerEmail = "anunciante@jau-emprega.com.br"

type ListingConfig struct {
	// FeeCents above zero routes submissions through the paid flow.
	FeeCents       int
	CallbackURL    string
	AllowRepublish bool
}

// ListingService owns the listing lifecycle: submission, payment
// reconciliation, moderation, and the public feed.
type ListingService struct {
	repo    listing.Repository
	gateway payment.Gateway
	logger  *slog.Logger
	cfg     ListingConfig
}

func NewListingService(repo listing.Repository, gateway payment.Gateway, logger *slog.Logger, cfg ListingConfig) *ListingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ListingService{repo: repo, gateway: gateway, logger: logger, cfg: cfg}
}

type SubmitInput struct {
	Title       string
	Company     string
	Description string
	Salary      string
	Contact     string
	Whatsapp    string
	Category    string
}

type SubmitResult struct {
	Listing *listing.Listing
	// Charge is set only when the paid flow created one.
	Charge *payment.Charge
}

func (s *ListingService) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	fields := map[string]string{}
	if strings.TrimSpace(in.Title) == "" {
		fields["title"] = "title is required"
	}
	if strings.TrimSpace(in.Company) == "" {
		fields["company"] = "company is required"
	}
	if strings.TrimSpace(in.Description) == "" {
		fields["description"] = "description is required"
	}
	if strings.TrimSpace(in.Contact) == "" {
		fields["contact"] = "contact is required"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid submission", fields)
	}

	l := listing.Listing{
		Title:       strings.TrimSpace(in.Title),
		Company:     strings.TrimSpace(in.Company),
		Description: strings.TrimSpace(in.Description),
		Salary:      strings.TrimSpace(in.Salary),
		Contact:     strings.TrimSpace(in.Contact),
		Whatsapp:    strings.TrimSpace(in.Whatsapp),
		Category:    strings.TrimSpace(in.Category),
		Status:      listing.StatusPendingReview,
	}

	if s.cfg.FeeCents <= 0 || s.gateway == nil {
		created, err := s.repo.Create(ctx, l)
		if err != nil {
			return nil, err
		}
		s.logger.Info("listing submitted", slog.String("listing_id", created.ID.String()))
		return &SubmitResult{Listing: created}, nil
	}

	// Charge creation comes first: if the provider fails, nothing is
	// persisted and the whole submission fails.
	charge, err := s.gateway.CreateCharge(ctx, payment.CreateChargeInput{
		AmountCents: s.cfg.FeeCents,
		Description: "Publicacao de vaga: " + l.Title,
		PayerEmail:  payerEmail(l.Contact),
		CallbackURL: s.cfg.CallbackURL,
	})
	if err != nil {
		return nil, err
	}

	l.Status = listing.StatusAwaitingPayment
	l.ChargeID = charge.ID
	l.ChargeStatus = charge.Status
	created, err := s.repo.Create(ctx, l)
	if err != nil {
		return nil, err
	}
	s.logger.Info("listing submitted awaiting payment",
		slog.String("listing_id", created.ID.String()),
		slog.String("charge_id", charge.ID))
	return &SubmitResult{Listing: created, Charge: charge}, nil
}

// Reconcile processes a payment provider notification for the given charge.
// Unknown charges and non-approved settlement states are tolerated no-ops so
// the provider can redeliver and notify freely.
func (s *ListingService) Reconcile(ctx context.Context, chargeID string) error {
	chargeID = strings.TrimSpace(chargeID)
	if chargeID == "" {
		s.logger.Info("reconciliation event without charge id dropped")
		return nil
	}

	current, err := s.repo.GetByChargeID(ctx, chargeID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			s.logger.Info("reconciliation for unknown charge", slog.String("charge_id", chargeID))
			return nil
		}
		return err
	}

	status, err := s.gateway.GetChargeStatus(ctx, chargeID)
	if err != nil {
		return err
	}

	if status != payment.StatusApproved {
		if err := s.repo.UpdateChargeStatus(ctx, chargeID, status); err != nil {
			return err
		}
		s.logger.Info("charge not settled yet",
			slog.String("charge_id", chargeID),
			slog.String("charge_status", status))
		return nil
	}

	moved, err := s.repo.UpdateStatusByChargeID(ctx, chargeID, listing.StatusAwaitingPayment, listing.StatusPendingReview, status)
	if err != nil {
		return err
	}
	if !moved {
		// Redelivery, or the listing already advanced past awaiting_payment.
		s.logger.Info("charge already reconciled",
			slog.String("charge_id", chargeID),
			slog.String("listing_id", current.ID.String()))
		return nil
	}
	s.logger.Info("payment approved, listing queued for review",
		slog.String("charge_id", chargeID),
		slog.String("listing_id", current.ID.String()))
	return nil
}

// SetStatus applies a moderator decision. Transitions outside the table are
// logged no-ops returning the unchanged listing, mirroring the tolerance of
// the webhook path.
func (s *ListingService) SetStatus(ctx context.Context, id common.UUID, to listing.Status) (*listing.Listing, error) {
	if !to.Valid() {
		return nil, common.NewValidationError("invalid status", map[string]string{"state": "state must be one of awaiting_payment, pending_review, published, rejected"})
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == to {
		return current, nil
	}
	if !listing.CanTransition(current.Status, to, s.cfg.AllowRepublish) {
		s.logger.Info("status transition ignored",
			slog.String("listing_id", id.String()),
			slog.String("from", string(current.Status)),
			slog.String("to", string(to)))
		return current, nil
	}
	if err := s.repo.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}
	current.Status = to
	s.logger.Info("listing status changed",
		slog.String("listing_id", id.String()),
		slog.String("status", string(to)))
	return current, nil
}

func (s *ListingService) Delete(ctx context.Context, id common.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("listing deleted", slog.String("listing_id", id.String()))
	return nil
}

func (s *ListingService) ListPublished(ctx context.Context) ([]listing.Listing, error) {
	return s.repo.ListByStatus(ctx, listing.StatusPublished)
}

func (s *ListingService) ListByStatus(ctx context.Context, status listing.Status) ([]listing.Listing, error) {
	if !status.Valid() {
		return nil, common.NewValidationError("invalid status", map[string]string{"status": "unknown status"})
	}
	return s.repo.ListByStatus(ctx, status)
}

func payerEmail(contact string) string {
	if strings.Contains(contact, "@") && !strings.ContainsAny(contact, " ,;") {
		return contact
	}
	return fallbackPayerEmail
}
