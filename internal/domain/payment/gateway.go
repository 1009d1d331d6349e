package payment

import "context"

// StatusApproved is the only provider settlement state that advances the
// listing lifecycle. Everything else ("pending", "rejected", "cancelled", ...)
// is mirrored but otherwise ignored.
const StatusApproved = "approved"

type CreateChargeInput struct {
	AmountCents int
	Description string
	PayerEmail  string
	CallbackURL string
}

type Charge struct {
	ID           string `json:"charge_id"`
	QRCode       string `json:"qr_code"`
	QRCodeBase64 string `json:"qr_code_base64"`
	Status       string `json:"status"`
}

// Gateway is the boundary to the PIX payment provider. Implementations must
// bound their own timeouts; callers treat any failure as fatal to the
// submission being processed.
type Gateway interface {
	CreateCharge(ctx context.Context, in CreateChargeInput) (*Charge, error)
	GetChargeStatus(ctx context.Context, chargeID string) (string, error)
}
