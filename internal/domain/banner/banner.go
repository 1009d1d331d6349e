package banner

import (
	"context"
	"time"

	"github.com/josecleyvison-eng/jau-emprega/internal/common"
)

// Banner is a rotating image slot on the public site. Position is the natural
// key: writing to an occupied slot replaces its image.
type Banner struct {
	ID        common.UUID `json:"id"`
	Image     string      `json:"image"`
	Position  int         `json:"position"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type Repository interface {
	Upsert(ctx context.Context, b Banner) (*Banner, error)
	List(ctx context.Context) ([]Banner, error)
	DeleteByPosition(ctx context.Context, position int) error
}
