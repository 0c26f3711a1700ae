package contracts

import (
	"context"

	"github.com/murkotick/reflist-service/internal/app/reflist/dto"
)

// ReadModel serves the list edit screen.
type ReadModel interface {
	// ListItems returns every item ordered by rank, then name.
	ListItems(ctx context.Context) ([]*dto.ItemDTO, error)
}
