package list_items

import (
	"context"

	contracts "github.com/murkotick/reflist-service/internal/app/reflist/contracts"
	"github.com/murkotick/reflist-service/internal/app/reflist/dto"
)

type Handler struct {
	readModel contracts.ReadModel
}

func NewHandler(r contracts.ReadModel) *Handler {
	return &Handler{readModel: r}
}

func (h *Handler) Execute(ctx context.Context) ([]*dto.ItemDTO, error) {
	items, err := h.readModel.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*dto.ItemDTO{}
	}
	return items, nil
}
