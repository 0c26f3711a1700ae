package reconcile_list

import (
	"context"
	"errors"

	contracts "github.com/murkotick/reflist-service/internal/app/reflist/contracts"
	"github.com/murkotick/reflist-service/internal/app/reflist/domain"
	"github.com/murkotick/reflist-service/internal/app/reflist/dto"
)

// assignOrder writes rank = position for every entry that resolves to a
// persisted item. Unresolvable entries are skipped but keep their position,
// so ranks always equal the array index.
func (r *run) assignOrder(ctx context.Context, entries []dto.OrderEntry) error {
	assigned := make([]domain.RankAssignment, 0, len(entries))

	for pos, entry := range entries {
		item, via, err := r.resolve(ctx, entry)
		if errors.Is(err, domain.ErrItemNotFound) {
			r.report.Skipped++
			r.log.WithField("position", pos).WithField("via", via).Debug("order entry skipped: unresolved")
			continue
		}
		if err != nil {
			return domain.NewStorageError("find", err)
		}

		rank := pos
		if item.Rank != rank {
			matched, err := r.repo.UpdateOne(ctx, contracts.ByID(item.ID), contracts.Patch{Rank: &rank})
			if err != nil {
				return domain.NewStorageError("update", err)
			}
			if !matched {
				r.report.Skipped++
				continue
			}
		}
		r.report.Ranked++
		assigned = append(assigned, domain.RankAssignment{ItemID: item.ID, Rank: rank})
	}

	if len(assigned) > 0 {
		r.events = append(r.events, &domain.ListReorderedEvent{
			ListKey:     r.list.Key,
			Assignments: assigned,
			ReorderedAt: r.now,
		})
	}
	return nil
}

// resolve picks the lookup by which fields the entry carries: id first, then
// a tempId known to this batch, then the name of a still-unplaced item.
func (r *run) resolve(ctx context.Context, e dto.OrderEntry) (*domain.Item, string, error) {
	switch {
	case e.ID != nil:
		if !domain.ValidID(*e.ID) {
			return nil, "id", domain.ErrItemNotFound
		}
		item, err := r.repo.FindOne(ctx, contracts.ByID(*e.ID))
		return item, "id", err

	case e.TempID != nil && r.mapped(*e.TempID):
		id, _ := r.ids.resolve(*e.TempID)
		item, err := r.repo.FindOne(ctx, contracts.ByID(id))
		return item, "tempId", err

	case e.Name != nil && *e.Name != "":
		item, err := r.repo.FindOne(ctx, contracts.UnplacedByName(*e.Name))
		return item, "name", err
	}
	return nil, "none", domain.ErrItemNotFound
}

func (r *run) mapped(tempID string) bool {
	_, ok := r.ids.resolve(tempID)
	return ok
}
