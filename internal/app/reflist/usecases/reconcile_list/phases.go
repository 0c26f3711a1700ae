package reconcile_list

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	contracts "github.com/murkotick/reflist-service/internal/app/reflist/contracts"
	"github.com/murkotick/reflist-service/internal/app/reflist/domain"
	"github.com/murkotick/reflist-service/internal/app/reflist/dto"
)

const (
	phaseAdded   = "added"
	phaseEdited  = "edited"
	phaseDeleted = "deleted"
	phaseOrder   = "order"
	phaseSkipped = "skipped"
)

// run holds the state of one batch against one repo.
type run struct {
	list   domain.ListSpec
	repo   contracts.ItemRepo
	ids    *idResolver
	log    logrus.FieldLogger
	now    time.Time
	report dto.ReconcileReport
	events []domain.ListEvent
}

func (r *run) apply(ctx context.Context, b *dto.Batch) error {
	if err := r.applyAdded(ctx, b.Added); err != nil {
		return err
	}
	if err := r.applyEdited(ctx, b.Edited); err != nil {
		return err
	}
	if err := r.applyDeleted(ctx, b.Deleted); err != nil {
		return err
	}
	return r.assignOrder(ctx, b.VisualOrder)
}

// applyAdded validates and inserts each added item in turn. Names inserted
// earlier in the same batch are already in the store, so sibling duplicates
// are caught by the same lookup.
func (r *run) applyAdded(ctx context.Context, items []dto.AddedItem) error {
	for _, in := range items {
		if in.Name == "" {
			return domain.NewValidationError(domain.ErrEmptyName, phaseAdded, "")
		}
		taken, err := r.exists(ctx, contracts.ByName(in.Name))
		if err != nil {
			return err
		}
		if taken {
			return domain.NewValidationError(domain.ErrDuplicateName, phaseAdded, in.Name)
		}

		id, err := r.repo.InsertOne(ctx, domain.Item{Name: in.Name, Rank: domain.RankUnplaced})
		if err != nil {
			return domain.NewStorageError("insert", err)
		}
		r.report.Added++

		if in.TempID != nil && !r.ids.register(*in.TempID, id) {
			r.log.WithFields(logrus.Fields{"temp_id": *in.TempID, "id": id}).
				Warn("temp id reused within batch; keeping first mapping")
		}
		r.events = append(r.events, &domain.ItemAddedEvent{
			ListKey: r.list.Key,
			ItemID:  id,
			Name:    in.Name,
			TempID:  in.TempID,
			AddedAt: r.now,
		})
	}
	return nil
}

// applyEdited renames items in place. Checks run in a fixed order: empty
// name, id shape, name collision with another item, then existence.
func (r *run) applyEdited(ctx context.Context, items []dto.EditedItem) error {
	for _, in := range items {
		if in.Name == "" {
			return domain.NewValidationError(domain.ErrEmptyName, phaseEdited, in.ID)
		}
		if !domain.ValidID(in.ID) {
			return domain.NewValidationError(domain.ErrInvalidID, phaseEdited, in.ID)
		}
		taken, err := r.exists(ctx, contracts.NameTakenByOther(in.Name, in.ID))
		if err != nil {
			return err
		}
		if taken {
			return domain.NewValidationError(domain.ErrDuplicateName, phaseEdited, in.Name)
		}

		current, err := r.repo.FindOne(ctx, contracts.ByID(in.ID))
		if errors.Is(err, domain.ErrItemNotFound) {
			return &domain.NotFoundError{ID: in.ID}
		}
		if err != nil {
			return domain.NewStorageError("find", err)
		}
		if current.Name == in.Name {
			continue
		}

		name := in.Name
		matched, err := r.repo.UpdateOne(ctx, contracts.ByID(in.ID), contracts.Patch{Name: &name})
		if err != nil {
			return domain.NewStorageError("update", err)
		}
		if !matched {
			return &domain.NotFoundError{ID: in.ID}
		}
		r.report.Renamed++
		r.events = append(r.events, &domain.ItemRenamedEvent{
			ListKey:   r.list.Key,
			ItemID:    in.ID,
			OldName:   current.Name,
			NewName:   in.Name,
			RenamedAt: r.now,
		})
	}
	return nil
}

// applyDeleted hard-deletes items. Ids that match nothing, malformed ones
// included, are logged and skipped.
func (r *run) applyDeleted(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if !domain.ValidID(id) {
			r.log.WithField("id", id).Info("delete skipped: malformed id")
			continue
		}
		current, err := r.repo.FindOne(ctx, contracts.ByID(id))
		if errors.Is(err, domain.ErrItemNotFound) {
			r.log.WithField("id", id).Info("delete skipped: no such item")
			continue
		}
		if err != nil {
			return domain.NewStorageError("find", err)
		}

		deleted, err := r.repo.DeleteOne(ctx, contracts.ByID(id))
		if err != nil {
			return domain.NewStorageError("delete", err)
		}
		if !deleted {
			r.log.WithField("id", id).Info("delete skipped: item vanished")
			continue
		}
		r.report.Deleted++
		r.events = append(r.events, &domain.ItemDeletedEvent{
			ListKey:   r.list.Key,
			ItemID:    id,
			Name:      current.Name,
			DeletedAt: r.now,
		})
	}
	return nil
}

func (r *run) exists(ctx context.Context, f contracts.Filter) (bool, error) {
	_, err := r.repo.FindOne(ctx, f)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrItemNotFound):
		return false, nil
	default:
		return false, domain.NewStorageError("find", err)
	}
}
