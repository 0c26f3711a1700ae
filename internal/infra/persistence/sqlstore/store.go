package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	contracts "github.com/murkotick/reflist-service/internal/app/reflist/contracts"
	"github.com/murkotick/reflist-service/internal/app/reflist/domain"
	"github.com/murkotick/reflist-service/internal/app/reflist/dto"
	"github.com/murkotick/reflist-service/internal/models/m_listitem"
	"github.com/murkotick/reflist-service/internal/pkg/clock"
)

var _ contracts.ListStore = (*Store)(nil)

// Store serves one list table. Outside RunInTransaction every statement
// autocommits.
type Store struct {
	db    *DB
	spec  domain.ListSpec
	table m_listitem.Table
	clock clock.Clock
	newID func() string
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the uuid generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

func newStore(db *DB, spec domain.ListSpec, clk clock.Clock, opts ...Option) *Store {
	s := &Store{
		db:    db,
		spec:  spec,
		table: m_listitem.Table{Name: spec.Table, NameCol: spec.NameColumn},
		clock: clk,
		newID: domain.NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) repo(q queryer) *repo {
	return &repo{store: s, q: q}
}

func (s *Store) FindOne(ctx context.Context, f contracts.Filter) (*domain.Item, error) {
	return s.repo(s.db.db).FindOne(ctx, f)
}

func (s *Store) InsertOne(ctx context.Context, item domain.Item) (string, error) {
	return s.repo(s.db.db).InsertOne(ctx, item)
}

func (s *Store) UpdateOne(ctx context.Context, f contracts.Filter, p contracts.Patch) (bool, error) {
	return s.repo(s.db.db).UpdateOne(ctx, f, p)
}

func (s *Store) DeleteOne(ctx context.Context, f contracts.Filter) (bool, error) {
	return s.repo(s.db.db).DeleteOne(ctx, f)
}

// RunInTransaction commits fn's writes together or rolls them all back.
func (s *Store) RunInTransaction(ctx context.Context, fn func(ctx context.Context, repo contracts.ItemRepo) error) (retErr error) {
	tx, err := s.db.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	if err := fn(ctx, s.repo(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ListItems returns the items ordered by rank, then name.
func (s *Store) ListItems(ctx context.Context) ([]*dto.ItemDTO, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s, %s",
		strings.Join(s.table.ItemColumns(), ", "), s.table.Name, m_listitem.ColSortRank, s.table.NameCol)
	rows, err := s.db.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := make([]*dto.ItemDTO, 0)
	for rows.Next() {
		var it dto.ItemDTO
		if err := rows.Scan(&it.ID, &it.Name, &it.Rank); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, &it)
	}
	return out, rows.Err()
}

type repo struct {
	store *Store
	q     queryer
}

func (r *repo) FindOne(ctx context.Context, f contracts.Filter) (*domain.Item, error) {
	t := r.store.table
	a := &args{d: r.store.db.dialect}

	var conds []string
	if f.ID != "" {
		conds = append(conds, fmt.Sprintf("%s = %s", m_listitem.ColItemID, a.add(f.ID)))
	}
	if f.ExcludeID != "" {
		conds = append(conds, fmt.Sprintf("%s <> %s", m_listitem.ColItemID, a.add(f.ExcludeID)))
	}
	if f.Name != nil {
		if r.store.spec.CaseInsensitiveNames {
			conds = append(conds, fmt.Sprintf("LOWER(%s) = LOWER(%s)", t.NameCol, a.add(*f.Name)))
		} else {
			conds = append(conds, fmt.Sprintf("%s = %s", t.NameCol, a.add(*f.Name)))
		}
	}
	if f.Rank != nil {
		conds = append(conds, fmt.Sprintf("%s = %s", m_listitem.ColSortRank, a.add(*f.Rank)))
	}

	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(t.ItemColumns(), ", "), t.Name)
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY %s, %s LIMIT 1", m_listitem.ColCreatedAt, m_listitem.ColItemID)

	var it domain.Item
	err := r.q.QueryRowContext(ctx, query, a.vals...).Scan(&it.ID, &it.Name, &it.Rank)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *repo) InsertOne(ctx context.Context, item domain.Item) (string, error) {
	t := r.store.table
	id := r.store.newID()
	now := r.store.clock.Now()

	cols := t.Columns()
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		t.Name, strings.Join(cols, ", "), r.store.db.dialect.placeholders(len(cols)))
	if _, err := r.q.ExecContext(ctx, query, id, item.Name, item.Rank, now, now); err != nil {
		return "", err
	}
	return id, nil
}

func (r *repo) UpdateOne(ctx context.Context, f contracts.Filter, p contracts.Patch) (bool, error) {
	current, err := r.FindOne(ctx, f)
	if errors.Is(err, domain.ErrItemNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if p.IsEmpty() {
		return true, nil
	}

	t := r.store.table
	a := &args{d: r.store.db.dialect}
	var sets []string
	if p.Name != nil {
		sets = append(sets, fmt.Sprintf("%s = %s", t.NameCol, a.add(*p.Name)))
	}
	if p.Rank != nil {
		sets = append(sets, fmt.Sprintf("%s = %s", m_listitem.ColSortRank, a.add(*p.Rank)))
	}
	sets = append(sets, fmt.Sprintf("%s = %s", m_listitem.ColUpdatedAt, a.add(r.store.clock.Now())))

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = %s",
		t.Name, strings.Join(sets, ", "), m_listitem.ColItemID, a.add(current.ID))
	return r.exec(ctx, query, a.vals...)
}

func (r *repo) DeleteOne(ctx context.Context, f contracts.Filter) (bool, error) {
	current, err := r.FindOne(ctx, f)
	if errors.Is(err, domain.ErrItemNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	a := &args{d: r.store.db.dialect}
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = %s", r.store.table.Name, m_listitem.ColItemID, a.add(current.ID))
	return r.exec(ctx, query, a.vals...)
}

func (r *repo) exec(ctx context.Context, query string, vals ...interface{}) (bool, error) {
	res, err := r.q.ExecContext(ctx, query, vals...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
