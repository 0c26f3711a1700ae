package main

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/sirupsen/logrus"

	contracts "github.com/murkotick/reflist-service/internal/app/reflist/contracts"
	"github.com/murkotick/reflist-service/internal/app/reflist/domain"
	"github.com/murkotick/reflist-service/internal/config"
	"github.com/murkotick/reflist-service/internal/infra/persistence/memory"
	"github.com/murkotick/reflist-service/internal/infra/persistence/spannerstore"
	"github.com/murkotick/reflist-service/internal/infra/persistence/sqlstore"
	"github.com/murkotick/reflist-service/internal/pkg/clock"
	committer "github.com/murkotick/reflist-service/internal/pkg/committer"
)

// backend is everything the server needs from the selected storage.
type backend struct {
	stores map[domain.ListKey]contracts.ListStore
	events contracts.EventSink
	ready  func(ctx context.Context) error
	close  func()
}

func openBackend(ctx context.Context, cfg config.Config, clk clock.Clock, logger logrus.FieldLogger) (*backend, error) {
	b := &backend{stores: make(map[domain.ListKey]contracts.ListStore), close: func() {}}

	switch cfg.Backend {
	case config.BackendMemory:
		for _, spec := range domain.Lists() {
			b.stores[spec.Key] = memory.NewStore(spec)
		}
		b.events = memory.NewEventLog(logger.WithField("component", "events"))

	case config.BackendSQLite, config.BackendPostgres:
		dialect, err := sqlstore.DialectFor(cfg.Backend)
		if err != nil {
			return nil, err
		}
		dsn := cfg.PostgresDSN
		if cfg.Backend == config.BackendSQLite {
			dsn = cfg.SQLitePath
		}
		db, err := sqlstore.Open(ctx, dialect, dsn)
		if err != nil {
			return nil, err
		}
		// SQLite files are local and migrated on start; Postgres goes through cmd/migrate.
		if cfg.Backend == config.BackendSQLite {
			if err := db.Migrate(ctx, domain.Lists()); err != nil {
				_ = db.Close()
				return nil, err
			}
		}
		for _, spec := range domain.Lists() {
			b.stores[spec.Key] = db.ListStore(spec, clk)
		}
		b.events = db.Outbox()
		b.ready = db.SQL().PingContext
		b.close = func() { _ = db.Close() }

	case config.BackendSpanner:
		client, err := spanner.NewClient(ctx, cfg.SpannerDatabase)
		if err != nil {
			return nil, fmt.Errorf("spanner.NewClient: %w", err)
		}
		for _, spec := range domain.Lists() {
			b.stores[spec.Key] = spannerstore.NewStore(client, spec, clk)
		}
		b.events = spannerstore.NewOutboxSink(committer.NewAdapter(client))
		b.ready = func(ctx context.Context) error {
			iter := client.Single().Query(ctx, spanner.Statement{SQL: "SELECT 1"})
			defer iter.Stop()
			_, err := iter.Next()
			return err
		}
		b.close = client.Close

	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
	return b, nil
}
