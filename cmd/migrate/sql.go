package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/murkotick/reflist-service/internal/app/reflist/domain"
	"github.com/murkotick/reflist-service/internal/infra/persistence/sqlstore"
)

type sqlOptions struct {
	dialect string
	dsn     string
}

func newSQLCmd() *cobra.Command {
	var opts sqlOptions

	cmd := &cobra.Command{
		Use:   "sql",
		Short: "Create the list and outbox tables on SQLite or Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := applySQLSchema(cmd.Context(), opts)
			if err != nil {
				return err
			}
			printf(cmd, "Applied %d statements (%s)\n", n, opts.dialect)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.dialect, "dialect", "sqlite", "sqlite or postgres")
	cmd.Flags().StringVar(&opts.dsn, "dsn", "", "SQLite file path or Postgres DSN (default $SQLITE_PATH / $POSTGRES_DSN)")

	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		opts.dialect = strings.ToLower(strings.TrimSpace(opts.dialect))
		if _, err := sqlstore.DialectFor(opts.dialect); err != nil {
			return fmt.Errorf("invalid --dialect: %w", err)
		}
		if opts.dsn == "" {
			switch opts.dialect {
			case sqlstore.SQLite.Name:
				opts.dsn = envOr("SQLITE_PATH", "data/reflist.db")
			case sqlstore.Postgres.Name:
				opts.dsn = envOr("POSTGRES_DSN", "")
			}
		}
		if opts.dsn == "" {
			return fmt.Errorf("--dsn is required")
		}
		return nil
	}
	return cmd
}

func applySQLSchema(ctx context.Context, opts sqlOptions) (int, error) {
	dialect, err := sqlstore.DialectFor(opts.dialect)
	if err != nil {
		return 0, err
	}
	db, err := sqlstore.Open(ctx, dialect, opts.dsn)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	if err := db.Migrate(ctx, domain.Lists()); err != nil {
		return 0, err
	}
	return len(dialect.Schema(domain.Lists())), nil
}

func newPrintCmd() *cobra.Command {
	var dialectName string

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the SQL schema without applying it",
		RunE: func(cmd *cobra.Command, args []string) error {
			dialect, err := sqlstore.DialectFor(strings.ToLower(dialectName))
			if err != nil {
				return err
			}
			for _, stmt := range dialect.Schema(domain.Lists()) {
				printf(cmd, "%s;\n\n", stmt)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dialectName, "dialect", "postgres", "sqlite or postgres")
	return cmd
}
