package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	databasepb "cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	"github.com/spf13/cobra"
)

type spannerOptions struct {
	database string
	ddlPath  string
	timeout  time.Duration
}

func newSpannerCmd() *cobra.Command {
	var opts spannerOptions

	cmd := &cobra.Command{
		Use:   "spanner",
		Short: "Apply the DDL file to a Cloud Spanner database",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			n, err := applySpannerDDL(ctx, opts)
			if err != nil {
				return err
			}
			printf(cmd, "Applied %d DDL statements to %s\n", n, opts.database)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.database, "database", envOr("SPANNER_DATABASE", ""), "Database path (default $SPANNER_DATABASE)")
	cmd.Flags().StringVar(&opts.ddlPath, "ddl", "migrations/001_initial_schema.sql", "DDL file")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 2*time.Minute, "Overall timeout")

	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if opts.database == "" {
			return fmt.Errorf("--database or SPANNER_DATABASE is required (e.g. projects/test-project/instances/emulator-instance/databases/test-db)")
		}
		return nil
	}
	return cmd
}

func applySpannerDDL(ctx context.Context, opts spannerOptions) (int, error) {
	stmts, err := readDDLStatements(opts.ddlPath)
	if err != nil {
		return 0, fmt.Errorf("read DDL: %w", err)
	}
	if len(stmts) == 0 {
		return 0, fmt.Errorf("no DDL statements found in %s", opts.ddlPath)
	}

	admin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return 0, fmt.Errorf("database admin client: %w", err)
	}
	defer admin.Close()

	op, err := admin.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
		Database:   opts.database,
		Statements: stmts,
	})
	if err != nil {
		return 0, fmt.Errorf("UpdateDatabaseDdl: %w", err)
	}
	if err := op.Wait(ctx); err != nil {
		return 0, fmt.Errorf("UpdateDatabaseDdl wait: %w", err)
	}
	return len(stmts), nil
}

func readDDLStatements(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return splitDDL(string(b)), nil
}

func splitDDL(sql string) []string {
	// Normalize line endings for Windows-authored files.
	sql = strings.ReplaceAll(sql, "\r\n", "\n")

	parts := strings.Split(sql, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		stmt := strings.TrimSpace(p)
		if stmt == "" {
			continue
		}
		out = append(out, stmt)
	}
	return out
}
