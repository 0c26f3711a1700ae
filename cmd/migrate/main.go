package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// A small migration tool. It applies migrations/001_initial_schema.sql to a
// Cloud Spanner database (typically the emulator for local dev) or creates
// the list and outbox tables on SQLite or Postgres.
//
// Usage (emulator):
//
//	SPANNER_EMULATOR_HOST=localhost:9010 go run ./cmd/migrate spanner \
//	  --database projects/test-project/instances/emulator-instance/databases/test-db
//
// Usage (postgres):
//
//	go run ./cmd/migrate sql --dialect postgres --dsn postgres://localhost/reflist
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Apply the reference list schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSpannerCmd(), newSQLCmd(), newPrintCmd())
	return root
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func printf(cmd *cobra.Command, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
