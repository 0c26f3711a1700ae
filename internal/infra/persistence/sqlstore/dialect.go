package sqlstore

import (
	"fmt"
	"strings"

	"github.com/murkotick/reflist-service/internal/app/reflist/domain"
	"github.com/murkotick/reflist-service/internal/models/m_listitem"
	"github.com/murkotick/reflist-service/internal/models/m_outbox"
)

// Dialect captures what differs between the SQL engines the store runs on.
type Dialect struct {
	Name   string
	Driver string

	placeholder func(n int) string
	rankType    string
	timeType    string
}

var (
	// SQLite uses the pure Go modernc.org/sqlite driver.
	SQLite = Dialect{
		Name:        "sqlite",
		Driver:      "sqlite",
		placeholder: func(int) string { return "?" },
		rankType:    "INTEGER",
		timeType:    "TIMESTAMP",
	}

	// Postgres goes through pgx's database/sql adapter.
	Postgres = Dialect{
		Name:        "postgres",
		Driver:      "pgx",
		placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
		rankType:    "BIGINT",
		timeType:    "TIMESTAMPTZ",
	}
)

// DialectFor resolves a backend name from configuration.
func DialectFor(name string) (Dialect, error) {
	switch name {
	case SQLite.Name:
		return SQLite, nil
	case Postgres.Name:
		return Postgres, nil
	}
	return Dialect{}, fmt.Errorf("sqlstore: unknown dialect %q", name)
}

// args collects statement arguments and hands out matching placeholders.
type args struct {
	d    Dialect
	vals []interface{}
}

func (a *args) add(v interface{}) string {
	a.vals = append(a.vals, v)
	return a.d.placeholder(len(a.vals))
}

// Schema returns the DDL for the given lists and the outbox table. Every
// statement is idempotent.
func (d Dialect) Schema(specs []domain.ListSpec) []string {
	var stmts []string
	for _, spec := range specs {
		t := m_listitem.Table{Name: spec.Table, NameCol: spec.NameColumn}
		stmts = append(stmts, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	%s TEXT PRIMARY KEY,
	%s TEXT NOT NULL,
	%s %s NOT NULL,
	%s %s NOT NULL,
	%s %s NOT NULL
)`, t.Name,
			m_listitem.ColItemID,
			t.NameCol,
			m_listitem.ColSortRank, d.rankType,
			m_listitem.ColCreatedAt, d.timeType,
			m_listitem.ColUpdatedAt, d.timeType))

		unique := t.NameCol
		if spec.CaseInsensitiveNames {
			unique = fmt.Sprintf("LOWER(%s)", t.NameCol)
		}
		stmts = append(stmts,
			fmt.Sprintf("CREATE UNIQUE INDEX IF NOT EXISTS %s_name_uq ON %s (%s)", t.Name, t.Name, unique),
			fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s_rank_idx ON %s (%s, %s)", t.Name, t.Name, m_listitem.ColSortRank, t.NameCol),
		)
	}

	stmts = append(stmts, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	%s TEXT PRIMARY KEY,
	%s TEXT NOT NULL,
	%s TEXT NOT NULL,
	%s TEXT NOT NULL,
	%s TEXT NOT NULL,
	%s TEXT NOT NULL,
	%s %s NOT NULL,
	%s %s
)`, m_outbox.TableName,
		m_outbox.ColEventID,
		m_outbox.ColEventType,
		m_outbox.ColListKey,
		m_outbox.ColAggregateID,
		m_outbox.ColPayload,
		m_outbox.ColStatus,
		m_outbox.ColCreatedAt, d.timeType,
		m_outbox.ColProcessedAt, d.timeType),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s_status_idx ON %s (%s, %s)",
			m_outbox.TableName, m_outbox.TableName, m_outbox.ColStatus, m_outbox.ColCreatedAt),
	)
	return stmts
}

func (d Dialect) placeholders(n int) string {
	ps := make([]string, n)
	for i := range ps {
		ps[i] = d.placeholder(i + 1)
	}
	return strings.Join(ps, ", ")
}
