package spannerstore

import (
	"fmt"
	"strings"

	"cloud.google.com/go/spanner"

	contracts "github.com/murkotick/reflist-service/internal/app/reflist/contracts"
	"github.com/murkotick/reflist-service/internal/app/reflist/domain"
	"github.com/murkotick/reflist-service/internal/models/m_listitem"
)

// findStmt selects the oldest item matching f. Ties on created_at fall back
// to item_id so the choice is stable.
func findStmt(t m_listitem.Table, spec domain.ListSpec, f contracts.Filter) spanner.Statement {
	var (
		conds  []string
		params = map[string]interface{}{}
	)
	if f.ID != "" {
		conds = append(conds, m_listitem.ColItemID+" = @id")
		params["id"] = f.ID
	}
	if f.ExcludeID != "" {
		conds = append(conds, m_listitem.ColItemID+" != @exclude_id")
		params["exclude_id"] = f.ExcludeID
	}
	if f.Name != nil {
		if spec.CaseInsensitiveNames {
			conds = append(conds, fmt.Sprintf("LOWER(%s) = LOWER(@name)", t.NameCol))
		} else {
			conds = append(conds, t.NameCol+" = @name")
		}
		params["name"] = *f.Name
	}
	if f.Rank != nil {
		conds = append(conds, m_listitem.ColSortRank+" = @rank")
		params["rank"] = int64(*f.Rank)
	}

	sql := fmt.Sprintf("SELECT %s FROM %s", strings.Join(t.ItemColumns(), ", "), t.Name)
	if len(conds) > 0 {
		sql += " WHERE " + strings.Join(conds, " AND ")
	}
	sql += fmt.Sprintf(" ORDER BY %s, %s LIMIT 1", m_listitem.ColCreatedAt, m_listitem.ColItemID)
	return spanner.Statement{SQL: sql, Params: params}
}

func listStmt(t m_listitem.Table) spanner.Statement {
	return spanner.Statement{SQL: fmt.Sprintf("SELECT %s FROM %s ORDER BY %s, %s",
		strings.Join(t.ItemColumns(), ", "), t.Name, m_listitem.ColSortRank, t.NameCol)}
}

// DML used inside read-write transactions, where reads must observe the
// batch's own earlier writes.

func insertDML(t m_listitem.Table, values map[string]interface{}) spanner.Statement {
	cols := t.Columns()
	names := make([]string, 0, len(cols))
	params := make(map[string]interface{}, len(cols))
	for i, c := range cols {
		p := fmt.Sprintf("p%d", i)
		names = append(names, "@"+p)
		params[p] = values[c]
	}
	return spanner.Statement{
		SQL:    fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", t.Name, strings.Join(cols, ", "), strings.Join(names, ", ")),
		Params: params,
	}
}

func updateDML(t m_listitem.Table, itemID string, values map[string]interface{}) spanner.Statement {
	params := map[string]interface{}{"id": itemID}
	var sets []string
	// Columns are emitted in table order.
	for i, c := range t.Columns() {
		v, ok := values[c]
		if !ok || c == m_listitem.ColItemID {
			continue
		}
		p := fmt.Sprintf("p%d", i)
		sets = append(sets, fmt.Sprintf("%s = @%s", c, p))
		params[p] = v
	}
	return spanner.Statement{
		SQL:    fmt.Sprintf("UPDATE %s SET %s WHERE %s = @id", t.Name, strings.Join(sets, ", "), m_listitem.ColItemID),
		Params: params,
	}
}

func deleteDML(t m_listitem.Table, itemID string) spanner.Statement {
	return spanner.Statement{
		SQL:    fmt.Sprintf("DELETE FROM %s WHERE %s = @id", t.Name, m_listitem.ColItemID),
		Params: map[string]interface{}{"id": itemID},
	}
}
