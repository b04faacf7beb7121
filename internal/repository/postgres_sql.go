package repository

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

func quoteColumns(columns []string) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = pgx.Identifier{c}.Sanitize()
	}
	return strings.Join(quoted, ", ")
}

func placeholders(n int) string {
	p := make([]string, n)
	for i := range p {
		p[i] = fmt.Sprintf("$%d", i+1)
	}
	return strings.Join(p, ", ")
}

// insertIgnoreSQL builds an insert that silently drops rows whose key exists.
func insertIgnoreSQL(table string, columns []string) string {
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT DO NOTHING",
		pgx.Identifier{table}.Sanitize(), quoteColumns(columns), placeholders(len(columns)),
	)
}

// upsertSQL builds an insert that overwrites every non-key column on conflict.
func upsertSQL(table string, columns, conflict []string) string {
	isKey := make(map[string]bool, len(conflict))
	for _, c := range conflict {
		isKey[c] = true
	}

	var updates []string
	for _, c := range columns {
		if isKey[c] {
			continue
		}
		col := pgx.Identifier{c}.Sanitize()
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}

	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s",
		pgx.Identifier{table}.Sanitize(), quoteColumns(columns), placeholders(len(columns)),
		quoteColumns(conflict), strings.Join(updates, ", "),
	)
}
