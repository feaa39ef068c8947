package postgres

import (
	"fmt"
	"strings"

	"github.com/nibbleworks/userbase/internal/docstore"

	"github.com/jackc/pgx/v5"
)

// compileSelect maps a specification onto PostgreSQL. Like every SQL-shaped
// store this wants WHERE -> ORDER BY -> LIMIT/OFFSET, so the sort is emitted
// ahead of the page while preserving the specification's declared result set.
// A paged but unsorted specification is ordered by id for deterministic pages.
func compileSelect(containerName string, spec docstore.Specification) (string, pgx.NamedArgs) {
	var b strings.Builder
	args := pgx.NamedArgs{"container": containerName}

	b.WriteString("SELECT body::text FROM documents WHERE container = @container")

	if spec.HasFilter() {
		field, text, exact := spec.Filter()
		if exact {
			fmt.Fprintf(&b, " AND lower(%s) = lower(@filter)", fieldExpr(field))
		} else {
			fmt.Fprintf(&b, " AND strpos(lower(%s), lower(@filter)) > 0", fieldExpr(field))
		}
		args["filter"] = text
	}

	switch {
	case spec.Sorted():
		field, dir := spec.Sort()
		fmt.Fprintf(&b, " ORDER BY %s %s, id ASC", fieldExpr(field), direction(dir))
	case spec.Paged():
		b.WriteString(" ORDER BY id ASC")
	}

	if spec.Paged() {
		start, size := spec.Page()
		b.WriteString(" LIMIT @pagesize OFFSET @pagestart")
		args["pagesize"] = size
		args["pagestart"] = start
	}

	return b.String(), args
}

// compileCount wraps the same plan, paging included, in a cardinality query.
func compileCount(containerName string, spec docstore.Specification) (string, pgx.NamedArgs) {
	inner, args := compileSelect(containerName, spec)
	inner = strings.Replace(inner, "SELECT body::text", "SELECT 1", 1)
	return "SELECT COUNT(*) FROM (" + inner + ") AS q", args
}

// fieldExpr addresses a stored JSON property. Field names are code-provided
// identifiers from per-entity enumerations, never caller input.
func fieldExpr(field string) string {
	for _, r := range field {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' {
			continue
		}
		panic(fmt.Sprintf("postgres: invalid specification field %q", field))
	}
	return fmt.Sprintf("(body ->> '%s')", field)
}

func direction(dir docstore.SortDirection) string {
	if dir == docstore.Descending {
		return "DESC"
	}
	return "ASC"
}
