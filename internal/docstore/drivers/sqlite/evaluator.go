package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/nibbleworks/userbase/internal/docstore"
)

// compileSelect maps a specification onto SQLite. The specification's logical
// pipeline is filter -> paginate -> sort; SQL wants WHERE -> ORDER BY ->
// LIMIT/OFFSET, so the sort is emitted before the page to keep pages stable
// without changing the declared result set. A paged but unsorted
// specification is ordered by id so pages stay deterministic.
//
// SQLite's lower() folds ASCII only, so filters match non-ASCII text
// case-sensitively on this driver.
func compileSelect(containerName string, spec docstore.Specification) (string, []any) {
	var b strings.Builder
	args := []any{sql.Named("container", containerName)}

	b.WriteString("SELECT body FROM documents WHERE container = :container")

	if spec.HasFilter() {
		field, text, exact := spec.Filter()
		if exact {
			fmt.Fprintf(&b, " AND lower(%s) = lower(:filter)", fieldExpr(field))
		} else {
			fmt.Fprintf(&b, " AND instr(lower(%s), lower(:filter)) > 0", fieldExpr(field))
		}
		args = append(args, sql.Named("filter", text))
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
		b.WriteString(" LIMIT :limit OFFSET :offset")
		args = append(args, sql.Named("limit", size), sql.Named("offset", start))
	}

	return b.String(), args
}

// compileCount wraps the same plan, paging included, in a cardinality query.
func compileCount(containerName string, spec docstore.Specification) (string, []any) {
	inner, args := compileSelect(containerName, spec)
	inner = strings.Replace(inner, "SELECT body", "SELECT 1", 1)
	return "SELECT COUNT(*) FROM (" + inner + ")", args
}

// fieldExpr addresses a stored JSON property. Field names are code-provided
// identifiers from per-entity enumerations, never caller input; anything else
// is rejected so the expression can never smuggle SQL.
func fieldExpr(field string) string {
	for _, r := range field {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' {
			continue
		}
		panic(fmt.Sprintf("sqlite: invalid specification field %q", field))
	}
	return fmt.Sprintf("json_extract(body, '$.%s')", field)
}

func direction(dir docstore.SortDirection) string {
	if dir == docstore.Descending {
		return "DESC"
	}
	return "ASC"
}
