package docstore

// SortDirection orders a sorted specification.
type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

const (
	// DefaultPageSize bounds a specification that did not choose a page size.
	DefaultPageSize = 50

	// NoLimit disables paging entirely when used as the page size.
	NoLimit = -1
)

// Specification is an immutable, declarative description of a filter/sort/
// paging query over one container. Build one with NewSpecification and the
// With* methods, which return modified copies; a driver-side evaluator
// compiles it into the store's native query form.
//
// The logical pipeline is filter, then paginate, then sort. Evaluators must
// translate that into whatever operation order their store requires (sort
// before skip/take for every SQL-shaped store) without changing the declared
// result set.
type Specification struct {
	filterField string
	filterText  string
	exactMatch  bool

	pageStart int
	pageSize  int

	sortField string
	sortDir   SortDirection
	sorted    bool
}

// NewSpecification returns a specification with no filter, no sort, and the
// default page size.
func NewSpecification() Specification {
	return Specification{pageSize: DefaultPageSize}
}

// WithFilter returns a copy matching documents whose field equals the text
// (exact) or contains it, case-insensitively either way. Case folding is the
// driver's: postgres folds per the database locale, sqlite folds ASCII only,
// so non-ASCII text may match differently across drivers. The field is the
// stored JSON property name and must come from code, not caller input.
func (s Specification) WithFilter(field, text string, exact bool) Specification {
	s.filterField = field
	s.filterText = text
	s.exactMatch = exact
	return s
}

// WithPaging returns a copy skipping start documents and taking size. A size
// of NoLimit disables paging.
func (s Specification) WithPaging(start, size int) Specification {
	s.pageStart = start
	s.pageSize = size
	return s
}

// WithSort returns a copy ordered by the stored JSON property field.
func (s Specification) WithSort(field string, dir SortDirection) Specification {
	s.sortField = field
	s.sortDir = dir
	s.sorted = true
	return s
}

// HasFilter reports whether a predicate was set.
func (s Specification) HasFilter() bool {
	return s.filterField != "" && s.filterText != ""
}

// Filter returns the predicate parameters. Only meaningful when HasFilter.
func (s Specification) Filter() (field, text string, exact bool) {
	return s.filterField, s.filterText, s.exactMatch
}

// Paged reports whether skip/take applies.
func (s Specification) Paged() bool { return s.pageSize != NoLimit }

// Page returns the skip/take pair. Only meaningful when Paged.
func (s Specification) Page() (start, size int) { return s.pageStart, s.pageSize }

// Sorted reports whether an ordering was set.
func (s Specification) Sorted() bool { return s.sorted }

// Sort returns the ordering. Only meaningful when Sorted.
func (s Specification) Sort() (field string, dir SortDirection) {
	return s.sortField, s.sortDir
}
