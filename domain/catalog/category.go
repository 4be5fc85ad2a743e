package catalog

import "strings"

// Category is the display grouping used for colouring and filtering nodes.
// The zero value means "no category" (junction and textual nodes).
type Category string

// CategoryAll is the filter value that matches every category.
const CategoryAll Category = "all"

// categoryOverrides maps individual courses into a display group different
// from their subject prefix. Cross-listed service courses taught for a
// specific program are grouped with that program's subject.
var categoryOverrides = map[string]Category{
	"MATH-262": "ECSE",
	"MATH-263": "ECSE",
	"FACC-100": "ECSE",
	"FACC-250": "ECSE",
}

// Classify derives a course's category from its code: the override table
// first, otherwise the subject prefix before the first dash ("COMP-202" ->
// "COMP"). Codes without a dash classify as their own category.
func Classify(code string) Category {
	if override, ok := categoryOverrides[code]; ok {
		return override
	}
	if i := strings.IndexByte(code, '-'); i > 0 {
		return Category(code[:i])
	}
	return Category(code)
}

// Matches reports whether a node category passes the given filter. An empty
// node category only matches the "all" filter.
func (c Category) Matches(filter Category) bool {
	return filter == CategoryAll || (c != "" && c == filter)
}
