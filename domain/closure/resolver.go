// Package closure computes the set of courses relevant to a program: every
// course reachable from the program's seed list by following course
// references through parsed requirement trees.
package closure

import (
	"coursemap-backend/domain/catalog"

	"go.uber.org/zap"
)

// Resolver walks requirement trees breadth-first over a catalog.
type Resolver struct {
	catalog *catalog.Catalog
	logger  *zap.Logger
}

// NewResolver creates a resolver bound to a catalog.
func NewResolver(cat *catalog.Catalog, logger *zap.Logger) *Resolver {
	return &Resolver{
		catalog: cat,
		logger:  logger,
	}
}

// RelevantSet returns the transitive closure of the seed codes. Seeds absent
// from the catalog are dropped with a warning. The result is a set, so it is
// independent of seed order, and it grows monotonically toward the catalog
// size, which bounds termination.
//
// Only CourseRef and LogicalGroup nodes are traversed. Courses referenced
// solely inside NOfList groups or described in free text never enter the
// closure, matching the long-standing behaviour the rendering layer was
// built against.
func (r *Resolver) RelevantSet(seeds []string) map[string]struct{} {
	relevant := make(map[string]struct{})
	frontier := make([]string, 0, len(seeds))

	for _, code := range seeds {
		if _, ok := r.catalog.Lookup(code); !ok {
			r.logger.Warn("Seed course not in catalog, skipping",
				zap.String("code", code),
			)
			continue
		}
		if _, seen := relevant[code]; seen {
			continue
		}
		relevant[code] = struct{}{}
		frontier = append(frontier, code)
	}

	for len(frontier) > 0 {
		code := frontier[0]
		frontier = frontier[1:]

		course, ok := r.catalog.Lookup(code)
		if !ok {
			continue
		}

		for _, req := range course.Prerequisites {
			frontier = r.scan(req, relevant, frontier)
		}
		for _, req := range course.Corequisites {
			frontier = r.scan(req, relevant, frontier)
		}
	}

	return relevant
}

// scan adds catalogued course references from one requirement node to the
// result set and returns the extended frontier.
func (r *Resolver) scan(req catalog.Requirement, relevant map[string]struct{}, frontier []string) []string {
	switch node := req.(type) {
	case catalog.CourseRef:
		if _, seen := relevant[node.Code]; seen {
			return frontier
		}
		if _, ok := r.catalog.Lookup(node.Code); !ok {
			return frontier
		}
		relevant[node.Code] = struct{}{}
		return append(frontier, node.Code)

	case catalog.LogicalGroup:
		for _, condition := range node.Conditions {
			frontier = r.scan(condition, relevant, frontier)
		}
		return frontier

	case catalog.Textual, catalog.NOfList:
		// Not traversed for closure purposes.
		return frontier

	default:
		r.logger.Warn("Unhandled requirement variant during closure scan",
			zap.Any("requirement", req),
		)
		return frontier
	}
}
