package closure

import (
	"testing"

	"coursemap-backend/domain/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func course(code string, prereqs ...catalog.Requirement) *catalog.CourseRecord {
	return &catalog.CourseRecord{Code: code, Prerequisites: prereqs}
}

func testCatalog(courses ...*catalog.CourseRecord) *catalog.Catalog {
	return catalog.New(courses, nil)
}

func TestRelevantSet_FollowsCourseRefsTransitively(t *testing.T) {
	cat := testCatalog(
		course("COMP-360", catalog.CourseRef{Code: "COMP-250"}),
		course("COMP-250", catalog.CourseRef{Code: "COMP-202"}),
		course("COMP-202"),
	)
	resolver := NewResolver(cat, zap.NewNop())

	relevant := resolver.RelevantSet([]string{"COMP-360"})

	assert.Len(t, relevant, 3)
	assert.Contains(t, relevant, "COMP-360")
	assert.Contains(t, relevant, "COMP-250")
	assert.Contains(t, relevant, "COMP-202")
}

func TestRelevantSet_ContainsSeeds(t *testing.T) {
	cat := testCatalog(
		course("ECSE-200"),
		course("ECSE-210", catalog.CourseRef{Code: "ECSE-200"}),
	)
	resolver := NewResolver(cat, zap.NewNop())

	seeds := []string{"ECSE-200", "ECSE-210"}
	relevant := resolver.RelevantSet(seeds)

	for _, seed := range seeds {
		assert.Contains(t, relevant, seed)
	}
}

func TestRelevantSet_SeedOrderIrrelevant(t *testing.T) {
	cat := testCatalog(
		course("A-100", catalog.CourseRef{Code: "B-100"}),
		course("B-100", catalog.CourseRef{Code: "C-100"}),
		course("C-100"),
		course("D-100", catalog.CourseRef{Code: "C-100"}),
	)
	resolver := NewResolver(cat, zap.NewNop())

	forward := resolver.RelevantSet([]string{"A-100", "D-100"})
	reversed := resolver.RelevantSet([]string{"D-100", "A-100"})

	assert.Equal(t, forward, reversed)
}

func TestRelevantSet_TraversesLogicalGroups(t *testing.T) {
	cat := testCatalog(
		course("COMP-360", catalog.LogicalGroup{
			Operator: catalog.OperatorAnd,
			Conditions: []catalog.Requirement{
				catalog.CourseRef{Code: "COMP-251"},
				catalog.LogicalGroup{
					Operator: catalog.OperatorOr,
					Conditions: []catalog.Requirement{
						catalog.CourseRef{Code: "MATH-240"},
						catalog.CourseRef{Code: "MATH-235"},
					},
				},
			},
		}),
		course("COMP-251"),
		course("MATH-240"),
		course("MATH-235"),
	)
	resolver := NewResolver(cat, zap.NewNop())

	relevant := resolver.RelevantSet([]string{"COMP-360"})

	assert.Len(t, relevant, 4)
}

func TestRelevantSet_NOfListAndTextualNotTraversed(t *testing.T) {
	cat := testCatalog(
		course("COMP-400",
			catalog.NOfList{Count: 2, Conditions: []catalog.Requirement{
				catalog.CourseRef{Code: "COMP-330"},
				catalog.CourseRef{Code: "COMP-360"},
			}},
			catalog.Textual{Text: "permission of the instructor"},
		),
		course("COMP-330"),
		course("COMP-360"),
	)
	resolver := NewResolver(cat, zap.NewNop())

	relevant := resolver.RelevantSet([]string{"COMP-400"})

	// Courses referenced only inside n-of lists stay out of the closure.
	require.Len(t, relevant, 1)
	assert.Contains(t, relevant, "COMP-400")
}

func TestRelevantSet_UnknownSeedDropped(t *testing.T) {
	cat := testCatalog(course("COMP-202"))
	resolver := NewResolver(cat, zap.NewNop())

	relevant := resolver.RelevantSet([]string{"FAKE-999", "COMP-202"})

	assert.Len(t, relevant, 1)
	assert.Contains(t, relevant, "COMP-202")
	assert.NotContains(t, relevant, "FAKE-999")
}

func TestRelevantSet_DanglingReferenceIgnored(t *testing.T) {
	cat := testCatalog(
		course("COMP-202", catalog.CourseRef{Code: "GHOST-101"}),
	)
	resolver := NewResolver(cat, zap.NewNop())

	relevant := resolver.RelevantSet([]string{"COMP-202"})

	assert.Len(t, relevant, 1)
}

func TestRelevantSet_CyclicCorequisitesTerminate(t *testing.T) {
	a := &catalog.CourseRecord{
		Code:         "ECSE-251",
		Corequisites: catalog.RequirementList{catalog.CourseRef{Code: "ECSE-252"}},
	}
	b := &catalog.CourseRecord{
		Code:         "ECSE-252",
		Corequisites: catalog.RequirementList{catalog.CourseRef{Code: "ECSE-251"}},
	}
	resolver := NewResolver(catalog.New([]*catalog.CourseRecord{a, b}, nil), zap.NewNop())

	relevant := resolver.RelevantSet([]string{"ECSE-251"})

	assert.Len(t, relevant, 2)
}
