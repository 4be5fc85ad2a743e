package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_LookupAndCounts(t *testing.T) {
	cat := New(
		[]*CourseRecord{
			{Code: "COMP-202", Title: "Foundations of Programming"},
			{Code: "COMP-250", Title: "Introduction to Computer Science"},
		},
		[]*ProgramRecord{
			{Name: "Software Engineering", Courses: []string{"COMP-202", "COMP-250"}},
		},
	)

	course, ok := cat.Lookup("COMP-202")
	require.True(t, ok)
	assert.Equal(t, "Foundations of Programming", course.Title)

	_, ok = cat.Lookup("FAKE-999")
	assert.False(t, ok)

	assert.Equal(t, 2, cat.CourseCount())
	assert.ElementsMatch(t, []string{"COMP-202", "COMP-250"}, cat.AllCourseCodes())
}

func TestCatalog_DuplicateCodesKeepFirst(t *testing.T) {
	cat := New(
		[]*CourseRecord{
			{Code: "COMP-202", Title: "First"},
			{Code: "COMP-202", Title: "Second"},
		},
		nil,
	)

	course, ok := cat.Lookup("COMP-202")
	require.True(t, ok)
	assert.Equal(t, "First", course.Title)
	assert.Equal(t, 1, cat.CourseCount())
}

func TestCatalog_ProgramsPreserveLoadOrder(t *testing.T) {
	cat := New(nil, []*ProgramRecord{
		{Name: "Electrical Engineering"},
		{Name: "Software Engineering"},
		{Name: "Electrical Engineering"}, // duplicate dropped
	})

	programs := cat.Programs()
	require.Len(t, programs, 2)
	assert.Equal(t, "Electrical Engineering", programs[0].Name)
	assert.Equal(t, "Software Engineering", programs[1].Name)

	_, ok := cat.Program("Software Engineering")
	assert.True(t, ok)
}

func TestCatalog_BlankRecordsIgnored(t *testing.T) {
	cat := New(
		[]*CourseRecord{{Code: ""}},
		[]*ProgramRecord{{Name: ""}},
	)

	assert.Equal(t, 0, cat.CourseCount())
	assert.Empty(t, cat.Programs())
}
