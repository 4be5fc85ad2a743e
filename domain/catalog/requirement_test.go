package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequirementList_UnmarshalTaggedJSON(t *testing.T) {
	input := `[
		{"type": "LOGICAL_OPERATOR", "operator": "AND", "conditions": [
			{"type": "COURSE", "code": "COMP-250"},
			{"type": "LOGICAL_OPERATOR", "operator": "OR", "conditions": [
				{"type": "COURSE", "code": "MATH-235"},
				{"type": "COURSE", "code": "MATH-240"}
			]}
		]},
		{"type": "TEXTUAL", "text": "or permission of the instructor"},
		{"type": "N_OF_LIST", "count": 2, "conditions": [
			{"type": "COURSE", "code": "COMP-330"},
			{"type": "COURSE", "code": "COMP-360"},
			{"type": "COURSE", "code": "COMP-362"}
		]}
	]`

	var list RequirementList
	require.NoError(t, json.Unmarshal([]byte(input), &list))
	require.Len(t, list, 3)

	group, ok := list[0].(LogicalGroup)
	require.True(t, ok)
	assert.Equal(t, OperatorAnd, group.Operator)
	require.Len(t, group.Conditions, 2)
	assert.Equal(t, CourseRef{Code: "COMP-250"}, group.Conditions[0])

	nested, ok := group.Conditions[1].(LogicalGroup)
	require.True(t, ok)
	assert.Equal(t, OperatorOr, nested.Operator)
	assert.Len(t, nested.Conditions, 2)

	text, ok := list[1].(Textual)
	require.True(t, ok)
	assert.Equal(t, "or permission of the instructor", text.Text)

	nOf, ok := list[2].(NOfList)
	require.True(t, ok)
	assert.Equal(t, 2, nOf.Count)
	assert.Len(t, nOf.Conditions, 3)
}

func TestRequirementList_UnknownTypeRejected(t *testing.T) {
	var list RequirementList
	err := json.Unmarshal([]byte(`[{"type": "MYSTERY"}]`), &list)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MYSTERY")
}

func TestRequirementList_UnknownOperatorRejected(t *testing.T) {
	var list RequirementList
	err := json.Unmarshal([]byte(`[{"type": "LOGICAL_OPERATOR", "operator": "XOR", "conditions": []}]`), &list)
	require.Error(t, err)
}

func TestRequirementList_RoundTrip(t *testing.T) {
	original := RequirementList{
		LogicalGroup{
			Operator: OperatorOr,
			Conditions: []Requirement{
				CourseRef{Code: "ECSE-200"},
				Textual{Text: "CEGEP physics"},
			},
		},
		NOfList{Count: 1, Conditions: []Requirement{CourseRef{Code: "MATH-141"}}},
	}

	encoded, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded RequirementList
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, original, decoded)
}

func TestCourseRecord_ParsedFieldsDecode(t *testing.T) {
	input := `{
		"code": "ECSE-324",
		"title": "Computer Organization",
		"credits": "4",
		"faculty": "Faculty of Engineering",
		"prerequisites_raw": "ECSE 222 or COMP 250",
		"prerequisites_parsed": [
			{"type": "LOGICAL_OPERATOR", "operator": "OR", "conditions": [
				{"type": "COURSE", "code": "ECSE-222"},
				{"type": "COURSE", "code": "COMP-250"}
			]}
		],
		"corequisites_parsed": []
	}`

	var course CourseRecord
	require.NoError(t, json.Unmarshal([]byte(input), &course))

	assert.Equal(t, "ECSE-324", course.Code)
	assert.Equal(t, "ECSE 222 or COMP 250", course.PrerequisitesRaw)
	require.Len(t, course.Prerequisites, 1)
	assert.Empty(t, course.Corequisites)
}
