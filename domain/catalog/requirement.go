package catalog

import (
	"encoding/json"
	"fmt"
)

// Operator is the connective of a LogicalGroup.
type Operator string

const (
	OperatorAnd Operator = "AND"
	OperatorOr  Operator = "OR"
)

// Requirement is one node of a parsed prerequisite/corequisite tree. It is a
// closed set of variants: CourseRef, LogicalGroup, Textual and NOfList.
// Consumers switch over the concrete type and must handle all four; the
// JSON codec rejects anything else at load time rather than letting an
// unknown variant slip through as a silently ignored branch.
type Requirement interface {
	isRequirement()
}

// CourseRef references another course by code. The code may dangle: the
// enrichment stage emits references to courses the scraper never saw, and
// callers are expected to treat a failed lookup as normal input.
type CourseRef struct {
	Code string
}

// LogicalGroup combines child requirements with AND or OR.
type LogicalGroup struct {
	Operator   Operator
	Conditions []Requirement
}

// Textual is a free-text condition with no machine-checkable structure,
// e.g. "permission of the instructor".
type Textual struct {
	Text string
}

// NOfList requires Count of the listed conditions to be satisfied.
type NOfList struct {
	Count      int
	Conditions []Requirement
}

func (CourseRef) isRequirement()    {}
func (LogicalGroup) isRequirement() {}
func (Textual) isRequirement()      {}
func (NOfList) isRequirement()      {}

// Wire-format type tags produced by the enrichment stage.
const (
	typeCourse          = "COURSE"
	typeLogicalOperator = "LOGICAL_OPERATOR"
	typeTextual         = "TEXTUAL"
	typeNOfList         = "N_OF_LIST"
)

// RequirementList is a top-level requirement sequence with the tagged-JSON
// codec used by the upstream data files.
type RequirementList []Requirement

// UnmarshalJSON decodes an array of tagged requirement objects.
func (l *RequirementList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	reqs := make([]Requirement, 0, len(raw))
	for i, msg := range raw {
		req, err := unmarshalRequirement(msg)
		if err != nil {
			return fmt.Errorf("requirement %d: %w", i, err)
		}
		reqs = append(reqs, req)
	}

	*l = reqs
	return nil
}

// MarshalJSON re-encodes the list in the same tagged format so course
// records round-trip through storage unchanged.
func (l RequirementList) MarshalJSON() ([]byte, error) {
	raw := make([]json.RawMessage, 0, len(l))
	for _, req := range l {
		msg, err := marshalRequirement(req)
		if err != nil {
			return nil, err
		}
		raw = append(raw, msg)
	}
	return json.Marshal(raw)
}

func unmarshalRequirement(data []byte) (Requirement, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}

	switch head.Type {
	case typeCourse:
		var body struct {
			Code string `json:"code"`
		}
		if err := json.Unmarshal(data, &body); err != nil {
			return nil, err
		}
		return CourseRef{Code: body.Code}, nil

	case typeLogicalOperator:
		var body struct {
			Operator   Operator          `json:"operator"`
			Conditions []json.RawMessage `json:"conditions"`
		}
		if err := json.Unmarshal(data, &body); err != nil {
			return nil, err
		}
		if body.Operator != OperatorAnd && body.Operator != OperatorOr {
			return nil, fmt.Errorf("unknown logical operator %q", body.Operator)
		}
		conditions, err := unmarshalConditions(body.Conditions)
		if err != nil {
			return nil, err
		}
		return LogicalGroup{Operator: body.Operator, Conditions: conditions}, nil

	case typeTextual:
		var body struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(data, &body); err != nil {
			return nil, err
		}
		return Textual{Text: body.Text}, nil

	case typeNOfList:
		var body struct {
			Count      int               `json:"count"`
			Conditions []json.RawMessage `json:"conditions"`
		}
		if err := json.Unmarshal(data, &body); err != nil {
			return nil, err
		}
		conditions, err := unmarshalConditions(body.Conditions)
		if err != nil {
			return nil, err
		}
		return NOfList{Count: body.Count, Conditions: conditions}, nil

	default:
		return nil, fmt.Errorf("unknown requirement type %q", head.Type)
	}
}

func unmarshalConditions(raw []json.RawMessage) ([]Requirement, error) {
	conditions := make([]Requirement, 0, len(raw))
	for i, msg := range raw {
		req, err := unmarshalRequirement(msg)
		if err != nil {
			return nil, fmt.Errorf("condition %d: %w", i, err)
		}
		conditions = append(conditions, req)
	}
	return conditions, nil
}

func marshalRequirement(req Requirement) (json.RawMessage, error) {
	switch r := req.(type) {
	case CourseRef:
		return json.Marshal(struct {
			Type string `json:"type"`
			Code string `json:"code"`
		}{typeCourse, r.Code})

	case LogicalGroup:
		conditions, err := marshalConditions(r.Conditions)
		if err != nil {
			return nil, err
		}
		return json.Marshal(struct {
			Type       string            `json:"type"`
			Operator   Operator          `json:"operator"`
			Conditions []json.RawMessage `json:"conditions"`
		}{typeLogicalOperator, r.Operator, conditions})

	case Textual:
		return json.Marshal(struct {
			Type string `json:"type"`
			Text string `json:"text"`
		}{typeTextual, r.Text})

	case NOfList:
		conditions, err := marshalConditions(r.Conditions)
		if err != nil {
			return nil, err
		}
		return json.Marshal(struct {
			Type       string            `json:"type"`
			Count      int               `json:"count"`
			Conditions []json.RawMessage `json:"conditions"`
		}{typeNOfList, r.Count, conditions})

	default:
		return nil, fmt.Errorf("unknown requirement variant %T", req)
	}
}

func marshalConditions(conditions []Requirement) ([]json.RawMessage, error) {
	raw := make([]json.RawMessage, 0, len(conditions))
	for _, req := range conditions {
		msg, err := marshalRequirement(req)
		if err != nil {
			return nil, err
		}
		raw = append(raw, msg)
	}
	return raw, nil
}
