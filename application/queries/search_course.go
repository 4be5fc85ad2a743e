package queries

import "errors"

// SearchCourseQuery resolves a course code inside the current display set.
// Program scopes the display set; empty means the full catalogue.
type SearchCourseQuery struct {
	Code    string `json:"code"`
	Program string `json:"program,omitempty"`
}

// Validate validates the query
func (q SearchCourseQuery) Validate() error {
	if q.Code == "" {
		return errors.New("code is required")
	}
	return nil
}

// SearchCourseResult reports where the code landed. A miss is not an error:
// Found is false and Notice carries the user-visible message; no state
// changes anywhere.
type SearchCourseResult struct {
	Found  bool   `json:"found"`
	NodeID string `json:"node_id,omitempty"`
	Notice string `json:"notice,omitempty"`
}
