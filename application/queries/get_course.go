package queries

import (
	"errors"

	"coursemap-backend/domain/catalog"
)

// GetCourseQuery asks for the full record of one course, as shown in the
// detail sidebar.
type GetCourseQuery struct {
	Code string `json:"code"`
}

// Validate validates the query
func (q GetCourseQuery) Validate() error {
	if q.Code == "" {
		return errors.New("code is required")
	}
	return nil
}

// GetCourseResult wraps the course record.
type GetCourseResult struct {
	Course *catalog.CourseRecord `json:"course"`
}
