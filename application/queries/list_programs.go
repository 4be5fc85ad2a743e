package queries

// ListProgramsQuery asks for every program in the catalogue.
type ListProgramsQuery struct{}

// Validate validates the query
func (q ListProgramsQuery) Validate() error {
	return nil
}

// ProgramSummary is one program in a listing.
type ProgramSummary struct {
	Name        string `json:"name"`
	CourseCount int    `json:"course_count"`
}

// ListProgramsResult holds the program listing.
type ListProgramsResult struct {
	Programs []ProgramSummary `json:"programs"`
}
