package catalog

// CourseRecord holds everything the catalogue knows about a single course.
// Records are built once at load time and never mutated afterwards.
type CourseRecord struct {
	Code        string `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Credits     string `json:"credits"`

	// Extra metadata carried through from the scraping stage when present.
	// Department and TermsOffered arrive as free-form display strings
	// ("Computer Science (Faculty of Science)", "Fall 2025, Winter 2026").
	Faculty      string `json:"faculty,omitempty"`
	Department   string `json:"department_full,omitempty"`
	TermsOffered string `json:"terms_offered,omitempty"`

	// Raw requirement text as displayed to users.
	PrerequisitesRaw string `json:"prerequisites_raw"`
	CorequisitesRaw  string `json:"corequisites_raw"`

	// Parsed requirement trees. Each slice is conjunctive at the top level:
	// every entry must hold for the requirement to be satisfied.
	Prerequisites RequirementList `json:"prerequisites_parsed"`
	Corequisites  RequirementList `json:"corequisites_parsed"`
}

// ProgramRecord names a program and the ordered course codes that seed its
// dependency graph.
type ProgramRecord struct {
	Name    string   `json:"program"`
	Courses []string `json:"courses"`
}
