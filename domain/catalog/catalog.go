package catalog

// Catalog is a read-only index of course and program records. It is built
// once from loaded data and shared by every traversal and build pass, so
// lookups are map-backed O(1).
type Catalog struct {
	courses  map[string]*CourseRecord
	programs map[string]*ProgramRecord
	ordered  []*ProgramRecord
}

// New builds a catalog from loaded records. Duplicate codes keep the first
// occurrence; later duplicates are dropped.
func New(courses []*CourseRecord, programs []*ProgramRecord) *Catalog {
	c := &Catalog{
		courses:  make(map[string]*CourseRecord, len(courses)),
		programs: make(map[string]*ProgramRecord, len(programs)),
		ordered:  make([]*ProgramRecord, 0, len(programs)),
	}

	for _, course := range courses {
		if course.Code == "" {
			continue
		}
		if _, exists := c.courses[course.Code]; !exists {
			c.courses[course.Code] = course
		}
	}

	for _, program := range programs {
		if program.Name == "" {
			continue
		}
		if _, exists := c.programs[program.Name]; !exists {
			c.programs[program.Name] = program
			c.ordered = append(c.ordered, program)
		}
	}

	return c
}

// Lookup returns the course record for a code. A miss is expected input,
// since requirement trees reference courses the catalogue has never seen,
// so the result is a boolean, not an error.
func (c *Catalog) Lookup(code string) (*CourseRecord, bool) {
	course, ok := c.courses[code]
	return course, ok
}

// Program returns the program record for a name.
func (c *Catalog) Program(name string) (*ProgramRecord, bool) {
	program, ok := c.programs[name]
	return program, ok
}

// Programs returns all programs in load order.
func (c *Catalog) Programs() []*ProgramRecord {
	programs := make([]*ProgramRecord, len(c.ordered))
	copy(programs, c.ordered)
	return programs
}

// CourseCount reports the number of distinct courses.
func (c *Catalog) CourseCount() int {
	return len(c.courses)
}

// AllCourseCodes returns every known course code. Order is unspecified.
func (c *Catalog) AllCourseCodes() []string {
	codes := make([]string, 0, len(c.courses))
	for code := range c.courses {
		codes = append(codes, code)
	}
	return codes
}
