package jsonsource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"coursemap-backend/domain/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const coursesJSON = `[
	{
		"code": "COMP-202",
		"title": "Foundations of Programming",
		"credits": "3",
		"prerequisites_raw": "",
		"corequisites_raw": "",
		"prerequisites_parsed": [],
		"corequisites_parsed": []
	},
	{
		"code": "COMP-250",
		"title": "Introduction to Computer Science",
		"credits": "3",
		"faculty": "Faculty of Science",
		"department_full": "Computer Science (Sci) (Faculty of Science)",
		"terms_offered": "Fall 2025, Winter 2026",
		"prerequisites_raw": "COMP 202",
		"corequisites_raw": "",
		"prerequisites_parsed": [{"type": "COURSE", "code": "COMP-202"}],
		"corequisites_parsed": []
	}
]`

const programsJSON = `[
	{"program": "Computer Science", "courses": ["COMP-250"]}
]`

func TestLoader_LoadFromHTTP(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/courses.json":
			w.Write([]byte(coursesJSON))
		case "/programs.json":
			w.Write([]byte(programsJSON))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	loader := NewLoader(server.URL+"/courses.json", server.URL+"/programs.json", zap.NewNop())

	// Act
	courses, programs, err := loader.Load(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, courses, 2)
	require.Len(t, programs, 1)

	assert.Equal(t, "COMP-250", courses[1].Code)
	require.Len(t, courses[1].Prerequisites, 1)
	ref, ok := courses[1].Prerequisites[0].(catalog.CourseRef)
	require.True(t, ok)
	assert.Equal(t, "COMP-202", ref.Code)

	// Scraper metadata arrives as free-form display strings.
	assert.Equal(t, "Computer Science (Sci) (Faculty of Science)", courses[1].Department)
	assert.Equal(t, "Fall 2025, Winter 2026", courses[1].TermsOffered)

	assert.Equal(t, "Computer Science", programs[0].Name)
	assert.Equal(t, []string{"COMP-250"}, programs[0].Courses)
}

func TestLoader_LoadFromFiles(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	coursesPath := filepath.Join(dir, "courses.json")
	programsPath := filepath.Join(dir, "programs.json")
	require.NoError(t, os.WriteFile(coursesPath, []byte(coursesJSON), 0o644))
	require.NoError(t, os.WriteFile(programsPath, []byte(programsJSON), 0o644))

	loader := NewLoader(coursesPath, programsPath, zap.NewNop())

	// Act
	courses, programs, err := loader.Load(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Len(t, courses, 2)
	assert.Len(t, programs, 1)
}

func TestLoader_EitherFetchFailureFailsLoad(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/courses.json" {
			w.Write([]byte(coursesJSON))
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer server.Close()

	loader := NewLoader(server.URL+"/courses.json", server.URL+"/programs.json", zap.NewNop())

	// Act
	courses, programs, err := loader.Load(context.Background())

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch programs")
	assert.Nil(t, courses)
	assert.Nil(t, programs)
}

func TestLoader_MalformedJSONRejected(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/courses.json" {
			w.Write([]byte(`{"not": "an array"`))
			return
		}
		w.Write([]byte(programsJSON))
	}))
	defer server.Close()

	loader := NewLoader(server.URL+"/courses.json", server.URL+"/programs.json", zap.NewNop())

	// Act
	_, _, err := loader.Load(context.Background())

	// Assert
	require.Error(t, err)
}

func TestLoader_MissingFileFailsLoad(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	coursesPath := filepath.Join(dir, "courses.json")
	require.NoError(t, os.WriteFile(coursesPath, []byte(coursesJSON), 0o644))

	loader := NewLoader(coursesPath, filepath.Join(dir, "missing.json"), zap.NewNop())

	// Act
	_, _, err := loader.Load(context.Background())

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch programs")
}
