// Package jsonsource loads the catalog from the two JSON documents
// produced by the scraping and enrichment pipeline: a course array and a
// program array.
package jsonsource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"coursemap-backend/domain/catalog"

	"go.uber.org/zap"
)

// Loader implements ports.CatalogSource over HTTP URLs or local files.
type Loader struct {
	coursesURL  string
	programsURL string
	client      *http.Client
	logger      *zap.Logger
}

// NewLoader creates a loader. Each URL may be http(s):// or a filesystem
// path.
func NewLoader(coursesURL, programsURL string, logger *zap.Logger) *Loader {
	return &Loader{
		coursesURL:  coursesURL,
		programsURL: programsURL,
		client:      &http.Client{Timeout: 30 * time.Second},
		logger:      logger,
	}
}

// Load fetches both documents concurrently and decodes them. The two
// fetches are independent; either failure fails the whole load, since
// partial catalog data must never be served.
func (l *Loader) Load(ctx context.Context) ([]*catalog.CourseRecord, []*catalog.ProgramRecord, error) {
	type fetchResult struct {
		name string
		data []byte
		err  error
	}

	results := make(chan fetchResult, 2)
	fetch := func(name, url string) {
		data, err := l.fetch(ctx, url)
		results <- fetchResult{name: name, data: data, err: err}
	}
	go fetch("courses", l.coursesURL)
	go fetch("programs", l.programsURL)

	var coursesData, programsData []byte
	for i := 0; i < 2; i++ {
		result := <-results
		if result.err != nil {
			return nil, nil, fmt.Errorf("fetch %s: %w", result.name, result.err)
		}
		if result.name == "courses" {
			coursesData = result.data
		} else {
			programsData = result.data
		}
	}

	var courses []*catalog.CourseRecord
	if err := json.Unmarshal(coursesData, &courses); err != nil {
		return nil, nil, fmt.Errorf("decode courses: %w", err)
	}

	var programs []*catalog.ProgramRecord
	if err := json.Unmarshal(programsData, &programs); err != nil {
		return nil, nil, fmt.Errorf("decode programs: %w", err)
	}

	l.logger.Info("Catalog documents loaded",
		zap.String("coursesURL", l.coursesURL),
		zap.String("programsURL", l.programsURL),
		zap.Int("courses", len(courses)),
		zap.Int("programs", len(programs)),
	)

	return courses, programs, nil
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}

		resp, err := l.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
		}

		return io.ReadAll(resp.Body)
	}

	return os.ReadFile(url)
}
