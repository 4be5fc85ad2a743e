package services

import (
	"context"
	"sort"
	"time"

	"coursemap-backend/domain/closure"
	"coursemap-backend/domain/graph"
	pkgerrors "coursemap-backend/pkg/errors"
	"coursemap-backend/pkg/observability"

	"go.uber.org/zap"
)

// GraphService runs the closure-then-build pipeline: seed codes in, a
// renderable graph out. Each call is a full rebuild against the current
// catalog; nothing is patched incrementally.
type GraphService struct {
	catalogs *CatalogService
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewGraphService creates a graph service.
func NewGraphService(catalogs *CatalogService, metrics *observability.Metrics, logger *zap.Logger) *GraphService {
	return &GraphService{
		catalogs: catalogs,
		metrics:  metrics,
		logger:   logger,
	}
}

// BuildForProgram resolves a program's closure and builds its graph.
func (s *GraphService) BuildForProgram(ctx context.Context, name string) (*graph.Graph, error) {
	cat := s.catalogs.Catalog()

	program, ok := cat.Program(name)
	if !ok {
		return nil, pkgerrors.NewNotFoundError("program")
	}

	return s.build(ctx, name, program.Courses), nil
}

// BuildAll builds the "show all programs" graph: the combined closure of
// every program's seed list.
func (s *GraphService) BuildAll(ctx context.Context) *graph.Graph {
	cat := s.catalogs.Catalog()

	var seeds []string
	for _, program := range cat.Programs() {
		seeds = append(seeds, program.Courses...)
	}

	return s.build(ctx, "", seeds)
}

// Build dispatches on program name, empty meaning the full catalogue.
func (s *GraphService) Build(ctx context.Context, program string) (*graph.Graph, error) {
	if program == "" {
		return s.BuildAll(ctx), nil
	}
	return s.BuildForProgram(ctx, program)
}

func (s *GraphService) build(ctx context.Context, program string, seeds []string) *graph.Graph {
	start := time.Now()
	cat := s.catalogs.Catalog()

	resolver := closure.NewResolver(cat, s.logger)
	relevant := resolver.RelevantSet(seeds)

	// The relevant set is unordered; sort it so node order is stable
	// across rebuilds.
	display := make([]string, 0, len(relevant))
	for code := range relevant {
		display = append(display, code)
	}
	sort.Strings(display)

	builder := graph.NewBuilder(cat, s.logger)
	g := builder.Build(display)

	label := program
	if label == "" {
		label = "(all)"
	}
	s.logger.Info("Graph rebuilt",
		zap.String("program", label),
		zap.Int("nodes", len(g.Nodes)),
		zap.Int("edges", len(g.Edges)),
		zap.Duration("duration", time.Since(start)),
	)
	s.metrics.Timing(ctx, "GraphBuildDuration", "Program", label, time.Since(start))

	return g
}
