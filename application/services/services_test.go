package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"coursemap-backend/domain/catalog"
	"coursemap-backend/domain/events"
	"coursemap-backend/domain/session"
	pkgerrors "coursemap-backend/pkg/errors"
	"coursemap-backend/pkg/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeSource serves fixed records, or an error.
type fakeSource struct {
	courses  []*catalog.CourseRecord
	programs []*catalog.ProgramRecord
	err      error
	loads    int
}

func (f *fakeSource) Load(context.Context) ([]*catalog.CourseRecord, []*catalog.ProgramRecord, error) {
	f.loads++
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.courses, f.programs, nil
}

// fakeBus records published events.
type fakeBus struct {
	mu     sync.Mutex
	events []events.DomainEvent
}

func (f *fakeBus) Publish(_ context.Context, e events.DomainEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
	return nil
}

func (f *fakeBus) PublishBatch(ctx context.Context, es []events.DomainEvent) error {
	for _, e := range es {
		if err := f.Publish(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeBus) eventTypes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	types := make([]string, 0, len(f.events))
	for _, e := range f.events {
		types = append(types, e.GetEventType())
	}
	return types
}

// fakeCache counts flushes.
type fakeCache struct {
	flushes int
}

func (f *fakeCache) Get(context.Context, string) (interface{}, bool) { return nil, false }

func (f *fakeCache) Set(context.Context, string, interface{}, int) error { return nil }

func (f *fakeCache) Flush(ctx context.Context) error {
	f.flushes++
	return nil
}

// fakeStore is an in-memory session store without expiry.
type fakeStore struct {
	mu       sync.Mutex
	sessions map[string]*session.Session
}

func newFakeStore() *fakeStore {
	return &fakeStore{sessions: map[string]*session.Session{}}
}

func (f *fakeStore) Save(_ context.Context, s *session.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[s.ID] = s
	return nil
}

func (f *fakeStore) Get(_ context.Context, id string) (*session.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("session " + id)
	}
	return s, nil
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, id)
	return nil
}

func fixtureSource() *fakeSource {
	return &fakeSource{
		courses: []*catalog.CourseRecord{
			{Code: "COMP-360", Title: "Algorithm Design", Prerequisites: catalog.RequirementList{
				catalog.CourseRef{Code: "COMP-250"},
			}},
			{Code: "COMP-250", Title: "Intro to Computer Science", Prerequisites: catalog.RequirementList{
				catalog.CourseRef{Code: "COMP-202"},
			}},
			{Code: "COMP-202", Title: "Foundations of Programming"},
			{Code: "MATH-240", Title: "Discrete Structures"},
		},
		programs: []*catalog.ProgramRecord{
			{Name: "Computer Science", Courses: []string{"COMP-360"}},
			{Name: "Mathematics", Courses: []string{"MATH-240"}},
		},
	}
}

func newTestStack(t *testing.T, source *fakeSource) (*CatalogService, *GraphService, *SessionService, *fakeBus, *fakeCache, *fakeStore) {
	t.Helper()
	logger := zap.NewNop()
	bus := &fakeBus{}
	cache := &fakeCache{}
	store := newFakeStore()

	catalogs := NewCatalogService(source, bus, cache, logger)
	require.NoError(t, catalogs.Load(context.Background()))

	metrics := observability.NewMetrics("Test", nil)
	graphs := NewGraphService(catalogs, metrics, logger)
	sessions := NewSessionService(catalogs, graphs, store, bus, logger)
	return catalogs, graphs, sessions, bus, cache, store
}

func TestCatalogService_LoadSwapsAndBumpsVersion(t *testing.T) {
	source := fixtureSource()
	catalogs, _, _, bus, cache, _ := newTestStack(t, source)

	assert.Equal(t, int64(1), catalogs.Version())
	assert.Equal(t, 4, catalogs.Catalog().CourseCount())
	assert.Equal(t, 1, cache.flushes)
	assert.Contains(t, bus.eventTypes(), "catalog.loaded")

	require.NoError(t, catalogs.Load(context.Background()))
	assert.Equal(t, int64(2), catalogs.Version())
	assert.Equal(t, 2, cache.flushes)
}

func TestCatalogService_LoadFailureKeepsPreviousCatalog(t *testing.T) {
	source := fixtureSource()
	catalogs, _, _, _, _, _ := newTestStack(t, source)

	source.err = errors.New("upstream down")
	err := catalogs.Load(context.Background())

	require.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeDataSource))
	// The previous catalog stays in place.
	assert.Equal(t, int64(1), catalogs.Version())
	assert.Equal(t, 4, catalogs.Catalog().CourseCount())
}

func TestGraphService_BuildForProgram(t *testing.T) {
	_, graphs, _, _, _, _ := newTestStack(t, fixtureSource())

	g, err := graphs.BuildForProgram(context.Background(), "Computer Science")
	require.NoError(t, err)

	// The closure pulls in the whole prerequisite chain.
	assert.True(t, g.HasNode("COMP-360"))
	assert.True(t, g.HasNode("COMP-250"))
	assert.True(t, g.HasNode("COMP-202"))
	assert.False(t, g.HasNode("MATH-240"))
}

func TestGraphService_UnknownProgram(t *testing.T) {
	_, graphs, _, _, _, _ := newTestStack(t, fixtureSource())

	_, err := graphs.BuildForProgram(context.Background(), "Astrology")

	require.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeNotFound))
}

func TestGraphService_BuildAllCombinesPrograms(t *testing.T) {
	_, graphs, _, _, _, _ := newTestStack(t, fixtureSource())

	g := graphs.BuildAll(context.Background())

	assert.True(t, g.HasNode("COMP-360"))
	assert.True(t, g.HasNode("MATH-240"))
}

func TestSessionService_CreateAndGet(t *testing.T) {
	_, _, sessions, _, _, _ := newTestStack(t, fixtureSource())
	ctx := context.Background()

	created, err := sessions.Create(ctx, "Computer Science")
	require.NoError(t, err)
	require.NotEmpty(t, created.Session.ID)
	assert.Equal(t, "Computer Science", created.Session.Program)
	assert.False(t, created.Session.State.HasSelection())
	assert.Equal(t, catalog.CategoryAll, created.Session.State.Filter)
	assert.Len(t, created.Frame.Nodes, 3)

	fetched, err := sessions.Get(ctx, created.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Session.ID, fetched.Session.ID)
}

func TestSessionService_CreateUnknownProgram(t *testing.T) {
	_, _, sessions, _, _, _ := newTestStack(t, fixtureSource())

	_, err := sessions.Create(context.Background(), "Astrology")

	require.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeNotFound))
}

func TestSessionService_NodeClickReturnsCourse(t *testing.T) {
	_, _, sessions, _, _, _ := newTestStack(t, fixtureSource())
	ctx := context.Background()

	created, err := sessions.Create(ctx, "Computer Science")
	require.NoError(t, err)

	result, err := sessions.Apply(ctx, created.Session.ID, Interaction{
		Type:   InteractionNodeClick,
		NodeID: "COMP-250",
	})
	require.NoError(t, err)

	assert.True(t, result.Session.State.IsSelected("COMP-250"))
	require.NotNil(t, result.Course)
	assert.Equal(t, "Intro to Computer Science", result.Course.Title)
}

func TestSessionService_NodeClickRequiresNodeID(t *testing.T) {
	_, _, sessions, _, _, _ := newTestStack(t, fixtureSource())
	ctx := context.Background()

	created, err := sessions.Create(ctx, "")
	require.NoError(t, err)

	_, err = sessions.Apply(ctx, created.Session.ID, Interaction{Type: InteractionNodeClick})

	require.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeValidation))
}

func TestSessionService_ProgramChangeRebuildsGraph(t *testing.T) {
	_, _, sessions, bus, _, _ := newTestStack(t, fixtureSource())
	ctx := context.Background()

	created, err := sessions.Create(ctx, "Computer Science")
	require.NoError(t, err)

	// Select something, then switch programs: the selection must not
	// survive into a graph where its ID may not exist.
	_, err = sessions.Apply(ctx, created.Session.ID, Interaction{
		Type:   InteractionNodeClick,
		NodeID: "COMP-360",
	})
	require.NoError(t, err)

	result, err := sessions.Apply(ctx, created.Session.ID, Interaction{
		Type:    InteractionProgramChange,
		Program: "Mathematics",
	})
	require.NoError(t, err)

	assert.Equal(t, "Mathematics", result.Session.Program)
	assert.False(t, result.Session.State.HasSelection())
	assert.True(t, result.Session.Graph.HasNode("MATH-240"))
	assert.False(t, result.Session.Graph.HasNode("COMP-360"))
	assert.Contains(t, bus.eventTypes(), "graph.rebuilt")
}

func TestSessionService_FilterChange(t *testing.T) {
	_, _, sessions, _, _, _ := newTestStack(t, fixtureSource())
	ctx := context.Background()

	created, err := sessions.Create(ctx, "")
	require.NoError(t, err)

	result, err := sessions.Apply(ctx, created.Session.ID, Interaction{
		Type:   InteractionFilterChange,
		Filter: "COMP",
	})
	require.NoError(t, err)

	assert.Equal(t, catalog.Category("COMP"), result.Session.State.Filter)
	// MATH-240 hides under the COMP filter.
	assert.Equal(t, 0.05, result.Frame.Nodes["MATH-240"].Opacity)
	assert.Equal(t, 1.0, result.Frame.Nodes["COMP-202"].Opacity)
}

func TestSessionService_UnknownInteractionType(t *testing.T) {
	_, _, sessions, _, _, _ := newTestStack(t, fixtureSource())
	ctx := context.Background()

	created, err := sessions.Create(ctx, "")
	require.NoError(t, err)

	_, err = sessions.Apply(ctx, created.Session.ID, Interaction{Type: "double_click"})

	require.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeValidation))
}

func TestSessionService_UnknownSession(t *testing.T) {
	_, _, sessions, _, _, _ := newTestStack(t, fixtureSource())

	_, err := sessions.Get(context.Background(), "nope")

	require.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeNotFound))
}
