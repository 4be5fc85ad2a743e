package services

import (
	"context"
	"time"

	"coursemap-backend/application/ports"
	"coursemap-backend/domain/catalog"
	"coursemap-backend/domain/events"
	"coursemap-backend/domain/graph"
	"coursemap-backend/domain/session"
	"coursemap-backend/domain/viewstate"
	pkgerrors "coursemap-backend/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Interaction event types accepted over the API.
const (
	InteractionNodeClick       = "node_click"
	InteractionBackgroundClick = "background_click"
	InteractionFilterChange    = "filter_change"
	InteractionProgramChange   = "program_change"
)

// Interaction is one interaction event as received from a client.
type Interaction struct {
	Type    string `json:"type" validate:"required,oneof=node_click background_click filter_change program_change"`
	NodeID  string `json:"node_id,omitempty"`
	Filter  string `json:"filter,omitempty"`
	Program string `json:"program,omitempty"`
}

// InteractionResult is what one applied event yields: the updated session,
// the fully recomputed render frame, and, for course-node clicks, the
// course record for the detail sidebar.
type InteractionResult struct {
	Session *session.Session
	Frame   viewstate.Frame
	Course  *catalog.CourseRecord
}

// SessionService drives view sessions: create, apply interaction events,
// read back. Every qualifying event recomputes the frame in full.
type SessionService struct {
	catalogs *CatalogService
	graphs   *GraphService
	store    ports.SessionStore
	bus      ports.EventBus
	logger   *zap.Logger
}

// NewSessionService creates a session service.
func NewSessionService(
	catalogs *CatalogService,
	graphs *GraphService,
	store ports.SessionStore,
	bus ports.EventBus,
	logger *zap.Logger,
) *SessionService {
	return &SessionService{
		catalogs: catalogs,
		graphs:   graphs,
		store:    store,
		bus:      bus,
		logger:   logger,
	}
}

// Create starts a session showing a program (or the full catalogue when
// program is empty) with nothing selected and the "all" filter.
func (s *SessionService) Create(ctx context.Context, program string) (*InteractionResult, error) {
	g, err := s.graphs.Build(ctx, program)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sess := &session.Session{
		ID:        uuid.New().String(),
		Program:   program,
		Graph:     g,
		State:     viewstate.NewState(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.Save(ctx, sess); err != nil {
		return nil, pkgerrors.NewInternalError("failed to save session", err)
	}

	s.publishRebuilt(ctx, program, g)

	return &InteractionResult{
		Session: sess,
		Frame:   viewstate.Render(g, sess.State),
	}, nil
}

// Get returns a session and its current frame.
func (s *SessionService) Get(ctx context.Context, id string) (*InteractionResult, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &InteractionResult{
		Session: sess,
		Frame:   viewstate.Render(sess.Graph, sess.State),
	}, nil
}

// Apply runs one interaction event through the reducer and re-renders. A
// program change rebuilds the graph first; the reducer then clears the
// selection while the filter carries over.
func (s *SessionService) Apply(ctx context.Context, id string, interaction Interaction) (*InteractionResult, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var clicked *catalog.CourseRecord

	switch interaction.Type {
	case InteractionNodeClick:
		if interaction.NodeID == "" {
			return nil, pkgerrors.NewValidationError("node_id is required for node_click")
		}
		sess.State = viewstate.Reduce(sess.State, sess.Graph, viewstate.NodeClicked{NodeID: interaction.NodeID})
		clicked = s.clickedCourse(sess.Graph, interaction.NodeID)

	case InteractionBackgroundClick:
		sess.State = viewstate.Reduce(sess.State, sess.Graph, viewstate.BackgroundClicked{})

	case InteractionFilterChange:
		sess.State = viewstate.Reduce(sess.State, sess.Graph, viewstate.FilterChanged{
			Filter: catalog.Category(interaction.Filter),
		})

	case InteractionProgramChange:
		g, err := s.graphs.Build(ctx, interaction.Program)
		if err != nil {
			return nil, err
		}
		sess.Program = interaction.Program
		sess.Graph = g
		sess.State = viewstate.Reduce(sess.State, g, viewstate.ProgramChanged{})
		s.publishRebuilt(ctx, interaction.Program, g)

	default:
		return nil, pkgerrors.NewValidationError("unknown interaction type")
	}

	sess.UpdatedAt = time.Now()
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, pkgerrors.NewInternalError("failed to save session", err)
	}

	return &InteractionResult{
		Session: sess,
		Frame:   viewstate.Render(sess.Graph, sess.State),
		Course:  clicked,
	}, nil
}

// clickedCourse resolves the course record behind a clicked node. Junction
// and textual nodes have no record; so do clicks on unknown IDs, which the
// reducer already ignored.
func (s *SessionService) clickedCourse(g *graph.Graph, nodeID string) *catalog.CourseRecord {
	node, ok := g.NodeByID(nodeID)
	if !ok || node.Kind != graph.KindCourse {
		return nil
	}
	course, ok := s.catalogs.Catalog().Lookup(node.Code)
	if !ok {
		return nil
	}
	return course
}

func (s *SessionService) publishRebuilt(ctx context.Context, program string, g *graph.Graph) {
	event := events.NewGraphRebuilt(program, len(g.Nodes), len(g.Edges))
	if err := s.bus.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish graph.rebuilt event", zap.Error(err))
	}
}
