package handlers

import (
	"net/http"
	"time"

	"coursemap-backend/application/services"
	"coursemap-backend/domain/catalog"
	"coursemap-backend/domain/viewstate"
	"coursemap-backend/pkg/common"
	"coursemap-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SessionHandler drives view sessions over HTTP
type SessionHandler struct {
	sessions *services.SessionService
	logger   *zap.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *services.SessionService, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		logger:   logger,
	}
}

// CreateSessionRequest is the POST /sessions body.
type CreateSessionRequest struct {
	Program string `json:"program,omitempty"`
}

// SessionResponse is a session plus its current render frame. The clicked
// course is present only on node_click results for course nodes.
type SessionResponse struct {
	SessionID string                `json:"session_id"`
	Program   string                `json:"program,omitempty"`
	Selected  []string              `json:"selected"`
	Filter    catalog.Category      `json:"filter"`
	Frame     viewstate.Frame       `json:"frame"`
	Course    *catalog.CourseRecord `json:"course,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

func toSessionResponse(result *services.InteractionResult) SessionResponse {
	sess := result.Session
	return SessionResponse{
		SessionID: sess.ID,
		Program:   sess.Program,
		Selected:  sess.State.SelectedIDs(),
		Filter:    sess.State.Filter,
		Frame:     result.Frame,
		Course:    result.Course,
		CreatedAt: sess.CreatedAt,
		UpdatedAt: sess.UpdatedAt,
	}
}

// Create handles POST /sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if r.ContentLength > 0 {
		if err := common.ParseJSONBody(r, &req, 1<<20); err != nil {
			common.RespondError(w, http.StatusBadRequest,
				common.StandardErrorCodes.BadRequest, "Invalid request body")
			return
		}
	}

	result, err := h.sessions.Create(r.Context(), req.Program)
	if err != nil {
		h.logger.Error("Failed to create session",
			zap.String("program", req.Program),
			zap.Error(err),
		)
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, toSessionResponse(result))
}

// Get handles GET /sessions/{sessionID}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	result, err := h.sessions.Get(r.Context(), sessionID)
	if err != nil {
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, toSessionResponse(result))
}

// ApplyEvent handles POST /sessions/{sessionID}/events
func (h *SessionHandler) ApplyEvent(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var interaction services.Interaction
	if err := common.ParseJSONBody(r, &interaction, 1<<20); err != nil {
		common.RespondError(w, http.StatusBadRequest,
			common.StandardErrorCodes.BadRequest, "Invalid request body")
		return
	}

	if err := utils.ValidateStruct(interaction); err != nil {
		common.RespondError(w, http.StatusBadRequest,
			common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	result, err := h.sessions.Apply(r.Context(), sessionID, interaction)
	if err != nil {
		h.logger.Warn("Failed to apply interaction",
			zap.String("sessionID", sessionID),
			zap.String("type", interaction.Type),
			zap.Error(err),
		)
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, toSessionResponse(result))
}
