package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledgebase/internal/domain"
	"github.com/heartmarshall/knowledgebase/internal/service/topic"
	"github.com/heartmarshall/knowledgebase/pkg/ctxutil"
)

// topicService defines the engine surface the handler needs.
type topicService interface {
	Create(ctx context.Context, in topic.CreateInput) (*domain.Topic, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Topic, error)
	List(ctx context.Context) ([]domain.Topic, error)
	Update(ctx context.Context, in topic.UpdateInput) (*domain.Topic, error)
	Delete(ctx context.Context, id uuid.UUID, cascade bool) (domain.DeleteResult, error)
	GetVersion(ctx context.Context, topicID uuid.UUID, version int) (*domain.TopicVersion, error)
	ListVersions(ctx context.Context, topicID uuid.UUID) ([]domain.TopicVersion, error)
	SetResource(ctx context.Context, topicID uuid.UUID, in topic.ResourceInput) (*domain.Topic, error)
	RemoveResource(ctx context.Context, topicID uuid.UUID) (*domain.Topic, error)
	Hierarchy(ctx context.Context, rootID uuid.UUID) (*domain.CompositeTopic, error)
	ShortestPath(ctx context.Context, fromID, toID uuid.UUID) (*domain.TopicPath, error)
	LowestCommonAncestor(ctx context.Context, id1, id2 uuid.UUID) (*domain.Topic, error)
}

// permissionGuard answers role/ownership checks for topic routes.
type permissionGuard interface {
	HasPermission(ctx context.Context, userID uuid.UUID, res domain.PermResource, action domain.Action, ownerID *uuid.UUID) bool
}

// TopicHandler serves the /api/topics REST endpoints.
type TopicHandler struct {
	topics topicService
	perms  permissionGuard
	log    *slog.Logger
}

// NewTopicHandler creates a TopicHandler.
func NewTopicHandler(topics topicService, perms permissionGuard, logger *slog.Logger) *TopicHandler {
	return &TopicHandler{
		topics: topics,
		perms:  perms,
		log:    logger.With("handler", "topic"),
	}
}

type resourceRequest struct {
	URL         string `json:"url"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

type createTopicRequest struct {
	Name          string           `json:"name"`
	Content       string           `json:"content"`
	ParentTopicID *uuid.UUID       `json:"parentTopicId"`
	Resource      *resourceRequest `json:"resource"`
}

type updateTopicRequest struct {
	Name          string           `json:"name"`
	Content       string           `json:"content"`
	ParentTopicID *uuid.UUID       `json:"parentTopicId"`
	Resource      *resourceRequest `json:"resource"`
}

// List handles GET /api/topics.
func (h *TopicHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}

	topics, err := h.topics.List(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, topics)
}

// Get handles GET /api/topics/{id}.
func (h *TopicHandler) Get(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	t, err := h.topics.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// Create handles POST /api/topics. The authenticated caller becomes the
// topic's owner.
func (h *TopicHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	var req createTopicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !h.perms.HasPermission(r.Context(), userID, domain.PermResourceTopic, domain.ActionCreate, nil) {
		h.forbid(w, r, false)
		return
	}

	created, err := h.topics.Create(r.Context(), topic.CreateInput{
		Name:          req.Name,
		Content:       req.Content,
		ParentTopicID: req.ParentTopicID,
		OwnerID:       userID,
		Resource:      toResourceInput(req.Resource),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	h.log.InfoContext(r.Context(), "topic created",
		slog.String("topic_id", created.ID.String()),
		slog.String("user_id", userID.String()),
	)
	writeJSON(w, http.StatusCreated, created)
}

// Update handles PUT /api/topics/{id}. Only the owner, an admin, or an
// editor may update; the existing topic is fetched first so ownership
// can participate in the permission check.
func (h *TopicHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req updateTopicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	existing, err := h.topics.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	if !h.perms.HasPermission(r.Context(), userID, domain.PermResourceTopic, domain.ActionUpdate, &existing.OwnerID) {
		h.forbid(w, r, existing.OwnerID == userID)
		return
	}

	updated, err := h.topics.Update(r.Context(), topic.UpdateInput{
		TopicID:       id,
		Name:          req.Name,
		Content:       req.Content,
		ParentTopicID: req.ParentTopicID,
		Resource:      toResourceInput(req.Resource),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/topics/{id}?cascade=true. A refused delete
// (undeleted children, no cascade) answers 409 with the reason.
func (h *TopicHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	cascade := r.URL.Query().Get("cascade") == "true"

	existing, err := h.topics.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	if !h.perms.HasPermission(r.Context(), userID, domain.PermResourceTopic, domain.ActionDelete, &existing.OwnerID) {
		h.forbid(w, r, existing.OwnerID == userID)
		return
	}

	result, err := h.topics.Delete(r.Context(), id, cascade)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	if !result.Success {
		writeError(w, http.StatusConflict, result.Error)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListVersions handles GET /api/topics/{id}/versions.
func (h *TopicHandler) ListVersions(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	versions, err := h.topics.ListVersions(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, versions)
}

// GetVersion handles GET /api/topics/{id}/versions/{version}.
func (h *TopicHandler) GetVersion(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	version, err := strconv.Atoi(r.PathValue("version"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid version number")
		return
	}

	v, err := h.topics.GetVersion(r.Context(), id, version)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// SetResource handles PUT /api/topics/{id}/resource.
func (h *TopicHandler) SetResource(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req resourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	existing, err := h.topics.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	if !h.perms.HasPermission(r.Context(), userID, domain.PermResourceTopic, domain.ActionUpdate, &existing.OwnerID) {
		h.forbid(w, r, existing.OwnerID == userID)
		return
	}

	updated, err := h.topics.SetResource(r.Context(), id, topic.ResourceInput{
		URL:         req.URL,
		Description: req.Description,
		Type:        req.Type,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// RemoveResource handles DELETE /api/topics/{id}/resource.
func (h *TopicHandler) RemoveResource(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	existing, err := h.topics.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	if !h.perms.HasPermission(r.Context(), userID, domain.PermResourceTopic, domain.ActionUpdate, &existing.OwnerID) {
		h.forbid(w, r, existing.OwnerID == userID)
		return
	}

	updated, err := h.topics.RemoveResource(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// requireUser extracts the authenticated user id or answers 401.
func (h *TopicHandler) requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return uuid.Nil, false
	}
	return userID, true
}

// forbid answers 403 with the caller's role and ownership standing, so
// clients can tell a role gap from a wrong-owner denial.
func (h *TopicHandler) forbid(w http.ResponseWriter, r *http.Request, isOwner bool) {
	writeJSON(w, http.StatusForbidden, map[string]any{
		"error": "you do not have permission to perform this action",
		"details": map[string]any{
			"role":    ctxutil.UserRoleFromCtx(r.Context()),
			"isOwner": isOwner,
		},
	})
}

func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func toResourceInput(req *resourceRequest) *topic.ResourceInput {
	if req == nil {
		return nil
	}
	return &topic.ResourceInput{
		URL:         req.URL,
		Description: req.Description,
		Type:        req.Type,
	}
}
