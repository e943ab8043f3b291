package rest

import (
	"net/http"
)

// Hierarchy handles GET /api/topics/{id}/hierarchy.
func (h *TopicHandler) Hierarchy(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	tree, err := h.topics.Hierarchy(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, tree)
}

// ShortestPath handles GET /api/topics/{id}/path/{toId}. Equal ids
// are rejected here even though the engine itself answers them with a
// zero-length path.
func (h *TopicHandler) ShortestPath(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	fromID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	toID, ok := pathUUID(w, r, "toId")
	if !ok {
		return
	}
	if fromID == toID {
		writeError(w, http.StatusBadRequest, "source and target topics must be different")
		return
	}

	path, err := h.topics.ShortestPath(r.Context(), fromID, toID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, path)
}

// Ancestor handles GET /api/topics/{id}/ancestor/{otherId}.
func (h *TopicHandler) Ancestor(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	id1, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	id2, ok := pathUUID(w, r, "otherId")
	if !ok {
		return
	}
	if id1 == id2 {
		writeError(w, http.StatusBadRequest, "topics must be different for finding a common ancestor")
		return
	}

	ancestor, err := h.topics.LowestCommonAncestor(r.Context(), id1, id2)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ancestor": ancestor})
}
