package rest

import (
	"net/http"
)

// NewRouter assembles the HTTP routes. Method-qualified ServeMux
// patterns dispatch directly. The graph queries hang off the source
// topic's id so every multi-segment route under /api/topics/{id}/ is
// disambiguated by a distinct literal segment; a sibling pattern with a
// wildcard in that position would make registration panic.
func NewRouter(topics *TopicHandler, health *HealthHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /live", health.Live)

	mux.HandleFunc("GET /api/topics", topics.List)
	mux.HandleFunc("POST /api/topics", topics.Create)
	mux.HandleFunc("GET /api/topics/{id}/path/{toId}", topics.ShortestPath)
	mux.HandleFunc("GET /api/topics/{id}/ancestor/{otherId}", topics.Ancestor)
	mux.HandleFunc("GET /api/topics/{id}", topics.Get)
	mux.HandleFunc("PUT /api/topics/{id}", topics.Update)
	mux.HandleFunc("DELETE /api/topics/{id}", topics.Delete)
	mux.HandleFunc("GET /api/topics/{id}/versions", topics.ListVersions)
	mux.HandleFunc("GET /api/topics/{id}/versions/{version}", topics.GetVersion)
	mux.HandleFunc("GET /api/topics/{id}/hierarchy", topics.Hierarchy)
	mux.HandleFunc("PUT /api/topics/{id}/resource", topics.SetResource)
	mux.HandleFunc("DELETE /api/topics/{id}/resource", topics.RemoveResource)

	return mux
}
