package web

import (
	"net/http"

	"github.com/JonMunkholm/catalogadmin/internal/logging"
	"github.com/JonMunkholm/catalogadmin/internal/web/templates"
)

// handleDashboard renders the entity overview with row counts.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	groups := s.sidebar(r.Context(), true)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Dashboard(groups).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render dashboard", "error", err)
	}
}

// handleListTables returns all entities organized by group.
func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, s.service.ListEntitiesByGroup())
}

// handleTableView renders the list page of an entity.
// HTMX navigation only receives the table fragment.
func (s *Server) handleTableView(w http.ResponseWriter, r *http.Request) {
	data, ok := s.mutateView(w, r, "query", s.queryAction)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	component := templates.TablePartial(data)
	if !isHTMX(r) {
		data.Sidebar = s.sidebar(r.Context(), false)
		component = templates.TableView(data)
	}
	if err := component.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render table page", "entity", data.Entity, "error", err)
	}
}
