package web

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/catalogadmin/internal/core"
	"github.com/JonMunkholm/catalogadmin/internal/datatable"
	"github.com/JonMunkholm/catalogadmin/internal/export"
	"github.com/JonMunkholm/catalogadmin/internal/logging"
)

// handleExport downloads the visible columns of the session's view.
// scope=all exports every filtered and sorted row, scope=selected only
// the selected ones among them.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entity := chi.URLParam(r, "entity")

	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	scope, err := export.ParseScope(r.URL.Query().Get("scope"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	def, err := s.service.Entity(entity)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	all, err := s.service.Rows(ctx, entity)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	sid := core.SessionIDFromContext(ctx)
	sess := s.sessions.acquire(sid)

	var (
		rows    []datatable.Record
		columns []datatable.Column[datatable.Record]
	)
	err = sess.update(entity, s.mounter(entity, sid), func(view *listView) error {
		var err error
		rows, err = export.Rows(view, all, scope)
		columns = datatable.VisibleColumns(view.Columns(), view.Visibility())
		return err
	})

	if err == nil && len(columns) == 0 {
		err = fmt.Errorf("%w: no visible columns to export", errInvalidRequest)
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	start := time.Now()
	var buf bytes.Buffer
	if err := export.Write(&buf, format, def.Info.Label, columns, rows); err != nil {
		s.respondError(w, r, err)
		return
	}

	size := buf.Len()
	name := export.FileName(entity, format, start)
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(size))
	if _, err := buf.WriteTo(w); err != nil {
		logging.FromContext(ctx).Warn("export write interrupted", "entity", entity, "error", err)
		return
	}

	logging.WithFields(ctx,
		"entity", entity,
		"format", string(format),
		"scope", string(scope),
	).Info("export completed",
		"rows", len(rows),
		"columns", len(columns),
		"bytes", size,
		"ip", core.IPAddressFromContext(ctx),
		"duration", time.Since(start),
	)
}
