package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/JonMunkholm/catalogadmin/internal/datatable"
)

// ErrUnknownEntity is returned for entity keys that are not registered.
var ErrUnknownEntity = errors.New("unknown entity")

// Service provides the catalog data behind the list pages.
type Service struct {
	source          Source
	logger          *slog.Logger
	defaultPageSize int
	paginate        bool
}

// ServiceOptions configures a Service.
type ServiceOptions struct {
	DefaultPageSize   int
	DisablePagination bool
	Logger            *slog.Logger
}

// NewService creates a new Service reading rows from source.
func NewService(source Source, opts ServiceOptions) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	pageSize := opts.DefaultPageSize
	if pageSize <= 0 {
		pageSize = datatable.DefaultPageSize
	}
	return &Service{
		source:          source,
		logger:          logger,
		defaultPageSize: pageSize,
		paginate:        !opts.DisablePagination,
	}
}

// ListEntities returns information about all registered entities.
func (s *Service) ListEntities() []EntityInfo {
	defs := All()
	infos := make([]EntityInfo, len(defs))
	for i, def := range defs {
		infos[i] = def.Info
	}
	return infos
}

// ListEntitiesByGroup returns entities organized by group.
func (s *Service) ListEntitiesByGroup() map[string][]EntityInfo {
	result := make(map[string][]EntityInfo)
	for _, group := range Groups() {
		for _, def := range ByGroup(group) {
			result[group] = append(result[group], def.Info)
		}
	}
	return result
}

// Entity returns the definition of key.
func (s *Service) Entity(key string) (EntityDefinition, error) {
	def, ok := Get(key)
	if !ok {
		return EntityDefinition{}, fmt.Errorf("%w: %s", ErrUnknownEntity, key)
	}
	return def, nil
}

// Columns returns the list-view columns of key.
func (s *Service) Columns(key string) ([]datatable.Column[datatable.Record], error) {
	def, err := s.Entity(key)
	if err != nil {
		return nil, err
	}
	return def.Columns(), nil
}

// Rows returns a fresh snapshot of the rows of key.
func (s *Service) Rows(ctx context.Context, key string) ([]datatable.Record, error) {
	if _, err := s.Entity(key); err != nil {
		return nil, err
	}
	start := time.Now()
	rows, err := s.source.Rows(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	s.logger.Debug("rows fetched",
		"entity", key,
		"rows", len(rows),
		"session", SessionIDFromContext(ctx),
		"duration", time.Since(start),
	)
	return rows, nil
}

// NewView mounts a list view of key. Column visibility is persisted in
// store under the entity key; a nil store disables persistence.
func (s *Service) NewView(key string, store datatable.Store) (*datatable.View[datatable.Record], error) {
	def, err := s.Entity(key)
	if err != nil {
		return nil, err
	}
	pageSize := def.Info.PageSize
	if pageSize <= 0 {
		pageSize = s.defaultPageSize
	}
	return datatable.NewView(def.Columns(), def.Identity(), datatable.Options{
		PageSize:          pageSize,
		DisablePagination: !s.paginate,
		Store:             store,
		StorageKey:        def.Info.Key,
		Logger:            s.logger.With("entity", key),
	}), nil
}
