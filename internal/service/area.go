package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dinetab-pos/api/internal/database"
	"github.com/jackc/pgx/v5"
)

// AreaStore defines the DB methods the service-area registry needs.
// Satisfied by *database.Queries.
type AreaStore interface {
	ListServiceAreas(ctx context.Context) ([]database.ServiceArea, error)
	GetServiceArea(ctx context.Context, id int32) (database.ServiceArea, error)
	OccupyServiceArea(ctx context.Context, id int32) (int64, error)
	ReleaseServiceArea(ctx context.Context, id int32) (int64, error)
	ReleaseAllServiceAreas(ctx context.Context) error
}

// Registry tracks seating identities and occupancy. Occupancy is enforced by
// a conditional update in the store, so two terminals seating the same area
// cannot both succeed.
type Registry struct {
	store AreaStore
}

// NewRegistry creates a Registry over the given store.
func NewRegistry(store AreaStore) *Registry {
	return &Registry{store: store}
}

// List returns every service area ordered by id.
func (r *Registry) List(ctx context.Context) ([]database.ServiceArea, error) {
	return r.store.ListServiceAreas(ctx)
}

// Occupy seats a party at the area. Fails with ErrAreaOccupied when the area
// is already in use and ErrAreaNotFound when the id is unknown; on success
// the area is OCCUPIED with occupied_at stamped.
func (r *Registry) Occupy(ctx context.Context, id int32) error {
	rows, err := r.store.OccupyServiceArea(ctx, id)
	if err != nil {
		return fmt.Errorf("occupy area %d: %w", id, err)
	}
	if rows > 0 {
		return nil
	}

	// The conditional update matched nothing: either the area does not
	// exist or it is already occupied.
	if _, err := r.store.GetServiceArea(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrAreaNotFound
		}
		return fmt.Errorf("get area %d: %w", id, err)
	}
	return ErrAreaOccupied
}

// Release frees the area regardless of its prior state. Releasing an
// already-available area is a no-op, not an error.
func (r *Registry) Release(ctx context.Context, id int32) error {
	rows, err := r.store.ReleaseServiceArea(ctx, id)
	if err != nil {
		return fmt.Errorf("release area %d: %w", id, err)
	}
	if rows == 0 {
		return ErrAreaNotFound
	}
	return nil
}

// ReleaseAll frees every area. Used by the bulk "Reset All" action.
func (r *Registry) ReleaseAll(ctx context.Context) error {
	return r.store.ReleaseAllServiceAreas(ctx)
}
