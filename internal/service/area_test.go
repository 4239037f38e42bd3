package service

import (
	"context"
	"errors"
	"testing"

	"github.com/dinetab-pos/api/internal/database"
	"github.com/dinetab-pos/api/internal/enum"
	"github.com/jackc/pgx/v5"
)

// mockAreaStore implements AreaStore with configurable behavior.
type mockAreaStore struct {
	listServiceAreasFn       func(ctx context.Context) ([]database.ServiceArea, error)
	getServiceAreaFn         func(ctx context.Context, id int32) (database.ServiceArea, error)
	occupyServiceAreaFn      func(ctx context.Context, id int32) (int64, error)
	releaseServiceAreaFn     func(ctx context.Context, id int32) (int64, error)
	releaseAllServiceAreasFn func(ctx context.Context) error
}

func (m *mockAreaStore) ListServiceAreas(ctx context.Context) ([]database.ServiceArea, error) {
	return m.listServiceAreasFn(ctx)
}
func (m *mockAreaStore) GetServiceArea(ctx context.Context, id int32) (database.ServiceArea, error) {
	return m.getServiceAreaFn(ctx, id)
}
func (m *mockAreaStore) OccupyServiceArea(ctx context.Context, id int32) (int64, error) {
	return m.occupyServiceAreaFn(ctx, id)
}
func (m *mockAreaStore) ReleaseServiceArea(ctx context.Context, id int32) (int64, error) {
	return m.releaseServiceAreaFn(ctx, id)
}
func (m *mockAreaStore) ReleaseAllServiceAreas(ctx context.Context) error {
	return m.releaseAllServiceAreasFn(ctx)
}

func TestRegistryOccupy_Succeeds(t *testing.T) {
	store := &mockAreaStore{
		occupyServiceAreaFn: func(ctx context.Context, id int32) (int64, error) {
			return 1, nil
		},
	}
	r := NewRegistry(store)

	if err := r.Occupy(context.Background(), 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRegistryOccupy_AlreadyOccupied(t *testing.T) {
	store := &mockAreaStore{
		occupyServiceAreaFn: func(ctx context.Context, id int32) (int64, error) {
			// Conditional update misses: status is not AVAILABLE.
			return 0, nil
		},
		getServiceAreaFn: func(ctx context.Context, id int32) (database.ServiceArea, error) {
			return database.ServiceArea{ID: id, Status: enum.AreaStatusOccupied}, nil
		},
	}
	r := NewRegistry(store)

	if err := r.Occupy(context.Background(), 2); !errors.Is(err, ErrAreaOccupied) {
		t.Fatalf("got %v, want ErrAreaOccupied", err)
	}
}

func TestRegistryOccupy_NotFound(t *testing.T) {
	store := &mockAreaStore{
		occupyServiceAreaFn: func(ctx context.Context, id int32) (int64, error) {
			return 0, nil
		},
		getServiceAreaFn: func(ctx context.Context, id int32) (database.ServiceArea, error) {
			return database.ServiceArea{}, pgx.ErrNoRows
		},
	}
	r := NewRegistry(store)

	if err := r.Occupy(context.Background(), 99); !errors.Is(err, ErrAreaNotFound) {
		t.Fatalf("got %v, want ErrAreaNotFound", err)
	}
}

func TestRegistryRelease_IdempotentOnAvailable(t *testing.T) {
	store := &mockAreaStore{
		releaseServiceAreaFn: func(ctx context.Context, id int32) (int64, error) {
			// The update matches the row whether or not it was occupied.
			return 1, nil
		},
	}
	r := NewRegistry(store)

	if err := r.Release(context.Background(), 4); err != nil {
		t.Fatalf("first release: %v", err)
	}
	if err := r.Release(context.Background(), 4); err != nil {
		t.Fatalf("second release: %v", err)
	}
}

func TestRegistryRelease_NotFound(t *testing.T) {
	store := &mockAreaStore{
		releaseServiceAreaFn: func(ctx context.Context, id int32) (int64, error) {
			return 0, nil
		},
	}
	r := NewRegistry(store)

	if err := r.Release(context.Background(), 99); !errors.Is(err, ErrAreaNotFound) {
		t.Fatalf("got %v, want ErrAreaNotFound", err)
	}
}

func TestRegistryReleaseAll(t *testing.T) {
	var called bool
	store := &mockAreaStore{
		releaseAllServiceAreasFn: func(ctx context.Context) error {
			called = true
			return nil
		},
	}
	r := NewRegistry(store)

	if err := r.ReleaseAll(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("store ReleaseAllServiceAreas was not called")
	}
}
