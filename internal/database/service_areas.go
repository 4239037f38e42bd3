package database

import (
	"context"
)

const listServiceAreas = `
SELECT id, description, status, occupied_at
FROM service_areas
ORDER BY id
`

// ListServiceAreas returns every service area sorted by id.
func (q *Queries) ListServiceAreas(ctx context.Context) ([]ServiceArea, error) {
	rows, err := q.db.Query(ctx, listServiceAreas)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var areas []ServiceArea
	for rows.Next() {
		var a ServiceArea
		if err := rows.Scan(&a.ID, &a.Description, &a.Status, &a.OccupiedAt); err != nil {
			return nil, err
		}
		areas = append(areas, a)
	}
	return areas, rows.Err()
}

const getServiceArea = `
SELECT id, description, status, occupied_at
FROM service_areas
WHERE id = $1
`

func (q *Queries) GetServiceArea(ctx context.Context, id int32) (ServiceArea, error) {
	var a ServiceArea
	err := q.db.QueryRow(ctx, getServiceArea, id).
		Scan(&a.ID, &a.Description, &a.Status, &a.OccupiedAt)
	return a, err
}

const occupyServiceArea = `
UPDATE service_areas
SET status = 'OCCUPIED', occupied_at = now()
WHERE id = $1 AND status = 'AVAILABLE'
`

// OccupyServiceArea is a strict compare-and-set: it only succeeds when the
// area is currently AVAILABLE, closing the double-seating race at the storage
// layer. Returns the number of rows updated (0 = already occupied).
func (q *Queries) OccupyServiceArea(ctx context.Context, id int32) (int64, error) {
	tag, err := q.db.Exec(ctx, occupyServiceArea, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const ensureServiceAreaOccupied = `
UPDATE service_areas
SET status = 'OCCUPIED', occupied_at = COALESCE(occupied_at, now())
WHERE id = $1
`

// EnsureServiceAreaOccupied marks the area occupied without failing if it
// already is, preserving the original occupancy timestamp. Used when placing
// an order for an area that was seated earlier.
func (q *Queries) EnsureServiceAreaOccupied(ctx context.Context, id int32) (int64, error) {
	tag, err := q.db.Exec(ctx, ensureServiceAreaOccupied, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const releaseServiceArea = `
UPDATE service_areas
SET status = 'AVAILABLE', occupied_at = NULL
WHERE id = $1
`

// ReleaseServiceArea frees the area regardless of its prior state. Returns
// the number of rows updated (0 = unknown area).
func (q *Queries) ReleaseServiceArea(ctx context.Context, id int32) (int64, error) {
	tag, err := q.db.Exec(ctx, releaseServiceArea, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const releaseAllServiceAreas = `
UPDATE service_areas
SET status = 'AVAILABLE', occupied_at = NULL
`

// ReleaseAllServiceAreas is the bulk reset behind the "Reset All" button.
func (q *Queries) ReleaseAllServiceAreas(ctx context.Context) error {
	_, err := q.db.Exec(ctx, releaseAllServiceAreas)
	return err
}
