package database

import (
	"context"
)

const listProductGroups = `
SELECT id, description
FROM product_groups
ORDER BY id
`

func (q *Queries) ListProductGroups(ctx context.Context) ([]ProductGroup, error) {
	rows, err := q.db.Query(ctx, listProductGroups)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []ProductGroup
	for rows.Next() {
		var g ProductGroup
		if err := rows.Scan(&g.ID, &g.Description); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

const listProducts = `
SELECT id, description, group_id, unit_price, tax
FROM products
ORDER BY id
`

func (q *Queries) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := q.db.Query(ctx, listProducts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

const listProductsByGroup = `
SELECT id, description, group_id, unit_price, tax
FROM products
WHERE group_id = $1
ORDER BY id
`

func (q *Queries) ListProductsByGroup(ctx context.Context, groupID int32) ([]Product, error) {
	rows, err := q.db.Query(ctx, listProductsByGroup, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

const getProduct = `
SELECT id, description, group_id, unit_price, tax
FROM products
WHERE id = $1
`

func (q *Queries) GetProduct(ctx context.Context, id int32) (Product, error) {
	var p Product
	err := q.db.QueryRow(ctx, getProduct, id).
		Scan(&p.ID, &p.Description, &p.GroupID, &p.UnitPrice, &p.Tax)
	return p, err
}

const listProductOptions = `
SELECT id, description
FROM product_options
ORDER BY id
`

func (q *Queries) ListProductOptions(ctx context.Context) ([]ProductOption, error) {
	rows, err := q.db.Query(ctx, listProductOptions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var options []ProductOption
	for rows.Next() {
		var o ProductOption
		if err := rows.Scan(&o.ID, &o.Description); err != nil {
			return nil, err
		}
		options = append(options, o)
	}
	return options, rows.Err()
}

func scanProducts(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]Product, error) {
	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Description, &p.GroupID, &p.UnitPrice, &p.Tax); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
