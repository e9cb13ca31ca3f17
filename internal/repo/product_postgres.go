package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	models "github.com/avelez-dev/stock-locator/internal/models"
)

type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

func (r *PostgresProductRepository) GetByBarcode(barcode string) (models.Product, error) {
	query := `SELECT id, name, barcode, location, quantity, last_updated FROM products WHERE barcode = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, barcode))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

// Upsert creates the product on first sight of a barcode and overwrites the
// mutable fields afterwards. last_updated is refreshed on both paths.
func (r *PostgresProductRepository) Upsert(p models.Product) (models.Product, error) {
	query := `
		INSERT INTO products (name, barcode, location, quantity, last_updated)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (barcode) DO UPDATE
		SET name = EXCLUDED.name,
		    location = EXCLUDED.location,
		    quantity = EXCLUDED.quantity,
		    last_updated = EXCLUDED.last_updated
		RETURNING id, name, barcode, location, quantity, last_updated
	`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return scanProduct(r.db.QueryRowContext(ctx, query, p.Name, p.Barcode, p.Location, p.Quantity, time.Now().UTC()))
}

// DecrementQuantity applies the stock-out as a single conditional UPDATE so
// concurrent requests for the same barcode cannot drive quantity negative.
func (r *PostgresProductRepository) DecrementQuantity(barcode string, amount int) (models.Product, error) {
	query := `
		UPDATE products
		SET quantity = quantity - $1, last_updated = $2
		WHERE barcode = $3 AND quantity >= $1
		RETURNING id, name, barcode, location, quantity, last_updated
	`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, amount, time.Now().UTC(), barcode))
	if errors.Is(err, sql.ErrNoRows) {
		// No row matched: either the barcode is unknown or the guard rejected it.
		if _, lookupErr := r.GetByBarcode(barcode); lookupErr != nil {
			return models.Product{}, lookupErr
		}
		return models.Product{}, ErrInsufficientStock
	}
	return p, err
}

func (r *PostgresProductRepository) Filter(pf ProductFilter) ([]models.Product, int, error) {
	conditions, args, argIdx := filterConditions(pf)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var totalCount int
	countQuery := "SELECT COUNT(*) FROM products WHERE 1=1" + conditions
	row := r.db.QueryRowContext(ctx, countQuery, args...)
	if err := row.Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, name, barcode, location, quantity, last_updated FROM products WHERE 1=1`
	query += conditions
	query += " ORDER BY id"

	if pf.Limit != nil && *pf.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, *pf.Limit)
		argIdx++
	}
	if pf.Offset != nil && *pf.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, *pf.Offset)
		argIdx++
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		var lastUpdated time.Time
		if err := rows.Scan(&p.ID, &p.Name, &p.Barcode, &p.Location, &p.Quantity, &lastUpdated); err != nil {
			return nil, 0, err
		}
		p.LastUpdated = lastUpdated.UTC().Format(time.RFC3339)
		products = append(products, p)
	}

	return products, totalCount, rows.Err()
}

func filterConditions(pf ProductFilter) (string, []any, int) {
	query := ""
	argIdx := 1
	args := []any{}

	if pf.Query != "" {
		query += fmt.Sprintf(" AND (barcode ILIKE $%d OR location ILIKE $%d OR name ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+pf.Query+"%")
		argIdx++
	}
	if pf.Location != "" {
		query += fmt.Sprintf(" AND location ILIKE $%d", argIdx)
		args = append(args, "%"+pf.Location+"%")
		argIdx++
	}

	return query, args, argIdx
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var p models.Product
	var lastUpdated time.Time
	err := row.Scan(&p.ID, &p.Name, &p.Barcode, &p.Location, &p.Quantity, &lastUpdated)
	if err != nil {
		return models.Product{}, err
	}
	p.LastUpdated = lastUpdated.UTC().Format(time.RFC3339)
	return p, nil
}
