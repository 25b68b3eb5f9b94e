// pkg/store/loader.go
package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/fleximart/retail-ingress/pkg/model"
)

const (
	insertCustomersSQL = `
		INSERT INTO customers (first_name, last_name, email, phone, city, registration_date)
		VALUES (:first_name, :last_name, :email, :phone, :city, :registration_date)`

	insertProductsSQL = `
		INSERT INTO products (product_name, category, price, stock_quantity)
		VALUES (:product_name, :category, :price, :stock_quantity)`

	insertOrdersSQL = `
		INSERT INTO orders (customer_id, order_date, total_amount, status)
		VALUES (:customer_id, :order_date, :total_amount, :status)`
)

// Loader appends cleaned batches to the three sinks. Each batch goes in
// one transaction; a failure rolls the batch back and surfaces as a
// classified *LoadError so the orchestrator can report the cause.
type Loader struct {
	db     *sqlx.DB
	logger *zap.Logger
	runID  string
}

// NewLoader creates a loader bound to an open Postgres handle. runID tags
// the loader's log lines with the pipeline run it belongs to.
func NewLoader(pg *Postgres, runID string, logger *zap.Logger) *Loader {
	return &Loader{
		db:     pg.DB(),
		logger: logger.Named("loader").With(zap.String("runID", runID)),
		runID:  runID,
	}
}

// LoadCustomers appends the cleaned customer batch.
func (l *Loader) LoadCustomers(ctx context.Context, customers []model.CleanCustomer) error {
	return insertBatch(ctx, l, "customers", insertCustomersSQL, customers)
}

// LoadProducts appends the cleaned product batch.
func (l *Loader) LoadProducts(ctx context.Context, products []model.CleanProduct) error {
	return insertBatch(ctx, l, "products", insertProductsSQL, products)
}

// LoadOrders appends the derived order batch.
func (l *Loader) LoadOrders(ctx context.Context, orders []model.OrderRecord) error {
	return insertBatch(ctx, l, "orders", insertOrdersSQL, orders)
}

func insertBatch[T any](ctx context.Context, l *Loader, table, query string, rows []T) error {
	if len(rows) == 0 {
		l.logger.Info("Nothing to load", zap.String("table", table))
		return nil
	}

	tx, err := l.db.BeginTxx(ctx, nil)
	if err != nil {
		return classifyLoadError(table, fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	// NamedExecContext expands the slice into a multi-row VALUES insert.
	if _, err = tx.NamedExecContext(ctx, query, rows); err != nil {
		return classifyLoadError(table, fmt.Errorf("failed to insert into %s: %w", table, err))
	}

	if err = tx.Commit(); err != nil {
		return classifyLoadError(table, fmt.Errorf("failed to commit %s batch: %w", table, err))
	}

	l.logger.Info("Loaded batch",
		zap.String("table", table),
		zap.Int("rows", len(rows)))
	return nil
}
