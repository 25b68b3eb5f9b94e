// pkg/pipeline/pipeline.go

// Package pipeline sequences one full ingest run:
// extract -> transform (three entities) -> map orders -> load -> report.
//
// Failure policy: anything before the load stage is fatal and leaves no
// report behind; a load rejection is caught, recorded in the report as
// "Failed: <cause>", and the report is still written.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fleximart/retail-ingress/pkg/config"
	"github.com/fleximart/retail-ingress/pkg/model"
	"github.com/fleximart/retail-ingress/pkg/report"
	"github.com/fleximart/retail-ingress/pkg/transform"
)

// Source produces the three raw row sets.
type Source interface {
	Customers() ([]model.RawRow, error)
	Products() ([]model.RawRow, error)
	Sales() ([]model.RawRow, error)
}

// Store is the append-only sink for the cleaned batches.
type Store interface {
	LoadCustomers(ctx context.Context, batch []model.CleanCustomer) error
	LoadProducts(ctx context.Context, batch []model.CleanProduct) error
	LoadOrders(ctx context.Context, batch []model.OrderRecord) error
}

// Pipeline orchestrates one ingest run.
type Pipeline struct {
	cfg    *config.Config
	source Source
	store  Store
	logger *zap.Logger
	runID  string

	customers *transform.CustomerTransformer
	products  *transform.ProductTransformer
	sales     *transform.SaleTransformer
	orders    *transform.OrderMapper
}

// New creates a pipeline. An empty runID gets a fresh one; the ID tags
// all of the run's log lines.
func New(cfg *config.Config, source Source, store Store, runID string, logger *zap.Logger) *Pipeline {
	if runID == "" {
		runID = uuid.New().String()
	}
	logger = logger.Named("pipeline").With(zap.String("runID", runID))

	return &Pipeline{
		cfg:       cfg,
		source:    source,
		store:     store,
		logger:    logger,
		runID:     runID,
		customers: transform.NewCustomerTransformer(cfg.CountryCode, cfg.DefaultEmail, logger),
		products:  transform.NewProductTransformer(logger),
		sales:     transform.NewSaleTransformer(logger),
		orders:    transform.NewOrderMapper(logger),
	}
}

// RunID returns the identifier assigned to this pipeline instance.
func (p *Pipeline) RunID() string {
	return p.runID
}

// Run executes the full pipeline and returns the finalized quality
// report. The returned error covers pre-load fatal conditions only; a
// load failure is inside the report, not the error.
func (p *Pipeline) Run(ctx context.Context) (report.QualityReport, error) {
	p.logger.Info("Starting ingest run")

	// Extract. A missing or unreadable input aborts before any load.
	rawCustomers, err := p.source.Customers()
	if err != nil {
		return report.QualityReport{}, fmt.Errorf("extract customers: %w", err)
	}
	rawProducts, err := p.source.Products()
	if err != nil {
		return report.QualityReport{}, fmt.Errorf("extract products: %w", err)
	}
	rawSales, err := p.source.Sales()
	if err != nil {
		return report.QualityReport{}, fmt.Errorf("extract sales: %w", err)
	}

	// The three transforms share no state, so they run concurrently and
	// join here before the order mapping needs the sales output.
	var (
		customers    []model.CleanCustomer
		products     []model.CleanProduct
		sales        []model.CleanSale
		custCounters model.EntityCounters
		prodCounters model.EntityCounters
		saleCounters model.EntityCounters
	)
	var g errgroup.Group
	g.Go(func() error {
		customers, custCounters = p.customers.Transform(rawCustomers)
		return nil
	})
	g.Go(func() error {
		products, prodCounters = p.products.Transform(rawProducts)
		return nil
	})
	g.Go(func() error {
		sales, saleCounters = p.sales.Transform(rawSales)
		return nil
	})
	if err := g.Wait(); err != nil {
		return report.QualityReport{}, err
	}

	// Map the orders projection. A mapping failure is run-fatal: a sale
	// whose customer code has no digits cannot be loaded under any
	// defaulting policy.
	orders, err := p.orders.Map(sales)
	if err != nil {
		return report.QualityReport{}, fmt.Errorf("map orders: %w", err)
	}

	loadStatus := p.load(ctx, customers, products, orders)

	rep := report.Aggregate(custCounters, prodCounters, saleCounters, loadStatus)
	if err := rep.WriteFile(p.cfg.ReportPath); err != nil {
		return rep, err
	}

	p.logger.Info("Ingest run finished",
		zap.String("loadStatus", loadStatus),
		zap.String("report", p.cfg.ReportPath))
	return rep, nil
}

// load appends the three batches in order. The first rejection stops the
// remaining loads and becomes the report's failure cause.
func (p *Pipeline) load(
	ctx context.Context,
	customers []model.CleanCustomer,
	products []model.CleanProduct,
	orders []model.OrderRecord,
) string {
	steps := []struct {
		table string
		fn    func() error
	}{
		{"customers", func() error { return p.store.LoadCustomers(ctx, customers) }},
		{"products", func() error { return p.store.LoadProducts(ctx, products) }},
		{"orders", func() error { return p.store.LoadOrders(ctx, orders) }},
	}

	for _, step := range steps {
		if err := step.fn(); err != nil {
			p.logger.Error("Load failed",
				zap.String("table", step.table),
				zap.Error(err))
			return report.FailedStatus(err)
		}
	}
	return report.StatusSuccess
}
