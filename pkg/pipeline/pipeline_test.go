package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fleximart/retail-ingress/pkg/config"
	"github.com/fleximart/retail-ingress/pkg/model"
	"github.com/fleximart/retail-ingress/pkg/report"
)

type memSource struct {
	customers []model.RawRow
	products  []model.RawRow
	sales     []model.RawRow
	err       error
}

func (s *memSource) Customers() ([]model.RawRow, error) { return s.customers, s.err }
func (s *memSource) Products() ([]model.RawRow, error)  { return s.products, s.err }
func (s *memSource) Sales() ([]model.RawRow, error)     { return s.sales, s.err }

type memStore struct {
	customers []model.CleanCustomer
	products  []model.CleanProduct
	orders    []model.OrderRecord

	failOn string
	calls  []string
}

func (s *memStore) LoadCustomers(_ context.Context, batch []model.CleanCustomer) error {
	s.calls = append(s.calls, "customers")
	if s.failOn == "customers" {
		return errors.New("connection refused")
	}
	s.customers = batch
	return nil
}

func (s *memStore) LoadProducts(_ context.Context, batch []model.CleanProduct) error {
	s.calls = append(s.calls, "products")
	if s.failOn == "products" {
		return errors.New("connection refused")
	}
	s.products = batch
	return nil
}

func (s *memStore) LoadOrders(_ context.Context, batch []model.OrderRecord) error {
	s.calls = append(s.calls, "orders")
	if s.failOn == "orders" {
		return errors.New("connection refused")
	}
	s.orders = batch
	return nil
}

func str(s string) model.Value { return model.String(s) }

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		CountryCode:  "+91",
		DefaultEmail: "unknown@fleximart.com",
		ReportPath:   filepath.Join(t.TempDir(), "data_quality_report.txt"),
	}
}

func sampleSource() *memSource {
	return &memSource{
		customers: []model.RawRow{
			{"first_name": str("A"), "last_name": str("B"), "email": str("a@b.com"), "phone": str("9876543210"), "city": str("Pune"), "registration_date": str("01/02/2023")},
			{"first_name": str("A"), "last_name": str("B"), "email": str("a@b.com"), "phone": str("9876543210"), "city": str("Pune"), "registration_date": str("01/02/2023")},
		},
		products: []model.RawRow{
			{"product_name": str("Mug"), "category": str("kitchenware"), "price": str("abc"), "stock_quantity": str("10")},
		},
		sales: []model.RawRow{
			{"transaction_id": str("T001"), "customer_id": str("C001"), "product_id": str("P001"), "transaction_date": str("05/03/2023"), "unit_price": str("499.00"), "status": str("completed")},
			{"transaction_id": str("T002"), "customer_id": model.Null(), "product_id": str("P002"), "transaction_date": str("05/03/2023"), "unit_price": str("199.00"), "status": str("completed")},
		},
	}
}

func TestRunEndToEnd(t *testing.T) {
	cfg := testConfig(t)
	store := &memStore{}
	p := New(cfg, sampleSource(), store, "", zap.NewNop())

	rep, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, report.StatusSuccess, rep.LoadStatus)
	assert.Equal(t, model.EntityCounters{RawCount: 2, DupRemoved: 1, MissingHandled: 0}, rep.Customers)
	assert.Equal(t, model.EntityCounters{RawCount: 1, DupRemoved: 0, MissingHandled: 1}, rep.Products)
	assert.Equal(t, model.EntityCounters{RawCount: 2, DupRemoved: 0, MissingHandled: 1}, rep.Sales)

	require.Len(t, store.customers, 1)
	require.NotNil(t, store.customers[0].Phone)
	assert.Equal(t, "+91-9876543210", *store.customers[0].Phone)
	require.NotNil(t, store.customers[0].RegistrationDate)
	assert.Equal(t, "2023-02-01", *store.customers[0].RegistrationDate)

	require.Len(t, store.orders, 1)
	assert.Equal(t, 1, store.orders[0].CustomerID)
	assert.Equal(t, 499.0, store.orders[0].TotalAmount)

	// Report file was written with the same content the report renders.
	data, err := os.ReadFile(cfg.ReportPath)
	require.NoError(t, err)
	assert.Equal(t, rep.Render(), string(data))
}

func TestRunLoadFailureStillWritesReport(t *testing.T) {
	cfg := testConfig(t)
	store := &memStore{failOn: "products"}
	p := New(cfg, sampleSource(), store, "", zap.NewNop())

	rep, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Failed: connection refused", rep.LoadStatus)
	// Counters survive the failed load.
	assert.Equal(t, 2, rep.Customers.RawCount)

	// Remaining load steps are skipped after the failure.
	assert.Equal(t, []string{"customers", "products"}, store.calls)

	data, err := os.ReadFile(cfg.ReportPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Database Load Status: Failed: connection refused")
}

func TestRunExtractionFailureLeavesNoReport(t *testing.T) {
	cfg := testConfig(t)
	src := &memSource{err: errors.New("no such file")}
	p := New(cfg, src, &memStore{}, "", zap.NewNop())

	_, err := p.Run(context.Background())
	require.Error(t, err)

	_, statErr := os.Stat(cfg.ReportPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunMappingErrorIsFatal(t *testing.T) {
	cfg := testConfig(t)
	src := sampleSource()
	src.sales = []model.RawRow{
		{"transaction_id": str("T001"), "customer_id": str("XYZ"), "product_id": str("P001")},
	}
	store := &memStore{}
	p := New(cfg, src, store, "", zap.NewNop())

	_, err := p.Run(context.Background())
	require.Error(t, err)

	// Nothing was loaded and no report was written.
	assert.Empty(t, store.calls)
	_, statErr := os.Stat(cfg.ReportPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunIDIsStablePerPipeline(t *testing.T) {
	cfg := testConfig(t)
	p := New(cfg, sampleSource(), &memStore{}, "", zap.NewNop())
	assert.NotEmpty(t, p.RunID())
	assert.Equal(t, p.RunID(), p.RunID())
}
