// pkg/transform/sales.go
package transform

import (
	"go.uber.org/zap"

	"github.com/fleximart/retail-ingress/pkg/model"
	"github.com/fleximart/retail-ingress/pkg/normalize"
)

// SaleTransformer cleans raw sales transaction rows.
type SaleTransformer struct {
	logger *zap.Logger
}

// NewSaleTransformer creates a sales transformer.
func NewSaleTransformer(logger *zap.Logger) *SaleTransformer {
	return &SaleTransformer{logger: logger.Named("transform-sales")}
}

// Transform deduplicates by transaction_id, drops rows missing either
// identifier, and normalizes transaction dates. There is no defaulting
// for customer_id or product_id; a sale without both is unusable.
//
// MissingHandled here is the pre-dedup raw count minus the final row
// count, the arithmetic the quality report has always used for the
// "Dropped (Missing IDs)" line. It therefore includes removed duplicates;
// see EntityCounters for why that stays as-is.
func (t *SaleTransformer) Transform(rows []model.RawRow) ([]model.CleanSale, model.EntityCounters) {
	counters := model.EntityCounters{RawCount: len(rows)}

	deduped := dedupBy(rows, func(r model.RawRow) string {
		return fieldKey(r, "transaction_id")
	})
	counters.DupRemoved = counters.RawCount - len(deduped)

	cleaned := make([]model.CleanSale, 0, len(deduped))
	for _, r := range deduped {
		custID := r.GetTrimmed("customer_id")
		prodID := r.GetTrimmed("product_id")
		if custID.IsNull() || prodID.IsNull() {
			continue
		}

		s := model.CleanSale{
			TransactionID: r.GetTrimmed("transaction_id").Text(),
			CustomerIDRaw: custID.Text(),
			ProductIDRaw:  prodID.Text(),
			UnitPrice:     normalize.Float(r.GetTrimmed("unit_price"), 0.0),
			Status:        r.GetTrimmed("status").Text(),
		}
		if d := normalize.Date(r.GetTrimmed("transaction_date")); !d.IsNull() {
			iso := d.Text()
			s.TransactionDate = &iso
		}
		cleaned = append(cleaned, s)
	}

	counters.MissingHandled = counters.RawCount - len(cleaned)

	t.logger.Info("Transformed sales",
		zap.Int("raw", counters.RawCount),
		zap.Int("dupRemoved", counters.DupRemoved),
		zap.Int("droppedMissingIDs", counters.MissingHandled))
	return cleaned, counters
}
