// pkg/transform/products.go
package transform

import (
	"go.uber.org/zap"

	"github.com/fleximart/retail-ingress/pkg/model"
	"github.com/fleximart/retail-ingress/pkg/normalize"
)

// ProductTransformer cleans raw product rows.
type ProductTransformer struct {
	logger *zap.Logger
}

// NewProductTransformer creates a product transformer.
func NewProductTransformer(logger *zap.Logger) *ProductTransformer {
	return &ProductTransformer{logger: logger.Named("transform-products")}
}

// Transform deduplicates fully identical rows, capitalizes categories,
// and coerces price and stock with zero fallbacks. MissingHandled counts
// zero-valued price and stock cells in the cleaned set, one per cell.
func (t *ProductTransformer) Transform(rows []model.RawRow) ([]model.CleanProduct, model.EntityCounters) {
	counters := model.EntityCounters{RawCount: len(rows)}

	deduped := dedupBy(rows, fullRowKey)
	counters.DupRemoved = counters.RawCount - len(deduped)

	cleaned := make([]model.CleanProduct, 0, len(deduped))
	for _, r := range deduped {
		p := model.CleanProduct{
			Name:          r.GetTrimmed("product_name").Text(),
			Category:      normalize.Capitalize(r.GetTrimmed("category").Text()),
			Price:         normalize.Float(r.GetTrimmed("price"), 0.0),
			StockQuantity: normalize.Int(r.GetTrimmed("stock_quantity"), 0),
		}

		if p.Price == 0 {
			counters.MissingHandled++
		}
		if p.StockQuantity == 0 {
			counters.MissingHandled++
		}
		cleaned = append(cleaned, p)
	}

	t.logger.Info("Transformed products",
		zap.Int("raw", counters.RawCount),
		zap.Int("dupRemoved", counters.DupRemoved),
		zap.Int("missingHandled", counters.MissingHandled))
	return cleaned, counters
}
