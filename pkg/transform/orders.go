// pkg/transform/orders.go
package transform

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/fleximart/retail-ingress/pkg/model"
	"github.com/fleximart/retail-ingress/pkg/normalize"
)

// OrderMapper derives the orders projection from cleaned sales, remapping
// the external alphanumeric customer code to the internal numeric key.
type OrderMapper struct {
	logger *zap.Logger
}

// NewOrderMapper creates an order mapper.
func NewOrderMapper(logger *zap.Logger) *OrderMapper {
	return &OrderMapper{logger: logger.Named("map-orders")}
}

// Map builds one OrderRecord per cleaned sale, in input order. A customer
// code with no extractable digits is a hard error: unlike the soft
// fallbacks in the field normalizers there is no sensible default for a
// key, so the error propagates and aborts the run.
func (m *OrderMapper) Map(sales []model.CleanSale) ([]model.OrderRecord, error) {
	orders := make([]model.OrderRecord, 0, len(sales))
	for _, s := range sales {
		customerID, err := normalize.DigitKey(s.CustomerIDRaw)
		if err != nil {
			return nil, fmt.Errorf("transaction %s: %w", s.TransactionID, err)
		}

		orders = append(orders, model.OrderRecord{
			CustomerID:  customerID,
			OrderDate:   s.TransactionDate,
			TotalAmount: s.UnitPrice,
			Status:      s.Status,
		})
	}

	m.logger.Info("Mapped orders", zap.Int("orders", len(orders)))
	return orders, nil
}
