// pkg/model/entities.go
package model

// CleanCustomer is a customer record after normalization. Email is always
// populated (defaulted when missing); phone, city and registration date
// stay nil when the source had nothing usable.
type CleanCustomer struct {
	FirstName        string  `db:"first_name"`
	LastName         string  `db:"last_name"`
	Email            string  `db:"email"`
	Phone            *string `db:"phone"`
	City             *string `db:"city"`
	RegistrationDate *string `db:"registration_date"`
}

// NullFieldCount returns how many cells of the record remain missing
// after cleaning: nil nullable fields plus empty name fields. Email is
// excluded, it is defaulted and never empty.
func (c CleanCustomer) NullFieldCount() int {
	n := 0
	for _, s := range []string{c.FirstName, c.LastName} {
		if s == "" {
			n++
		}
	}
	for _, p := range []*string{c.Phone, c.City, c.RegistrationDate} {
		if p == nil {
			n++
		}
	}
	return n
}

// CleanProduct is a product record after normalization. Price and stock
// fall back to zero when the source value does not parse.
type CleanProduct struct {
	Name          string  `db:"product_name"`
	Category      string  `db:"category"`
	Price         float64 `db:"price"`
	StockQuantity int64   `db:"stock_quantity"`
}

// CleanSale is a sales transaction after normalization. CustomerIDRaw and
// ProductIDRaw are always present: rows missing either are dropped during
// transform, never nulled.
type CleanSale struct {
	TransactionID   string
	CustomerIDRaw   string
	ProductIDRaw    string
	TransactionDate *string
	UnitPrice       float64
	Status          string
}

// OrderRecord is the orders projection derived from cleaned sales. The
// integer customer key is extracted from the alphanumeric source code
// (e.g. "C001" -> 1).
type OrderRecord struct {
	CustomerID  int     `db:"customer_id"`
	OrderDate   *string `db:"order_date"`
	TotalAmount float64 `db:"total_amount"`
	Status      string  `db:"status"`
}
