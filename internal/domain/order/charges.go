package order

import (
	"github.com/shopspring/decimal"

	"github.com/krishivsaini/BookBazaar/pkg/money"
)

var TaxRate = decimal.RequireFromString("0.10")

const (
	FreeShippingThreshold int64 = 50000 // 500.00，严格大于才免运费
	FlatShippingCost      int64 = 5000  // 50.00
)

// Charges 订单金额（分）
type Charges struct {
	Subtotal int64
	Tax      int64
	Shipping int64
	Total    int64
}

// CalculateCharges 税费10%（四舍五入到分），满500免运费
func CalculateCharges(subtotal int64) Charges {
	tax := money.ApplyRate(subtotal, TaxRate)

	shipping := FlatShippingCost
	if subtotal > FreeShippingThreshold {
		shipping = 0
	}

	return Charges{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    subtotal + tax + shipping,
	}
}
