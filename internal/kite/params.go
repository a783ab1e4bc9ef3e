package kite

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const _orderTagPrefix = "kb-"

// OrderParams is the wire shape of a regular order. Price is optional:
// a nil price means the form carries no price field at all, which the
// upstream API requires for market orders.
type OrderParams struct {
	TradingSymbol   string
	Exchange        string
	TransactionType string
	OrderType       string
	Product         string
	Quantity        int
	Price           *float64
	Tag             string
}

// NewOrderTag returns a short client-side order tag. Kite caps tags at
// 20 alphanumeric characters.
func NewOrderTag() string {
	return _orderTagPrefix + uuid.NewString()[:8]
}

func (p OrderParams) formData() map[string]string {
	form := map[string]string{
		"tradingsymbol":    p.TradingSymbol,
		"exchange":         p.Exchange,
		"transaction_type": p.TransactionType,
		"order_type":       p.OrderType,
		"product":          p.Product,
		"quantity":         strconv.Itoa(p.Quantity),
	}
	if p.Price != nil {
		// paise precision, decimal keeps float artifacts out of the form value
		form["price"] = decimal.NewFromFloat(*p.Price).Round(2).String()
	}
	if p.Tag != "" {
		form["tag"] = p.Tag
	}
	return form
}
