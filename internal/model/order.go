package model

type Exchange string

const (
	NSE Exchange = "NSE"
	BSE Exchange = "BSE"
)

type TransactionType string

const (
	Buy  TransactionType = "BUY"
	Sell TransactionType = "SELL"
)

type OrderType string

const (
	Market OrderType = "MARKET"
	Limit  OrderType = "LIMIT"
)

type Product string

const (
	CNC Product = "CNC" // delivery
	MIS Product = "MIS" // intraday
)

// OrderRequest is the accepted shape of a place-order call as sent by
// either front end. Price is a pointer so that "absent" and "zero" stay
// distinguishable: a LIMIT order needs a positive price, a MARKET order
// must be forwarded without the field at all.
type OrderRequest struct {
	TradingSymbol   string          `json:"tradingsymbol"`
	Exchange        Exchange        `json:"exchange"`
	TransactionType TransactionType `json:"transaction_type"`
	OrderType       OrderType       `json:"order_type"`
	Quantity        int             `json:"quantity"`
	Product         Product         `json:"product"`
	Price           *float64        `json:"price,omitempty"`
}

// ValidateAndSetup checks every field and normalizes the request so that
// a MARKET order carries no price. A request that fails here must never
// reach the broker.
func (r *OrderRequest) ValidateAndSetup() error {
	var fields []string

	if r.TradingSymbol == "" {
		fields = append(fields, "tradingsymbol: required")
	}
	switch r.Exchange {
	case NSE, BSE:
	default:
		fields = append(fields, "exchange: must be NSE or BSE")
	}
	switch r.TransactionType {
	case Buy, Sell:
	default:
		fields = append(fields, "transaction_type: must be BUY or SELL")
	}
	switch r.OrderType {
	case Market, Limit:
	default:
		fields = append(fields, "order_type: must be MARKET or LIMIT")
	}
	if r.Quantity <= 0 {
		fields = append(fields, "quantity: must be a positive integer")
	}
	switch r.Product {
	case CNC, MIS:
	default:
		fields = append(fields, "product: must be CNC or MIS")
	}

	switch r.OrderType {
	case Limit:
		if r.Price == nil || *r.Price <= 0 {
			fields = append(fields, "price: required and must be positive for LIMIT orders")
		}
	case Market:
		// tolerated on input, dropped so the forwarded call omits it
		r.Price = nil
	}

	if len(fields) > 0 {
		return NewValidationError(fields...)
	}

	return nil
}

// OrderResult carries the broker-assigned order id, always stringified
// regardless of the upstream wire type.
type OrderResult struct {
	OrderID string `json:"order_id"`
}
