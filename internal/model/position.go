package model

// Position is one row of the upstream positions book. Field names follow
// the Kite Connect wire format. Only the shape is validated here;
// numeric sanity is the upstream feed's contract.
type Position struct {
	TradingSymbol     string  `json:"tradingsymbol"`
	Exchange          string  `json:"exchange"`
	InstrumentToken   int     `json:"instrument_token"`
	Product           string  `json:"product"`
	Quantity          int     `json:"quantity"`
	OvernightQuantity int     `json:"overnight_quantity"`
	Multiplier        float64 `json:"multiplier"`
	AveragePrice      float64 `json:"average_price"`
	ClosePrice        float64 `json:"close_price"`
	LastPrice         float64 `json:"last_price"`
	Value             float64 `json:"value"`
	PnL               float64 `json:"pnl"`
	M2M               float64 `json:"m2m"`
	Unrealised        float64 `json:"unrealised"`
	Realised          float64 `json:"realised"`
}

// PositionsSnapshot holds the two upstream sequences in upstream order.
// Both keys are mandatory in the wire payload; a missing one means
// schema drift and is rejected before a snapshot is built.
type PositionsSnapshot struct {
	Net []Position `json:"net"`
	Day []Position `json:"day"`
}
