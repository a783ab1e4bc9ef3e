// Package broker is the validate-translate-forward layer between the
// front-end adapters and the Kite Connect client. It keeps no state of
// its own and never retries.
package broker

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/NiftyLabs/kite-bridge/internal/kite"
	"github.com/NiftyLabs/kite-bridge/internal/logger"
	"github.com/NiftyLabs/kite-bridge/internal/model"
	"github.com/bytedance/sonic"
)

// KiteAPI is the slice of the kite client the forwarder needs.
type KiteAPI interface {
	PlaceOrder(ctx context.Context, params kite.OrderParams) (json.RawMessage, error)
	Positions(ctx context.Context) (json.RawMessage, error)
}

type Forwarder struct {
	api    KiteAPI
	logger logger.Logger
}

func NewForwarder(api KiteAPI, logger logger.Logger) *Forwarder {
	return &Forwarder{
		api:    api,
		logger: logger,
	}
}

// PlaceOrder validates the request, maps it to the upstream parameter
// shape and issues one order call. The returned order id is stringified
// whatever the upstream wire type was.
func (f *Forwarder) PlaceOrder(ctx context.Context, req model.OrderRequest) (model.OrderResult, error) {
	if err := req.ValidateAndSetup(); err != nil {
		return model.OrderResult{}, err
	}

	params := kite.OrderParams{
		TradingSymbol:   req.TradingSymbol,
		Exchange:        string(req.Exchange),
		TransactionType: string(req.TransactionType),
		OrderType:       string(req.OrderType),
		Product:         string(req.Product),
		Quantity:        req.Quantity,
		Price:           req.Price,
		Tag:             kite.NewOrderTag(),
	}

	f.logger.Infof("placing %s %s order: %s %s x%d", params.TransactionType, params.OrderType, params.Exchange, params.TradingSymbol, params.Quantity)

	data, err := f.api.PlaceOrder(ctx, params)
	if err != nil {
		return model.OrderResult{}, err
	}

	var payload struct {
		OrderID interface{} `json:"order_id"`
	}
	if err := sonic.Unmarshal(data, &payload); err != nil {
		return model.OrderResult{}, model.NewBrokerError("", "%s: malformed order response", err)
	}

	orderID, err := coerceOrderID(payload.OrderID)
	if err != nil {
		return model.OrderResult{}, err
	}

	f.logger.Infof("order placed, id %s", orderID)

	return model.OrderResult{OrderID: orderID}, nil
}

// Positions fetches the positions book and enforces the snapshot shape.
// Upstream schema drift surfaces as an explicit error, never a silent
// partial result.
func (f *Forwarder) Positions(ctx context.Context) (model.PositionsSnapshot, error) {
	data, err := f.api.Positions(ctx)
	if err != nil {
		return model.PositionsSnapshot{}, err
	}

	var payload struct {
		Net *[]model.Position `json:"net"`
		Day *[]model.Position `json:"day"`
	}
	if err := sonic.Unmarshal(data, &payload); err != nil {
		return model.PositionsSnapshot{}, model.NewBrokerError("", "%s: malformed positions response", err)
	}
	if payload.Net == nil || payload.Day == nil {
		return model.PositionsSnapshot{}, model.NewBrokerError("", "positions response missing net or day")
	}

	return model.PositionsSnapshot{
		Net: *payload.Net,
		Day: *payload.Day,
	}, nil
}

func coerceOrderID(v interface{}) (string, error) {
	switch id := v.(type) {
	case string:
		return id, nil
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64), nil
	case json.Number:
		return id.String(), nil
	default:
		return "", model.NewBrokerError("", "order response carries no order id")
	}
}
