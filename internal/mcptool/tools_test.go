package mcptool

import (
	"context"
	"strings"
	"testing"

	"github.com/NiftyLabs/kite-bridge/internal/logger"
	"github.com/NiftyLabs/kite-bridge/internal/model"
	"github.com/mark3labs/mcp-go/mcp"
)

type fakeService struct {
	result   model.OrderResult
	orderErr error
	snapshot model.PositionsSnapshot
	posErr   error

	gotReq *model.OrderRequest
}

func (f *fakeService) PlaceOrder(_ context.Context, req model.OrderRequest) (model.OrderResult, error) {
	if err := req.ValidateAndSetup(); err != nil {
		return model.OrderResult{}, err
	}
	f.gotReq = &req
	if f.orderErr != nil {
		return model.OrderResult{}, f.orderErr
	}
	return f.result, nil
}

func (f *fakeService) Positions(_ context.Context) (model.PositionsSnapshot, error) {
	if f.posErr != nil {
		return model.PositionsSnapshot{}, f.posErr
	}
	return f.snapshot, nil
}

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content type %T", res.Content[0])
	}
	return tc.Text
}

func TestPlaceOrderTool(t *testing.T) {
	svc := &fakeService{result: model.OrderResult{OrderID: "42"}}
	handler := placeOrderHandler(svc, logger.Nop{})

	res, err := handler(context.Background(), callRequest(map[string]interface{}{
		"tradingsymbol":    "INFY",
		"exchange":         "NSE",
		"transaction_type": "BUY",
		"order_type":       "MARKET",
		"quantity":         float64(10),
		"product":          "CNC",
	}))
	if err != nil {
		t.Fatalf("transport-level error: %s", err)
	}
	if res.IsError {
		t.Fatalf("tool error: %s", textOf(t, res))
	}
	if got := textOf(t, res); !strings.Contains(got, `"order_id":"42"`) {
		t.Fatalf("got %q", got)
	}
	if svc.gotReq.Quantity != 10 {
		t.Fatalf("quantity lost: %+v", svc.gotReq)
	}
}

func TestPlaceOrderToolValidationFailure(t *testing.T) {
	svc := &fakeService{}
	handler := placeOrderHandler(svc, logger.Nop{})

	res, err := handler(context.Background(), callRequest(map[string]interface{}{
		"tradingsymbol":    "INFY",
		"exchange":         "NSE",
		"transaction_type": "BUY",
		"order_type":       "LIMIT",
		"quantity":         float64(10),
		"product":          "CNC",
	}))
	if err != nil {
		t.Fatalf("validation must be a tool-level failure, got transport error: %s", err)
	}
	if !res.IsError {
		t.Fatal("expected tool-level error")
	}
	if got := textOf(t, res); !strings.Contains(got, "price") {
		t.Fatalf("error must name the field: %q", got)
	}
}

func TestPlaceOrderToolBrokerFailure(t *testing.T) {
	svc := &fakeService{orderErr: model.NewBrokerError("OrderException", "rejected")}
	handler := placeOrderHandler(svc, logger.Nop{})

	res, err := handler(context.Background(), callRequest(map[string]interface{}{
		"tradingsymbol":    "INFY",
		"exchange":         "NSE",
		"transaction_type": "SELL",
		"order_type":       "MARKET",
		"quantity":         float64(1),
		"product":          "MIS",
	}))
	if err != nil {
		t.Fatalf("broker failure must be a tool-level failure, got transport error: %s", err)
	}
	if !res.IsError {
		t.Fatal("expected tool-level error")
	}
}

func TestGetPositionsTool(t *testing.T) {
	svc := &fakeService{snapshot: model.PositionsSnapshot{
		Net: []model.Position{{TradingSymbol: "INFY"}},
		Day: []model.Position{},
	}}
	handler := getPositionsHandler(svc, logger.Nop{})

	res, err := handler(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("transport-level error: %s", err)
	}
	if res.IsError {
		t.Fatalf("tool error: %s", textOf(t, res))
	}
	got := textOf(t, res)
	if !strings.Contains(got, `"net"`) || !strings.Contains(got, `"day"`) {
		t.Fatalf("got %q", got)
	}
}
