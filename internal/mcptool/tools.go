// Package mcptool binds the forwarder to an MCP stdio server so that a
// tool-calling LLM can place orders and read positions.
package mcptool

import (
	"context"

	"github.com/NiftyLabs/kite-bridge/internal/api"
	"github.com/NiftyLabs/kite-bridge/internal/logger"
	"github.com/NiftyLabs/kite-bridge/internal/model"
	"github.com/bytedance/sonic"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewServer registers the two bridge tools on a fresh MCP server.
// Handler failures come back as tool-level errors, never as a
// transport crash.
func NewServer(svc api.OrderService, log logger.Logger) *server.MCPServer {
	s := server.NewMCPServer(api.ServiceName, api.ServiceVersion, server.WithToolCapabilities(false))

	s.AddTool(placeOrderTool(), placeOrderHandler(svc, log))
	s.AddTool(getPositionsTool(), getPositionsHandler(svc, log))

	return s
}

func placeOrderTool() mcp.Tool {
	return mcp.NewTool("placeOrder",
		mcp.WithDescription("Places a stock order on the Zerodha trading platform."),
		mcp.WithString("tradingsymbol",
			mcp.Required(),
			mcp.Description("The trading symbol of the instrument (e.g., 'INFY', 'TCS')."),
		),
		mcp.WithString("exchange",
			mcp.Required(),
			mcp.Enum("NSE", "BSE"),
			mcp.Description("The exchange on which to place the order."),
		),
		mcp.WithString("transaction_type",
			mcp.Required(),
			mcp.Enum("BUY", "SELL"),
			mcp.Description("The type of transaction."),
		),
		mcp.WithString("order_type",
			mcp.Required(),
			mcp.Enum("MARKET", "LIMIT"),
			mcp.Description("The type of order."),
		),
		mcp.WithNumber("quantity",
			mcp.Required(),
			mcp.Description("The number of shares to trade."),
		),
		mcp.WithString("product",
			mcp.Required(),
			mcp.Enum("CNC", "MIS"),
			mcp.Description("Product type: CNC (for delivery) or MIS (for intraday)."),
		),
		mcp.WithNumber("price",
			mcp.Description("The price for a LIMIT order. Not required for MARKET orders."),
		),
	)
}

func placeOrderHandler(svc api.OrderService, log logger.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, err := sonic.Marshal(request.GetArguments())
		if err != nil {
			return mcp.NewToolResultError("can't read tool arguments: " + err.Error()), nil
		}

		var req model.OrderRequest
		if err := sonic.Unmarshal(raw, &req); err != nil {
			return mcp.NewToolResultError("malformed order request: " + err.Error()), nil
		}

		result, err := svc.PlaceOrder(ctx, req)
		if err != nil {
			log.Errorf("%s: placeOrder tool failed", err)
			return mcp.NewToolResultError(err.Error()), nil
		}

		return marshalResult(result)
	}
}

func getPositionsTool() mcp.Tool {
	return mcp.NewTool("getPositions",
		mcp.WithDescription("Fetches all current open trading positions from the Zerodha account."),
	)
}

func getPositionsHandler(svc api.OrderService, log logger.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		snapshot, err := svc.Positions(ctx)
		if err != nil {
			log.Errorf("%s: getPositions tool failed", err)
			return mcp.NewToolResultError(err.Error()), nil
		}

		return marshalResult(snapshot)
	}
}

func marshalResult(v interface{}) (*mcp.CallToolResult, error) {
	b, err := sonic.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError("can't encode result: " + err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
