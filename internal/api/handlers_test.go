package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/NiftyLabs/kite-bridge/internal/logger"
	"github.com/NiftyLabs/kite-bridge/internal/model"
)

type fakeService struct {
	result       model.OrderResult
	orderErr     error
	snapshot     model.PositionsSnapshot
	positionsErr error
}

func (f *fakeService) PlaceOrder(_ context.Context, req model.OrderRequest) (model.OrderResult, error) {
	if err := req.ValidateAndSetup(); err != nil {
		return model.OrderResult{}, err
	}
	if f.orderErr != nil {
		return model.OrderResult{}, f.orderErr
	}
	return f.result, nil
}

func (f *fakeService) Positions(_ context.Context) (model.PositionsSnapshot, error) {
	if f.positionsErr != nil {
		return model.PositionsSnapshot{}, f.positionsErr
	}
	return f.snapshot, nil
}

func newTestRouter(svc *fakeService) http.Handler {
	return NewRouter(NewHandler(svc, logger.Nop{}))
}

func TestPlaceOrderEndpoint(t *testing.T) {
	router := newTestRouter(&fakeService{result: model.OrderResult{OrderID: "240830000001"}})

	body := `{"tradingsymbol":"INFY","exchange":"NSE","transaction_type":"BUY","order_type":"MARKET","quantity":10,"product":"CNC"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/place_order", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d: %s", rec.Code, rec.Body)
	}
	var res model.OrderResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.OrderID != "240830000001" {
		t.Fatalf("got %+v", res)
	}
}

func TestPlaceOrderValidationIs400(t *testing.T) {
	router := newTestRouter(&fakeService{})

	body := `{"tradingsymbol":"INFY","exchange":"NSE","transaction_type":"BUY","order_type":"LIMIT","quantity":10,"product":"CNC"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/place_order", strings.NewReader(body)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got status %d: %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), "price") {
		t.Fatalf("detail must name the offending field: %s", rec.Body)
	}
}

func TestPlaceOrderMalformedBodyIs400(t *testing.T) {
	router := newTestRouter(&fakeService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/place_order", strings.NewReader("{not json")))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got status %d: %s", rec.Code, rec.Body)
	}
}

func TestPlaceOrderBrokerFailureIs500(t *testing.T) {
	router := newTestRouter(&fakeService{orderErr: model.NewBrokerError("OrderException", "Insufficient funds")})

	body := `{"tradingsymbol":"INFY","exchange":"NSE","transaction_type":"BUY","order_type":"MARKET","quantity":10,"product":"CNC"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/place_order", strings.NewReader(body)))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("got status %d: %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), "Insufficient funds") {
		t.Fatalf("upstream detail lost: %s", rec.Body)
	}
}

func TestGetPositionsEndpoint(t *testing.T) {
	router := newTestRouter(&fakeService{snapshot: model.PositionsSnapshot{
		Net: []model.Position{{TradingSymbol: "INFY", Exchange: "NSE"}},
		Day: []model.Position{},
	}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/get_positions", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d: %s", rec.Code, rec.Body)
	}
	var snap model.PositionsSnapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatal(err)
	}
	if len(snap.Net) != 1 || snap.Day == nil {
		t.Fatalf("got %+v", snap)
	}
}

func TestGetPositionsFailureIs500(t *testing.T) {
	router := newTestRouter(&fakeService{positionsErr: model.NewBrokerError("", "positions response missing net or day")})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/get_positions", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("got status %d: %s", rec.Code, rec.Body)
	}
}

func TestServiceDescriptor(t *testing.T) {
	router := newTestRouter(&fakeService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d", rec.Code)
	}
	var desc struct {
		Name      string `json:"name"`
		Endpoints []struct {
			Path string `json:"path"`
		} `json:"endpoints"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &desc); err != nil {
		t.Fatal(err)
	}
	if desc.Name != ServiceName || len(desc.Endpoints) != 2 {
		t.Fatalf("got %+v", desc)
	}
}
