package api

import "net/http"

const (
	ServiceName    = "kite-bridge"
	ServiceVersion = "1.0.0"
)

type endpointInfo struct {
	Path        string `json:"path"`
	Method      string `json:"method"`
	Description string `json:"description"`
}

type serviceDescriptor struct {
	Name      string         `json:"name"`
	Version   string         `json:"version"`
	Endpoints []endpointInfo `json:"endpoints"`
}

func descriptor() serviceDescriptor {
	return serviceDescriptor{
		Name:    ServiceName,
		Version: ServiceVersion,
		Endpoints: []endpointInfo{
			{Path: "/api/place_order", Method: http.MethodPost, Description: "Places a stock order"},
			{Path: "/api/get_positions", Method: http.MethodGet, Description: "Gets current positions"},
		},
	}
}

// NewRouter wires the three routes of the web adapter.
func NewRouter(h *Handler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.root)
	mux.HandleFunc("POST /api/place_order", h.placeOrder)
	mux.HandleFunc("GET /api/get_positions", h.getPositions)
	return mux
}
