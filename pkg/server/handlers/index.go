package handlers

import "net/http"

// IndexResponse is the body of GET /.
type IndexResponse struct {
	Service     string            `json:"service"`
	Version     string            `json:"version"`
	Description string            `json:"description"`
	Endpoints   map[string]string `json:"endpoints"`
}

// IndexHandler serves the static service description at GET /.
type IndexHandler struct {
	body IndexResponse
}

// NewIndexHandler creates the index handler. endpoints maps a route such as
// "POST /api/calculate" to a short description.
func NewIndexHandler(info ServiceInfo, endpoints map[string]string) *IndexHandler {
	return &IndexHandler{
		body: IndexResponse{
			Service:     info.Name,
			Version:     info.Version,
			Description: info.Description,
			Endpoints:   endpoints,
		},
	}
}

func (h *IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.body)
}
