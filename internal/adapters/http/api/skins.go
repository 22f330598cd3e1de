// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/arrows/internal/app"
	"github.com/okian/arrows/internal/domain/catalog"
)

// SkinsDependencies defines the interface for cosmetic operations.
type SkinsDependencies interface {
	Catalog(ctx context.Context) (catalog.Catalog, error)
	SelectCosmetic(ctx context.Context, id, cosmeticID string) (app.PlayerView, error)
	PurchaseCosmetic(ctx context.Context, id, cosmeticID string) (app.PlayerView, error)
}

// SkinsHandler handles cosmetic catalog, selection and purchase.
type SkinsHandler struct {
	deps SkinsDependencies
}

// NewSkinsHandler creates a new skins handler.
func NewSkinsHandler(deps SkinsDependencies) *SkinsHandler {
	return &SkinsHandler{deps: deps}
}

type catalogResponse struct {
	Success bool           `json:"success"`
	Skins   []catalog.Item `json:"arrow_skins"`
}

// skinRequest is shared by select and buy.
type skinRequest struct {
	UserID playerID `json:"user_id"`
	SkinID string   `json:"skin_id"`
}

type skinResponse struct {
	Success bool           `json:"success"`
	User    app.PlayerView `json:"user"`
}

// HandleGetCatalog handles GET /api/skins requests.
func (h *SkinsHandler) HandleGetCatalog(w http.ResponseWriter, r *http.Request) {
	cat, err := h.deps.Catalog(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, catalogResponse{Success: true, Skins: cat.Skins})
}

// HandleSelect handles POST /api/skins/select requests.
func (h *SkinsHandler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	const op = "api.select_skin"
	req, ok := decodeSkinRequest(w, r, op)
	if !ok {
		return
	}
	view, err := h.deps.SelectCosmetic(r.Context(), string(req.UserID), req.SkinID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, skinResponse{Success: true, User: view})
}

// HandleBuy handles POST /api/skins/buy requests.
func (h *SkinsHandler) HandleBuy(w http.ResponseWriter, r *http.Request) {
	const op = "api.buy_skin"
	req, ok := decodeSkinRequest(w, r, op)
	if !ok {
		return
	}
	view, err := h.deps.PurchaseCosmetic(r.Context(), string(req.UserID), req.SkinID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, skinResponse{Success: true, User: view})
}

func decodeSkinRequest(w http.ResponseWriter, r *http.Request, op string) (skinRequest, bool) {
	var req skinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return skinRequest{}, false
	}
	if req.SkinID == "" {
		writeError(w, http.StatusBadRequest, "missing_skin_id", NewKind(op, ErrBadRequest))
		return skinRequest{}, false
	}
	return req, true
}
