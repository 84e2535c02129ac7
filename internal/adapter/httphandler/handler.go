package httphandler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/niksmo/office-catalog/internal/core/domain"
	"github.com/niksmo/office-catalog/internal/core/port"
)

var errInvalidID = errors.New("invalid product id")

// GET v1/products (200 OK)
// GET v1/products/filtered (200 OK)
// GET v1/favorites (200 OK)
// GET v1/vocabulary (200 OK)

type CatalogHandler struct {
	viewer port.CatalogViewer
}

func RegisterCatalog(mux *http.ServeMux, viewer port.CatalogViewer) {
	h := CatalogHandler{viewer}
	mux.HandleFunc("GET /v1/products", h.GetProducts)
	mux.HandleFunc("GET /v1/products/filtered", h.GetFilteredProducts)
	mux.HandleFunc("GET /v1/favorites", h.GetFavorites)
	mux.HandleFunc("GET /v1/vocabulary", h.GetVocabulary)
}

func (h CatalogHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProducts"
	log := slog.With("op", op)

	ps, err := h.viewer.Products(r.Context())
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, fromProducts(ps))
}

func (h CatalogHandler) GetFilteredProducts(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetFilteredProducts"
	log := slog.With("op", op)

	ps, err := h.viewer.FilteredProducts(r.Context())
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, fromProducts(ps))
}

func (h CatalogHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetFavorites"
	log := slog.With("op", op)

	ps, err := h.viewer.Favorites(r.Context())
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, fromProducts(ps))
}

func (h CatalogHandler) GetVocabulary(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetVocabulary"
	log := slog.With("op", op)

	v, err := h.viewer.Vocabulary(r.Context())
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, fromVocabulary(v))
}

// POST v1/favorites/{id} (200 OK, 404 Not found)

type FavoritesHandler struct {
	toggler port.FavoriteToggler
}

func RegisterFavorites(mux *http.ServeMux, toggler port.FavoriteToggler) {
	h := FavoritesHandler{toggler}
	mux.HandleFunc("POST /v1/favorites/{id}", h.PostToggle)
}

func (h FavoritesHandler) PostToggle(w http.ResponseWriter, r *http.Request) {
	const op = "FavoritesHandler.PostToggle"
	log := slog.With("op", op)

	id, err := productID(r)
	if err != nil {
		writeError(w, log, err)
		return
	}

	fav, err := h.toggler.ToggleFavorite(r.Context(), id)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, FavoriteResponse{ID: id, Favorite: fav})
	log.Info("favorite toggled", "productID", id, "favorite", fav)
}

// GET v1/cart (200 OK)
// POST v1/cart/{id} JSON {"quantity": n} is opt (200 OK, 400 Bad request, 404 Not found)
// PUT v1/cart/{id} JSON {"quantity": n} (200 OK, 400 Bad request, 404 Not found)
// DELETE v1/cart/{id} (200 OK)
// GET v1/order (200 OK)
// PUT v1/order/notes JSON {"notes": "..."} (200 OK)

type CartHandler struct {
	editor port.CartEditor
}

func RegisterCart(mux *http.ServeMux, editor port.CartEditor) {
	h := CartHandler{editor}
	mux.HandleFunc("GET /v1/cart", h.GetCart)
	mux.HandleFunc("POST /v1/cart/{id}", h.PostLine)
	mux.HandleFunc("PUT /v1/cart/{id}", h.PutLine)
	mux.HandleFunc("DELETE /v1/cart/{id}", h.DeleteLine)
	mux.HandleFunc("GET /v1/order", h.GetCart)
	mux.HandleFunc("PUT /v1/order/notes", h.PutNotes)
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetCart"
	log := slog.With("op", op)
	h.writeCart(w, r, log)
}

func (h CartHandler) PostLine(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostLine"
	log := slog.With("op", op)

	id, err := productID(r)
	if err != nil {
		writeError(w, log, err)
		return
	}

	var req QuantityRequest
	if !decodeJSON(w, r, log, &req, true) {
		return
	}
	qty := domain.DefaultQuantity
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	if err := h.editor.AddToCart(r.Context(), id, qty); err != nil {
		writeError(w, log, err)
		return
	}
	h.writeCart(w, r, log)
}

func (h CartHandler) PutLine(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PutLine"
	log := slog.With("op", op)

	id, err := productID(r)
	if err != nil {
		writeError(w, log, err)
		return
	}

	var req QuantityRequest
	if !decodeJSON(w, r, log, &req, false) {
		return
	}
	if req.Quantity == nil {
		http.Error(w, "quantity is required", http.StatusBadRequest)
		return
	}

	err = h.editor.UpdateCartQuantity(r.Context(), id, *req.Quantity)
	if err != nil {
		writeError(w, log, err)
		return
	}
	h.writeCart(w, r, log)
}

func (h CartHandler) DeleteLine(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.DeleteLine"
	log := slog.With("op", op)

	id, err := productID(r)
	if err != nil {
		writeError(w, log, err)
		return
	}

	if err := h.editor.RemoveFromCart(r.Context(), id); err != nil {
		writeError(w, log, err)
		return
	}
	h.writeCart(w, r, log)
}

func (h CartHandler) PutNotes(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PutNotes"
	log := slog.With("op", op)

	var req NotesRequest
	if !decodeJSON(w, r, log, &req, false) {
		return
	}

	if err := h.editor.SetOrderNotes(r.Context(), req.Notes); err != nil {
		writeError(w, log, err)
		return
	}
	h.writeCart(w, r, log)
}

func (h CartHandler) writeCart(
	w http.ResponseWriter, r *http.Request, log *slog.Logger,
) {
	s, err := h.editor.Cart(r.Context())
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, fromOrderSummary(s))
}

// GET v1/view (200 OK)
// PUT v1/view JSON View (200 OK, 400 Bad request)
// POST v1/view/filters/toggle JSON {"kind", "value"} (200 OK, 400 Bad request)
// DELETE v1/view/filters (200 OK)

type ViewHandler struct {
	editor port.ViewEditor
}

func RegisterView(mux *http.ServeMux, editor port.ViewEditor) {
	h := ViewHandler{editor}
	mux.HandleFunc("GET /v1/view", h.GetView)
	mux.HandleFunc("PUT /v1/view", h.PutView)
	mux.HandleFunc("POST /v1/view/filters/toggle", h.PostToggleFilter)
	mux.HandleFunc("DELETE /v1/view/filters", h.DeleteFilters)
}

func (h ViewHandler) GetView(w http.ResponseWriter, r *http.Request) {
	const op = "ViewHandler.GetView"
	log := slog.With("op", op)
	h.writeView(w, r, log)
}

func (h ViewHandler) PutView(w http.ResponseWriter, r *http.Request) {
	const op = "ViewHandler.PutView"
	log := slog.With("op", op)

	var req View
	if !decodeJSON(w, r, log, &req, false) {
		return
	}

	if err := h.editor.SetView(r.Context(), req.toDomain()); err != nil {
		writeError(w, log, err)
		return
	}
	h.writeView(w, r, log)
}

func (h ViewHandler) PostToggleFilter(w http.ResponseWriter, r *http.Request) {
	const op = "ViewHandler.PostToggleFilter"
	log := slog.With("op", op)

	var req ToggleFilterRequest
	if !decodeJSON(w, r, log, &req, false) {
		return
	}

	selected, err := h.editor.ToggleFilter(
		r.Context(), domain.FilterKind(req.Kind), req.Value,
	)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, ToggleFilterResponse{
		Kind:     req.Kind,
		Value:    req.Value,
		Selected: selected,
	})
}

func (h ViewHandler) DeleteFilters(w http.ResponseWriter, r *http.Request) {
	const op = "ViewHandler.DeleteFilters"
	log := slog.With("op", op)

	if err := h.editor.ClearFilters(r.Context()); err != nil {
		writeError(w, log, err)
		return
	}
	h.writeView(w, r, log)
}

func (h ViewHandler) writeView(
	w http.ResponseWriter, r *http.Request, log *slog.Logger,
) {
	v, err := h.editor.View(r.Context())
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, fromView(v))
}

func productID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return 0, errInvalidID
	}
	return id, nil
}

// decodeJSON reports whether the handler may continue. An empty body is
// accepted only when optional is set.
func decodeJSON(
	w http.ResponseWriter, r *http.Request, log *slog.Logger, v any, optional bool,
) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || (optional && errors.Is(err, io.EOF)) {
		return true
	}
	http.Error(w, "invalid JSON data", http.StatusBadRequest)
	log.Warn("failed to parse JSON", "err", err)
	return false
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}

func writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "product not found", http.StatusNotFound)
	case errors.Is(err, errInvalidID):
		http.Error(w, errInvalidID.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidFilter):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		log.Error("request failed", "err", err)
		return
	}
	log.Warn("request rejected", "err", err)
}
