package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/example/everest-shop/internal/api/middleware"
	"github.com/example/everest-shop/internal/domain/cart"
	"github.com/example/everest-shop/internal/domain/catalog"
	"github.com/example/everest-shop/internal/domain/chat"
	"github.com/example/everest-shop/internal/i18n"
	"github.com/example/everest-shop/internal/infrastructure/store"
	"github.com/example/everest-shop/internal/session"
)

// ActivityHistory reads back what a session has recorded.
type ActivityHistory interface {
	GetEvents(sessionID string) []store.Event
}

type Handlers struct {
	engine  *catalog.Engine
	history ActivityHistory
}

func NewHandlers(engine *catalog.Engine, history ActivityHistory) *Handlers {
	return &Handlers{engine: engine, history: history}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// State Handlers

func (h *Handlers) GetState(w http.ResponseWriter, r *http.Request) {
	state := currentSession(r)
	respondJSON(w, http.StatusOK, state.View())
}

type storeInfo struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Phone    string `json:"phone"`
	Hours    string `json:"hours"`
}

func (h *Handlers) GetStore(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, storeInfo{
		Name:     catalog.StoreName,
		Location: catalog.StoreLocation,
		Phone:    catalog.StorePhone,
		Hours:    catalog.StoreHours,
	})
}

func (h *Handlers) GetBundle(w http.ResponseWriter, r *http.Request) {
	lang := currentSession(r).Language()
	if q := r.URL.Query().Get("lang"); q != "" {
		parsed, err := i18n.Parse(q)
		if err != nil {
			respondError(w, r, err)
			return
		}
		lang = parsed
	}
	respondJSON(w, http.StatusOK, i18n.For(lang))
}

type languageRequest struct {
	Language string `json:"language"`
}

func (h *Handlers) SetLanguage(w http.ResponseWriter, r *http.Request) {
	var req languageRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	lang, err := i18n.Parse(req.Language)
	if err != nil {
		respondError(w, r, err)
		return
	}

	state := currentSession(r)
	if err := state.SetLanguage(r.Context(), lang); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, state.View())
}

// Catalog Handlers

type productsResponse struct {
	Products []catalog.Product `json:"products"`
	Count    int               `json:"count"`
	Criteria catalog.Criteria  `json:"criteria"`
}

func (h *Handlers) GetProducts(w http.ResponseWriter, r *http.Request) {
	state := currentSession(r)
	stop := middleware.StartTiming(r.Context(), "filter")
	criteria := state.Criteria()
	products := h.engine.Filter(criteria)
	stop()

	respondJSON(w, http.StatusOK, productsResponse{
		Products: products,
		Count:    len(products),
		Criteria: criteria,
	})
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.engine.Product(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

type brandsResponse struct {
	Brands   []string        `json:"brands"`
	PriceMin decimal.Decimal `json:"price_min"`
	PriceMax decimal.Decimal `json:"price_max"`
	Presets  map[string]any  `json:"presets"`
}

func (h *Handlers) GetBrands(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, brandsResponse{
		Brands:   h.engine.Brands(),
		PriceMin: catalog.DefaultPriceMin,
		PriceMax: catalog.DefaultPriceMax,
		Presets: map[string]any{
			"large_screen_inches": catalog.LargeScreenInches,
			"high_res_camera_mp":  catalog.HighResCameraMP,
		},
	})
}

type categoryTab struct {
	Value catalog.Category `json:"value"`
	Label string           `json:"label"`
}

func (h *Handlers) GetCategories(w http.ResponseWriter, r *http.Request) {
	b := i18n.For(currentSession(r).Language())
	labels := map[catalog.Category]string{
		catalog.CategoryAll:      b.All,
		catalog.CategoryFlagship: b.Flagship,
		catalog.CategoryMidRange: b.MidRange,
		catalog.CategoryBudget:   b.Budget,
	}
	tabs := make([]categoryTab, 0, len(catalog.Categories))
	for _, c := range catalog.Categories {
		tabs = append(tabs, categoryTab{Value: c, Label: labels[c]})
	}
	respondJSON(w, http.StatusOK, tabs)
}

// Filter Handlers

func (h *Handlers) GetFilters(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, currentSession(r).Criteria())
}

func (h *Handlers) ReplaceFilters(w http.ResponseWriter, r *http.Request) {
	// omitted facets keep their defaults
	criteria := catalog.DefaultCriteria()
	if !decodeJSON(w, r, &criteria) {
		return
	}
	state := currentSession(r)
	if err := state.SetCriteria(r.Context(), criteria); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, state.Criteria())
}

func (h *Handlers) ClearFilters(w http.ResponseWriter, r *http.Request) {
	state := currentSession(r)
	state.ClearFilters(r.Context())
	respondJSON(w, http.StatusOK, state.Criteria())
}

func (h *Handlers) SetSearch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Search string `json:"search"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	state := currentSession(r)
	if err := state.SetSearch(r.Context(), req.Search); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, state.Criteria())
}

func (h *Handlers) SetCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Category string `json:"category"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	state := currentSession(r)
	if err := state.SetCategory(r.Context(), req.Category); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, state.Criteria())
}

func (h *Handlers) ToggleBrand(w http.ResponseWriter, r *http.Request) {
	brand := mux.Vars(r)["brand"]
	state := currentSession(r)
	selected, err := state.ToggleBrand(r.Context(), brand)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"brand":    brand,
		"selected": selected,
		"criteria": state.Criteria(),
	})
}

// Cart Handlers

func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, currentSession(r).Cart())
}

func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"product_id"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ProductID == "" {
		respondError(w, r, cart.ErrInvalidProduct)
		return
	}

	state := currentSession(r)
	line, err := state.AddToCart(r.Context(), req.ProductID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"line": line,
		"cart": state.Cart(),
	})
}

func (h *Handlers) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	state := currentSession(r)
	if _, err := state.RemoveFromCart(r.Context(), mux.Vars(r)["productId"]); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, state.Cart())
}

func (h *Handlers) ClearCart(w http.ResponseWriter, r *http.Request) {
	state := currentSession(r)
	state.ClearCart(r.Context())
	respondJSON(w, http.StatusOK, state.Cart())
}

// Panel Handlers

func (h *Handlers) SetPanel(w http.ResponseWriter, r *http.Request) {
	panel, err := session.ParsePanel(mux.Vars(r)["panel"])
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req struct {
		Open bool `json:"open"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	state := currentSession(r)
	if err := state.SetPanel(r.Context(), panel, req.Open); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, state.View().Panels)
}

// Chat Handlers

func (h *Handlers) GetChat(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, currentSession(r).Chat().Snapshot())
}

type sendMessageResponse struct {
	Reply chat.Turn     `json:"reply"`
	Chat  chat.Snapshot `json:"chat"`
}

func (h *Handlers) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	controller := currentSession(r).Chat()
	stop := middleware.StartTiming(r.Context(), "assistant")
	reply, err := controller.Send(r.Context(), req.Text)
	stop()
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, sendMessageResponse{Reply: reply, Chat: controller.Snapshot()})
}

func (h *Handlers) SetChatLanguage(w http.ResponseWriter, r *http.Request) {
	var req languageRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	lang, err := i18n.Parse(req.Language)
	if err != nil {
		respondError(w, r, err)
		return
	}

	controller := currentSession(r).Chat()
	controller.SetActiveLanguage(lang)
	respondJSON(w, http.StatusOK, controller.Snapshot())
}

// Activity Handlers

type activityResponse struct {
	SessionID string        `json:"session_id"`
	Events    []store.Event `json:"events"`
	Count     int           `json:"count"`
}

func (h *Handlers) GetActivity(w http.ResponseWriter, r *http.Request) {
	state := currentSession(r)
	events := []store.Event{}
	if h.history != nil {
		events = append(events, h.history.GetEvents(state.ID())...)
	}
	respondJSON(w, http.StatusOK, activityResponse{
		SessionID: state.ID(),
		Events:    events,
		Count:     len(events),
	})
}

// helpers

func currentSession(r *http.Request) *session.State {
	state, ok := middleware.GetSession(r.Context())
	if !ok {
		// routes are only reachable through the session middleware
		panic("api: request has no session")
	}
	return state
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		middleware.RespondError(w, "invalid JSON body", http.StatusBadRequest)
		return false
	}
	return true
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, cart.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrInvalidCategory),
		errors.Is(err, catalog.ErrInvalidPrice),
		errors.Is(err, catalog.ErrUnknownBrand),
		errors.Is(err, cart.ErrInvalidProduct),
		errors.Is(err, i18n.ErrUnknownLanguage),
		errors.Is(err, session.ErrUnknownPanel),
		errors.Is(err, chat.ErrEmptyMessage):
		return http.StatusBadRequest
	case errors.Is(err, chat.ErrSendInFlight):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		middleware.LoggerFromContext(r.Context()).WithError(err).Error("handler failed")
		message = "internal error"
	}
	middleware.RespondError(w, message, status)
}
