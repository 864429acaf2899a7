package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/everest-shop/internal/activity"
	"github.com/example/everest-shop/internal/domain/catalog"
	"github.com/example/everest-shop/internal/domain/chat"
	"github.com/example/everest-shop/internal/i18n"
	"github.com/example/everest-shop/internal/infrastructure/store/mocks"
	"github.com/example/everest-shop/internal/session"
)

type testServer struct {
	t       *testing.T
	handler http.Handler
	token   string
	events  *mocks.MockEventStore
}

func newTestServer(t *testing.T, completer chat.Completer) *testServer {
	t.Helper()
	engine := catalog.NewEngine(catalog.Seed())
	instruction, err := chat.NewInstruction(catalog.Seed())
	require.NoError(t, err)
	tokens, err := session.NewTokens("test-secret", time.Hour)
	require.NoError(t, err)
	events := mocks.NewMockEventStore()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	manager := session.NewManager(session.Config{
		Engine:      engine,
		Completer:   completer,
		Instruction: instruction,
		IdleTTL:     time.Hour,
		Recorder:    activity.NewRecorder(events, nil),
	})
	handler := NewRouter(NewHandlers(engine, events), RouterConfig{
		Manager: manager,
		Tokens:  tokens,
		Logger:  logrus.NewEntry(logger),
	})
	return &testServer{t: t, handler: handler, events: events}
}

func (s *testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	if token := rec.Header().Get("X-Session-Token"); token != "" {
		s.token = token
	}
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func replyWith(text string) chat.Completer {
	return chat.CompleterFunc(func(ctx context.Context, req chat.Request) (chat.Response, error) {
		return chat.Response{Text: text}, nil
	})
}

// ============================================
// Basic Endpoint Tests
// ============================================

func TestHealth(t *testing.T) {
	s := newTestServer(t, replyWith("ok"))

	rec := s.do(http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, s.token)
}

func TestGetStore(t *testing.T) {
	s := newTestServer(t, replyWith("ok"))

	rec := s.do(http.MethodGet, "/api/store", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	info := decode[storeInfo](t, rec)
	assert.Equal(t, catalog.StorePhone, info.Phone)
	assert.Equal(t, catalog.StoreLocation, info.Location)
}

func TestSessionPersistsAcrossRequests(t *testing.T) {
	s := newTestServer(t, replyWith("ok"))

	first := decode[session.View](t, s.do(http.MethodGet, "/api/state", nil))
	require.NotEmpty(t, s.token)
	second := decode[session.View](t, s.do(http.MethodGet, "/api/state", nil))

	assert.Equal(t, first.SessionID, second.SessionID)
	assert.Equal(t, i18n.Default, second.Language)
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, replyWith("ok"))

	rec := s.do(http.MethodGet, "/api/nope", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

// ============================================
// Catalog and Filter Tests
// ============================================

func TestProducts_DefaultIsWholeCatalog(t *testing.T) {
	s := newTestServer(t, replyWith("ok"))

	rec := s.do(http.MethodGet, "/api/products", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[productsResponse](t, rec)
	assert.Equal(t, 6, resp.Count)
	assert.Equal(t, "1", resp.Products[0].ID)
	assert.Contains(t, rec.Header().Get("Server-Timing"), "filter")
}

func TestGetProduct(t *testing.T) {
	s := newTestServer(t, replyWith("ok"))

	rec := s.do(http.MethodGet, "/api/products/3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Google Pixel 9 Pro", decode[catalog.Product](t, rec).Name)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/products/42", nil).Code)
}

func TestFilters_FacetEndpoints(t *testing.T) {
	s := newTestServer(t, replyWith("ok"))

	rec := s.do(http.MethodPost, "/api/filters/brands/Apple", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[productsResponse](t, s.do(http.MethodGet, "/api/products", nil))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "Apple", resp.Products[0].Brand)

	require.Equal(t, http.StatusOK, s.do(http.MethodPut, "/api/filters/category", map[string]string{"category": "Mid-range"}).Code)
	assert.Equal(t, 0, decode[productsResponse](t, s.do(http.MethodGet, "/api/products", nil)).Count)

	require.Equal(t, http.StatusOK, s.do(http.MethodDelete, "/api/filters", nil).Code)
	assert.Equal(t, 6, decode[productsResponse](t, s.do(http.MethodGet, "/api/products", nil)).Count)
}

func TestFilters_Replace(t *testing.T) {
	s := newTestServer(t, replyWith("ok"))

	rec := s.do(http.MethodPut, "/api/filters", map[string]any{
		"price_min":     349,
		"price_max":     599,
		"min_camera_mp": 50,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[productsResponse](t, s.do(http.MethodGet, "/api/products", nil))
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, catalog.CategoryAll, resp.Criteria.Category)
}

func TestFilters_Invalid(t *testing.T) {
	s := newTestServer(t, replyWith("ok"))

	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"price max below min", http.MethodPut, "/api/filters", map[string]any{"price_min": 900, "price_max": 100}},
		{"unknown category", http.MethodPut, "/api/filters/category", map[string]string{"category": "Tablets"}},
		{"unknown brand", http.MethodPost, "/api/filters/brands/Nokia", nil},
		{"malformed body", http.MethodPut, "/api/filters/search", "not an object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCategories_Localized(t *testing.T) {
	s := newTestServer(t, replyWith("ok"))
	require.Equal(t, http.StatusOK, s.do(http.MethodPut, "/api/language", map[string]string{"language": "ru"}).Code)

	tabs := decode[[]categoryTab](t, s.do(http.MethodGet, "/api/catalog/categories", nil))

	require.Len(t, tabs, 4)
	assert.Equal(t, catalog.CategoryAll, tabs[0].Value)
	assert.Equal(t, i18n.For(i18n.Russian).All, tabs[0].Label)
}

func TestBrands(t *testing.T) {
	s := newTestServer(t, replyWith("ok"))

	resp := decode[brandsResponse](t, s.do(http.MethodGet, "/api/catalog/brands", nil))

	assert.Equal(t, []string{"Apple", "Samsung", "Google", "Xiaomi", "Nothing"}, resp.Brands)
	assert.True(t, resp.PriceMax.Equal(catalog.DefaultPriceMax))
}

// ============================================
// Cart Tests
// ============================================

func TestCart_AddTwiceRemoveOnce(t *testing.T) {
	s := newTestServer(t, replyWith("ok"))

	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/cart/items", map[string]string{"product_id": "2"}).Code)
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/cart/items", map[string]string{"product_id": "2"}).Code)

	rec := s.do(http.MethodDelete, "/api/cart/items/2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	view := decode[struct {
		Count int `json:"count"`
	}](t, s.do(http.MethodGet, "/api/cart", nil))
	assert.Equal(t, 1, view.Count)
	assert.Contains(t, s.events.EventTypes(), "ItemRemovedFromCart")
}

func TestCart_Errors(t *testing.T) {
	s := newTestServer(t, replyWith("ok"))

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPost, "/api/cart/items", map[string]string{"product_id": "99"}).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/api/cart/items", map[string]string{}).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/api/cart/items/1", nil).Code)
}

func TestCart_Clear(t *testing.T) {
	s := newTestServer(t, replyWith("ok"))
	s.do(http.MethodPost, "/api/cart/items", map[string]string{"product_id": "1"})

	rec := s.do(http.MethodDelete, "/api/cart", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":0`)
}

func TestPanels(t *testing.T) {
	s := newTestServer(t, replyWith("ok"))

	rec := s.do(http.MethodPut, "/api/panels/chat", map[string]bool{"open": true})
	require.Equal(t, http.StatusOK, rec.Code)
	panels := decode[map[string]bool](t, rec)
	assert.True(t, panels["chat"])

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPut, "/api/panels/sidebar", map[string]bool{"open": true}).Code)
}

// ============================================
// Chat Tests
// ============================================

func TestChat_SendMessage(t *testing.T) {
	s := newTestServer(t, replyWith("Galaxy S24 Ultra $1199"))

	rec := s.do(http.MethodPost, "/api/chat/messages", map[string]string{"text": "Samsung?"})

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[sendMessageResponse](t, rec)
	assert.Equal(t, "Galaxy S24 Ultra $1199", resp.Reply.Text)
	require.Len(t, resp.Chat.Turns, 3)
	assert.Equal(t, chat.RoleUser, resp.Chat.Turns[1].Role)
	assert.Contains(t, rec.Header().Get("Server-Timing"), "assistant")
}

func TestChat_ServiceFailureUsesApology(t *testing.T) {
	failing := chat.CompleterFunc(func(ctx context.Context, req chat.Request) (chat.Response, error) {
		return chat.Response{}, errors.New("unauthorized")
	})
	s := newTestServer(t, failing)

	rec := s.do(http.MethodPost, "/api/chat/messages", map[string]string{"text": "hi"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, i18n.For(i18n.Default).AIServiceError, decode[sendMessageResponse](t, rec).Reply.Text)
}

func TestChat_BlankMessage(t *testing.T) {
	s := newTestServer(t, replyWith("ok"))

	rec := s.do(http.MethodPost, "/api/chat/messages", map[string]string{"text": "   "})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	snap := decode[chat.Snapshot](t, s.do(http.MethodGet, "/api/chat", nil))
	assert.Len(t, snap.Turns, 1)
}

func TestChat_InFlightConflict(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	blocking := chat.CompleterFunc(func(ctx context.Context, req chat.Request) (chat.Response, error) {
		close(entered)
		<-release
		return chat.Response{Text: "done"}, nil
	})
	s := newTestServer(t, blocking)
	s.do(http.MethodGet, "/api/state", nil)

	done := make(chan int)
	go func() {
		req := httptest.NewRequest(http.MethodPost, "/api/chat/messages", bytes.NewReader([]byte(`{"text":"first"}`)))
		req.Header.Set("Authorization", "Bearer "+s.token)
		rec := httptest.NewRecorder()
		s.handler.ServeHTTP(rec, req)
		done <- rec.Code
	}()
	<-entered

	rec := s.do(http.MethodPost, "/api/chat/messages", map[string]string{"text": "second"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	close(release)
	assert.Equal(t, http.StatusOK, <-done)
}

func TestChat_LanguageRules(t *testing.T) {
	s := newTestServer(t, replyWith("ok"))

	// global switch before the conversation starts resets the greeting
	require.Equal(t, http.StatusOK, s.do(http.MethodPut, "/api/language", map[string]string{"language": "ru"}).Code)
	snap := decode[chat.Snapshot](t, s.do(http.MethodGet, "/api/chat", nil))
	assert.Equal(t, i18n.For(i18n.Russian).AIGreeting, snap.Turns[0].Text)

	s.do(http.MethodPost, "/api/chat/messages", map[string]string{"text": "привет"})

	// afterwards the transcript is untouched
	require.Equal(t, http.StatusOK, s.do(http.MethodPut, "/api/language", map[string]string{"language": "kg"}).Code)
	snap = decode[chat.Snapshot](t, s.do(http.MethodGet, "/api/chat", nil))
	assert.Len(t, snap.Turns, 3)
	assert.Equal(t, i18n.Russian, snap.Language)

	// the widget toggle still switches its own language
	rec := s.do(http.MethodPut, "/api/chat/language", map[string]string{"language": "kg"})
	require.Equal(t, http.StatusOK, rec.Code)
	snap = decode[chat.Snapshot](t, rec)
	assert.Equal(t, i18n.Kyrgyz, snap.Language)
	assert.Len(t, snap.Turns, 3)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPut, "/api/chat/language", map[string]string{"language": "en"}).Code)
}

func TestBundle(t *testing.T) {
	s := newTestServer(t, replyWith("ok"))

	b := decode[i18n.Bundle](t, s.do(http.MethodGet, "/api/i18n?lang=ru", nil))
	assert.Equal(t, i18n.Russian, b.Language)

	b = decode[i18n.Bundle](t, s.do(http.MethodGet, "/api/i18n", nil))
	assert.Equal(t, i18n.Kyrgyz, b.Language)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/i18n?lang=de", nil).Code)
}

// ============================================
// Activity Tests
// ============================================

func TestActivity_ReturnsSessionHistory(t *testing.T) {
	s := newTestServer(t, replyWith("ok"))
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/cart/items", map[string]string{"product_id": "3"}).Code)

	rec := s.do(http.MethodGet, "/api/activity", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[activityResponse](t, rec)
	require.Equal(t, 2, resp.Count)
	assert.Equal(t, "SessionStarted", resp.Events[0].EventType)
	assert.Equal(t, "ItemAddedToCart", resp.Events[1].EventType)
	for _, e := range resp.Events {
		assert.Equal(t, resp.SessionID, e.SessionID)
	}
}

func TestActivity_OtherSessionsNotVisible(t *testing.T) {
	s := newTestServer(t, replyWith("ok"))
	s.do(http.MethodPost, "/api/cart/items", map[string]string{"product_id": "3"})

	s.token = ""
	resp := decode[activityResponse](t, s.do(http.MethodGet, "/api/activity", nil))

	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "SessionStarted", resp.Events[0].EventType)
}
