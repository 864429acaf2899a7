package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/example/everest-shop/internal/api/middleware"
	"github.com/example/everest-shop/internal/session"
)

type RouterConfig struct {
	Manager        *session.Manager
	Tokens         *session.Tokens
	AllowedOrigins []string
	Logger         *logrus.Entry
	// WebDir, when set, is served at / for the storefront front-end.
	WebDir string
}

func NewRouter(handlers *Handlers, cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", handlers.Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Session(cfg.Manager, cfg.Tokens))

	api.HandleFunc("/state", handlers.GetState).Methods(http.MethodGet)
	api.HandleFunc("/store", handlers.GetStore).Methods(http.MethodGet)
	api.HandleFunc("/i18n", handlers.GetBundle).Methods(http.MethodGet)
	api.HandleFunc("/language", handlers.SetLanguage).Methods(http.MethodPut)

	// Catalog
	api.HandleFunc("/products", handlers.GetProducts).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", handlers.GetProduct).Methods(http.MethodGet)
	api.HandleFunc("/catalog/brands", handlers.GetBrands).Methods(http.MethodGet)
	api.HandleFunc("/catalog/categories", handlers.GetCategories).Methods(http.MethodGet)

	// Filters
	api.HandleFunc("/filters", handlers.GetFilters).Methods(http.MethodGet)
	api.HandleFunc("/filters", handlers.ReplaceFilters).Methods(http.MethodPut)
	api.HandleFunc("/filters", handlers.ClearFilters).Methods(http.MethodDelete)
	api.HandleFunc("/filters/search", handlers.SetSearch).Methods(http.MethodPut)
	api.HandleFunc("/filters/category", handlers.SetCategory).Methods(http.MethodPut)
	api.HandleFunc("/filters/brands/{brand}", handlers.ToggleBrand).Methods(http.MethodPost)

	// Cart
	api.HandleFunc("/cart", handlers.GetCart).Methods(http.MethodGet)
	api.HandleFunc("/cart", handlers.ClearCart).Methods(http.MethodDelete)
	api.HandleFunc("/cart/items", handlers.AddToCart).Methods(http.MethodPost)
	api.HandleFunc("/cart/items/{productId}", handlers.RemoveFromCart).Methods(http.MethodDelete)

	api.HandleFunc("/panels/{panel}", handlers.SetPanel).Methods(http.MethodPut)

	// Chat
	api.HandleFunc("/chat", handlers.GetChat).Methods(http.MethodGet)
	api.HandleFunc("/chat/messages", handlers.SendMessage).Methods(http.MethodPost)
	api.HandleFunc("/chat/language", handlers.SetChatLanguage).Methods(http.MethodPut)
	api.HandleFunc("/chat/ws", handlers.ChatSocket).Methods(http.MethodGet)

	api.HandleFunc("/activity", handlers.GetActivity).Methods(http.MethodGet)

	if cfg.WebDir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.WebDir)))
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		middleware.RespondError(w, "not found", http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		middleware.RespondError(w, "method not allowed", http.StatusMethodNotAllowed)
	})

	logger := cfg.Logger
	if logger == nil {
		logger = logrus.WithField("component", "api")
	}
	return withCORS(cfg.AllowedOrigins, middleware.Logging(logger)(middleware.ServerTiming(r)))
}

// withCORS serves cross-origin browsers from origins only. No origins means
// same-origin only. The session cookie is shared only with listed origins,
// never with a wildcard.
func withCORS(origins []string, next http.Handler) http.Handler {
	if len(origins) == 0 {
		return next
	}
	credentials := true
	for _, o := range origins {
		if o == "*" {
			credentials = false
		}
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"X-Session-Token", "Server-Timing"},
		AllowCredentials: credentials,
	}).Handler(next)
}
