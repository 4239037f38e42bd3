package router

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dinetab-pos/api/internal/config"
	"github.com/dinetab-pos/api/internal/database"
	"github.com/dinetab-pos/api/internal/handler"
	"github.com/dinetab-pos/api/internal/service"
	"github.com/dinetab-pos/api/internal/ws"
)

// New creates a Chi router with all application routes wired up.
func New(cfg *config.Config, queries *database.Queries, pool *pgxpool.Pool, hub *ws.Hub) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"}, // terminal dev server
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	// WebSocket route for kitchen and terminal displays
	r.Get("/ws/{channel}", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, w, r)
	})

	// Services
	newOrderStore := func(db database.DBTX) service.OrderStore {
		return database.New(db)
	}
	registry := service.NewRegistry(queries)
	orderService := service.NewOrderService(pool, newOrderStore)

	// Catalog
	productHandler := handler.NewProductHandler(queries)
	productHandler.RegisterRoutes(r)

	// Service areas: seating grid, per-area order entry, checkout
	areaHandler := handler.NewAreaHandler(registry)
	orderHandler := handler.NewOrderHandler(orderService, queries, hub)
	checkoutHandler := handler.NewCheckoutHandler(orderService, queries, hub, nil)
	r.Route("/service-areas", func(r chi.Router) {
		areaHandler.RegisterRoutes(r)
		checkoutHandler.RegisterRoutes(r)
		r.Post("/{id}/order", orderHandler.Open)
	})

	// Orders
	r.Route("/orders", orderHandler.RegisterRoutes)

	// Kitchen display
	kitchenHandler := handler.NewKitchenHandler(orderService, queries, hub)
	r.Route("/kitchen", kitchenHandler.RegisterRoutes)

	log.Println("Router initialized with all handlers")
	return r
}
