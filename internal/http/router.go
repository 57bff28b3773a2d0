package http

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alinea-commerce/crm-service/internal/auth"
	"github.com/alinea-commerce/crm-service/internal/customer"
	"github.com/alinea-commerce/crm-service/internal/messaging"
	"github.com/alinea-commerce/crm-service/internal/order"
	"github.com/alinea-commerce/crm-service/internal/product"
	"github.com/alinea-commerce/crm-service/internal/telemetry"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

// SetupRouter initializes all routes for the application
func SetupRouter(db *sql.DB, publisher messaging.PublisherInterface, verifier *auth.Verifier, perms auth.Permissions) *mux.Router {
	return SetupRouterWithMetrics(db, publisher, verifier, perms, nil)
}

// SetupRouterWithMetrics initializes all routes with custom metrics recording
func SetupRouterWithMetrics(db *sql.DB, publisher messaging.PublisherInterface, verifier *auth.Verifier, perms auth.Permissions, metrics *telemetry.Metrics) *mux.Router {
	// Initialize customer components
	customerRepo := customer.NewRepository(db)
	customerService := customer.NewService(customerRepo, publisher)
	customerHandler := customer.NewHandler(customerService)

	// Initialize product components
	productRepo := product.NewRepository(db)
	productService := product.NewService(productRepo, publisher)
	productHandler := product.NewHandler(productService)

	// Initialize order components
	orderRepo := order.NewRepository(db)
	orderService := order.NewService(orderRepo, publisher)
	orderHandler := order.NewHandler(orderService)

	// Avoid handing a typed-nil *Metrics to the auth middleware interfaces
	authMiddleware := auth.Middleware(verifier)
	requirePermission := func(permission string) func(http.Handler) http.Handler {
		return auth.RequirePermission(permission, perms)
	}
	if metrics != nil {
		authMiddleware = auth.MiddlewareWithMetrics(verifier, metrics)
		requirePermission = func(permission string) func(http.Handler) http.Handler {
			return auth.RequirePermissionWithMetrics(permission, perms, metrics)
		}
	}

	r := mux.NewRouter()
	r.Use(otelmux.Middleware("crm-service"))
	if metrics != nil {
		r.Use(metricsMiddleware(metrics))
	}

	// Public health endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"crm-service"}`))
	}).Methods("GET")

	// Customer routes
	r.Handle("/customers",
		authMiddleware(
			requirePermission("customer:create")(
				http.HandlerFunc(customerHandler.CreateCustomer),
			),
		),
	).Methods("POST")

	r.Handle("/customers/bulk",
		authMiddleware(
			requirePermission("customer:create")(
				http.HandlerFunc(customerHandler.BulkCreateCustomers),
			),
		),
	).Methods("POST")

	r.Handle("/customers",
		authMiddleware(
			requirePermission("customer:view")(
				http.HandlerFunc(customerHandler.ListCustomers),
			),
		),
	).Methods("GET")

	r.Handle("/customers/{id}",
		authMiddleware(
			requirePermission("customer:view")(
				http.HandlerFunc(customerHandler.GetCustomer),
			),
		),
	).Methods("GET")

	r.Handle("/customers/{id}",
		authMiddleware(
			requirePermission("customer:update")(
				http.HandlerFunc(customerHandler.UpdateCustomer),
			),
		),
	).Methods("PUT")

	r.Handle("/customers/{id}",
		authMiddleware(
			requirePermission("customer:delete")(
				http.HandlerFunc(customerHandler.DeleteCustomer),
			),
		),
	).Methods("DELETE")

	// Product routes
	r.Handle("/products",
		authMiddleware(
			requirePermission("product:create")(
				http.HandlerFunc(productHandler.CreateProduct),
			),
		),
	).Methods("POST")

	r.Handle("/products",
		authMiddleware(
			requirePermission("product:view")(
				http.HandlerFunc(productHandler.ListProducts),
			),
		),
	).Methods("GET")

	r.Handle("/products/restock",
		authMiddleware(
			requirePermission("product:restock")(
				http.HandlerFunc(productHandler.RestockLowStock),
			),
		),
	).Methods("POST")

	r.Handle("/products/{id}",
		authMiddleware(
			requirePermission("product:view")(
				http.HandlerFunc(productHandler.GetProduct),
			),
		),
	).Methods("GET")

	r.Handle("/products/{id}",
		authMiddleware(
			requirePermission("product:update")(
				http.HandlerFunc(productHandler.UpdateProduct),
			),
		),
	).Methods("PUT")

	// Order routes
	r.Handle("/orders",
		authMiddleware(
			requirePermission("order:create")(
				http.HandlerFunc(orderHandler.CreateOrder),
			),
		),
	).Methods("POST")

	r.Handle("/orders",
		authMiddleware(
			requirePermission("order:view")(
				http.HandlerFunc(orderHandler.ListOrders),
			),
		),
	).Methods("GET")

	r.Handle("/orders/{id}",
		authMiddleware(
			requirePermission("order:view")(
				http.HandlerFunc(orderHandler.GetOrder),
			),
		),
	).Methods("GET")

	return r
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware records request count and duration per route
func metricsMiddleware(metrics *telemetry.Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sr, r)

			route := r.URL.Path
			if current := mux.CurrentRoute(r); current != nil {
				if tmpl, err := current.GetPathTemplate(); err == nil {
					route = tmpl
				}
			}
			metrics.RecordHTTPRequest(r.Context(), r.Method, route, sr.status, float64(time.Since(start).Milliseconds()))
		})
	}
}
