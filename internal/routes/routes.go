package routes

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"FRANCIGENA_BACK-END/internal/config"
	"FRANCIGENA_BACK-END/internal/handlers"
	"FRANCIGENA_BACK-END/internal/middleware"
	"FRANCIGENA_BACK-END/internal/models"
)

// Handlers groups every HTTP handler the router mounts
type Handlers struct {
	Health        *handlers.HealthHandler
	Catalog       *handlers.CatalogHandler
	Trips         *handlers.TripsHandler
	Structures    *handlers.StructuresHandler
	Bookings      *handlers.BookingsHandler
	Checklist     *handlers.ChecklistHandler
	Notifications *handlers.NotificationsHandler
	Profile       *handlers.ProfileHandler
}

// SetupRoutes configures all application routes
func SetupRoutes(h Handlers, jwtCfg *config.JWTConfig) *http.ServeMux {
	mux := http.NewServeMux()

	auth := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.AuthMiddleware(next, jwtCfg)
	}
	pilgrim := func(next http.HandlerFunc) http.HandlerFunc {
		return auth(middleware.RequireRole(models.RolePilgrim, next))
	}
	owner := func(next http.HandlerFunc) http.HandlerFunc {
		return auth(middleware.RequireRole(models.RoleOwner, next))
	}

	// Health check routes
	mux.HandleFunc("GET /healthz", h.Health.HealthCheck)
	mux.HandleFunc("GET /livez", h.Health.LivenessCheck)
	mux.HandleFunc("GET /readyz", h.Health.ReadinessCheck)

	// Trail catalog (public)
	mux.HandleFunc("GET /api/segments", h.Catalog.ListSegments)
	mux.HandleFunc("GET /api/waypoints", h.Catalog.ListWaypoints)

	// Trips
	mux.HandleFunc("POST /api/trips", pilgrim(h.Trips.CreateTrip))
	mux.HandleFunc("GET /api/trips/active", pilgrim(h.Trips.ActiveTrip))
	mux.HandleFunc("GET /api/trips/{id}", pilgrim(h.Trips.TripDetail))
	mux.HandleFunc("GET /api/trips/{id}/waypoints", pilgrim(h.Trips.TripWaypoints))
	mux.HandleFunc("GET /api/trips/{id}/edit-options", pilgrim(h.Trips.EditOptions))
	mux.HandleFunc("PUT /api/trips/{id}", pilgrim(h.Trips.UpdateTrip))
	mux.HandleFunc("DELETE /api/trips/{id}", pilgrim(h.Trips.DeleteTrip))

	// Checklist
	mux.HandleFunc("GET /api/trips/{id}/checklist", pilgrim(h.Checklist.GetChecklist))
	mux.HandleFunc("POST /api/trips/{id}/checklist/categories", pilgrim(h.Checklist.AddCategory))
	mux.HandleFunc("POST /api/checklist/categories/{id}/items", pilgrim(h.Checklist.AddItem))
	mux.HandleFunc("PUT /api/checklist/items/{id}/check", pilgrim(h.Checklist.CheckItem))
	mux.HandleFunc("DELETE /api/checklist/items/{id}", pilgrim(h.Checklist.DeleteItem))
	mux.HandleFunc("DELETE /api/checklist/categories/{id}", pilgrim(h.Checklist.DeleteCategory))

	// Structures
	mux.HandleFunc("GET /api/structures", auth(h.Structures.ListStructures))
	mux.HandleFunc("GET /api/structures/mine", owner(h.Structures.MyStructures))
	mux.HandleFunc("GET /api/structures/mine/colors", owner(h.Structures.MyColors))
	mux.HandleFunc("GET /api/structures/{id}", auth(h.Structures.GetStructure))
	mux.HandleFunc("GET /api/structures/{id}/availability", auth(h.Structures.Availability))
	mux.HandleFunc("POST /api/structures", owner(h.Structures.CreateStructure))
	mux.HandleFunc("PUT /api/structures/{id}", owner(h.Structures.UpdateStructure))
	mux.HandleFunc("DELETE /api/structures/{id}", owner(h.Structures.DeleteStructure))

	// Bookings
	mux.HandleFunc("POST /api/bookings", pilgrim(h.Bookings.CreateBooking))
	mux.HandleFunc("DELETE /api/bookings", pilgrim(h.Bookings.CancelBooking))
	mux.HandleFunc("GET /api/bookings/mine", pilgrim(h.Bookings.MyBookings))
	mux.HandleFunc("GET /api/bookings/owner", owner(h.Bookings.OwnerBookings))
	mux.HandleFunc("GET /api/bookings/occupancy", auth(h.Bookings.Occupancy))

	// Notifications
	mux.HandleFunc("GET /api/notifications", auth(h.Notifications.ListNotifications))
	mux.HandleFunc("POST /api/notifications/read-all", auth(h.Notifications.MarkAllRead))
	mux.HandleFunc("POST /api/notifications/{id}/read", auth(h.Notifications.MarkRead))

	// Profile
	mux.HandleFunc("GET /api/profile/stats", auth(h.Profile.GetStats))

	// Swagger UI
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// Root route
	mux.HandleFunc("GET /{$}", rootHandler)

	return mux
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Francigena backend is running."))
}
