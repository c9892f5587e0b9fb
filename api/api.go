package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/velobg/rental-backend/bike"
	"github.com/velobg/rental-backend/coordinator"
	"github.com/velobg/rental-backend/internal/middleware"
	"github.com/velobg/rental-backend/internal/o11y"
	"github.com/velobg/rental-backend/internal/photostore"
	"github.com/velobg/rental-backend/issue"
	"github.com/velobg/rental-backend/rental"
	"github.com/velobg/rental-backend/state"
	"github.com/velobg/rental-backend/user"
)

type API struct {
	r      *gin.Engine
	store  *state.Store
	coord  *coordinator.Coordinator
	photos *photostore.Store
	logger *slog.Logger
}

func New(store *state.Store, coord *coordinator.Coordinator, photos *photostore.Store,
	obs *o11y.Observability, metricsUsername, metricsPassword string) *API {

	a := &API{
		r:      gin.New(),
		store:  store,
		coord:  coord,
		photos: photos,
		logger: obs.Logger,
	}

	a.r.Use(gin.Recovery())
	a.r.Use(middleware.Tracing())
	a.r.Use(middleware.Logging(obs.Logger))
	a.r.Use(middleware.Metrics(obs.Registry))

	a.r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	metricsHandler := promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{})
	if metricsUsername != "" {
		a.r.GET("/metrics",
			gin.BasicAuth(gin.Accounts{metricsUsername: metricsPassword}),
			gin.WrapH(metricsHandler))
	} else {
		a.r.GET("/metrics", gin.WrapH(metricsHandler))
	}

	a.r.Static("/uploads", photos.Root())

	g := a.r.Group("/api")

	// Client-facing endpoints (mobile app)
	g.POST("/auth/login", a.loginHandler)
	g.POST("/users/register", a.registerUserHandler)
	g.POST("/rentals", a.startRentalHandler)
	g.POST("/rentals/:id/end", a.endRentalHandler)
	g.GET("/active-rental", a.activeRentalHandler)
	g.GET("/notifications", a.notificationsHandler)
	g.POST("/issues", a.reportIssueHandler)
	g.PATCH("/bikes/:id/location", a.updateBikeLocationHandler)
	g.GET("/nearby-bikes", a.nearbyBikesHandler)

	// Sync endpoints (mobile app full-state reconciliation)
	g.GET("/state", a.getStateHandler)
	g.PUT("/state", a.putStateHandler)
	g.POST("/upload", a.uploadHandler)

	// Admin console endpoints
	admin := g.Group("/", middleware.AdminAuth(store.FindAdmin))
	admin.POST("/auth/change-password", a.changePasswordHandler)
	admin.GET("/bikes", a.listBikesHandler)
	admin.GET("/bikes/:id", a.getBikeHandler)
	admin.POST("/bikes", a.createBikeHandler)
	admin.PUT("/bikes/:id", a.updateBikeHandler)
	admin.DELETE("/bikes/:id", a.deleteBikeHandler)
	admin.GET("/parking-zones", a.listZonesHandler)
	admin.GET("/parking-zones/:id", a.getZoneHandler)
	admin.POST("/parking-zones", a.createZoneHandler)
	admin.PUT("/parking-zones/:id", a.updateZoneHandler)
	admin.DELETE("/parking-zones/:id", a.deleteZoneHandler)
	admin.GET("/users", a.listUsersHandler)
	admin.GET("/rentals", a.listRentalsHandler)
	admin.GET("/rentals/:id", a.getRentalHandler)
	admin.GET("/issues", a.listIssuesHandler)
	admin.GET("/issues/:id", a.getIssueHandler)
	admin.PATCH("/issues/:id/status", a.setIssueStatusHandler)
	admin.GET("/stats", a.statsHandler)

	return a
}

func (a *API) Router() *gin.Engine {
	return a.r
}

// respondError maps core error kinds onto HTTP statuses: 404 for missing
// resources, 409 for invariant conflicts, 400/422 for recoverable return
// validation failures.
func respondError(c *gin.Context, err error) {
	if nze, ok := coordinator.NotInZoneFromError(err); ok {
		payload := gin.H{"error": err.Error()}
		if nze.HasNearest {
			payload["nearestZone"] = nze.Nearest
			payload["distanceMeters"] = nze.DistanceMeters
		}
		c.JSON(http.StatusUnprocessableEntity, payload)
		return
	}

	switch {
	case errors.Is(err, bike.ErrNotFound),
		errors.Is(err, rental.ErrNotFound),
		errors.Is(err, user.ErrNotFound),
		errors.Is(err, issue.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, bike.ErrNotAvailable),
		errors.Is(err, rental.ErrActiveRental),
		errors.Is(err, rental.ErrNotActive):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, coordinator.ErrPhotoRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
