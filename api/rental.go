package api

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/velobg/rental-backend/bike"
	"github.com/velobg/rental-backend/geo"
	"github.com/velobg/rental-backend/internal/middleware"
	"github.com/velobg/rental-backend/rental"
	"github.com/velobg/rental-backend/state"
	"github.com/velobg/rental-backend/user"
)

type startRentalRequest struct {
	UserID string   `json:"userId" binding:"required"`
	BikeID string   `json:"bikeId" binding:"required"`
	Lat    *float64 `json:"lat"`
	Lng    *float64 `json:"lng"`
}

func (a *API) startRentalHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var req startRentalRequest
	if err := c.Bind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var start *geo.Point
	if req.Lat != nil && req.Lng != nil {
		start = &geo.Point{Lat: *req.Lat, Lng: *req.Lng}
	}

	r, err := a.coord.StartRental(c.Request.Context(), req.UserID, req.BikeID, start)
	if err != nil {
		logger.Info("start rental rejected", "user_id", req.UserID, "bike_id", req.BikeID, "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, r)
}

type endRentalRequest struct {
	Lat      *float64 `json:"lat" binding:"required"`
	Lng      *float64 `json:"lng" binding:"required"`
	PhotoRef string   `json:"photoRef"`
}

func (a *API) endRentalHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var req endRentalRequest
	if err := c.Bind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	end := geo.Point{Lat: *req.Lat, Lng: *req.Lng}
	r, err := a.coord.EndRental(c.Request.Context(), c.Param("id"), end, req.PhotoRef)
	if err != nil {
		logger.Info("end rental rejected", "rental_id", c.Param("id"), "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, r)
}

func (a *API) activeRentalHandler(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	r, ok := rental.ActiveFor(a.store.View().Rentals, userID)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"active": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": true, "rental": r})
}

type enrichedRental struct {
	rental.Rental
	User *user.User `json:"user,omitempty"`
	Bike *bike.Bike `json:"bike,omitempty"`
}

func enrich(st state.AppState, r rental.Rental) enrichedRental {
	out := enrichedRental{Rental: r}
	if u, ok := user.Find(st.Users, r.UserID); ok {
		pub := u.Public()
		out.User = &pub
	}
	if b, ok := bike.Find(st.Bikes, r.BikeID); ok {
		out.Bike = &b
	}
	return out
}

func (a *API) listRentalsHandler(c *gin.Context) {
	st := a.store.View()

	out := make([]enrichedRental, 0, len(st.Rentals))
	for _, r := range st.Rentals {
		out = append(out, enrich(st, r))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartAt.After(out[j].StartAt)
	})

	c.JSON(http.StatusOK, out)
}

func (a *API) getRentalHandler(c *gin.Context) {
	st := a.store.View()
	r, ok := rental.Find(st.Rentals, c.Param("id"))
	if !ok {
		respondError(c, rental.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, enrich(st, r))
}
