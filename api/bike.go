package api

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/velobg/rental-backend/bike"
	"github.com/velobg/rental-backend/geo"
	"github.com/velobg/rental-backend/internal/middleware"
	"github.com/velobg/rental-backend/rental"
	"github.com/velobg/rental-backend/state"
)

func (a *API) listBikesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, a.store.View().Bikes)
}

func (a *API) getBikeHandler(c *gin.Context) {
	b, ok := bike.Find(a.store.View().Bikes, c.Param("id"))
	if !ok {
		respondError(c, bike.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, b)
}

type nearbyBikeResponse struct {
	bike.Bike
	DistanceMeters float64 `json:"distanceMeters"`
}

// nearbyBikesHandler lists available bikes ordered by distance from the
// caller's position.
func (a *API) nearbyBikesHandler(c *gin.Context) {
	var q struct {
		Lat float64 `form:"lat" binding:"required"`
		Lng float64 `form:"lng" binding:"required"`
	}
	if err := c.BindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	from := geo.Point{Lat: q.Lat, Lng: q.Lng}
	var out []nearbyBikeResponse
	for _, b := range a.store.View().Bikes {
		if b.Status != bike.StatusAvailable {
			continue
		}
		out = append(out, nearbyBikeResponse{
			Bike:           b,
			DistanceMeters: geo.DistanceMeters(from, b.Position()),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DistanceMeters < out[j].DistanceMeters
	})

	c.JSON(http.StatusOK, out)
}

type bikeRequest struct {
	Label        string      `json:"label" binding:"required"`
	Type         bike.Type   `json:"type" binding:"required"`
	PricePerHour float64     `json:"pricePerHour" binding:"required"`
	Lat          *float64    `json:"lat" binding:"required"`
	Lng          *float64    `json:"lng" binding:"required"`
	Status       bike.Status `json:"status"`
}

func (req bikeRequest) validate() (string, bool) {
	if !bike.ValidType(req.Type) {
		return "invalid bike type", false
	}
	if req.PricePerHour <= 0 {
		return "price per hour must be positive", false
	}
	if !geo.ValidLat(*req.Lat) {
		return "invalid latitude", false
	}
	if !geo.ValidLng(*req.Lng) {
		return "invalid longitude", false
	}
	if req.Status != "" && !bike.ValidStatus(req.Status) {
		return "invalid bike status", false
	}
	return "", true
}

func (a *API) createBikeHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var req bikeRequest
	if err := c.Bind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg, ok := req.validate(); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	status := req.Status
	if status == "" {
		status = bike.StatusAvailable
	}

	var created bike.Bike
	_, err := a.store.Update(func(st state.AppState) (state.AppState, error) {
		created = bike.Bike{
			ID:           bike.NewID(),
			Label:        req.Label,
			Type:         req.Type,
			PricePerHour: req.PricePerHour,
			Lat:          *req.Lat,
			Lng:          *req.Lng,
			Status:       status,
			UpdatedAt:    time.Now(),
		}
		st.Bikes = append(append([]bike.Bike{}, st.Bikes...), created)
		return st, nil
	})
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("bike created", "bike_id", created.ID, "label", created.Label)
	c.JSON(http.StatusCreated, created)
}

func (a *API) updateBikeHandler(c *gin.Context) {
	id := c.Param("id")

	var req bikeRequest
	if err := c.Bind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg, ok := req.validate(); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	var updated bike.Bike
	_, err := a.store.Update(func(st state.AppState) (state.AppState, error) {
		b, ok := bike.Find(st.Bikes, id)
		if !ok {
			return state.AppState{}, bike.ErrNotFound
		}

		// Status overrides never touch a bike that is out on a rental.
		if _, active := rental.ActiveForBike(st.Rentals, id); active && req.Status != "" && req.Status != bike.StatusRented {
			return state.AppState{}, bike.ErrNotAvailable
		}

		b.Label = req.Label
		b.Type = req.Type
		b.PricePerHour = req.PricePerHour
		b.Lat = *req.Lat
		b.Lng = *req.Lng
		if req.Status != "" {
			b.Status = req.Status
		}
		b.UpdatedAt = time.Now()

		next := make([]bike.Bike, len(st.Bikes))
		for i, cand := range st.Bikes {
			if cand.ID == id {
				next[i] = b
			} else {
				next[i] = cand
			}
		}
		st.Bikes = next
		updated = b
		return st, nil
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (a *API) deleteBikeHandler(c *gin.Context) {
	id := c.Param("id")

	_, err := a.store.Update(func(st state.AppState) (state.AppState, error) {
		if _, ok := bike.Find(st.Bikes, id); !ok {
			return state.AppState{}, bike.ErrNotFound
		}
		// A bike is never deleted while an active rental references it.
		if _, active := rental.ActiveForBike(st.Rentals, id); active {
			return state.AppState{}, bike.ErrNotAvailable
		}

		next := make([]bike.Bike, 0, len(st.Bikes)-1)
		for _, b := range st.Bikes {
			if b.ID != id {
				next = append(next, b)
			}
		}
		st.Bikes = next
		return st, nil
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type bikeLocationRequest struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lng *float64 `json:"lng" binding:"required"`
}

func (a *API) updateBikeLocationHandler(c *gin.Context) {
	id := c.Param("id")

	var req bikeLocationRequest
	if err := c.Bind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !geo.ValidLat(*req.Lat) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid latitude"})
		return
	}
	if !geo.ValidLng(*req.Lng) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid longitude"})
		return
	}

	var updated bike.Bike
	_, err := a.store.Update(func(st state.AppState) (state.AppState, error) {
		bikes, b, err := bike.MoveTo(st.Bikes, id, geo.Point{Lat: *req.Lat, Lng: *req.Lng}, time.Now())
		if err != nil {
			return state.AppState{}, err
		}
		st.Bikes = bikes
		updated = b
		return st, nil
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "bike": updated})
}
