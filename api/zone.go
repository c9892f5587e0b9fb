package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velobg/rental-backend/geo"
	"github.com/velobg/rental-backend/state"
	"github.com/velobg/rental-backend/zone"
)

var (
	errZoneNotFound  = errors.New("parking zone not found")
	errZoneNameTaken = errors.New("a parking zone with this name already exists")
)

func (a *API) listZonesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, a.store.View().ParkingZones)
}

func (a *API) getZoneHandler(c *gin.Context) {
	z, ok := zone.Find(a.store.View().ParkingZones, c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "parking zone not found"})
		return
	}
	c.JSON(http.StatusOK, z)
}

type zoneRequest struct {
	Name         string   `json:"name" binding:"required"`
	Lat          *float64 `json:"lat" binding:"required"`
	Lng          *float64 `json:"lng" binding:"required"`
	RadiusMeters float64  `json:"radiusMeters" binding:"required"`
	Capacity     int      `json:"capacity" binding:"required"`
}

func (req zoneRequest) validate() (string, bool) {
	if !geo.ValidLat(*req.Lat) || !geo.ValidLng(*req.Lng) {
		return "invalid coordinates", false
	}
	if req.RadiusMeters < 1 || req.RadiusMeters > 1000 {
		return "radius must be between 1 and 1000 meters", false
	}
	if req.Capacity < 1 || req.Capacity > 200 {
		return "capacity must be between 1 and 200", false
	}
	return "", true
}

func (a *API) createZoneHandler(c *gin.Context) {
	var req zoneRequest
	if err := c.Bind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg, ok := req.validate(); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	var created zone.ParkingZone
	_, err := a.store.Update(func(st state.AppState) (state.AppState, error) {
		if zone.NameTaken(st.ParkingZones, req.Name, "") {
			return state.AppState{}, errZoneNameTaken
		}
		created = zone.ParkingZone{
			ID:           zone.NewID(),
			Name:         req.Name,
			Lat:          *req.Lat,
			Lng:          *req.Lng,
			RadiusMeters: req.RadiusMeters,
			Capacity:     req.Capacity,
		}
		st.ParkingZones = append(append([]zone.ParkingZone{}, st.ParkingZones...), created)
		return st, nil
	})
	if err != nil {
		if errors.Is(err, errZoneNameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (a *API) updateZoneHandler(c *gin.Context) {
	id := c.Param("id")

	var req zoneRequest
	if err := c.Bind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg, ok := req.validate(); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	var updated zone.ParkingZone
	_, err := a.store.Update(func(st state.AppState) (state.AppState, error) {
		z, ok := zone.Find(st.ParkingZones, id)
		if !ok {
			return state.AppState{}, errZoneNotFound
		}
		if zone.NameTaken(st.ParkingZones, req.Name, id) {
			return state.AppState{}, errZoneNameTaken
		}

		z.Name = req.Name
		z.Lat = *req.Lat
		z.Lng = *req.Lng
		z.RadiusMeters = req.RadiusMeters
		z.Capacity = req.Capacity

		next := make([]zone.ParkingZone, len(st.ParkingZones))
		for i, cand := range st.ParkingZones {
			if cand.ID == id {
				next[i] = z
			} else {
				next[i] = cand
			}
		}
		st.ParkingZones = next
		updated = z
		return st, nil
	})
	if err != nil {
		switch err {
		case errZoneNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errZoneNameTaken:
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			respondError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (a *API) deleteZoneHandler(c *gin.Context) {
	id := c.Param("id")

	_, err := a.store.Update(func(st state.AppState) (state.AppState, error) {
		if _, ok := zone.Find(st.ParkingZones, id); !ok {
			return state.AppState{}, errZoneNotFound
		}
		next := make([]zone.ParkingZone, 0, len(st.ParkingZones)-1)
		for _, z := range st.ParkingZones {
			if z.ID != id {
				next = append(next, z)
			}
		}
		st.ParkingZones = next
		return st, nil
	})
	if err != nil {
		if errors.Is(err, errZoneNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
