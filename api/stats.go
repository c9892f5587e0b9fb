package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velobg/rental-backend/bike"
	"github.com/velobg/rental-backend/issue"
	"github.com/velobg/rental-backend/rental"
)

type statsResponse struct {
	Bikes struct {
		Total       int `json:"total"`
		Available   int `json:"available"`
		Rented      int `json:"rented"`
		Maintenance int `json:"maintenance"`
		Disabled    int `json:"disabled"`
	} `json:"bikes"`
	Rentals struct {
		Total    int     `json:"total"`
		Active   int     `json:"active"`
		Finished int     `json:"finished"`
		Revenue  float64 `json:"revenue"`
	} `json:"rentals"`
	Users struct {
		Total int `json:"total"`
	} `json:"users"`
	Issues struct {
		Total int `json:"total"`
		Open  int `json:"open"`
	} `json:"issues"`
	ParkingZones struct {
		Total int `json:"total"`
	} `json:"parkingZones"`
}

func (a *API) statsHandler(c *gin.Context) {
	st := a.store.View()

	var resp statsResponse

	resp.Bikes.Total = len(st.Bikes)
	for _, b := range st.Bikes {
		switch b.Status {
		case bike.StatusAvailable:
			resp.Bikes.Available++
		case bike.StatusRented:
			resp.Bikes.Rented++
		case bike.StatusMaintenance:
			resp.Bikes.Maintenance++
		case bike.StatusDisabled:
			resp.Bikes.Disabled++
		}
	}

	resp.Rentals.Total = len(st.Rentals)
	for _, r := range st.Rentals {
		switch r.Status {
		case rental.StatusActive:
			resp.Rentals.Active++
		case rental.StatusFinished:
			resp.Rentals.Finished++
			if r.TotalPrice != nil {
				resp.Rentals.Revenue += *r.TotalPrice
			}
		}
	}

	resp.Users.Total = len(st.Users)

	resp.Issues.Total = len(st.Issues)
	for _, i := range st.Issues {
		if i.Status == issue.StatusOpen || i.Status == issue.StatusInProgress {
			resp.Issues.Open++
		}
	}

	resp.ParkingZones.Total = len(st.ParkingZones)

	c.JSON(http.StatusOK, resp)
}
