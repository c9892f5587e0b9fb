package api

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/velobg/rental-backend/bike"
	"github.com/velobg/rental-backend/internal/middleware"
	"github.com/velobg/rental-backend/issue"
	"github.com/velobg/rental-backend/rental"
	"github.com/velobg/rental-backend/state"
	"github.com/velobg/rental-backend/user"
)

type reportIssueRequest struct {
	UserID      string `json:"userId" binding:"required"`
	BikeID      string `json:"bikeId"`
	RentalID    string `json:"rentalId"`
	Type        string `json:"type" binding:"required"`
	Description string `json:"description" binding:"required"`
	PhotoURL    string `json:"photoUrl"`
}

func (a *API) reportIssueHandler(c *gin.Context) {
	var req reportIssueRequest
	if err := c.Bind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "description is required"})
		return
	}

	var created issue.Issue
	_, err := a.store.Update(func(st state.AppState) (state.AppState, error) {
		created = issue.Issue{
			ID:          issue.NewID(),
			UserID:      req.UserID,
			BikeID:      req.BikeID,
			RentalID:    req.RentalID,
			Type:        req.Type,
			Description: strings.TrimSpace(req.Description),
			PhotoURL:    req.PhotoURL,
			Status:      issue.StatusOpen,
			CreatedAt:   time.Now(),
		}
		st.Issues = append(append([]issue.Issue{}, st.Issues...), created)
		return st, nil
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

type enrichedIssue struct {
	issue.Issue
	User   *user.User     `json:"user,omitempty"`
	Bike   *bike.Bike     `json:"bike,omitempty"`
	Rental *rental.Rental `json:"rental,omitempty"`
}

func enrichIssue(st state.AppState, i issue.Issue) enrichedIssue {
	out := enrichedIssue{Issue: i}
	if u, ok := user.Find(st.Users, i.UserID); ok {
		pub := u.Public()
		out.User = &pub
	}
	if i.BikeID != "" {
		if b, ok := bike.Find(st.Bikes, i.BikeID); ok {
			out.Bike = &b
		}
	}
	if i.RentalID != "" {
		if r, ok := rental.Find(st.Rentals, i.RentalID); ok {
			out.Rental = &r
		}
	}
	return out
}

func (a *API) listIssuesHandler(c *gin.Context) {
	st := a.store.View()

	out := make([]enrichedIssue, 0, len(st.Issues))
	for _, i := range st.Issues {
		out = append(out, enrichIssue(st, i))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	c.JSON(http.StatusOK, out)
}

func (a *API) getIssueHandler(c *gin.Context) {
	st := a.store.View()
	i, ok := issue.Find(st.Issues, c.Param("id"))
	if !ok {
		respondError(c, issue.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, enrichIssue(st, i))
}

type issueStatusRequest struct {
	Status    issue.Status `json:"status" binding:"required"`
	AdminNote string       `json:"adminNote"`
}

func (a *API) setIssueStatusHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var req issueStatusRequest
	if err := c.Bind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !issue.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid issue status"})
		return
	}

	admin, _ := middleware.GetAdmin(c)

	var updated issue.Issue
	_, err := a.store.Update(func(st state.AppState) (state.AppState, error) {
		issues, i, err := issue.SetStatus(st.Issues, c.Param("id"), req.Status, req.AdminNote, admin.ID, time.Now())
		if err != nil {
			return state.AppState{}, err
		}
		st.Issues = issues
		updated = i
		return st, nil
	})
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("issue status changed", "issue_id", updated.ID, "status", updated.Status)
	c.JSON(http.StatusOK, updated)
}
