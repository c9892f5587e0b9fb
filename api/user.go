package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/velobg/rental-backend/internal/middleware"
	"github.com/velobg/rental-backend/notify"
	"github.com/velobg/rental-backend/state"
	"github.com/velobg/rental-backend/user"
)

var (
	errUsernameTaken = errors.New("username is already taken")
	errEmailTaken    = errors.New("email is already registered")
)

func (a *API) listUsersHandler(c *gin.Context) {
	users := a.store.View().Users
	out := make([]user.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	c.JSON(http.StatusOK, out)
}

type registerRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Phone     string `json:"phone"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

func (a *API) registerUserHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !strings.Contains(req.Email, "@") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email address"})
		return
	}
	if len(req.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password must be at least 6 characters"})
		return
	}

	hash, err := user.HashPassword(req.Password)
	if err != nil {
		logger.Error("failed to hash password", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	var created user.User
	_, err = a.store.Update(func(st state.AppState) (state.AppState, error) {
		if user.UsernameTaken(st.Users, req.Username) {
			return state.AppState{}, errUsernameTaken
		}
		if user.EmailTaken(st.Users, req.Email) {
			return state.AppState{}, errEmailTaken
		}

		created = user.User{
			ID:           user.NewID(),
			Username:     req.Username,
			Email:        req.Email,
			Phone:        req.Phone,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			PasswordHash: hash,
			CreatedAt:    time.Now(),
		}
		st.Users = append(append([]user.User{}, st.Users...), created)
		return st, nil
	})
	if err != nil {
		switch err {
		case errUsernameTaken, errEmailTaken:
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			respondError(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, created.Public())
}

func (a *API) notificationsHandler(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}
	out := notify.ForUser(a.store.View().Notifications, userID)
	if out == nil {
		out = []notify.Notification{}
	}
	c.JSON(http.StatusOK, out)
}
