package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/velobg/rental-backend/state"
)

// getStateHandler returns the complete application state for client-side
// reconciliation.
func (a *API) getStateHandler(c *gin.Context) {
	c.JSON(http.StatusOK, a.store.View())
}

// putStateHandler replaces the complete application state with the client's
// copy. Admin credentials live outside the state so a push can never lock an
// operator out of the console.
func (a *API) putStateHandler(c *gin.Context) {
	var next state.AppState
	if err := c.Bind(&next); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := validateState(next); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a.store.Replace(next)
	a.logger.Info("state replaced",
		"users", len(next.Users),
		"bikes", len(next.Bikes),
		"rentals", len(next.Rentals))

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func validateState(st state.AppState) error {
	usernames := make(map[string]string, len(st.Users))
	emails := make(map[string]string, len(st.Users))
	for _, u := range st.Users {
		key := strings.ToLower(u.Username)
		if other, ok := usernames[key]; ok {
			return fmt.Errorf("duplicate username %q (users %s and %s)", u.Username, other, u.ID)
		}
		usernames[key] = u.ID

		if u.Email == "" {
			continue
		}
		key = strings.ToLower(u.Email)
		if other, ok := emails[key]; ok {
			return fmt.Errorf("duplicate email %q (users %s and %s)", u.Email, other, u.ID)
		}
		emails[key] = u.ID
	}
	return nil
}

// uploadHandler stores a photo sent as multipart form data and returns the
// URL it will be served from.
func (a *API) uploadHandler(c *gin.Context) {
	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}

	kind := c.PostForm("kind")
	if kind == "" {
		kind = "returns"
	}
	if strings.ContainsAny(kind, "/\\.") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid kind"})
		return
	}

	ref, err := a.photos.Save(file, kind)
	if err != nil {
		a.logger.Error("failed to store upload", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store photo"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ref": ref,
		"url": absoluteUploadURL(c, ref),
	})
}

func absoluteUploadURL(c *gin.Context, ref string) string {
	scheme := c.GetHeader("X-Forwarded-Proto")
	if scheme == "" {
		scheme = "http"
		if c.Request.TLS != nil {
			scheme = "https"
		}
	}
	return fmt.Sprintf("%s://%s/uploads/%s", scheme, c.Request.Host, ref)
}
