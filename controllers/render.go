package controllers

import (
	"errors"
	"net/http"

	"healthtracker/logging"
	"healthtracker/services"

	"github.com/gin-gonic/gin"
)

// render adds the signed-in username so the layout can build its navigation.
func render(c *gin.Context, status int, name string, data gin.H) {
	if _, ok := data["Username"]; !ok {
		data["Username"] = c.GetString("username")
	}
	c.HTML(status, name, data)
}

// renderFailure shows a user-correctable error on the form, or a 500 page.
func renderFailure(c *gin.Context, name string, data gin.H, err error) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		data["Error"] = verr.Message
		render(c, http.StatusOK, name, data)
		return
	}
	serverError(c, err)
}

func serverError(c *gin.Context, err error) {
	_ = c.Error(err)
	logging.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	render(c, http.StatusInternalServerError, "error.html", gin.H{
		"Title":   "Something went wrong",
		"Message": "The request could not be completed. Please try again.",
	})
}

func serverErrorJSON(c *gin.Context, err error) {
	_ = c.Error(err)
	logging.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func userIDFromCtx(c *gin.Context) (uint, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}
