package controllers

import (
	"errors"
	"net/http"

	"healthtracker/services"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{Users: users}
}

func (h *UserController) Profile(c *gin.Context) {
	userID, _ := userIDFromCtx(c)
	profile, err := h.Users.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.Redirect(http.StatusFound, "/logout")
			return
		}
		serverError(c, err)
		return
	}
	render(c, http.StatusOK, "profile.html", gin.H{"Title": "Profile", "Profile": profile})
}

func (h *UserController) UpdateProfile(c *gin.Context) {
	userID, _ := userIDFromCtx(c)
	var form profileForm
	_ = c.ShouldBind(&form)

	in, err := form.input()
	if err == nil {
		err = h.Users.UpdateProfile(c.Request.Context(), userID, in)
	}
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.Redirect(http.StatusFound, "/logout")
			return
		}
		if !services.IsValidation(err) {
			serverError(c, err)
			return
		}
		profile, perr := h.Users.GetProfile(c.Request.Context(), userID)
		if perr != nil {
			serverError(c, perr)
			return
		}
		renderFailure(c, "profile.html", gin.H{"Title": "Profile", "Profile": profile}, err)
		return
	}
	c.Redirect(http.StatusFound, "/profile")
}
