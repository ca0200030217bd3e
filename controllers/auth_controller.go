package controllers

import (
	"errors"
	"net/http"

	"healthtracker/logging"
	"healthtracker/middlewares"
	"healthtracker/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Auth   *services.AuthService
	Cookie middlewares.SessionCookie
}

func NewAuthController(auth *services.AuthService, cookie middlewares.SessionCookie) *AuthController {
	return &AuthController{Auth: auth, Cookie: cookie}
}

func (h *AuthController) Index(c *gin.Context) {
	if _, ok := middlewares.SessionFrom(c); ok {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

func (h *AuthController) RegisterPage(c *gin.Context) {
	render(c, http.StatusOK, "register.html", gin.H{"Title": "Register", "Form": registerForm{}})
}

func (h *AuthController) Register(c *gin.Context) {
	var form registerForm
	_ = c.ShouldBind(&form)
	page := gin.H{"Title": "Register", "Form": registerForm{Username: form.Username, Email: form.Email, Age: form.Age, Gender: form.Gender}}

	in, err := form.input()
	if err != nil {
		renderFailure(c, "register.html", page, err)
		return
	}
	if _, err := h.Auth.Register(c.Request.Context(), in); err != nil {
		if errors.Is(err, services.ErrDuplicateIdentity) {
			page["Error"] = "Username or email already exists"
			render(c, http.StatusOK, "register.html", page)
			return
		}
		renderFailure(c, "register.html", page, err)
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

func (h *AuthController) LoginPage(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{"Title": "Log in", "Form": loginForm{}})
}

func (h *AuthController) Login(c *gin.Context) {
	var form loginForm
	_ = c.ShouldBind(&form)
	page := gin.H{"Title": "Log in", "Form": loginForm{Username: form.Username}}

	sess, err := h.Auth.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			page["Error"] = "Invalid username or password"
			render(c, http.StatusOK, "login.html", page)
			return
		}
		serverError(c, err)
		return
	}
	if err := h.Cookie.Set(c, sess); err != nil {
		_ = h.Auth.Logout(c.Request.Context(), sess.Token)
		serverError(c, err)
		return
	}
	logging.Info().Uint("user_id", sess.UserID).Msg("user logged in")
	c.Redirect(http.StatusFound, "/dashboard")
}

// Logout works with or without a session.
func (h *AuthController) Logout(c *gin.Context) {
	if token := h.Cookie.Token(c); token != "" {
		if err := h.Auth.Logout(c.Request.Context(), token); err != nil {
			logging.Warn().Err(err).Msg("clear session")
		}
	}
	h.Cookie.Clear(c)
	c.Redirect(http.StatusFound, "/login")
}
