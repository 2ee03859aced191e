package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/14kear/online_polls/internal/middleware"
	"github.com/14kear/online_polls/internal/services/auth"
	"github.com/14kear/sso-prettyslog/slogpretty/errors"
	"github.com/gin-gonic/gin"
)

type AccountsHandler struct {
	log        *slog.Logger
	auth       *auth.Auth
	cookieName string
	tokenTTL   time.Duration
}

type RegisterRequest struct {
	Username  string `form:"username" json:"username" binding:"required,max=150,username"`
	Password1 string `form:"password1" json:"password1" binding:"required,min=8,max=128"`
	Password2 string `form:"password2" json:"password2" binding:"required,eqfield=Password1"`
}

type LoginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

func NewAccountsHandler(log *slog.Logger, auth *auth.Auth, cookieName string, tokenTTL time.Duration) *AccountsHandler {
	return &AccountsHandler{log: log, auth: auth, cookieName: cookieName, tokenTTL: tokenTTL}
}

func (h *AccountsHandler) Home(c *gin.Context) {
	user := middleware.CurrentUser(c)

	resp := gin.H{"service": "online polls", "authenticated": !user.IsAnonymous()}
	if !user.IsAnonymous() {
		resp["user"] = user
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AccountsHandler) RegisterForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"form": gin.H{"fields": []string{"username", "password1", "password2"}}})
}

// Register creates the account and logs the new user in.
func (h *AccountsHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		fields, _ := fieldErrors(err)
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Unsuccessful registration. Invalid information.",
			"errors":  fields,
		})
		return
	}

	ctx := c.Request.Context()

	user, err := h.auth.RegisterNewUser(ctx, req.Username, req.Password1)
	if err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "Unsuccessful registration. Invalid information.",
				"errors":  gin.H{"username": "A user with that username already exists."},
			})
			return
		}
		h.log.Error("registration failed", sl.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	token, err := h.auth.Login(ctx, user)
	if err != nil {
		h.log.Error("login after registration failed", sl.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Registration successful.",
		"user":     user,
		"token":    token,
		"redirect": "/",
	})
}

func (h *AccountsHandler) LoginForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"form": gin.H{"fields": []string{"username", "password"}},
		"next": safeNext(c.Query("next")),
	})
}

func (h *AccountsHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid username or password."})
		return
	}

	ctx := c.Request.Context()

	user, err := h.auth.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid username or password."})
			return
		}
		h.log.Error("authentication failed", sl.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	token, err := h.auth.Login(ctx, user)
	if err != nil {
		h.log.Error("login failed", sl.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{
		"message":  "Logged in.",
		"token":    token,
		"redirect": safeNext(c.Query("next")),
	})
}

func (h *AccountsHandler) Logout(c *gin.Context) {
	token := c.GetString(middleware.CtxSessionToken)

	if err := h.auth.Logout(c.Request.Context(), token); err != nil && !errors.Is(err, auth.ErrInvalidSession) {
		h.log.Error("logout failed", sl.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out.", "redirect": "/"})
}

func (h *AccountsHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, token, int(h.tokenTTL.Seconds()), "/", "", false, true)
}

// safeNext keeps redirects on this site: only absolute paths are accepted.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
