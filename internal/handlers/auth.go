package handlers

import (
	"errors"
	"net/http"

	"github.com/Shriramtantry/task-manager/internal/service"

	"github.com/gin-gonic/gin"
)

// Single, shared credentials payload for both register and login.
type authCredentials struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"p1"`
}

// loginResponse is the body of a successful login.
type loginResponse struct {
	ID       int    `json:"id" example:"1"`
	Username string `json:"username" example:"alice"`
}

// @Summary      Register a user
// @Tags         auth
// @Accept       json
// @Produce      plain
// @Param        input  body      authCredentials  true  "credentials"
// @Success      201    {string}  string
// @Failure      500    {string}  string
// @Router       /api/register [post]
func (h *Handler) register(c *gin.Context) {
	var input authCredentials
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logAndString(c, http.StatusInternalServerError, msgRegisterFailed, "register_bad_body",
			service.Validation("auth.register", err))
		return
	}

	id, err := h.services.Authorization.Register(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		h.logAndString(c, http.StatusInternalServerError, msgRegisterFailed, "register_failed", err,
			"username", input.Username)
		return
	}

	h.log.Infow("user_registered", "user_id", id, "username", input.Username)
	c.String(http.StatusCreated, msgRegistered)
}

// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input  body      authCredentials  true  "credentials"
// @Success      200    {object}  loginResponse
// @Failure      401    {string}  string
// @Failure      500    {string}  string
// @Router       /api/login [post]
func (h *Handler) login(c *gin.Context) {
	var input authCredentials
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logAndString(c, http.StatusInternalServerError, msgLoginFailed, "login_bad_body",
			service.Validation("auth.login", err))
		return
	}

	u, err := h.services.Authorization.Login(c.Request.Context(), input.Username, input.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, loginResponse{ID: u.ID, Username: u.Username})
	case errors.Is(err, service.ErrUserNotFound):
		h.logAndString(c, http.StatusUnauthorized, msgUserNotFound, "login_rejected", err, "username", input.Username)
	case errors.Is(err, service.ErrInvalidPassword):
		h.logAndString(c, http.StatusUnauthorized, msgBadPassword, "login_rejected", err, "username", input.Username)
	default:
		h.logAndString(c, http.StatusInternalServerError, msgLoginFailed, "login_failed", err, "username", input.Username)
	}
}
