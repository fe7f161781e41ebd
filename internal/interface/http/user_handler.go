package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/majesty-shop/internal/application"
	"github.com/oksasatya/majesty-shop/internal/interface/middleware"
	"github.com/oksasatya/majesty-shop/pkg/response"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req application.RegistrationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	res, err := h.Svc.Register(c.Request.Context(), middleware.ClientID(c), req)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, res, res.Message, nil)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req application.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), middleware.ClientID(c), req)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.Header("Refresh", refreshHeader(res.Redirect))
	response.Success(c, http.StatusOK, res, res.Message, nil)
}

func (h *UserHandler) Session(c *gin.Context) {
	sess, err := h.Svc.CurrentSession(c.Request.Context(), middleware.ClientID(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, sess, "session", nil)
}

// refreshHeader renders "1.5; url=./index.html" for a 1500ms redirect.
func refreshHeader(r application.Redirect) string {
	secs := strconv.FormatFloat(float64(r.AfterMS)/1000, 'f', -1, 64)
	return fmt.Sprintf("%s; url=%s", secs, r.URL)
}
