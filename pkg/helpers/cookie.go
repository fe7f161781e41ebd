package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ClientCookie is the cookie naming the browser's storage scope.
const ClientCookie = "client_id"

// clientCookieTTL keeps the scope alive like browser local storage would.
const clientCookieTTL = 365 * 24 * time.Hour

type Manager struct {
	Domain string
	Secure bool
}

func NewCookie(domain string, secure bool) *Manager {
	return &Manager{Domain: domain, Secure: secure}
}

// SetClientID stores the long-lived client scope identifier.
func (m *Manager) SetClientID(c *gin.Context, clientID string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ClientCookie, clientID, maxAgeFrom(time.Now().Add(clientCookieTTL)), "/", m.Domain, m.Secure, true)
}

func maxAgeFrom(exp time.Time) int {
	sec := int(time.Until(exp).Seconds())
	if sec < 0 {
		return 0
	}
	return sec
}
