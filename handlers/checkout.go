package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/calvinlm/Arco-Prototype/models"
	"github.com/calvinlm/Arco-Prototype/services"
)

// Checkout hands the cart off to a marketplace. The platform defaults to the
// session's preferred one. The cart is kept as it is.
func (s *Server) Checkout(c *gin.Context) {
	var req struct {
		Platform string              `json:"platform"`
		Customer models.CustomerInfo `json:"customer"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, services.ErrInvalidCustomer)
		return
	}

	sess := currentSession(c)
	settings := sess.Settings()
	platform := req.Platform
	if platform == "" {
		platform = settings.Preferences.DefaultPlatform
	}

	redirect, err := s.Redirector.Redirect(sess.Cart.Snapshot(), platform, req.Customer, settings.Preferences.Currency)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, redirect)
}
