package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/calvinlm/Arco-Prototype/models"
	"github.com/calvinlm/Arco-Prototype/services"
)

type savedDesignView struct {
	models.SavedDesign
	DisplayValue models.Money `json:"display_value"`
}

type orderView struct {
	models.OrderHistory
	DisplayTotal models.Money `json:"display_total"`
}

func (s *Server) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, currentSession(c).Settings())
}

// UpdateSettings applies a partial update; nothing changes if any value is rejected.
func (s *Server) UpdateSettings(c *gin.Context) {
	var patch models.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBindError(c, err, services.ErrInvalidSetting)
		return
	}

	settings, err := currentSession(c).UpdateSettings(patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// GetProfile returns the profile with its saved designs and order history.
func (s *Server) GetProfile(c *gin.Context) {
	sess := currentSession(c)
	currency := displayCurrency(sess)

	designs := make([]savedDesignView, 0)
	orders := make([]orderView, 0)
	if s.History != nil {
		for _, d := range s.History.SavedDesigns() {
			designs = append(designs, savedDesignView{SavedDesign: d, DisplayValue: s.Currencies.Display(d.TotalValue, currency)})
		}
		for _, o := range s.History.Orders() {
			orders = append(orders, orderView{OrderHistory: o, DisplayTotal: s.Currencies.Display(o.Total, currency)})
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":       sess.Profile(),
		"saved_designs": designs,
		"orders":        orders,
	})
}

func (s *Server) UpdateProfile(c *gin.Context) {
	var req models.Profile
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, services.ErrInvalidProfile)
		return
	}

	profile, err := currentSession(c).UpdateProfile(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
