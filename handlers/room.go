package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/calvinlm/Arco-Prototype/models"
)

func (s *Server) GetRoom(c *gin.Context) {
	c.JSON(http.StatusOK, currentSession(c).Room.State())
}

// SelectFloorPlan switches the room's plan; unknown ids fall back to the default plan.
func (s *Server) SelectFloorPlan(c *gin.Context) {
	var req struct {
		PlanID string `json:"plan_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	room := currentSession(c).Room
	room.SelectPlan(req.PlanID)
	c.JSON(http.StatusOK, room.State())
}

func (s *Server) SetViewMode(c *gin.Context) {
	var req struct {
		Mode models.ViewMode `json:"mode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode is required"})
		return
	}

	room := currentSession(c).Room
	if err := room.SetViewMode(req.Mode); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room.State())
}

// PlaceItem puts a product in the room and adds it to the cart.
func (s *Server) PlaceItem(c *gin.Context) {
	var req struct {
		ProductID string `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
		return
	}

	sess := currentSession(c)
	item, err := sess.Room.Place(req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"item":            item,
		"room":            sess.Room.State(),
		"cart_item_count": sess.Cart.ItemCount(),
	})
}

func (s *Server) SelectPlacedItem(c *gin.Context) {
	room := currentSession(c).Room
	if err := room.Select(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room.State())
}

// RemovePlacedItem takes an item out of the room. The cart is not touched.
func (s *Server) RemovePlacedItem(c *gin.Context) {
	room := currentSession(c).Room
	if err := room.Remove(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room.State())
}
