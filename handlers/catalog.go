package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/calvinlm/Arco-Prototype/models"
)

type productView struct {
	models.Product
	DisplayPrice models.Money `json:"display_price"`
}

type floorPlanView struct {
	models.FloorPlan
	DisplayPrice *models.Money `json:"display_price,omitempty"`
}

// ListProducts searches the catalog by name (q) and category.
func (s *Server) ListProducts(c *gin.Context) {
	products, err := s.Catalog.Search(c.Query("q"), c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}

	currency := c.Query("currency")
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, productView{Product: p, DisplayPrice: s.Currencies.Display(p.Price, currency)})
	}

	c.JSON(http.StatusOK, gin.H{
		"products":   views,
		"count":      len(views),
		"categories": models.Categories,
	})
}

func (s *Server) GetProduct(c *gin.Context) {
	p, err := s.Catalog.Product(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, productView{Product: p, DisplayPrice: s.Currencies.Display(p.Price, c.Query("currency"))})
}

func (s *Server) ListFloorPlans(c *gin.Context) {
	plans := s.Catalog.FloorPlans()
	currency := c.Query("currency")

	views := make([]floorPlanView, 0, len(plans))
	for _, plan := range plans {
		views = append(views, s.floorPlanView(plan, currency))
	}
	c.JSON(http.StatusOK, gin.H{"floor_plans": views, "count": len(views)})
}

func (s *Server) GetFloorPlan(c *gin.Context) {
	plan, err := s.Catalog.FloorPlan(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.floorPlanView(plan, c.Query("currency")))
}

func (s *Server) floorPlanView(plan models.FloorPlan, currency string) floorPlanView {
	view := floorPlanView{FloorPlan: plan}
	if plan.Price != nil {
		m := s.Currencies.Display(*plan.Price, currency)
		view.DisplayPrice = &m
	}
	return view
}
