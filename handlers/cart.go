package handlers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/calvinlm/Arco-Prototype/models"
	"github.com/calvinlm/Arco-Prototype/services"
)

type cartLineView struct {
	models.CartLine
	LineTotal        string       `json:"line_total"`
	DisplayPrice     models.Money `json:"display_price"`
	DisplayLineTotal models.Money `json:"display_line_total"`
}

type cartView struct {
	Items        []cartLineView `json:"items"`
	ItemCount    int            `json:"item_count"`
	Total        string         `json:"total"`
	DisplayTotal models.Money   `json:"display_total"`
	Version      uint64         `json:"version"`
}

func (s *Server) cartView(snap models.CartSnapshot, currency string) cartView {
	items := make([]cartLineView, 0, len(snap.Items))
	for _, line := range snap.Items {
		items = append(items, cartLineView{
			CartLine:         line,
			LineTotal:        line.LineTotal().String(),
			DisplayPrice:     s.Currencies.Display(line.Price, currency),
			DisplayLineTotal: s.Currencies.Display(line.LineTotal(), currency),
		})
	}
	return cartView{
		Items:        items,
		ItemCount:    snap.ItemCount,
		Total:        snap.Total.String(),
		DisplayTotal: s.Currencies.Display(snap.Total, currency),
		Version:      snap.Version,
	}
}

func displayCurrency(sess *services.Session) string {
	return sess.Settings().Preferences.Currency
}

func (s *Server) respondCart(c *gin.Context, sess *services.Session) {
	c.JSON(http.StatusOK, s.cartView(sess.Cart.Snapshot(), displayCurrency(sess)))
}

func (s *Server) GetCart(c *gin.Context) {
	s.respondCart(c, currentSession(c))
}

// GetCartSummary backs the navigation badge and the totals bar.
func (s *Server) GetCartSummary(c *gin.Context) {
	sess := currentSession(c)
	snap := sess.Cart.Snapshot()
	currency := displayCurrency(sess)

	c.JSON(http.StatusOK, gin.H{
		"item_count":    snap.ItemCount,
		"line_count":    len(snap.Items),
		"total":         snap.Total.String(),
		"display_total": s.Currencies.Display(snap.Total, currency),
		"order_summary": s.Redirector.Summarize(snap.Total, currency),
		"version":       snap.Version,
	})
}

func (s *Server) AddCartItem(c *gin.Context) {
	var req struct {
		ProductID string `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
		return
	}

	p, err := s.Catalog.Product(req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}

	sess := currentSession(c)
	sess.Cart.AddItem(p)
	s.respondCart(c, sess)
}

// UpdateCartItem sets a line's quantity. Fractional quantities are truncated
// toward zero and anything at or below zero removes the line.
func (s *Server) UpdateCartItem(c *gin.Context) {
	var req struct {
		Quantity *float64 `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity is required"})
		return
	}

	sess := currentSession(c)
	sess.Cart.UpdateQuantity(c.Param("id"), clampQuantity(*req.Quantity))
	s.respondCart(c, sess)
}

func clampQuantity(q float64) int {
	q = math.Trunc(q)
	switch {
	case q <= 0:
		return 0
	case q > math.MaxInt32:
		return math.MaxInt32
	}
	return int(q)
}

func (s *Server) RemoveCartItem(c *gin.Context) {
	sess := currentSession(c)
	sess.Cart.RemoveItem(c.Param("id"))
	s.respondCart(c, sess)
}

func (s *Server) ClearCart(c *gin.Context) {
	sess := currentSession(c)
	sess.Cart.Clear()
	s.respondCart(c, sess)
}

// CartEvents streams the cart as server-sent events: the current state first,
// then one event per change. Slow clients only get the latest state.
func (s *Server) CartEvents(c *gin.Context) {
	sess := currentSession(c)

	updates := make(chan models.CartSnapshot, 1)
	unsubscribe := sess.Cart.Subscribe(func(snap models.CartSnapshot) {
		for {
			select {
			case updates <- snap:
				return
			default:
			}
			select {
			case <-updates:
			default:
			}
		}
	})
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	var sent uint64
	send := func(snap models.CartSnapshot) {
		c.SSEvent("cart", s.cartView(snap, displayCurrency(sess)))
		c.Writer.Flush()
		sent = snap.Version
	}
	send(sess.Cart.Snapshot())

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-sess.Done():
			c.SSEvent("end", gin.H{"reason": "session ended"})
			c.Writer.Flush()
			return
		case snap := <-updates:
			if snap.Version > sent {
				send(snap)
			}
		}
	}
}
