package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"restaurant-ordering/internal/contract"
	"restaurant-ordering/internal/domain"
	cartsvc "restaurant-ordering/internal/service/cart"
)

func (h *handlers) createCart(c *gin.Context) {
	var req cartsvc.CreateInput
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid cart payload")
			return
		}
	}
	cart, err := h.carts.Create(c.Request.Context(), customerID(c), req)
	h.writeCart(c, http.StatusCreated, cart, err)
}

func (h *handlers) activeCart(c *gin.Context) {
	cart, err := h.carts.GetActive(c.Request.Context(), customerID(c))
	h.writeCart(c, http.StatusOK, cart, err)
}

func (h *handlers) getCart(c *gin.Context) {
	cart, err := h.carts.Get(c.Request.Context(), customerID(c), c.Param("id"))
	h.writeCart(c, http.StatusOK, cart, err)
}

func (h *handlers) deleteCart(c *gin.Context) {
	cart, err := h.carts.Delete(c.Request.Context(), customerID(c), c.Param("id"))
	h.writeCart(c, http.StatusOK, cart, err)
}

// addLineItem accepts the cart submission produced by the configurator. The
// selection is re-validated server side.
func (h *handlers) addLineItem(c *gin.Context) {
	var sub contract.CartSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		badRequest(c, "invalid submission payload")
		return
	}
	if sub.MenuItemID == "" {
		badRequest(c, "menuItemId is required")
		return
	}
	cart, err := h.carts.AddItem(c.Request.Context(), customerID(c), c.Param("id"), sub)
	h.writeCart(c, http.StatusCreated, cart, err)
}

func (h *handlers) changeLineItem(c *gin.Context) {
	var req cartsvc.ChangeQuantityInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid quantity payload")
		return
	}
	cart, err := h.carts.ChangeQuantity(c.Request.Context(), customerID(c), c.Param("id"), c.Param("lineId"), req.Quantity)
	h.writeCart(c, http.StatusOK, cart, err)
}

func (h *handlers) writeCart(c *gin.Context, status int, cart *domain.Cart, err error) {
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(status, contract.FromCart(*cart))
}
