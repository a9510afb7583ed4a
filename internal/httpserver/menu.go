package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"restaurant-ordering/internal/contract"
	"restaurant-ordering/internal/domain"
)

type categoryList struct {
	Count   int                 `json:"count"`
	Results []contract.Category `json:"results"`
}

type menuItemList struct {
	Count   int                 `json:"count"`
	Results []contract.MenuItem `json:"results"`
}

func (h *handlers) listCategories(c *gin.Context) {
	all, _ := strconv.ParseBool(c.Query("all"))
	cats, err := h.categories.List(c.Request.Context(), !all)
	if err != nil {
		h.writeError(c, err)
		return
	}
	resp := categoryList{Results: make([]contract.Category, 0, len(cats))}
	for _, cat := range cats {
		resp.Results = append(resp.Results, contract.FromCategory(cat))
	}
	resp.Count = len(resp.Results)
	c.JSON(http.StatusOK, resp)
}

func (h *handlers) getCategory(c *gin.Context) {
	cat, err := h.categories.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract.FromCategory(*cat))
}

func (h *handlers) listMenuItems(c *gin.Context) {
	items, err := h.menu.List(c.Request.Context(), c.Query("categoryId"), false)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMenuItemList(items))
}

// getMenuItem returns inactive and unavailable items too so clients can show
// why an item cannot be ordered.
func (h *handlers) getMenuItem(c *gin.Context) {
	item, err := h.menu.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract.FromMenuItem(*item))
}

func (h *handlers) quoteMenuItem(c *gin.Context) {
	var sub contract.CartSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		badRequest(c, "invalid submission payload")
		return
	}
	id := c.Param("id")
	if sub.MenuItemID != "" && sub.MenuItemID != id {
		badRequest(c, "menuItemId does not match path")
		return
	}
	res, err := h.menu.Quote(c.Request.Context(), id, sub)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract.FromQuote(id, res.Quote, res.Resolution, res.Orderable))
}

func toMenuItemList(items []domain.MenuItem) menuItemList {
	resp := menuItemList{Results: make([]contract.MenuItem, 0, len(items))}
	for _, item := range items {
		resp.Results = append(resp.Results, contract.FromMenuItem(item))
	}
	resp.Count = len(resp.Results)
	return resp
}
