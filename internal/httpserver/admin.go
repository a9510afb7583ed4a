package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"restaurant-ordering/internal/contract"
	categorysvc "restaurant-ordering/internal/service/category"
	menusvc "restaurant-ordering/internal/service/menu"
)

type activeRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

type availabilityRequest struct {
	IsAvailable *bool `json:"isAvailable" binding:"required"`
}

func (h *handlers) upsertCategory(c *gin.Context) {
	var req categorysvc.UpsertInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid category payload")
		return
	}
	cat, err := h.categories.Upsert(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract.FromCategory(*cat))
}

func (h *handlers) setCategoryActive(c *gin.Context) {
	var req activeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "isActive is required")
		return
	}
	cat, err := h.categories.SetActive(c.Request.Context(), c.Param("id"), *req.IsActive)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract.FromCategory(*cat))
}

func (h *handlers) createMenuItem(c *gin.Context) {
	var req menusvc.CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid menu item payload")
		return
	}
	item, err := h.menu.Create(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contract.FromMenuItem(*item))
}

func (h *handlers) setAvailability(c *gin.Context) {
	var req availabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "isAvailable is required")
		return
	}
	item, err := h.menu.SetAvailability(c.Request.Context(), c.Param("id"), *req.IsAvailable)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract.FromMenuItem(*item))
}

func (h *handlers) setOptionActive(c *gin.Context) {
	var req activeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "isActive is required")
		return
	}
	ctx := c.Request.Context()
	if err := h.menu.SetOptionActive(ctx, c.Param("id"), c.Param("optionId"), *req.IsActive); err != nil {
		h.writeError(c, err)
		return
	}
	item, err := h.menu.Get(ctx, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract.FromMenuItem(*item))
}

// uploadImage expects a multipart form with the image in the "file" field.
func (h *handlers) uploadImage(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "file is required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		badRequest(c, "file could not be read")
		return
	}
	defer f.Close()

	url, err := h.menu.UploadImage(c.Request.Context(), c.Param("id"), fh.Filename, fh.Header.Get("Content-Type"), f)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imageUrl": url})
}
