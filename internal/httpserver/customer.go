package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"restaurant-ordering/internal/domain"
	customersvc "restaurant-ordering/internal/service/customer"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresIn   int             `json:"expires_in"`
	Customer    domain.Customer `json:"customer"`
}

type customerResponse struct {
	Customer domain.Customer `json:"customer"`
}

func (h *handlers) signup(c *gin.Context) {
	var req customersvc.SignupInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid signup payload")
		return
	}
	cust, err := h.customers.Signup(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customerResponse{Customer: withAddresses(*cust)})
}

func (h *handlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "email and password are required")
		return
	}
	cust, token, err := h.customers.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   h.customers.AccessTTLSeconds(),
		Customer:    withAddresses(*cust),
	})
}

func (h *handlers) me(c *gin.Context) {
	cust, err := h.customers.Get(c.Request.Context(), customerID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, withAddresses(*cust))
}

func (h *handlers) addAddress(c *gin.Context) {
	var req customersvc.AddressInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid address payload")
		return
	}
	cust, err := h.customers.AddAddress(c.Request.Context(), customerID(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, withAddresses(*cust))
}

func withAddresses(c domain.Customer) domain.Customer {
	if c.Addresses == nil {
		c.Addresses = []domain.CustomerAddress{}
	}
	return c
}
