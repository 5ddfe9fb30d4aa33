package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	partnerapp "github.com/timebill/backend/internal/application/partner"
	"github.com/timebill/backend/internal/domain/partner"
)

// CustomerHandler handles customer account API endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *partnerapp.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *partnerapp.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// CreateCustomerRequest represents a request to create a customer
type CreateCustomerRequest struct {
	Code            string   `json:"code" binding:"required,max=30"`
	AccountNumber   string   `json:"account_number" binding:"max=30"`
	Name            string   `json:"name" binding:"required,max=200"`
	AddressLines    []string `json:"address_lines" binding:"max=6,dive,max=200"`
	BillingUnit     string   `json:"billing_unit" binding:"omitempty,oneof=hour day"`
	PaymentTermDays int      `json:"payment_term_days" binding:"omitempty,min=1"`
}

// UpdateCustomerRequest represents a partial customer update
type UpdateCustomerRequest struct {
	Name            *string  `json:"name" binding:"omitempty,min=1,max=200"`
	AccountNumber   *string  `json:"account_number" binding:"omitempty,max=30"`
	AddressLines    []string `json:"address_lines" binding:"omitempty,max=6,dive,max=200"`
	BillingUnit     *string  `json:"billing_unit" binding:"omitempty,oneof=hour day"`
	PaymentTermDays *int     `json:"payment_term_days" binding:"omitempty,min=1"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID              string    `json:"id"`
	Code            string    `json:"code"`
	AccountNumber   string    `json:"account_number,omitempty"`
	Name            string    `json:"name"`
	AddressLines    []string  `json:"address_lines,omitempty"`
	BillingUnit     string    `json:"billing_unit,omitempty"`
	PaymentTermDays int       `json:"payment_term_days"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func toCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:              c.ID.String(),
		Code:            c.Code,
		AccountNumber:   c.AccountNumber,
		Name:            c.Name,
		AddressLines:    c.AddressLines,
		BillingUnit:     c.BillingUnit,
		PaymentTermDays: c.PaymentTermDays,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

// Create handles POST /customers
func (h *CustomerHandler) Create(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), partnerapp.CreateCustomerInput{
		Code:            req.Code,
		AccountNumber:   req.AccountNumber,
		Name:            req.Name,
		AddressLines:    req.AddressLines,
		BillingUnit:     req.BillingUnit,
		PaymentTermDays: req.PaymentTermDays,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toCustomerResponse(customer))
}

// Get handles GET /customers/:code
func (h *CustomerHandler) Get(c *gin.Context) {
	customer, err := h.customerService.GetCustomer(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toCustomerResponse(customer))
}

// List handles GET /customers
func (h *CustomerHandler) List(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customers, err := h.customerService.ListCustomers(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result := make([]CustomerResponse, len(customers))
	for i := range customers {
		result[i] = toCustomerResponse(&customers[i])
	}
	h.Success(c, result)
}

// Update handles PUT /customers/:code
func (h *CustomerHandler) Update(c *gin.Context) {
	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), c.Param("code"), partnerapp.UpdateCustomerInput{
		Name:            req.Name,
		AccountNumber:   req.AccountNumber,
		AddressLines:    req.AddressLines,
		BillingUnit:     req.BillingUnit,
		PaymentTermDays: req.PaymentTermDays,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toCustomerResponse(customer))
}
