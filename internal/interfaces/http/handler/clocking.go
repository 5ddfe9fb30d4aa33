package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	timesheetapp "github.com/timebill/backend/internal/application/timesheet"
	"github.com/timebill/backend/internal/domain/timesheet"
)

// ClockingHandler handles time entry API endpoints
type ClockingHandler struct {
	BaseHandler
	clockingService *timesheetapp.ClockingService
}

// NewClockingHandler creates a new ClockingHandler
func NewClockingHandler(clockingService *timesheetapp.ClockingService) *ClockingHandler {
	return &ClockingHandler{
		clockingService: clockingService,
	}
}

// CommitClockingRequest represents a request to commit a time entry
type CommitClockingRequest struct {
	ResourceCode string    `json:"resource_code" binding:"required,max=30"`
	CustomerCode string    `json:"customer_code" binding:"required,max=30"`
	ProjectCode  string    `json:"project_code" binding:"max=30"`
	Notes        string    `json:"notes" binding:"max=500"`
	StartTime    time.Time `json:"start_time" binding:"required"`
	EndTime      time.Time `json:"end_time" binding:"required"`
	HourlyRate   string    `json:"hourly_rate" binding:"required"`
}

// UpdateClockingRequest represents a request to edit an uninvoiced entry
type UpdateClockingRequest struct {
	Notes      string    `json:"notes" binding:"max=500"`
	StartTime  time.Time `json:"start_time" binding:"required"`
	EndTime    time.Time `json:"end_time" binding:"required"`
	HourlyRate string    `json:"hourly_rate" binding:"required"`
}

// ClockingResponse represents a time entry in API responses
type ClockingResponse struct {
	ID              string    `json:"id"`
	ResourceCode    string    `json:"resource_code"`
	CustomerCode    string    `json:"customer_code"`
	ProjectCode     string    `json:"project_code,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int64     `json:"duration_minutes"`
	HourlyRate      string    `json:"hourly_rate"`
	Amount          string    `json:"amount"`
	InvoiceState    string    `json:"invoice_state"`
	InvoiceNumber   string    `json:"invoice_number,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func toClockingResponse(c *timesheet.Clocking) ClockingResponse {
	return ClockingResponse{
		ID:              c.ID.String(),
		ResourceCode:    c.ResourceCode,
		CustomerCode:    c.CustomerCode,
		ProjectCode:     c.ProjectCode,
		Notes:           c.Notes,
		StartTime:       c.StartTime,
		EndTime:         c.EndTime,
		DurationMinutes: c.DurationMinutes(),
		HourlyRate:      c.HourlyRate.StringFixed(2),
		Amount:          c.Amount.StringFixed(2),
		InvoiceState:    string(c.InvoiceState),
		InvoiceNumber:   c.InvoiceNumber,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

// Commit handles POST /clockings
func (h *ClockingHandler) Commit(c *gin.Context) {
	var req CommitClockingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rate, err := decimal.NewFromString(req.HourlyRate)
	if err != nil {
		h.BadRequest(c, "Invalid hourly_rate: "+req.HourlyRate)
		return
	}

	clocking, err := h.clockingService.CommitEntry(c.Request.Context(), timesheetapp.CommitEntryInput{
		ResourceCode: req.ResourceCode,
		CustomerCode: req.CustomerCode,
		ProjectCode:  req.ProjectCode,
		Notes:        req.Notes,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		HourlyRate:   rate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toClockingResponse(clocking))
}

// Get handles GET /clockings/:id
func (h *ClockingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid clocking ID")
		return
	}

	clocking, err := h.clockingService.GetEntry(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toClockingResponse(clocking))
}

// List handles GET /clockings
func (h *ClockingHandler) List(c *gin.Context) {
	query, err := bindSelectionQuery(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	clockings, err := h.clockingService.ListEntries(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result := make([]ClockingResponse, len(clockings))
	for i := range clockings {
		result[i] = toClockingResponse(&clockings[i])
	}
	h.Success(c, result)
}

// Update handles PUT /clockings/:id
func (h *ClockingHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid clocking ID")
		return
	}

	var req UpdateClockingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rate, err := decimal.NewFromString(req.HourlyRate)
	if err != nil {
		h.BadRequest(c, "Invalid hourly_rate: "+req.HourlyRate)
		return
	}

	clocking, err := h.clockingService.UpdateEntry(c.Request.Context(), id, timesheetapp.UpdateEntryInput{
		Notes:      req.Notes,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		HourlyRate: rate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toClockingResponse(clocking))
}

// Delete handles DELETE /clockings/:id
func (h *ClockingHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid clocking ID")
		return
	}

	if err := h.clockingService.DeleteEntry(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
