package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/timebill/backend/internal/domain/shared"
	"github.com/timebill/backend/internal/domain/timesheet"
	"github.com/timebill/backend/internal/interfaces/http/dto"
)

// SelectionQueryRequest represents selection filters passed as query
// parameters. Dates are day-granular; the upper bound is inclusive.
type SelectionQueryRequest struct {
	Mode            string    `form:"mode"`
	ResourceCode    string    `form:"resource_code"`
	CustomerCode    string    `form:"customer_code"`
	ProjectCode     string    `form:"project_code"`
	From            time.Time `form:"from" time_format:"2006-01-02"`
	To              time.Time `form:"to" time_format:"2006-01-02"`
	IncludeInvoiced bool      `form:"include_invoiced"`
	DocumentNumber  string    `form:"document_number"`
	NumberIsPrefix  bool      `form:"number_is_prefix"`
}

// bindSelectionQuery binds query parameters into a SelectionQuery.
// An empty mode defaults to report.
func bindSelectionQuery(c *gin.Context) (timesheet.SelectionQuery, error) {
	var req SelectionQueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return timesheet.SelectionQuery{}, err
	}

	mode := timesheet.ModeReport
	if req.Mode != "" {
		mode = timesheet.SelectionMode(strings.ToUpper(req.Mode))
	}

	to := req.To
	if !to.IsZero() {
		to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	return timesheet.SelectionQuery{
		Mode:            mode,
		ResourceCode:    req.ResourceCode,
		CustomerCode:    req.CustomerCode,
		ProjectCode:     req.ProjectCode,
		From:            req.From,
		To:              to,
		IncludeInvoiced: req.IncludeInvoiced,
		DocumentNumber:  req.DocumentNumber,
		NumberIsPrefix:  req.NumberIsPrefix,
	}, nil
}

// bindFilter binds pagination parameters, falling back to defaults
func bindFilter(c *gin.Context) (shared.Filter, error) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return shared.Filter{}, err
	}

	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	filter.OrderBy = req.OrderBy
	filter.OrderDir = req.OrderDir
	return filter, nil
}
