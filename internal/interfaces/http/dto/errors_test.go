package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{"NOT_FOUND", http.StatusNotFound},
		{"ALREADY_EXISTS", http.StatusConflict},
		{"INVALID_INPUT", http.StatusBadRequest},
		{"INVALID_INTERVAL", http.StatusBadRequest},
		{"EMPTY_SELECTION", http.StatusBadRequest},
		{"ALREADY_INVOICED", http.StatusUnprocessableEntity},
		{"ALREADY_CREDITED", http.StatusUnprocessableEntity},
		{"NOT_CREDITABLE", http.StatusUnprocessableEntity},
		{"MIXED_SOURCE", http.StatusUnprocessableEntity},
		{"MIXED_CUSTOMER", http.StatusUnprocessableEntity},
		{"STALE_SELECTION", http.StatusConflict},
		{"ALLOCATION_FAILED", http.StatusInternalServerError},
		{"PERSISTENCE_FAILED", http.StatusInternalServerError},
		// Unknown code should return 500
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}
