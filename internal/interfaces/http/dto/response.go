// Package dto defines the HTTP response envelope and shared request shapes.
package dto

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Meta represents pagination metadata
type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data interface{}) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// NewSuccessResponseWithMeta creates a success response with pagination meta
func NewSuccessResponseWithMeta(data interface{}, total int64, page, pageSize, totalPages int) Response {
	return Response{
		Success: true,
		Data:    data,
		Meta: &Meta{
			Total:      total,
			Page:       page,
			PageSize:   pageSize,
			TotalPages: totalPages,
		},
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	}
}

// ListRequest represents common list/pagination request parameters. Filters
// holds raw field:op:value clauses parsed by the handler layer.
type ListRequest struct {
	Page            int      `form:"page" binding:"omitempty,min=1"`
	PageSize        int      `form:"pageSize" binding:"omitempty,min=1,max=200"`
	OrderBy         string   `form:"orderBy"`
	OrderDir        string   `form:"orderDir" binding:"omitempty,oneof=asc desc"`
	IncludeInactive bool     `form:"includeInactive"`
	Filters         []string `form:"filter"`
}

// IDRequest represents a request with an integer ID path parameter
type IDRequest struct {
	ID int `uri:"id" binding:"required,min=1"`
}

// UUIDRequest represents a request with a uuid ID path parameter
type UUIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}
