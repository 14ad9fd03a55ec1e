package mcp

import (
	"context"
	"errors"
	"fmt"

	pserr "github.com/claudiolaas/fuzzy-pdf-search-experiment/internal/errors"
)

// MCP error codes for pdfsearch.
const (
	// ErrCodeDocumentNotLoaded indicates no document is loaded.
	ErrCodeDocumentNotLoaded = -32001

	// ErrCodeTimeout indicates the request timed out.
	ErrCodeTimeout = -32003

	// Standard JSON-RPC error codes.
	ErrCodeInvalidRequest = -32600
	ErrCodeMethodNotFound = -32601
	ErrCodeInvalidParams  = -32602
	ErrCodeInternalError  = -32603
)

// MCPError represents an MCP protocol error with code and message.
type MCPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// MapError converts internal errors to MCP errors.
func MapError(err error) *MCPError {
	if err == nil {
		return nil
	}

	var se *pserr.SearchError
	if errors.As(err, &se) {
		switch se.Category {
		case pserr.CategoryValidation:
			return &MCPError{Code: ErrCodeInvalidParams, Message: se.Message}
		case pserr.CategoryIO:
			return &MCPError{Code: ErrCodeDocumentNotLoaded, Message: se.Message}
		}
		return &MCPError{Code: ErrCodeInternalError, Message: se.Message}
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &MCPError{Code: ErrCodeTimeout, Message: "Request timed out."}
	case errors.Is(err, context.Canceled):
		return &MCPError{Code: ErrCodeTimeout, Message: "Request was canceled."}
	default:
		return &MCPError{Code: ErrCodeInternalError, Message: "Internal server error."}
	}
}

// NewInvalidParamsError creates an error for invalid parameters with a
// custom message.
func NewInvalidParamsError(msg string) *MCPError {
	return &MCPError{
		Code:    ErrCodeInvalidParams,
		Message: msg,
	}
}

// NewMethodNotFoundError creates an error for unknown methods/tools.
func NewMethodNotFoundError(name string) *MCPError {
	return &MCPError{
		Code:    ErrCodeMethodNotFound,
		Message: fmt.Sprintf("Tool not found: %s", name),
	}
}
