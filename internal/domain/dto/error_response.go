package dto

import "time"

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Message      string    `json:"message" example:"There are no holdings to sell."`        // Human readable summary
	ErrorDetails string    `json:"error,omitempty" example:"security BHP on 2024-03-01"`     // Underlying cause, when known
	Timestamp    time.Time `json:"timestamp" example:"2025-01-02T03:04:05Z" format:"date-time"` // When the error was produced (UTC)
}

// Error implements the error interface.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse stamped with the current UTC time.
// err may be nil.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
