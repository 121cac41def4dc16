package assistant

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Operation names one of the backend calls.
type Operation string

const (
	OperationStartVoiceSession Operation = "start_voice_session"
	OperationAskQuestion       Operation = "ask_question"
	OperationDetectCrop        Operation = "detect_crop"
	OperationGetWeather        Operation = "get_weather"
)

// DefaultMessage is used when a failed response carries no detail.
func (op Operation) DefaultMessage() string {
	switch op {
	case OperationStartVoiceSession:
		return "Failed to start voice assistant"
	case OperationAskQuestion:
		return "Failed to get answer"
	case OperationDetectCrop:
		return "Failed to detect crop"
	case OperationGetWeather:
		return "Failed to get weather data"
	default:
		return "Request failed"
	}
}

// APIError is returned for any non-success response from the backend.
type APIError struct {
	Operation  Operation
	StatusCode int
	// Detail is the server-supplied message, empty if the body had none.
	Detail  string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Operation, e.StatusCode, e.Message)
}

// NewAPIError builds an APIError from a failed response body.
func NewAPIError(op Operation, statusCode int, body []byte) *APIError {
	detail, _ := ParseDetail(body)
	message := detail
	if message == "" {
		message = op.DefaultMessage()
	}
	return &APIError{
		Operation:  op,
		StatusCode: statusCode,
		Detail:     detail,
		Message:    message,
	}
}

// ParseDetail reads the "detail" string of an error body.
// An absent, malformed or non-string detail yields false.
func ParseDetail(body []byte) (string, bool) {
	if len(body) == 0 {
		return "", false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return "", false
	}
	raw, ok := fields["detail"]
	if !ok {
		return "", false
	}
	var detail string
	if err := json.Unmarshal(raw, &detail); err != nil || detail == "" {
		return "", false
	}
	return detail, true
}

// DetailOf returns the server-supplied detail carried by err, if any.
func DetailOf(err error) (string, bool) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Detail == "" {
		return "", false
	}
	return apiErr.Detail, true
}
