package apierrors

import "net/http"

const (
	InternalServerErr = "INTERNAL_SERVER_ERROR"
	JSONDecodeErr     = "JSON_DECODE_ERROR"
	UnauthorizedErr   = "UNAUTHORIZED"
	ParamsErr         = "PARAMS_ERROR"
	ResourceNotFound  = "RESOURCE_NOT_FOUND"
	UniqueError       = "UNIQUE_ERROR"
	BadRequest        = "BAD_REQUEST"
	MissingProperty   = "MISSING_PROPERTY"
)

func InternalServerError() *APIError {
	return &APIError{
		Code:    InternalServerErr,
		Message: "Internal server error",
		Status:  http.StatusInternalServerError,
	}
}

func JSONDecodeError() *APIError {
	return &APIError{
		Code:    JSONDecodeErr,
		Message: "Request body is not valid JSON",
		Status:  http.StatusBadRequest,
	}
}

func UnauthorizedError() *APIError {
	return &APIError{
		Code:    UnauthorizedErr,
		Message: "Unauthorized",
		Status:  http.StatusUnauthorized,
	}
}

func BadParamsError(message string) *APIError {
	return &APIError{
		Code:    ParamsErr,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

func FileNotFoundError() *APIError {
	return &APIError{
		Code:    ResourceNotFound,
		Message: "File not found",
		Status:  http.StatusNotFound,
	}
}
