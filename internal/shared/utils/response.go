package utils

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/orris-inc/warden/internal/shared/constants"
	"github.com/orris-inc/warden/internal/shared/errors"
)

// APIResponse represents a standard API response structure
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// ErrorDetail is one entry of an error payload. Loc is ["body", field] when the
// failure refers to a request field.
type ErrorDetail struct {
	Type  string            `json:"type"`
	Loc   []string          `json:"loc"`
	Msg   string            `json:"msg"`
	Input any               `json:"input"`
	Ctx   map[string]string `json:"ctx,omitempty"`
}

// ErrorBody is the envelope of every failed request
type ErrorBody struct {
	Detail []ErrorDetail `json:"detail"`
}

// ListResponse represents a paginated list response
type ListResponse struct {
	Items      any   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// SuccessResponse sends a successful response with custom status code
func SuccessResponse(c *gin.Context, statusCode int, message string, data any) {
	c.JSON(statusCode, APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// CreatedResponse sends a created response
func CreatedResponse(c *gin.Context, data any, message ...string) {
	response := APIResponse{
		Success: true,
		Data:    data,
		Message: "Resource created successfully",
	}
	if len(message) > 0 {
		response.Message = message[0]
	}

	c.JSON(http.StatusCreated, response)
}

// ListSuccessResponse sends a successful list response with pagination
func ListSuccessResponse(c *gin.Context, items any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data: ListResponse{
			Items:      items,
			Total:      total,
			Page:       page,
			PageSize:   pageSize,
			TotalPages: TotalPages(total, pageSize),
		},
	})
}

// NoContentResponse sends a no content response
func NoContentResponse(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// ErrorResponse sends a single detail entry with an explicit status
func ErrorResponse(c *gin.Context, statusCode int, errType errors.ErrorType, message string) {
	c.JSON(statusCode, ErrorBody{Detail: []ErrorDetail{{
		Type: string(errType),
		Loc:  []string{"body"},
		Msg:  message,
	}}})
}

// ErrorResponseWithError renders err as a detail payload. Errors that are not
// AppErrors are reported as a generic 500 and never leak their text.
func ErrorResponseWithError(c *gin.Context, err error) {
	status, body := errorBody(err)
	c.JSON(status, body)
}

// AbortWithError renders err and stops the handler chain
func AbortWithError(c *gin.Context, err error) {
	status, body := errorBody(err)
	c.AbortWithStatusJSON(status, body)
}

func errorBody(err error) (int, ErrorBody) {
	var fieldErrs errors.FieldErrors
	if stderrors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		details := make([]ErrorDetail, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			details = append(details, toDetail(fe))
		}
		return fieldErrs[0].Code, ErrorBody{Detail: details}
	}

	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) {
		return errorBody(TranslateValidationErrors(verrs))
	}

	if isDecodeError(err) {
		return http.StatusUnprocessableEntity, ErrorBody{Detail: []ErrorDetail{{
			Type: "json_invalid",
			Loc:  []string{"body"},
			Msg:  "request body is not valid JSON",
		}}}
	}

	if appErr := errors.GetAppError(err); appErr != nil {
		return appErr.Code, ErrorBody{Detail: []ErrorDetail{toDetail(appErr)}}
	}

	return http.StatusInternalServerError, ErrorBody{Detail: []ErrorDetail{{
		Type: string(errors.ErrorTypeInternal),
		Loc:  []string{"body"},
		Msg:  constants.ErrMsgInternalServerError,
	}}}
}

func toDetail(e *errors.AppError) ErrorDetail {
	d := ErrorDetail{
		Type:  string(e.Type),
		Loc:   []string{"body"},
		Msg:   e.Message,
		Input: e.Input,
	}
	if e.Field != "" {
		d.Loc = append(d.Loc, e.Field)
		if e.Hint != "" {
			d.Ctx = map[string]string{e.Field: e.Hint}
		}
	}
	return d
}

func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return stderrors.As(err, &syntaxErr) || stderrors.As(err, &typeErr) || stderrors.Is(err, io.EOF)
}
