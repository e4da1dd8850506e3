package response

import (
	"encoding/json"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/logger"
	"net/http"
)

type Error struct {
	Error string `json:"error"`
}

type Message struct {
	Message string `json:"message"`
}

// WithMessage sends a response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Message: message})
}

// WithJSON sends payload as the response body as is.
func WithJSON(writer http.ResponseWriter, code int, payload any) {
	response(writer, code, payload)
}

// WithNoContent sends an empty 204.
func WithNoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

// WithError sends {"error": message}. Errors that carry no status are
// reported as a bare 500 without their text.
func WithError(writer http.ResponseWriter, err error) {
	if !failure.IsFailure(err) {
		response(writer, http.StatusInternalServerError, Error{Error: http.StatusText(http.StatusInternalServerError)})

		return
	}

	response(writer, failure.GetCode(err), Error{Error: err.Error()})
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	response(writer, http.StatusTooManyRequests, Error{Error: constant.ResponseErrorRequestLimitExceeded})
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	response(writer, http.StatusServiceUnavailable, Error{Error: constant.ResponseErrorPrepareShutdown})
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	response(writer, http.StatusServiceUnavailable, Error{Error: constant.ResponseErrorUnhealthy})
}

func response(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		writer.WriteHeader(http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err = writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}
