package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	customError "github.com/segyhp/finance-tracker/pkg/errors"

	"github.com/rs/zerolog/log"
)

type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type ErrorResponse struct {
	Success   bool      `json:"success"`
	Error     string    `json:"error"`
	Code      string    `json:"code,omitempty"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// JSON sends a JSON response
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	response := Response{
		Success:   statusCode >= 200 && statusCode < 300,
		Data:      data,
		Timestamp: time.Now(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error().Err(err).Msg("Error encoding JSON response")
	}
}

// Success sends a successful JSON response
func Success(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, data)
}

// Created sends a created JSON response
func Created(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusCreated, data)
}

// NoContent sends an empty 204 response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error sends an error JSON response
func Error(w http.ResponseWriter, statusCode int, message string, err error) {
	response := ErrorResponse{
		Success:   false,
		Message:   message,
		Timestamp: time.Now(),
	}

	if err != nil {
		response.Error = err.Error()
	}

	var businessErr *customError.BusinessError
	if errors.As(err, &businessErr) {
		response.Code = businessErr.Code
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if encodeErr := json.NewEncoder(w).Encode(response); encodeErr != nil {
		log.Error().Err(encodeErr).Msg("Error encoding error response")
	}
}

// FromError answers with the status code and message carried by a business
// error. Internal failures are logged and reported without their cause.
func FromError(w http.ResponseWriter, err error) {
	status := customError.HTTPStatus(err)

	var businessErr *customError.BusinessError
	if !errors.As(err, &businessErr) {
		log.Error().Err(err).Msg("Unhandled error")
		InternalServerError(w, "internal server error", nil)
		return
	}

	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("code", businessErr.Code).Msg("Request failed")
		Error(w, status, businessErr.Message, customError.NewBusinessError(businessErr.Code, businessErr.Message, nil))
		return
	}

	Error(w, status, businessErr.Message, err)
}

// BadRequest sends a 400 bad request response
func BadRequest(w http.ResponseWriter, message string, err error) {
	Error(w, http.StatusBadRequest, message, err)
}

// NotFound sends a 404 not found response
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message, nil)
}

// InternalServerError sends a 500 internal server error response
func InternalServerError(w http.ResponseWriter, message string, err error) {
	Error(w, http.StatusInternalServerError, message, err)
}

// TooManyRequests sends a 429 response
func TooManyRequests(w http.ResponseWriter, message string) {
	Error(w, http.StatusTooManyRequests, message, nil)
}

// CORSMiddleware adds CORS headers
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// LoggingMiddleware logs HTTP requests
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Create a response recorder to capture the status code
		recorder := NewRecorder(w)

		next.ServeHTTP(recorder, r)

		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.StatusCode()).
			Dur("latency", time.Since(start)).
			Str("remote_ip", r.RemoteAddr).
			Msg("HTTP request")
	})
}

// Recorder captures the status code written by a handler
type Recorder struct {
	http.ResponseWriter
	statusCode int
}

// NewRecorder wraps a ResponseWriter; the status defaults to 200
func NewRecorder(w http.ResponseWriter) *Recorder {
	if rec, ok := w.(*Recorder); ok {
		return rec
	}
	return &Recorder{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rec *Recorder) WriteHeader(statusCode int) {
	rec.statusCode = statusCode
	rec.ResponseWriter.WriteHeader(statusCode)
}

func (rec *Recorder) StatusCode() int {
	return rec.statusCode
}
