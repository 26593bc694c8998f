package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/bmoutsourcing/payslip-api/internal/models"
)

const maxRequestBody = 1 << 20 // 1 MB

// WriteJSON writes data as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	out, err := json.Marshal(data)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	return err
}

// ReadJSON decodes a single JSON value from the request body into data.
func ReadJSON(w http.ResponseWriter, r *http.Request, data interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(data); err != nil {
		return err
	}

	// body must contain a single JSON value
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("body must have only a single JSON value")
	}
	return nil
}

// BadRequest sends a 400 response with the error message.
func BadRequest(w http.ResponseWriter, err error) {
	payload := models.Response{
		Error:   true,
		Status:  "fail",
		Message: err.Error(),
	}
	_ = WriteJSON(w, http.StatusBadRequest, payload)
}

// NotFound sends a 404 response with the error message.
func NotFound(w http.ResponseWriter, err error) {
	payload := models.Response{
		Error:   true,
		Status:  "fail",
		Message: err.Error(),
	}
	_ = WriteJSON(w, http.StatusNotFound, payload)
}

// ServerError sends a sanitized 500 response. The underlying error is for
// the caller to log; it never reaches the client.
func ServerError(w http.ResponseWriter, _ error) {
	payload := models.Response{
		Error:   true,
		Status:  "error",
		Message: "An unexpected error occurred. Please try again later.",
	}
	_ = WriteJSON(w, http.StatusInternalServerError, payload)
}

// FieldErrors sends a 400 response carrying a field level error map.
func FieldErrors(w http.ResponseWriter, fields map[string]string) {
	payload := struct {
		models.Response
		Errors map[string]string `json:"errors"`
	}{
		Response: models.Response{
			Error:   true,
			Status:  "fail",
			Message: "Invalid input data",
		},
		Errors: fields,
	}
	_ = WriteJSON(w, http.StatusBadRequest, payload)
}
