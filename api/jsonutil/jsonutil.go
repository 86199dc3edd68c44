package jsonutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func WriteJSONResponse(responseWriter http.ResponseWriter, data interface{}, statusCode int) {
	responseWriter.Header().Set("Content-Type", "application/json")
	responseWriter.WriteHeader(statusCode)

	if err := json.NewEncoder(responseWriter).Encode(data); err != nil {
		http.Error(responseWriter, err.Error(), http.StatusInternalServerError)
	}
}

// UnmarshalJsonResponse decodes the request body into T and runs struct
// validation on the result.
func UnmarshalJsonResponse[T any](request *http.Request) (T, error) {
	var data T

	if request.Body == nil {
		return data, errors.New("request body is empty")
	}

	decoder := json.NewDecoder(io.LimitReader(request.Body, maxBodyBytes))
	if err := decoder.Decode(&data); err != nil {
		if errors.Is(err, io.EOF) {
			return data, errors.New("request body is empty")
		}
		return data, fmt.Errorf("invalid request body: %w", err)
	}

	if err := Validate(data); err != nil {
		return data, err
	}

	return data, nil
}

// Validate runs the validator over structs and is a no-op for other kinds.
func Validate(data interface{}) error {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		messages := make([]string, 0, len(validationErrors))
		for _, fieldErr := range validationErrors {
			messages = append(messages, fmt.Sprintf("%s failed on the '%s' rule", strings.ToLower(fieldErr.Field()), fieldErr.Tag()))
		}
		return errors.New(strings.Join(messages, "; "))
	}

	return err
}
