package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	customError "github.com/segyhp/finance-tracker/pkg/errors"
	"github.com/segyhp/finance-tracker/pkg/response"
)

// decodeAndValidate reads a JSON body into dst and runs its validation tags.
// On failure the 400 answer is already written and false is returned.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *validator.Validate, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return false
	}

	if err := v.Struct(dst); err != nil {
		response.FromError(w, customError.WrapValidationError(err))
		return false
	}

	return true
}

// pathUUID parses a UUID route variable
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	raw := mux.Vars(r)[name]

	id, err := uuid.Parse(raw)
	if err != nil {
		response.BadRequest(w, fmt.Sprintf("Invalid %s", name), err)
		return uuid.Nil, false
	}

	return id, true
}
