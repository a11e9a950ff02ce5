package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/firflight/firflight/internal/api"
	"github.com/firflight/firflight/internal/common"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, api.Error{Message: msg})
}

// writeError maps service errors to statuses. Unexpected errors are logged
// by the caller and reported without detail.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrUnauthorized), errors.Is(err, common.ErrInvalidToken):
		writeMessage(w, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, common.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrAlreadyExists):
		writeMessage(w, http.StatusConflict, "account already exists")
	case errors.Is(err, common.ErrSoldOut):
		writeMessage(w, http.StatusConflict, err.Error())
	default:
		writeMessage(w, http.StatusInternalServerError, common.ErrInternal.Error())
	}
}

func isClientError(err error) bool {
	for _, target := range []error{common.ErrValidation, common.ErrUnauthorized, common.ErrInvalidToken,
		common.ErrNotFound, common.ErrAlreadyExists, common.ErrSoldOut} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// maxBodySize bounds request bodies.
const maxBodySize = 1 << 20

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(v); err != nil {
		return fmt.Errorf("%w: malformed request body", common.ErrValidation)
	}
	return nil
}
