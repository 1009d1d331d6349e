package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/josecleyvison-eng/jau-emprega/internal/common"
)

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return common.NewError(common.CodeValidation, "invalid JSON body", err)
	}
	return nil
}

// pathSegment returns the index-th segment of the request path, counting from
// zero after the leading slash.
func pathSegment(r *http.Request, index int) string {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if index < 0 || index >= len(parts) {
		return ""
	}
	return parts[index]
}

func idFromPath(r *http.Request, index int) (common.UUID, error) {
	raw := pathSegment(r, index)
	id, err := common.ParseUUID(raw)
	if err != nil {
		return "", common.NewValidationError("invalid id", map[string]string{"id": "id must be a UUID"})
	}
	return id, nil
}
