package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/gameden/gameden-backend/pkg/errors"
)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// ParseSelection flattens repeated sel[<option_id>]=<value> query parameters
// into the selection map the resolver consumes.
func ParseSelection(r *http.Request) map[string]string {
	selection := map[string]string{}
	for key, values := range r.URL.Query() {
		if !strings.HasPrefix(key, "sel[") || !strings.HasSuffix(key, "]") {
			continue
		}
		optionID := key[len("sel[") : len(key)-1]
		if optionID == "" || len(values) == 0 {
			continue
		}
		selection[optionID] = values[len(values)-1]
	}
	return selection
}
