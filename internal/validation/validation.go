// Package validation filters submitted form payloads against a collector's
// declared field schema.
package validation

import "github.com/satari/satari-api/internal/models"

// ValidateFormData checks a submitted payload against the declared fields and
// returns the filtered copy, or false if the payload is rejected.
//
// Every required field must be present. Every declared field that is present
// must be a string, a number, or an array; the declared type is not compared
// against the actual one beyond that shape check. Fields the schema does not
// declare are dropped, not rejected.
func ValidateFormData(formData map[string]any, fields map[string]models.FormField) (map[string]any, bool) {
	for _, field := range fields {
		if field.Required {
			if _, ok := formData[field.Name]; !ok {
				return nil, false
			}
		}
	}

	filtered := map[string]any{}
	for _, field := range fields {
		value, ok := formData[field.Name]
		if !ok {
			continue
		}
		if !isAllowedShape(value) {
			return nil, false
		}
		filtered[field.Name] = value
	}
	return filtered, true
}

// isAllowedShape reports whether a decoded JSON value is a string, a number
// or an array. Booleans, objects and null are rejected.
func isAllowedShape(value any) bool {
	switch value.(type) {
	case string:
		return true
	case float64, int, int64:
		return true
	case []any:
		return true
	default:
		return false
	}
}
