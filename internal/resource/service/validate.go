package service

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/smallbiznis/backoffice/internal/resource/domain"
)

type payloadMode int

const (
	modeCreate payloadMode = iota
	modeUpdate
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var payloadDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// validatePayload checks a JSON payload against the resource schema and
// returns the normalized column values, or the list of problems found.
func validatePayload(res domain.Resource, payload map[string]any, mode payloadMode) (map[string]any, []string) {
	var problems []string
	values := make(map[string]any, len(payload))

	for key, raw := range payload {
		field, ok := res.Field(key)
		if !ok || (mode == modeCreate && !field.Create) || (mode == modeUpdate && !field.Update) {
			problems = append(problems, fmt.Sprintf("field %q is not allowed", key))
			continue
		}

		value, problem := normalizeValue(field, raw)
		if problem != "" {
			problems = append(problems, problem)
			continue
		}
		values[key] = value
	}

	if mode == modeCreate {
		for _, field := range res.Fields {
			if !field.Required || !field.Create {
				continue
			}
			value, ok := values[field.Name]
			if !ok || value == nil || value == "" {
				problems = append(problems, field.Name+" is required")
			}
		}
	}

	if len(values) == 0 && len(problems) == 0 {
		problems = append(problems, "at least one field is required")
	}

	return values, problems
}

func normalizeValue(field domain.Field, raw any) (any, string) {
	if raw == nil {
		if field.Nullable {
			return nil, ""
		}
		if field.Required {
			return nil, field.Name + " is required"
		}
		return nil, ""
	}

	switch field.Type {
	case domain.FieldString:
		value, ok := asString(raw)
		if !ok {
			return nil, field.Name + " must be a string"
		}
		value = strings.TrimSpace(value)
		if value == "" && field.Nullable {
			return nil, ""
		}
		if field.MaxLength > 0 && len(value) > field.MaxLength {
			return nil, fmt.Sprintf("%s max length is %d", field.Name, field.MaxLength)
		}
		return value, ""

	case domain.FieldEmail:
		value, ok := asString(raw)
		if !ok {
			return nil, field.Name + " must be a string"
		}
		value = strings.ToLower(strings.TrimSpace(value))
		if field.MaxLength > 0 && len(value) > field.MaxLength {
			return nil, fmt.Sprintf("%s max length is %d", field.Name, field.MaxLength)
		}
		if !emailPattern.MatchString(value) {
			return nil, field.Name + " is invalid"
		}
		return value, ""

	case domain.FieldNumber:
		value, ok := asFloat(raw)
		if !ok || math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, field.Name + " must be a number"
		}
		return value, ""

	case domain.FieldInteger:
		value, ok := asFloat(raw)
		if !ok || value != math.Trunc(value) {
			return nil, field.Name + " must be an integer"
		}
		return int64(value), ""

	case domain.FieldDate:
		value, ok := asString(raw)
		if !ok {
			return nil, field.Name + " must be a valid date"
		}
		for _, layout := range payloadDateLayouts {
			if parsed, err := time.Parse(layout, strings.TrimSpace(value)); err == nil {
				return parsed.UTC(), ""
			}
		}
		return nil, field.Name + " must be a valid date"

	case domain.FieldEnum:
		value, ok := asString(raw)
		if !ok {
			return nil, enumProblem(field)
		}
		value = strings.TrimSpace(value)
		for _, allowed := range field.Enum {
			if value == allowed {
				return value, ""
			}
		}
		return nil, enumProblem(field)
	}

	return raw, ""
}

func enumProblem(field domain.Field) string {
	return fmt.Sprintf("%s must be one of: %s", field.Name, strings.Join(field.Enum, ", "))
}

func asString(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return "", false
	}
}

func asFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
