// internal/domain/homework/homework.go
package homework

import (
	"context"
	"fmt"
)

const (
	fieldHomeworks   = "homeworks"
	fieldCurrentDate = "current_date"
	fieldStatus      = "status"
	fieldName        = "homework_name"
)

//go:generate mockgen -source=homework.go -destination=../../mocks/homework/fetcher_mock.go -package=homework_mock

// Fetcher retrieves the raw decoded status payload for submissions changed since cursor.
type Fetcher interface {
	Fetch(ctx context.Context, cursor int64) (any, error)
}

// Record is a single homework entry of the upstream response.
type Record struct {
	Name   string
	Status Status
}

// ValidateResponse checks that raw is a JSON object carrying a "homeworks" array
// and returns that array untouched. Entries are not inspected.
func ValidateResponse(raw any) ([]any, error) {
	response, ok := raw.(map[string]any)
	if !ok {
		return nil, &SchemaError{Want: "object", Got: jsonType(raw)}
	}
	value, ok := response[fieldHomeworks]
	if !ok {
		return nil, &SchemaError{Field: fieldHomeworks, Want: "array", Got: "missing key"}
	}
	homeworks, ok := value.([]any)
	if !ok {
		return nil, &SchemaError{Field: fieldHomeworks, Want: "array", Got: jsonType(value)}
	}
	return homeworks, nil
}

// CurrentDate extracts the server timestamp echoed in the response, if any.
func CurrentDate(raw any) (int64, bool) {
	response, ok := raw.(map[string]any)
	if !ok {
		return 0, false
	}
	date, ok := response[fieldCurrentDate].(float64)
	if !ok {
		return 0, false
	}
	return int64(date), true
}

// ParseRecord reads the fields used for notifications from one homework entry.
// Missing string fields are left empty.
func ParseRecord(entry any) (Record, error) {
	fields, ok := entry.(map[string]any)
	if !ok {
		return Record{}, &SchemaError{Field: fieldHomeworks + "[0]", Want: "object", Got: jsonType(entry)}
	}
	status, _ := fields[fieldStatus].(string)
	name, _ := fields[fieldName].(string)
	return Record{Name: name, Status: Status(status)}, nil
}

// Describe builds the notification text for the most recent homework (the first entry).
// It reports ok=false without an error when the homework has no name.
func Describe(records []any) (message string, ok bool, err error) {
	if len(records) == 0 {
		return "", false, ErrNoUpdate
	}

	record, err := ParseRecord(records[0])
	if err != nil {
		return "", false, err
	}
	if record.Status == "" {
		return "", false, fmt.Errorf("homework status is empty: %w", ErrNoUpdate)
	}
	if record.Name == "" {
		return "", false, nil
	}

	verdict, err := record.Status.Verdict()
	if err != nil {
		return "", false, err
	}
	return fmt.Sprintf(`Changed review status for "%s". %s`, record.Name, verdict), true, nil
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
