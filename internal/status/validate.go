package status

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
)

// Issue codes. The set is closed; clients may switch on it.
const (
	CodeInvalidJSON      = "invalid_json"
	CodeInvalidType      = "invalid_type"
	CodeRequired         = "required"
	CodeInvalidEnumValue = "invalid_enum_value"
)

// Issue describes one validation failure.
type Issue struct {
	Code    string   `json:"code"`
	Path    []string `json:"path"`
	Message string   `json:"message"`
}

// Issues is a list of validation failures. It implements error.
type Issues []Issue

func (is Issues) Error() string {
	parts := make([]string, len(is))
	for i, issue := range is {
		path := strings.Join(issue.Path, ".")
		if path == "" {
			path = "(root)"
		}
		parts[i] = fmt.Sprintf("%s: %s", path, issue.Message)
	}
	return strings.Join(parts, "; ")
}

// AsIssues extracts the issue list from err, if it carries one.
func AsIssues(err error) (Issues, bool) {
	var is Issues
	if errors.As(err, &is) {
		return is, true
	}
	return nil, false
}

// ParseUpdate decodes a publish request body of the form {"status": "..."}.
//
// Unknown fields are ignored. On failure the returned error is [Issues].
func ParseUpdate(data []byte) (Status, error) {
	obj, issues := decodeObject(data)
	if issues != nil {
		return "", issues
	}

	s, issues := statusField(obj, issues)
	if issues != nil {
		return "", issues
	}
	return s, nil
}

// ParseRecord decodes a stored record.
//
// A failure here means the stored value does not match its own schema, which
// callers treat as an internal error rather than a client error.
func ParseRecord(data []byte) (Record, error) {
	obj, issues := decodeObject(data)
	if issues != nil {
		return Record{}, issues
	}

	s, issues := statusField(obj, issues)
	ts, issues := timestampField(obj, issues)
	if issues != nil {
		return Record{}, issues
	}
	return Record{Status: s, Timestamp: ts}, nil
}

// decodeObject parses data as a single JSON object, keeping numbers exact.
func decodeObject(data []byte) (map[string]any, Issues) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, Issues{{Code: CodeInvalidJSON, Path: []string{}, Message: "Invalid JSON: " + err.Error()}}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, Issues{{Code: CodeInvalidJSON, Path: []string{}, Message: "Invalid JSON: unexpected data after top-level value"}}
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, Issues{{
			Code:    CodeInvalidType,
			Path:    []string{},
			Message: fmt.Sprintf("Expected object, received %s", typeName(v)),
		}}
	}
	return obj, nil
}

func statusField(obj map[string]any, issues Issues) (Status, Issues) {
	const field = "status"

	raw, ok := obj[field]
	if !ok {
		return "", append(issues, required(field))
	}

	str, ok := raw.(string)
	if !ok {
		return "", append(issues, wrongType(field, "string", raw))
	}

	s := Status(str)
	if !s.Publishable() {
		quoted := make([]string, len(publishable))
		for i, p := range publishable {
			quoted[i] = "'" + string(p) + "'"
		}
		return "", append(issues, Issue{
			Code:    CodeInvalidEnumValue,
			Path:    []string{field},
			Message: fmt.Sprintf("Invalid enum value. Expected %s, received '%s'", strings.Join(quoted, " | "), str),
		})
	}
	return s, issues
}

func timestampField(obj map[string]any, issues Issues) (int64, Issues) {
	const field = "timestamp"

	raw, ok := obj[field]
	if !ok {
		return 0, append(issues, required(field))
	}

	num, ok := raw.(json.Number)
	if !ok {
		return 0, append(issues, wrongType(field, "number", raw))
	}

	if n, err := num.Int64(); err == nil {
		return n, issues
	}
	f, err := num.Float64()
	if err != nil || math.IsInf(f, 0) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, append(issues, Issue{
			Code:    CodeInvalidType,
			Path:    []string{field},
			Message: fmt.Sprintf("Expected number, received out of range value %s", num),
		})
	}
	return int64(f), issues
}

func required(field string) Issue {
	return Issue{Code: CodeRequired, Path: []string{field}, Message: "Required"}
}

func wrongType(field, want string, got any) Issue {
	return Issue{
		Code:    CodeInvalidType,
		Path:    []string{field},
		Message: fmt.Sprintf("Expected %s, received %s", want, typeName(got)),
	}
}

// typeName names the JSON type of a decoded value.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number, float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
