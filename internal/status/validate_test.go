package status

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseUpdate_Valid(t *testing.T) {
	tests := []struct {
		body string
		want Status
	}{
		{`{"status":"online"}`, Online},
		{`{"status":"busy"}`, Busy},
		{` {"status":"busy", "extra": 1} `, Busy},
	}

	for _, tt := range tests {
		got, err := ParseUpdate([]byte(tt.body))
		if err != nil {
			t.Errorf("ParseUpdate(%s) error = %v", tt.body, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseUpdate(%s) = %v, want %v", tt.body, got, tt.want)
		}
	}
}

func TestParseUpdate_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode string
		wantPath string
		wantMsg  string
	}{
		{"not in enum", `{"status":"idle"}`, CodeInvalidEnumValue, "status", "received 'idle'"},
		{"offline is not publishable", `{"status":"offline"}`, CodeInvalidEnumValue, "status", "'online' | 'busy'"},
		{"missing field", `{}`, CodeRequired, "status", "Required"},
		{"wrong type", `{"status":1}`, CodeInvalidType, "status", "Expected string, received number"},
		{"null field", `{"status":null}`, CodeInvalidType, "status", "received null"},
		{"array body", `["online"]`, CodeInvalidType, "", "Expected object, received array"},
		{"string body", `"online"`, CodeInvalidType, "", "received string"},
		{"syntax error", `{"status":`, CodeInvalidJSON, "", "Invalid JSON"},
		{"empty body", ``, CodeInvalidJSON, "", "Invalid JSON"},
		{"trailing data", `{"status":"online"} {}`, CodeInvalidJSON, "", "unexpected data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseUpdate([]byte(tt.body))
			if err == nil {
				t.Fatal("ParseUpdate() error = nil, want issues")
			}

			issues, ok := AsIssues(err)
			if !ok {
				t.Fatalf("ParseUpdate() error type = %T, want Issues", err)
			}
			if len(issues) != 1 {
				t.Fatalf("len(issues) = %d, want 1: %v", len(issues), issues)
			}

			issue := issues[0]
			if issue.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", issue.Code, tt.wantCode)
			}
			if got := strings.Join(issue.Path, "."); got != tt.wantPath {
				t.Errorf("Path = %q, want %q", got, tt.wantPath)
			}
			if !strings.Contains(issue.Message, tt.wantMsg) {
				t.Errorf("Message = %q, want substring %q", issue.Message, tt.wantMsg)
			}
		})
	}
}

func TestIssues_JSONShape(t *testing.T) {
	_, err := ParseUpdate([]byte(`[]`))
	issues, _ := AsIssues(err)

	data, err := json.Marshal(issues)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	// root-level issues carry an empty path, never null
	if !strings.Contains(string(data), `"path":[]`) {
		t.Errorf("Marshal() = %s, want empty path array", data)
	}
}

func TestParseRecord_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		wantPaths []string
	}{
		{"offline stored", `{"status":"offline","timestamp":1}`, []string{"status"}},
		{"timestamp string", `{"status":"online","timestamp":"yesterday"}`, []string{"timestamp"}},
		{"both broken", `{"status":5}`, []string{"status", "timestamp"}},
		{"not json", `online`, []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRecord([]byte(tt.data))
			issues, ok := AsIssues(err)
			if !ok {
				t.Fatalf("ParseRecord() error = %v, want Issues", err)
			}
			if len(issues) != len(tt.wantPaths) {
				t.Fatalf("len(issues) = %d, want %d: %v", len(issues), len(tt.wantPaths), issues)
			}
			for i, want := range tt.wantPaths {
				if got := strings.Join(issues[i].Path, "."); got != want {
					t.Errorf("issues[%d].Path = %q, want %q", i, got, want)
				}
			}
		})
	}
}

func TestParseRecord_FractionalTimestamp(t *testing.T) {
	rec, err := ParseRecord([]byte(`{"status":"busy","timestamp":1735830000123.7}`))
	if err != nil {
		t.Fatalf("ParseRecord() error = %v", err)
	}
	if rec.Timestamp != 1735830000123 {
		t.Errorf("Timestamp = %d, want 1735830000123", rec.Timestamp)
	}
}

func TestIssues_Error(t *testing.T) {
	err := error(Issues{
		{Code: CodeRequired, Path: []string{"status"}, Message: "Required"},
		{Code: CodeInvalidJSON, Path: []string{}, Message: "Invalid JSON"},
	})

	if got, want := err.Error(), "status: Required; (root): Invalid JSON"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	wrapped := errors.Join(errors.New("decode"), err)
	if _, ok := AsIssues(wrapped); !ok {
		t.Error("AsIssues() did not find Issues in wrapped error")
	}
}
