package errors

import (
	"bytes"
	stdErrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestThreadTableError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ThreadTableError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(CategoryConfig, SeverityFatal, "configuration invalid"),
			expected: "config (fatal): configuration invalid",
		},
		{
			name:     "error with cause",
			err:      Wrap(fmt.Errorf("unexpected EOF"), CategoryDocument, SeverityFatal, "malformed thread document"),
			expected: "document (fatal): malformed thread document: unexpected EOF",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := test.err.Error()
			if result != test.expected {
				t.Errorf("Error() = %q, want %q", result, test.expected)
			}
		})
	}
}

func TestThreadTableError_WithContext(t *testing.T) {
	err := New(CategoryFileSystem, SeverityFatal, "read failed").
		WithContext("path", "ISO.xml").
		WithContext("attempt", 1)

	if err.Context == nil {
		t.Fatal("Context should not be nil")
	}
	if err.Context["path"] != "ISO.xml" {
		t.Errorf("Context[path] = %v, want ISO.xml", err.Context["path"])
	}
	if err.Context["attempt"] != 1 {
		t.Errorf("Context[attempt] = %v, want 1", err.Context["attempt"])
	}
}

func TestIsCategory(t *testing.T) {
	configErr := New(CategoryConfig, SeverityFatal, "config error")
	docErr := MalformedDocument("missing ThreadType root", nil)
	wrapped := fmt.Errorf("transform: %w", docErr)
	standardErr := fmt.Errorf("standard error")

	tests := []struct {
		name     string
		err      error
		category ErrorCategory
		expected bool
	}{
		{"config error matches config category", configErr, CategoryConfig, true},
		{"config error doesn't match document category", configErr, CategoryDocument, false},
		{"document error matches document category", docErr, CategoryDocument, true},
		{"wrapped document error still matches", wrapped, CategoryDocument, true},
		{"standard error doesn't match any category", standardErr, CategoryConfig, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := IsCategory(test.err, test.category)
			if result != test.expected {
				t.Errorf("IsCategory() = %v, want %v", result, test.expected)
			}
		})
	}
}

func TestGetCategory(t *testing.T) {
	if got := GetCategory(fmt.Errorf("plain")); got != CategoryInternal {
		t.Errorf("GetCategory(plain) = %v, want %v", got, CategoryInternal)
	}
	if got := GetCategory(InvalidConfig("name", "must not be empty")); got != CategoryConfig {
		t.Errorf("GetCategory(InvalidConfig) = %v, want %v", got, CategoryConfig)
	}
}

func TestConvenienceFunctions(t *testing.T) {
	t.Run("ConfigNotFound", func(t *testing.T) {
		err := ConfigNotFound("/path/to/threadtable.yaml")
		if err.Category != CategoryConfig {
			t.Errorf("Category = %v, want %v", err.Category, CategoryConfig)
		}
		if err.Severity != SeverityFatal {
			t.Errorf("Severity = %v, want %v", err.Severity, SeverityFatal)
		}
		if err.Context["path"] != "/path/to/threadtable.yaml" {
			t.Errorf("Context[path] = %v, want /path/to/threadtable.yaml", err.Context["path"])
		}
	})

	t.Run("MalformedDocument", func(t *testing.T) {
		cause := fmt.Errorf("XML syntax error")
		err := MalformedDocument("not well-formed", cause)
		if err.Category != CategoryDocument {
			t.Errorf("Category = %v, want %v", err.Category, CategoryDocument)
		}
		if !stdErrors.Is(err, cause) {
			t.Errorf("Cause should match wrapped cause: %v", cause)
		}
	})

	t.Run("ConfigRequired", func(t *testing.T) {
		err := ConfigRequired("name")
		if err.Category != CategoryConfig {
			t.Errorf("Category = %v, want %v", err.Category, CategoryConfig)
		}
		if err.Context["field"] != "name" {
			t.Errorf("Context[field] = %v, want name", err.Context["field"])
		}
	})

	t.Run("InvalidConfig", func(t *testing.T) {
		err := InvalidConfig("offsets", "non-finite value")
		if err.Context["field"] != "offsets" {
			t.Errorf("Context[field] = %v, want offsets", err.Context["field"])
		}
		if err.Context["reason"] != "non-finite value" {
			t.Errorf("Context[reason] = %v, want non-finite value", err.Context["reason"])
		}
	})
}

func TestCLIErrorAdapter_ExitCodes(t *testing.T) {
	a := NewCLIErrorAdapter(false, nil)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain", fmt.Errorf("boom"), 1},
		{"validation", ValidationFailed("offset", "bad"), 2},
		{"document", MalformedDocument("bad", nil), 3},
		{"config", InvalidConfig("name", "empty"), 7},
		{"internal", InternalError("oops", nil), 10},
		{"filesystem", ReadFailed("in.xml", fmt.Errorf("missing")), 11},
		{"wrapped", fmt.Errorf("run: %w", MalformedDocument("bad", nil)), 3},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := a.ExitCodeFor(test.err); got != test.want {
				t.Errorf("ExitCodeFor() = %d, want %d", got, test.want)
			}
		})
	}
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var out bytes.Buffer
	var code int
	a := NewCLIErrorAdapter(false, nil)
	a.out = &out
	a.exit = func(c int) { code = c }

	a.HandleError(InvalidConfig("name", "must not be empty"))

	if code != 7 {
		t.Errorf("exit code = %d, want 7", code)
	}
	if got := out.String(); !strings.Contains(got, "invalid configuration (field=name, reason=must not be empty)") {
		t.Errorf("unexpected output %q", got)
	}
}

func TestCLIErrorAdapter_FormatError_Verbose(t *testing.T) {
	a := NewCLIErrorAdapter(true, nil)
	err := MalformedDocument("missing ThreadType root", nil)
	if got := a.FormatError(err); got != err.Error() {
		t.Errorf("FormatError() = %q, want %q", got, err.Error())
	}
}
