package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *ThreadTableError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigRequired(field string) *ThreadTableError {
	return New(CategoryConfig, SeverityFatal, "required configuration missing").
		WithContext("field", field)
}

// InvalidConfig reports a configuration value the transformation cannot run with.
func InvalidConfig(field, reason string) *ThreadTableError {
	return New(CategoryConfig, SeverityFatal, "invalid configuration").
		WithContext("field", field).
		WithContext("reason", reason)
}

func ValidationFailed(field, reason string) *ThreadTableError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Document errors

// MalformedDocument reports input that is not well-formed markup or lacks the
// ThreadType root.
func MalformedDocument(reason string, cause error) *ThreadTableError {
	if cause == nil {
		return New(CategoryDocument, SeverityFatal, "malformed thread document").
			WithContext("reason", reason)
	}
	return Wrap(cause, CategoryDocument, SeverityFatal, "malformed thread document").
		WithContext("reason", reason)
}

func SerializeFailed(cause error) *ThreadTableError {
	return Wrap(cause, CategoryInternal, SeverityFatal, "thread document serialization failed")
}

// File system errors

func ReadFailed(path string, cause error) *ThreadTableError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "read failed").
		WithContext("path", path)
}

func WriteFailed(path string, cause error) *ThreadTableError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "write failed").
		WithContext("path", path)
}

// Internal errors

func InternalError(message string, cause error) *ThreadTableError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
