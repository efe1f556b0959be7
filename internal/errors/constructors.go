package errors

// Convenience functions for common error patterns

// Request errors

// InvalidRequest reports a malformed segment set, e.g. a path key without a value.
func InvalidRequest(key, reason string) *ResolveError {
	return New(CategoryValidation, SeverityError, "invalid request").
		WithContext("key", key).
		WithContext("reason", reason)
}

// Content errors

func NotFound(root, lang, filename string) *ResolveError {
	return New(CategoryNotFound, SeverityWarning, "document not found").
		WithContext("root", root).
		WithContext("lang", lang).
		WithContext("filename", filename)
}

func Transport(root, lang, filename string, cause error) *ResolveError {
	return WrapRetryable(cause, CategoryTransport, SeverityWarning, "document fetch failed").
		WithContext("root", root).
		WithContext("lang", lang).
		WithContext("filename", filename)
}

// Config errors

func ConfigNotFound(path string) *ResolveError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(field, reason string) *ResolveError {
	return New(CategoryConfig, SeverityFatal, "invalid configuration").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Infrastructure errors

func StorageError(operation string, cause error) *ResolveError {
	return Wrap(cause, CategoryStorage, SeverityError, "storage operation failed").
		WithContext("operation", operation)
}

func InternalError(message string, cause error) *ResolveError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
