package errors

// ErrorBuilder assembles a ClassifiedError.
type ErrorBuilder struct {
	err ClassifiedError
}

// NewError starts an error of category with the category's default severity
// and retry strategy.
func NewError(category ErrorCategory, message string) *ErrorBuilder {
	p := policyFor(category)
	return &ErrorBuilder{err: ClassifiedError{
		category: category,
		severity: p.severity,
		retry:    p.retry,
		message:  message,
	}}
}

// WrapError starts an error that wraps cause.
func WrapError(cause error, category ErrorCategory, message string) *ErrorBuilder {
	b := NewError(category, message)
	b.err.cause = cause
	return b
}

func (b *ErrorBuilder) WithSeverity(severity ErrorSeverity) *ErrorBuilder {
	b.err.severity = severity
	return b
}

// WithContext adds a context key-value pair.
func (b *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	b.err.context = b.err.context.with(key, value)
	return b
}

func (b *ErrorBuilder) Fatal() *ErrorBuilder      { return b.WithSeverity(SeverityFatal) }
func (b *ErrorBuilder) Retryable() *ErrorBuilder  { b.err.retry = RetryBackoff; return b }
func (b *ErrorBuilder) UserAction() *ErrorBuilder { b.err.retry = RetryUserAction; return b }

// Build returns the error. The builder may be reused; each call returns a
// fresh value.
func (b *ErrorBuilder) Build() *ClassifiedError {
	out := b.err
	return &out
}

// ConfigError reports an invalid or missing configuration.
func ConfigError(message string) *ErrorBuilder { return NewError(CategoryConfig, message) }

func ValidationError(message string) *ErrorBuilder { return NewError(CategoryValidation, message) }

func NotFoundError(message string) *ErrorBuilder { return NewError(CategoryNotFound, message) }

// SourceError reports a failed fetch of package documents.
func SourceError(message string) *ErrorBuilder { return NewError(CategorySource, message) }

func RenderError(message string) *ErrorBuilder { return NewError(CategoryRender, message) }

func FileSystemError(message string) *ErrorBuilder { return NewError(CategoryFileSystem, message) }

func InternalError(message string) *ErrorBuilder { return NewError(CategoryInternal, message) }
