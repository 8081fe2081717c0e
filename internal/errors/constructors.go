package errors

import "fmt"

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *SiteError {
	return New(CategoryConfig, SeverityFatal, "site configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(err error, path string) *SiteError {
	return Wrap(err, CategoryConfig, SeverityFatal, "failed to parse site configuration").
		WithContext("path", path)
}

func ConfigRequired(field string) *SiteError {
	return New(CategoryValidation, SeverityFatal, "required configuration missing").
		WithContext("field", field)
}

// Scan and registration errors

func ScanFailed(err error, path string) *SiteError {
	return Wrap(err, CategoryScan, SeverityFatal, "failed to scan template tree").
		WithContext("path", path)
}

func InvalidPath(path string) *SiteError {
	return New(CategoryPath, SeverityFatal, "template path is not representable as an identifier").
		WithContext("path", path)
}

func CompileFailed(err error, id string) *SiteError {
	return Wrap(err, CategoryTemplate, SeverityFatal, "failed to compile template").
		WithContext("template", id)
}

// Render errors. Each carries its sentinel in the cause chain so callers can
// classify with errors.Is while the SiteError keeps the offending identifier.

func TemplateNotFound(id string) *SiteError {
	return Wrap(ErrTemplateNotFound, CategoryRender, SeverityFatal,
		fmt.Sprintf("no template registered under identifier %q", id)).
		WithContext("template", id)
}

func UnknownField(err error, id string) *SiteError {
	return Wrap(joinCause(ErrUnknownField, err), CategoryRender, SeverityFatal, "template references a field missing from the context").
		WithContext("template", id)
}

func InvalidArgumentType(got any) *SiteError {
	return Wrap(ErrInvalidArgumentType, CategoryRender, SeverityFatal, "layout identifier argument must be a string").
		WithContext("got", got)
}

func BlockContentRequired(id string) *SiteError {
	return Wrap(ErrBlockContentRequired, CategoryRender, SeverityFatal, "layout helper requires enclosed block content").
		WithContext("template", id)
}

func RenderFailed(err error, id string) *SiteError {
	return Wrap(err, CategoryRender, SeverityFatal, "failed to render template").
		WithContext("template", id)
}

// Output and sync errors

func WriteFailed(err error, path string) *SiteError {
	return Wrap(err, CategoryFileSystem, SeverityFatal, "failed to write output file").
		WithContext("path", path)
}

func CopyFailed(err error, src, dst string) *SiteError {
	return Wrap(err, CategoryFileSystem, SeverityFatal, "failed to copy asset").
		WithContext("source", src).
		WithContext("destination", dst)
}

func MkdirFailed(err error, path string) *SiteError {
	return Wrap(err, CategoryFileSystem, SeverityFatal, "failed to create directory").
		WithContext("path", path)
}

func MetadataFailed(err error, path string) *SiteError {
	return Wrap(err, CategoryMetadata, SeverityFatal, "failed to read file metadata").
		WithContext("path", path)
}

// joinCause keeps both the sentinel and the underlying error in the chain.
func joinCause(sentinel, err error) error {
	if err == nil {
		return sentinel
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
