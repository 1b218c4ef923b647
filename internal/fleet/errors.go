// File: internal/fleet/errors.go
// Brief: Typed configuration errors.

package fleet

// ConfigError reports an invalid or missing configuration artifact. All
// fields are informational; File may be empty for structural errors that
// have no single artifact.
type ConfigError struct {
	File   string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.File == "" {
		return e.Reason
	}
	return e.File + ": " + e.Reason
}
