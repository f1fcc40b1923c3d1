package tagdiff

import "fmt"

// ConfigurationError reports an unrecognized or conflicting configuration
// option. It is surfaced at call time, before any atomization work begins.
type ConfigurationError struct {
	Option string
	Reason string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("tagdiff: configuration: %s: %s", e.Option, e.Reason)
}
