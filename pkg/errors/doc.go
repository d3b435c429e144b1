// Package errors provides structured error types for better observability
// and programmatic error handling across the logging packages.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeUpstreamHTTP,
//	    "splunk search failed",
//	    cause,
//	    map[string]any{
//	        "status": resp.StatusCode,
//	        "host":   cfg.Host,
//	    },
//	)
//
// Callers branch on the code rather than the message:
//
//	if errors.IsCode(err, errors.ErrCodeInvalidConfig) {
//	    // fix configuration and retry construction
//	}
package errors
