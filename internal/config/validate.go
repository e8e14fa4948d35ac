package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// ValidationError represents a configuration validation error with context.
type ValidationError struct {
	Field   string
	Message string
	Hint    string
}

func (e ValidationError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s (hint: %s)", e.Field, e.Message, e.Hint)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Field   string
	Message string
	Hint    string
}

// ValidationResult contains the results of configuration validation.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// HasErrors returns true if there are any validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// Error returns a combined error message if there are validation errors.
func (r *ValidationResult) Error() string {
	if !r.HasErrors() {
		return ""
	}
	var msgs []string
	for _, e := range r.Errors {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration for errors and returns validation results.
// It returns both errors (fatal) and warnings (non-fatal issues).
func (c *Config) Validate() *ValidationResult {
	result := &ValidationResult{}

	c.Engine.validate(result)
	c.Observability.validate(result)

	return result
}

func (e *EngineConfig) validate(result *ValidationResult) {
	if strings.TrimSpace(e.URL) == "" {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "engine.url",
			Message: "engine URL is required",
			Hint:    "set engine.url or ENGINEQL_ENGINE_URL",
		})
	} else {
		parsed, err := url.Parse(e.URL)
		if err != nil || parsed.Host == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "engine.url",
				Message: fmt.Sprintf("invalid engine URL %q", e.URL),
				Hint:    "expected a full URL like http://localhost:4466",
			})
		} else {
			switch parsed.Scheme {
			case "http":
				if e.APIKey != "" || e.APIKeyFile != "" || e.APIKeyPrompt {
					result.Warnings = append(result.Warnings, ValidationWarning{
						Field:   "engine.url",
						Message: "API key configured over plaintext http",
						Hint:    "use https for any engine outside localhost",
					})
				}
			case "https":
			default:
				result.Errors = append(result.Errors, ValidationError{
					Field:   "engine.url",
					Message: fmt.Sprintf("unsupported scheme %q", parsed.Scheme),
					Hint:    "only http and https are supported",
				})
			}
		}
	}

	if e.Timeout < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "engine.timeout",
			Message: "timeout cannot be negative",
		})
	}
}

func (o *ObservabilityConfig) validate(result *ValidationResult) {
	if o.TraceSampleRatio < 0 || o.TraceSampleRatio > 1 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "observability.trace_sample_ratio",
			Message: fmt.Sprintf("ratio %g is out of range", o.TraceSampleRatio),
			Hint:    "use a value between 0.0 and 1.0",
		})
	}

	switch o.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		result.Errors = append(result.Errors, ValidationError{
			Field:   "observability.logging.level",
			Message: fmt.Sprintf("unknown log level %q", o.Logging.Level),
			Hint:    "use debug, info, warn, or error",
		})
	}

	switch o.Logging.Format {
	case "", "json", "text":
	default:
		result.Errors = append(result.Errors, ValidationError{
			Field:   "observability.logging.format",
			Message: fmt.Sprintf("unknown log format %q", o.Logging.Format),
			Hint:    "use json or text",
		})
	}

	exportsActive := o.TracingEnabled || o.Logging.ExportsEnabled
	if exportsActive {
		validateOTLP(result, "observability.otlp", o.OTLP)
		if o.Traces != nil {
			validateOTLP(result, "observability.traces", o.GetTracesConfig())
		}
		if o.Logs != nil {
			validateOTLP(result, "observability.logs", o.GetLogsConfig())
		}
	}
}

func validateOTLP(result *ValidationResult, field string, cfg OTLPConfig) {
	switch cfg.Protocol {
	case "", "grpc", "http/protobuf":
	default:
		result.Errors = append(result.Errors, ValidationError{
			Field:   field + ".protocol",
			Message: fmt.Sprintf("unknown protocol %q", cfg.Protocol),
			Hint:    "use grpc or http/protobuf",
		})
	}

	switch cfg.Compression {
	case "", "none", "gzip":
	default:
		result.Errors = append(result.Errors, ValidationError{
			Field:   field + ".compression",
			Message: fmt.Sprintf("unknown compression %q", cfg.Compression),
			Hint:    "use none or gzip",
		})
	}

	if cfg.Endpoint != "" && cfg.Protocol != "http/protobuf" {
		if _, _, err := net.SplitHostPort(cfg.Endpoint); err != nil {
			result.Warnings = append(result.Warnings, ValidationWarning{
				Field:   field + ".endpoint",
				Message: fmt.Sprintf("endpoint %q is not host:port", cfg.Endpoint),
				Hint:    "gRPC endpoints are plain host:port, e.g. localhost:4317",
			})
		}
	}

	if (cfg.TLSClientCertFile == "") != (cfg.TLSClientKeyFile == "") {
		result.Errors = append(result.Errors, ValidationError{
			Field:   field,
			Message: "client certificate and key must be configured together",
		})
	}
}
