// Command engineql builds query operations from flags, prints the canonical
// document and its fingerprint, and optionally dispatches the operation to a
// configured engine. It is the inspection surface for the query builders:
// what the engine would receive, without needing a generated model layer.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"engineql/engine"
	"engineql/internal/config"
	"engineql/internal/logging"
	"engineql/internal/observability"
	"engineql/query"
	"engineql/wire"
)

var (
	// Version is set at build time via -ldflags "-X main.Version=...".
	Version = "dev"
	Commit  = "none"
)

func main() {
	if err := run(); err != nil {
		slog.Error("engineql error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	pflag.Bool("version", false, "Print version and exit")
	pflag.String("model", "", "Model name, e.g. User")
	pflag.String("op", "find-many", "Operation kind: find-many, find-first, count, delete-many")
	pflag.StringArray("where", nil, "Filter as field=value (repeatable)")
	pflag.StringArray("order-by", nil, "Ordering as field=asc|desc (repeatable)")
	pflag.StringArray("cursor", nil, "Cursor position as field=value (repeatable)")
	pflag.Int64("skip", 0, "Number of records to skip")
	pflag.Int64("take", 0, "Maximum number of records to return")
	pflag.StringArray("field", nil, "Scalar field to select (repeatable, default: id)")
	pflag.Bool("execute", false, "Dispatch the operation to the configured engine")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if showVersion, _ := pflag.CommandLine.GetBool("version"); showVersion {
		fmt.Printf("engineql %s (%s)\n", Version, Commit)
		return nil
	}

	if cfg.Observability.ServiceVersion == "" {
		cfg.Observability.ServiceVersion = Version
	}

	validationResult := cfg.Validate()
	for _, warn := range validationResult.Warnings {
		slog.Warn("configuration warning",
			slog.String("field", warn.Field),
			slog.String("message", warn.Message),
			slog.String("hint", warn.Hint),
		)
	}
	if validationResult.HasErrors() {
		for _, err := range validationResult.Errors {
			slog.Error("configuration error",
				slog.String("field", err.Field),
				slog.String("message", err.Message),
				slog.String("hint", err.Hint),
			)
		}
		return fmt.Errorf("configuration validation failed")
	}

	logger, shutdown, err := initTelemetry(cfg)
	if err != nil {
		return err
	}
	defer shutdown()

	model, _ := pflag.CommandLine.GetString("model")
	if model == "" {
		return fmt.Errorf("--model is required")
	}

	op, err := buildOperation(logger, model)
	if err != nil {
		return err
	}

	document, err := op.Render()
	if err != nil {
		return fmt.Errorf("failed to render operation: %w", err)
	}
	fmt.Println(document)
	logger.Info("operation built",
		"operation_type", string(op.Type()),
		"fingerprint", op.Fingerprint(),
	)

	if execute, _ := pflag.CommandLine.GetBool("execute"); execute {
		return dispatch(cfg, logger, op)
	}
	return nil
}

// initTelemetry wires the logger and, when enabled, the OTLP providers. The
// returned shutdown runs provider flushes; it is safe to call once.
func initTelemetry(cfg *config.Config) (*logging.Logger, func(), error) {
	obsCfg := observability.Config{
		ServiceName:      cfg.Observability.ServiceName,
		ServiceVersion:   cfg.Observability.ServiceVersion,
		Environment:      cfg.Observability.Environment,
		TraceSampleRatio: cfg.Observability.TraceSampleRatio,
	}

	var tracerProvider *observability.TracerProvider
	if cfg.Observability.TracingEnabled {
		tracesCfg := cfg.Observability.GetTracesConfig()
		obsCfg.OTLPConfig = otlpExporterConfig(tracesCfg)
		tp, err := observability.InitTracerProvider(obsCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
		tracerProvider = tp
	}

	var loggerProvider *observability.LoggerProvider
	logCfg := logging.Config{
		Level:  cfg.Observability.Logging.Level,
		Format: cfg.Observability.Logging.Format,
	}
	if cfg.Observability.Logging.ExportsEnabled {
		logsCfg := cfg.Observability.GetLogsConfig()
		obsCfg.OTLPConfig = otlpExporterConfig(logsCfg)
		lp, err := observability.InitLoggerProvider(obsCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize log export: %w", err)
		}
		loggerProvider = lp
		logCfg.LoggerProvider = lp.Provider()
	}

	logger := logging.NewLogger(logCfg)

	shutdown := func() {
		ctx := context.Background()
		if loggerProvider != nil {
			_ = loggerProvider.Shutdown(ctx, logger.Logger)
		}
		if tracerProvider != nil {
			_ = tracerProvider.Shutdown(ctx, logger.Logger)
		}
	}
	return logger, shutdown, nil
}

func otlpExporterConfig(cfg config.OTLPConfig) observability.OTLPExporterConfig {
	return observability.OTLPExporterConfig{
		Endpoint:          cfg.Endpoint,
		Protocol:          cfg.Protocol,
		Insecure:          cfg.Insecure,
		TLSCertFile:       cfg.TLSCertFile,
		TLSClientCertFile: cfg.TLSClientCertFile,
		TLSClientKeyFile:  cfg.TLSClientKeyFile,
		Headers:           cfg.Headers,
		Timeout:           cfg.Timeout,
		Compression:       cfg.Compression,
		RetryEnabled:      cfg.RetryEnabled,
		RetryMaxAttempts:  cfg.RetryMaxAttempts,
	}
}

// fieldParam adapts a parsed field=value flag into the builder's parameter
// contract.
type fieldParam struct {
	name  string
	value wire.Value
}

func (p fieldParam) FieldValue() (string, wire.Value) { return p.name, p.value }

// noRelation satisfies the relation bound; the CLI never eager-loads.
type noRelation struct{}

func (noRelation) RelationSelection() wire.Selection { return wire.Selection{} }

// row is the untyped result shape the CLI decodes into.
type row = map[string]any

func buildOperation(logger *logging.Logger, model string) (wire.Operation, error) {
	wheres, err := parseFieldParams("where", parseLiteral)
	if err != nil {
		return wire.Operation{}, err
	}
	orders, err := parseFieldParams("order-by", func(s string) wire.Value { return wire.Enum(s) })
	if err != nil {
		return wire.Operation{}, err
	}
	cursors, err := parseFieldParams("cursor", parseLiteral)
	if err != nil {
		return wire.Operation{}, err
	}

	fields, _ := pflag.CommandLine.GetStringArray("field")
	if len(fields) == 0 {
		fields = []string{"id"}
	}
	scalars := make([]wire.Selection, len(fields))
	for i, field := range fields {
		scalars[i] = wire.Scalar(field)
	}
	info := query.Info{Model: model, ScalarSelections: scalars}

	session := query.NewSession(nil).WithLogger(logger)
	kind, _ := pflag.CommandLine.GetString("op")

	switch kind {
	case "find-many":
		q := query.NewFindMany[fieldParam, noRelation, fieldParam, fieldParam, fieldParam, row](session, info, wheres...)
		q = q.OrderBy(orders...).Cursor(cursors...)
		if pflag.CommandLine.Changed("skip") {
			skip, _ := pflag.CommandLine.GetInt64("skip")
			q = q.Skip(skip)
		}
		if pflag.CommandLine.Changed("take") {
			take, _ := pflag.CommandLine.GetInt64("take")
			q = q.Take(take)
		}
		return q.Operation(), nil
	case "find-first":
		q := query.NewFindFirst[fieldParam, noRelation, fieldParam, fieldParam, row](session, info, wheres...)
		q = q.OrderBy(orders...).Cursor(cursors...)
		if pflag.CommandLine.Changed("skip") {
			skip, _ := pflag.CommandLine.GetInt64("skip")
			q = q.Skip(skip)
		}
		return q.Operation(), nil
	case "count":
		q := query.NewFindMany[fieldParam, noRelation, fieldParam, fieldParam, fieldParam, row](session, info, wheres...)
		return q.Count().Operation(), nil
	case "delete-many":
		q := query.NewFindMany[fieldParam, noRelation, fieldParam, fieldParam, fieldParam, row](session, info, wheres...)
		return q.Delete().Operation(), nil
	default:
		return wire.Operation{}, fmt.Errorf("unknown operation kind %q", kind)
	}
}

func dispatch(cfg *config.Config, logger *logging.Logger, op wire.Operation) error {
	client := engine.NewHTTP(engine.Options{
		URL:     cfg.Engine.URL,
		APIKey:  cfg.Engine.APIKey,
		Timeout: cfg.Engine.Timeout,
		Logger:  logger,
	})

	var result json.RawMessage
	if err := client.Execute(context.Background(), op, &result); err != nil {
		return err
	}

	pretty, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format result: %w", err)
	}
	fmt.Println(string(pretty))
	return nil
}

func parseFieldParams(flag string, convert func(string) wire.Value) ([]fieldParam, error) {
	raw, _ := pflag.CommandLine.GetStringArray(flag)
	params := make([]fieldParam, 0, len(raw))
	for _, entry := range raw {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --%s %q: expected field=value", flag, entry)
		}
		params = append(params, fieldParam{name: name, value: convert(value)})
	}
	return params, nil
}

// parseLiteral maps a flag value onto the narrowest wire literal it parses
// as; everything else stays a string.
func parseLiteral(s string) wire.Value {
	switch s {
	case "null":
		return wire.Null()
	case "true":
		return wire.Bool(true)
	case "false":
		return wire.Bool(false)
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return wire.Int(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return wire.Float(f)
	}
	return wire.String(s)
}
