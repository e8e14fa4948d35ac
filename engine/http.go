package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"engineql/internal/logging"
	"engineql/wire"
)

// DefaultTimeout bounds a single engine round trip when the caller does not
// configure one.
const DefaultTimeout = 30 * time.Second

// Options configures the HTTP engine client.
type Options struct {
	// URL is the engine's query endpoint.
	URL string
	// APIKey, when set, is sent as a bearer token on every request.
	APIKey string
	// Timeout bounds each round trip. Zero means DefaultTimeout.
	Timeout time.Duration
	// HTTPClient overrides the underlying client. Its transport is wrapped
	// for trace propagation.
	HTTPClient *http.Client
	// Logger receives per-request debug records. Nil falls back to the
	// process default.
	Logger *logging.Logger
	// Metrics, when set, records round-trip instruments.
	Metrics *Metrics
}

// HTTP is an Executor that speaks the engine's JSON protocol over HTTP.
type HTTP struct {
	url     string
	apiKey  string
	client  *http.Client
	logger  *logging.Logger
	metrics *Metrics
}

// NewHTTP builds an HTTP engine client. Outbound requests carry trace
// context and a generated request ID.
func NewHTTP(opts Options) *HTTP {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	base := client.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.FromContext(context.Background())
	}
	return &HTTP{
		url:    opts.URL,
		apiKey: opts.APIKey,
		client: &http.Client{
			Transport: otelhttp.NewTransport(base),
			Timeout:   timeout,
		},
		logger:  logger,
		metrics: opts.Metrics,
	}
}

// request is one query document in the engine's wire format.
type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// batchRequest submits several documents as one unit. Transaction stays
// false: batched reads are independent and a failure in one leaves the
// others' results intact.
type batchRequest struct {
	Batch       []request `json:"batch"`
	Transaction bool      `json:"transaction"`
}

type batchResponse struct {
	Batch []envelope `json:"batch"`
}

// Execute renders the operation, posts it, and decodes the unwrapped result
// payload into the value pointed to by into. A nil into discards the
// payload. Engine-reported errors come back as *Error.
func (h *HTTP) Execute(ctx context.Context, op wire.Operation, into any) error {
	document, err := op.Render()
	if err != nil {
		return fmt.Errorf("render operation: %w", err)
	}

	start := time.Now()
	env, err := h.post(ctx, op, request{Query: document, Variables: map[string]any{}})
	h.metrics.RecordRequest(ctx, time.Since(start), err != nil, string(op.Type()))
	if err != nil {
		return err
	}
	if err := env.err(); err != nil {
		return err
	}

	raw, err := env.result()
	if err != nil {
		return err
	}
	return decodeResult(raw, into)
}

// ExecuteBatch submits all operations in one request and returns each
// operation's raw result payload, in submission order. The first
// engine-reported error fails the whole batch.
func (h *HTTP) ExecuteBatch(ctx context.Context, ops []wire.Operation) ([]json.RawMessage, error) {
	if len(ops) == 0 {
		return nil, nil
	}

	body := batchRequest{Batch: make([]request, len(ops))}
	for i, op := range ops {
		document, err := op.Render()
		if err != nil {
			return nil, fmt.Errorf("render operation %d: %w", i, err)
		}
		body.Batch[i] = request{Query: document, Variables: map[string]any{}}
	}
	h.metrics.RecordBatchSize(ctx, int64(len(ops)))

	start := time.Now()
	payload, err := h.roundTrip(ctx, body, "batch", fmt.Sprintf("%d operations", len(ops)))
	h.metrics.RecordRequest(ctx, time.Since(start), err != nil, "batch")
	if err != nil {
		return nil, err
	}

	var res batchResponse
	if err := json.Unmarshal(payload, &res); err != nil {
		return nil, fmt.Errorf("malformed batch response: %w", err)
	}
	if len(res.Batch) != len(ops) {
		return nil, fmt.Errorf("batch returned %d results for %d operations", len(res.Batch), len(ops))
	}

	results := make([]json.RawMessage, len(ops))
	for i, env := range res.Batch {
		if err := env.err(); err != nil {
			return nil, fmt.Errorf("batch operation %d: %w", i, err)
		}
		raw, err := env.result()
		if err != nil {
			return nil, fmt.Errorf("batch operation %d: %w", i, err)
		}
		results[i] = raw
	}
	return results, nil
}

func (h *HTTP) post(ctx context.Context, op wire.Operation, req request) (envelope, error) {
	payload, err := h.roundTrip(ctx, req, string(op.Type()), op.Fingerprint())
	if err != nil {
		return envelope{}, err
	}
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return envelope{}, fmt.Errorf("malformed engine response: %w", err)
	}
	return env, nil
}

func (h *HTTP) roundTrip(ctx context.Context, body any, operationType, fingerprint string) ([]byte, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode engine request: %w", err)
	}

	requestID := logging.GetRequestID(ctx)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	logger := h.logger.WithRequestID(requestID)
	logger.DebugContext(ctx, "dispatching engine operation",
		"operation_type", operationType,
		"fingerprint", fingerprint,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("build engine request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if h.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+h.apiKey)
	}

	res, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("engine request failed: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read engine response: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		logger.ErrorContext(ctx, "engine returned non-OK status",
			"status", res.StatusCode,
			"operation_type", operationType,
		)
		return nil, fmt.Errorf("engine returned status %d", res.StatusCode)
	}
	return payload, nil
}

// decodeResult copies the raw payload into the caller's value. A missing or
// null payload leaves into untouched, so pointer targets stay nil for
// not-found reads.
func decodeResult(raw json.RawMessage, into any) error {
	if into == nil || len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return fmt.Errorf("decode engine result: %w", err)
	}
	return nil
}
