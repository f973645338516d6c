// Package graphql is the transport and normalized cache in front of the
// hosted GraphQL endpoint.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	deliverycontext "quill/internal/delivery/context"

	gql "github.com/machinebox/graphql"
	"github.com/pkg/errors"
)

const (
	graphqlPath = "/graphql/v1"

	maxErrorBody = 4 << 10

	graphErrPrefix = "graphql: "
)

// ResponseError collects the errors array of a GraphQL response.
type ResponseError struct {
	Operation string
	Messages  []string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("graphql %s: %s", e.Operation, strings.Join(e.Messages, "; "))
}

// StatusError is a non-2xx HTTP answer from the GraphQL endpoint.
type StatusError struct {
	Operation string
	Status    int
	Body      string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("graphql %s: http %d: %s", e.Operation, e.Status, e.Body)
}

// statusCheck turns non-2xx answers into a StatusError before the client
// tries to decode them as GraphQL.
type statusCheck struct {
	next http.RoundTripper
}

func (s statusCheck) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := s.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	return nil, &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}

// Transport sends operations with a fixed set of credentials. A Transport is
// immutable; a new one is built whenever the bearer token changes.
type Transport struct {
	client  *gql.Client
	anonKey string
	token   string
	logger  *slog.Logger
}

// NewTransport builds a transport for endpoint. An empty token sends the anon key as the only credential.
func NewTransport(endpoint, anonKey, token string, httpClient *http.Client, logger *slog.Logger) *Transport {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	next := httpClient.Transport
	if next == nil {
		next = http.DefaultTransport
	}
	checked := *httpClient
	checked.Transport = statusCheck{next: next}

	return &Transport{
		client:  gql.NewClient(endpoint, gql.WithHTTPClient(&checked)),
		anonKey: anonKey,
		token:   token,
		logger:  logger,
	}
}

// Authenticated reports whether the transport carries a user token.
func (t *Transport) Authenticated() bool {
	return t.token != ""
}

// Execute runs op with vars and decodes the data member into out.
func (t *Transport) Execute(ctx context.Context, op Operation, vars map[string]any, out any) error {
	req := gql.NewRequest(op.Query)
	for k, v := range vars {
		req.Var(k, v)
	}
	req.Header.Set("apikey", t.anonKey)
	if t.token != "" {
		req.Header.Set("Authorization", "Bearer "+t.token)
	}
	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		req.Header.Set(deliverycontext.HeaderXRequestID, requestID)
	}

	start := time.Now()
	var data json.RawMessage
	err := t.client.Run(ctx, req, &data)

	deliverycontext.GetLoggerOrDefault(ctx, t.logger).Debug("GraphQL operation",
		slog.String("operation", op.Name),
		slog.Bool("authenticated", t.Authenticated()),
		slog.Duration("latency", time.Since(start)),
		slog.Bool("failed", err != nil),
	)

	if err != nil {
		return toExecuteError(op, err)
	}

	if out == nil {
		return nil
	}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return errors.Errorf("graphql %s: empty data", op.Name)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, "graphql %s: decode data", op.Name)
	}

	return nil
}

func toExecuteError(op Operation, err error) error {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		statusErr.Operation = op.Name

		return statusErr
	}

	// The client reports only the first entry of the errors array.
	if msg := err.Error(); strings.HasPrefix(msg, graphErrPrefix) {
		return &ResponseError{Operation: op.Name, Messages: []string{strings.TrimPrefix(msg, graphErrPrefix)}}
	}

	return errors.Wrapf(err, "graphql %s", op.Name)
}
