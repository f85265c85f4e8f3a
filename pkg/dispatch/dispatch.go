// Package dispatch sends built requests: it resolves a signing/endpoint
// context from an account, signs the wire request with SigV4, performs
// exactly one HTTP round trip, and funnels every failure mode into the
// unified error taxonomy.
//
// No retries happen here; compose with pkg/retry when callers want them.
package dispatch

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/s3kit/s3kit/internal/config"
	"github.com/s3kit/s3kit/internal/metrics"
	"github.com/s3kit/s3kit/pkg/account"
	"github.com/s3kit/s3kit/pkg/errors"
	"github.com/s3kit/s3kit/pkg/request"
)

const (
	signingService = "s3"
	defaultRegion  = "us-east-1"
)

// emptyPayloadHash is the SHA-256 of the empty string, precomputed because
// most requests carry no body.
const emptyPayloadHash = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

// Dispatcher performs signed round trips. It is safe for concurrent use;
// every Send is independent and shares only the underlying HTTP client's
// connection pool.
type Dispatcher struct {
	client  *http.Client
	signer  *v4.Signer
	cfg     *config.Config
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// New creates a Dispatcher. A nil cfg uses config.Default(); a nil logger
// uses slog.Default().
func New(cfg *config.Config, logger *slog.Logger) *Dispatcher {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}

	transport := &http.Transport{
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConns,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout: cfg.ConnectTimeout.Std(),
		}).DialContext,
	}

	return &Dispatcher{
		client: &http.Client{
			Timeout:   cfg.RequestTimeout.Std(),
			Transport: transport,
		},
		signer: v4.NewSigner(),
		cfg:    cfg,
		logger: logger,
	}
}

// EnableMetrics registers request counters and latency histograms with
// reg and records every subsequent Send.
func (d *Dispatcher) EnableMetrics(reg prometheus.Registerer) error {
	rec, err := metrics.NewRecorder(reg)
	if err != nil {
		return err
	}
	d.metrics = rec
	return nil
}

// SetHTTPClient replaces the underlying HTTP client. Intended for tests
// and callers with bespoke transport needs.
func (d *Dispatcher) SetHTTPClient(client *http.Client) {
	d.client = client
}

// endpoint resolves the base URL and signing region for an account. Region
// absent selects the global endpoint; present, the regional one. The
// Alternate flag routes to the compatible alternate provider's regional
// host. A configured endpoint override wins over all of these.
func (d *Dispatcher) endpoint(acct account.Account) (base, region string) {
	region = acct.RegionOrDefault(defaultRegion)

	if d.cfg.Endpoint != "" {
		return strings.TrimSuffix(d.cfg.Endpoint, "/"), region
	}

	scheme := "https"
	if d.cfg.DisableSSL {
		scheme = "http"
	}

	switch {
	case acct.Alternate:
		return scheme + "://" + region + ".digitaloceanspaces.com", region
	case acct.Region == nil:
		return scheme + "://s3.amazonaws.com", region
	default:
		return scheme + "://s3." + region + ".amazonaws.com", region
	}
}

// Send dispatches one built request on behalf of an account and decodes
// the response into the request's result type. Exactly one transport
// attempt is made. Cancelling ctx aborts the in-flight call; decoders are
// never invoked for a cancelled request.
func Send[T any](ctx context.Context, d *Dispatcher, acct account.Account, req request.Request[T]) (T, error) {
	var zero T
	start := time.Now()

	result, err := send(ctx, d, acct, req)
	d.observe(req.Name, err, time.Since(start))
	if err != nil {
		d.logger.Error("request failed",
			"operation", req.Name,
			"account", acct.Name,
			"error", err)
		return zero, err
	}

	d.logger.Debug("request completed",
		"operation", req.Name,
		"account", acct.Name,
		"elapsed", time.Since(start))
	return result, nil
}

func send[T any](ctx context.Context, d *Dispatcher, acct account.Account, req request.Request[T]) (T, error) {
	var zero T

	if bodyErr := req.Body.Err(); bodyErr != nil {
		e := *bodyErr
		e.Op = req.Name
		return zero, &e
	}

	httpReq, err := d.buildHTTPRequest(ctx, req.Name, req.Method, req.Path, req.Body, req.Headers, req.Query, acct)
	if err != nil {
		return zero, err
	}

	resp, err := d.client.Do(httpReq)
	if err != nil {
		return zero, errors.Network(req.Name, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, errors.Network(req.Name, err)
	}

	meta := request.Metadata{StatusCode: resp.StatusCode, Headers: resp.Header}
	if resp.StatusCode >= 300 {
		apiErr := req.DecodeError(meta, raw)
		if apiErr.Op == "" {
			apiErr.Op = req.Name
		}
		return zero, apiErr
	}

	result, decodeErr := req.Decode(meta, raw)
	if decodeErr != nil {
		if e, ok := errors.AsError(decodeErr); ok {
			if e.Op == "" {
				e.Op = req.Name
			}
			return zero, e
		}
		return zero, errors.Decode(req.Name, decodeErr.Error())
	}
	return result, nil
}

// buildHTTPRequest assembles and signs the wire request. Accept: */* is
// always added before signing; header pairs are applied with Set in
// accumulation order, so the last value for a key wins.
func (d *Dispatcher) buildHTTPRequest(
	ctx context.Context,
	name, method, path string,
	body request.Body,
	headers, query []request.KV,
	acct account.Account,
) (*http.Request, error) {
	base, region := d.endpoint(acct)

	var reader io.Reader
	payloadHash := emptyPayloadHash
	if body.Present() {
		reader = bytes.NewReader(body.Content)
		sum := sha256.Sum256(body.Content)
		payloadHash = hex.EncodeToString(sum[:])
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, base+path, reader)
	if err != nil {
		return nil, errors.Network(name, err)
	}
	if body.Present() {
		httpReq.ContentLength = int64(len(body.Content))
		if body.Mime != "" {
			httpReq.Header.Set("Content-Type", body.Mime)
		}
	}

	httpReq.URL.RawQuery = encodeQuery(query)

	for _, kv := range headers {
		httpReq.Header.Set(kv.Key, kv.Value)
	}
	httpReq.Header.Set("Accept", "*/*")
	if d.cfg.UserAgent != "" {
		httpReq.Header.Set("User-Agent", d.cfg.UserAgent)
	}

	creds, err := acct.CredentialsProvider().Retrieve(ctx)
	if err != nil {
		return nil, errors.Network(name, err)
	}
	if err := d.signer.SignHTTP(ctx, creds, httpReq, payloadHash, signingService, region, time.Now().UTC()); err != nil {
		return nil, errors.Network(name, err)
	}
	return httpReq, nil
}

// encodeQuery renders query pairs in accumulation order. url.Values would
// sort by key; listing pagination relies on the order the caller chose.
func encodeQuery(pairs []request.KV) string {
	if len(pairs) == 0 {
		return ""
	}
	var b strings.Builder
	for i, kv := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(kv.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(kv.Value))
	}
	return b.String()
}

func (d *Dispatcher) observe(operation string, err error, elapsed time.Duration) {
	result := "success"
	if err != nil {
		result = "internal"
		if e, ok := errors.AsError(err); ok {
			result = e.Kind.String()
		}
	}
	d.metrics.Observe(operation, result, elapsed)
}
