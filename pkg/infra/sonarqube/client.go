package sonarqube

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pqops/relsnap/pkg/domain/interfaces"
	"github.com/pqops/relsnap/pkg/domain/model"
	"github.com/pqops/relsnap/pkg/domain/types"
)

// Connection diagnosis messages. A configuration UI relies on these being
// pairwise distinct to tell the user which field to fix.
const (
	msgNotAbsolute  = "URI is not absolute"
	msgUnreachable  = "server is not reachable: check the base URL"
	msgUnknownKey   = "component not found: check the component key"
	msgUnauthorized = "authentication failed: check the access token"
)

const defaultTimeout = 10 * time.Second

type client struct {
	httpClient *http.Client
}

// Option is a functional option for the SonarQube client
type Option func(*client)

// WithTimeout overrides the per-request timeout (default 10s)
func WithTimeout(d time.Duration) Option {
	return func(c *client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.httpClient = hc
	}
}

// New creates a SonarQube measures client
func New(opts ...Option) interfaces.QualityClient {
	c := &client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchReleaseInfo requests the seven release metrics for the configured
// component and decodes them into a MetricSet. Transport failures and
// non-2xx responses are classified via error tags; decode failures are
// propagated unchanged, never reclassified as connectivity problems.
func (c *client) FetchReleaseInfo(ctx context.Context, cfg *model.SourceConfig) (*model.MetricSet, error) {
	resp, err := c.doMeasuresRequest(ctx, cfg)
	if err != nil {
		return nil, goerr.Wrap(types.ErrSourceUnavailable, "failed to reach sonarqube",
			goerr.T(types.TagSourceNetwork),
			goerr.V("base_url", cfg.BaseURL),
			goerr.V("cause", err.Error()))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, goerr.Wrap(types.ErrSourceUnavailable, "component not found in sonarqube",
			goerr.T(types.TagSourceUnknownTarget),
			goerr.V("component", cfg.TargetID))

	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, goerr.Wrap(types.ErrSourceUnavailable, "sonarqube rejected the request",
			goerr.T(types.TagSourceRejected),
			goerr.V("status", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(types.ErrSourceUnavailable, "failed to read sonarqube response",
			goerr.T(types.TagSourceNetwork))
	}

	return decodeMeasures(body)
}

// TestConnection performs the same request as FetchReleaseInfo but only
// classifies the outcome. The classification order matters: URL syntax,
// then reachability, then target existence, then credentials. A 2xx
// response is a success regardless of whether the body decodes, since
// connection diagnosis is about reachability and auth, not schema.
func (c *client) TestConnection(ctx context.Context, cfg *model.SourceConfig) model.ConnectionResult {
	if !cfg.HasAbsoluteBaseURL() {
		return model.ConnectionFailure(msgNotAbsolute)
	}

	resp, err := c.doMeasuresRequest(ctx, cfg)
	if err != nil {
		return model.ConnectionFailure(msgUnreachable)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return model.ConnectionFailure(msgUnknownKey)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return model.ConnectionFailure(msgUnauthorized)
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return model.ConnectionOK()
	default:
		return model.ConnectionFailure(fmt.Sprintf("unexpected response from server (status %d)", resp.StatusCode))
	}
}

// doMeasuresRequest issues one GET to the measures endpoint. The returned
// error covers request construction (malformed base URL) and transport
// failures only; HTTP status handling is up to the caller.
func (c *client) doMeasuresRequest(ctx context.Context, cfg *model.SourceConfig) (*http.Response, error) {
	query := url.Values{
		"component":  []string{cfg.TargetID},
		"metricKeys": []string{strings.Join(model.RequiredMetricKeys, ",")},
	}
	endpoint := strings.TrimSuffix(cfg.BaseURL, "/") + "/api/measures/component?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if cfg.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.AccessToken)
	}

	return c.httpClient.Do(req)
}
