package jira

import (
	"context"
	"encoding/json"
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

// Connection diagnosis messages, pairwise distinct from each other so a
// configuration UI can tell the user which field to fix.
const (
	msgNotAbsolute  = "URI is not absolute"
	msgUnreachable  = "server is not reachable: check the base URL"
	msgUnknownBoard = "board not found: check the board ID"
	msgUnauthorized = "authentication failed: check the user email and API token"
)

const defaultTimeout = 10 * time.Second

type client struct {
	httpClient *http.Client
}

// Option is a functional option for the Jira client
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

// New creates a Jira agile board client
func New(opts ...Option) interfaces.SprintClient {
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

// sprintsResponse mirrors the Jira agile API body for board sprints
type sprintsResponse struct {
	Values []sprintRecord `json:"values"`
}

type sprintRecord struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	State     string `json:"state"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Goal      string `json:"goal"`
}

// FetchActiveSprints returns the active sprints of the configured board.
// Sprint fields are passed through unchanged; this client does not
// interpret them beyond filtering to the active state.
func (c *client) FetchActiveSprints(ctx context.Context, cfg *model.SourceConfig) ([]model.Sprint, error) {
	resp, err := c.doSprintsRequest(ctx, cfg)
	if err != nil {
		return nil, goerr.Wrap(types.ErrSourceUnavailable, "failed to reach jira",
			goerr.T(types.TagSourceNetwork),
			goerr.V("base_url", cfg.BaseURL),
			goerr.V("cause", err.Error()))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, goerr.Wrap(types.ErrSourceUnavailable, "board not found in jira",
			goerr.T(types.TagSourceUnknownTarget),
			goerr.V("board_id", cfg.TargetID))

	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, goerr.Wrap(types.ErrSourceUnavailable, "jira rejected the request",
			goerr.T(types.TagSourceRejected),
			goerr.V("status", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(types.ErrSourceUnavailable, "failed to read jira response",
			goerr.T(types.TagSourceNetwork))
	}

	return decodeSprints(body)
}

// TestConnection classifies the outcome of one board-sprints request in
// the same priority order as the SonarQube client: URL syntax, then
// reachability, then board existence, then credentials. Any 2xx is a
// success regardless of body content.
func (c *client) TestConnection(ctx context.Context, cfg *model.SourceConfig) model.ConnectionResult {
	if !cfg.HasAbsoluteBaseURL() {
		return model.ConnectionFailure(msgNotAbsolute)
	}

	resp, err := c.doSprintsRequest(ctx, cfg)
	if err != nil {
		return model.ConnectionFailure(msgUnreachable)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return model.ConnectionFailure(msgUnknownBoard)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return model.ConnectionFailure(msgUnauthorized)
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return model.ConnectionOK()
	default:
		return model.ConnectionFailure(fmt.Sprintf("unexpected response from server (status %d)", resp.StatusCode))
	}
}

func (c *client) doSprintsRequest(ctx context.Context, cfg *model.SourceConfig) (*http.Response, error) {
	endpoint := fmt.Sprintf("%s/rest/agile/1.0/board/%s/sprint?state=active",
		strings.TrimSuffix(cfg.BaseURL, "/"), url.PathEscape(cfg.TargetID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(cfg.UserIdentity, cfg.AccessToken)

	return c.httpClient.Do(req)
}

// decodeSprints parses the board-sprints payload. Jira already filters to
// active sprints via the query parameter, but the state is checked again
// so a non-filtering server cannot leak closed sprints into a snapshot.
func decodeSprints(body []byte) ([]model.Sprint, error) {
	var resp sprintsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, goerr.Wrap(types.ErrPayloadDecode, "response body is not a sprints document",
			goerr.T(types.TagDecodeFailure))
	}

	sprints := make([]model.Sprint, 0, len(resp.Values))
	for _, v := range resp.Values {
		if v.State != "active" {
			continue
		}
		sprints = append(sprints, model.Sprint{
			ID:        v.ID,
			Name:      v.Name,
			State:     v.State,
			StartDate: parseSprintTime(v.StartDate),
			EndDate:   parseSprintTime(v.EndDate),
			Goal:      v.Goal,
		})
	}
	return sprints, nil
}

func parseSprintTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	// Jira Cloud uses RFC3339 with milliseconds, e.g. 2021-03-01T09:00:00.000Z
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}
