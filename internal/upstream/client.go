// Package upstream wraps the REST backend behind preconfigured, per-area
// request issuers. The shared core attaches the bearer token, classifies
// errors into domain sentinels, and performs the single silent
// re-validation-and-retry that rescues a request from a transient 401.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/qiaoguanyu11/actorreal/internal/api/metrics"
	"github.com/qiaoguanyu11/actorreal/internal/core/domain"
	"github.com/qiaoguanyu11/actorreal/internal/core/ports"
)

const defaultTimeout = 30 * time.Second

// Config locates the backend. Prefixes are per-deployment configuration:
// observed backend revisions disagree on them.
type Config struct {
	BaseURL string
	Timeout time.Duration

	ActorsPrefix    string
	MediaPrefix     string
	SelfMediaPrefix string
	TagsPrefix      string
	AgentPrefix     string
	AuthPrefix      string
	UsersPrefix     string
	InvitesPrefix   string
}

// Client is the shared request core behind every per-area client.
type Client struct {
	http        *http.Client
	baseURL     string
	cfg         Config
	profilePath string
	log         zerolog.Logger
}

// NewClient builds the shared core. The profile path doubles as the 401
// re-validation probe.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http:        &http.Client{Timeout: timeout},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		cfg:         cfg,
		profilePath: cfg.AuthPrefix + "/users/me",
		log:         log,
	}
}

type call struct {
	area        string
	method      string
	path        string
	query       url.Values
	body        []byte
	contentType string
	token       string
}

// execute performs a single request attempt with no interception.
func (c *Client) execute(ctx context.Context, cl call) (int, []byte, error) {
	u := c.baseURL + cl.path
	if len(cl.query) > 0 {
		u += "?" + cl.query.Encode()
	}

	var body io.Reader
	if cl.body != nil {
		body = bytes.NewReader(cl.body)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, u, body)
	if err != nil {
		return 0, nil, fmt.Errorf("upstream: build request: %w", err)
	}
	if cl.body != nil {
		ct := cl.contentType
		if ct == "" {
			ct = "application/json"
		}
		req.Header.Set("Content-Type", ct)
	}
	if cl.token != "" {
		req.Header.Set("Authorization", "Bearer "+cl.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(cl.area, "network").Inc()
		return 0, nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	metrics.UpstreamRequestDuration.WithLabelValues(cl.area).Observe(time.Since(start).Seconds())
	metrics.UpstreamRequestsTotal.WithLabelValues(cl.area, strconv.Itoa(resp.StatusCode)).Inc()
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%w: reading body: %v", domain.ErrUpstreamUnavailable, err)
	}
	return resp.StatusCode, data, nil
}

// do executes a call with full response interception per the session
// contract: one re-validation and one retry on 401, pass-through 403,
// verbatim validation detail on 400/422.
func (c *Client) do(ctx context.Context, cl call) ([]byte, error) {
	status, data, err := c.execute(ctx, cl)
	if err != nil {
		return nil, err
	}

	if status == http.StatusUnauthorized {
		switch {
		case cl.token == "":
			// No session was attached; nothing to re-validate.
			return nil, domain.ErrInvalidCredentials
		case cl.path == c.profilePath:
			// A 401 from the probe itself is final. Retrying would loop.
			return nil, domain.ErrAuthExpired
		}

		if !c.revalidate(ctx, cl.token) {
			metrics.UpstreamReauthTotal.WithLabelValues("failed").Inc()
			return nil, domain.ErrAuthExpired
		}
		metrics.UpstreamReauthTotal.WithLabelValues("recovered").Inc()
		c.log.Debug().Str("path", cl.path).Msg("token re-validated, retrying request once")

		status, data, err = c.execute(ctx, cl)
		if err != nil {
			return nil, err
		}
		if status == http.StatusUnauthorized {
			return nil, domain.ErrAuthExpired
		}
	}

	return classify(status, data)
}

// revalidate probes the profile endpoint with the same token.
func (c *Client) revalidate(ctx context.Context, token string) bool {
	status, _, err := c.execute(ctx, call{
		area:   "auth",
		method: http.MethodGet,
		path:   c.profilePath,
		token:  token,
	})
	return err == nil && status >= 200 && status < 300
}

func classify(status int, data []byte) ([]byte, error) {
	switch {
	case status >= 200 && status < 300:
		return data, nil
	case status == http.StatusForbidden:
		return nil, domain.ErrForbidden
	case status == http.StatusNotFound:
		return nil, domain.ErrNotFound
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return nil, &domain.ValidationError{Detail: extractDetail(data)}
	default:
		return nil, fmt.Errorf("%w: status %d", domain.ErrUpstream, status)
	}
}

// extractDetail pulls the backend's "detail" field out verbatim. FastAPI
// emits either a string or a structured list there.
func extractDetail(data []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(envelope.Detail, &s); err == nil {
		return s
	}
	return string(envelope.Detail)
}

// ── JSON helpers shared by the per-area clients ───────────────────────────────

func (c *Client) getJSON(ctx context.Context, area, path string, query url.Values, token string, out any) error {
	data, err := c.do(ctx, call{area: area, method: http.MethodGet, path: path, query: query, token: token})
	if err != nil {
		return err
	}
	return decode(data, out)
}

func (c *Client) postJSON(ctx context.Context, area, path, token string, in, out any) error {
	return c.sendJSON(ctx, http.MethodPost, area, path, token, in, out)
}

func (c *Client) putJSON(ctx context.Context, area, path, token string, in, out any) error {
	return c.sendJSON(ctx, http.MethodPut, area, path, token, in, out)
}

func (c *Client) sendJSON(ctx context.Context, method, area, path, token string, in, out any) error {
	var body []byte
	if in != nil {
		var err error
		if body, err = json.Marshal(in); err != nil {
			return fmt.Errorf("upstream: encode request: %w", err)
		}
	}
	data, err := c.do(ctx, call{area: area, method: method, path: path, body: body, token: token})
	if err != nil {
		return err
	}
	return decode(data, out)
}

func (c *Client) deleteJSON(ctx context.Context, area, path, token string) error {
	_, err := c.do(ctx, call{area: area, method: http.MethodDelete, path: path, token: token})
	return err
}

// postMultipart forwards an uploaded file. The body is buffered so the
// request stays replayable for the 401 retry.
func (c *Client) postMultipart(ctx context.Context, area, path, token, field string, up ports.MediaUpload, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, up.FileName)
	if err != nil {
		return fmt.Errorf("upstream: multipart: %w", err)
	}
	if _, err := io.Copy(part, up.Body); err != nil {
		return fmt.Errorf("upstream: multipart copy: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("upstream: multipart close: %w", err)
	}

	data, err := c.do(ctx, call{
		area:        area,
		method:      http.MethodPost,
		path:        path,
		body:        buf.Bytes(),
		contentType: mw.FormDataContentType(),
		token:       token,
	})
	if err != nil {
		return err
	}
	return decode(data, out)
}

func decode(data []byte, out any) error {
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("upstream: decode response: %w", err)
	}
	return nil
}
