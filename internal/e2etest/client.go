package e2etest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/myrjola/checkpoint/internal/api"
	"github.com/myrjola/checkpoint/internal/errors"
)

// Client plays the game over HTTP like a browser would. It keeps the session cookies and the CSRF token returned by
// Init.
type Client struct {
	client    *http.Client
	url       string
	csrfToken string
}

func NewClient(url string) (*Client, error) {
	jar, err := newUnsafeCookieJar()
	if err != nil {
		return nil, errors.Wrap(err, "create unsafe cookie jar")
	}
	return &Client{
		client:    &http.Client{Jar: jar}, //nolint:exhaustruct // defaults are fine
		url:       url,
		csrfToken: "",
	}, nil
}

// WaitForReady calls the specified endpoint until it gets a HTTP 200 Success
// response or until the context is cancelled or the 1-second timeout is reached.
func (c *Client) WaitForReady(ctx context.Context, urlPath string) error {
	timeout := 1 * time.Second
	startTime := time.Now()
	var (
		err  error
		req  *http.Request
		resp *http.Response
	)
	for {
		if req, err = http.NewRequestWithContext(
			ctx,
			http.MethodGet,
			c.url+urlPath,
			nil,
		); err != nil {
			return errors.Wrap(err, "create request")
		}

		if resp, err = c.client.Do(req); err == nil {
			if err = resp.Body.Close(); err != nil {
				return errors.Wrap(err, "close response body")
			}
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "context cancelled")
		default:
			if time.Since(startTime) >= timeout {
				return errors.New("timeout waiting for endpoint to be ready")
			}
			time.Sleep(100 * time.Millisecond) //nolint:mnd // 100ms
		}
	}
}

// CSRFToken returns the token received from the latest Init.
func (c *Client) CSRFToken() string {
	return c.csrfToken
}

// SetCSRFToken overrides the token sent with state-changing requests.
func (c *Client) SetCSRFToken(token string) {
	c.csrfToken = token
}

func (c *Client) Init(ctx context.Context) (api.InitResponse, error) {
	var res api.InitResponse
	if err := c.do(ctx, http.MethodGet, "/api/init", nil, &res); err != nil {
		return api.InitResponse{}, errors.Wrap(err, "init")
	}
	c.csrfToken = res.CSRFToken
	return res, nil
}

func (c *Client) Start(ctx context.Context, theme string, difficulty string) (api.StartResponse, error) {
	var res api.StartResponse
	req := api.StartRequest{Theme: theme, Difficulty: difficulty}
	if err := c.do(ctx, http.MethodPost, "/api/start", req, &res); err != nil {
		return api.StartResponse{}, errors.Wrap(err, "start", slog.String("theme", theme))
	}
	return res, nil
}

func (c *Client) Process(ctx context.Context, decision string) (api.ProcessResponse, error) {
	var res api.ProcessResponse
	if err := c.do(ctx, http.MethodPost, "/api/process", api.ProcessRequest{Decision: decision}, &res); err != nil {
		return api.ProcessResponse{}, errors.Wrap(err, "process", slog.String("decision", decision))
	}
	return res, nil
}

func (c *Client) ChangeTheme(ctx context.Context, theme string) (api.ChangeThemeResponse, error) {
	var res api.ChangeThemeResponse
	if err := c.do(ctx, http.MethodPost, "/api/change-theme", api.ChangeThemeRequest{Theme: theme}, &res); err != nil {
		return api.ChangeThemeResponse{}, errors.Wrap(err, "change theme", slog.String("theme", theme))
	}
	return res, nil
}

func (c *Client) SetUsername(ctx context.Context, username string) (api.UsernameResponse, error) {
	var res api.UsernameResponse
	if err := c.do(ctx, http.MethodPost, "/api/username", api.UsernameRequest{Username: username}, &res); err != nil {
		return api.UsernameResponse{}, errors.Wrap(err, "set username")
	}
	return res, nil
}

func (c *Client) Leaderboard(ctx context.Context) (api.LeaderboardResponse, error) {
	var res api.LeaderboardResponse
	if err := c.do(ctx, http.MethodGet, "/api/leaderboard", nil, &res); err != nil {
		return api.LeaderboardResponse{}, errors.Wrap(err, "leaderboard")
	}
	return res, nil
}

func (c *Client) Themes(ctx context.Context) (api.ThemesResponse, error) {
	var res api.ThemesResponse
	if err := c.do(ctx, http.MethodGet, "/api/themes", nil, &res); err != nil {
		return api.ThemesResponse{}, errors.Wrap(err, "themes")
	}
	return res, nil
}

// Metrics returns the Prometheus exposition of the server.
func (c *Client) Metrics(ctx context.Context) (string, error) {
	resp, err := c.Get(ctx, "/metrics")
	if err != nil {
		return "", errors.Wrap(err, "get metrics")
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return "", errors.New("unexpected status code", slog.Int("status", resp.StatusCode))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "read body")
	}
	return string(body), nil
}

// Get fetches a URL and returns the response.
func (c *Client) Get(ctx context.Context, urlPath string) (*http.Response, error) {
	var (
		err  error
		req  *http.Request
		resp *http.Response
	)
	if req, err = http.NewRequestWithContext(ctx, http.MethodGet, c.url+urlPath, nil); err != nil {
		return nil, errors.Wrap(err, "create request with context")
	}
	if resp, err = c.client.Do(req); err != nil {
		return nil, errors.Wrap(err, "do request")
	}
	return resp, nil
}

// do sends body as JSON and decodes the response into out. Responses other than 200 OK are returned as
// *api.ErrorResponse.
func (c *Client) do(ctx context.Context, method string, urlPath string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "marshal request body")
		}
		reqBody = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.url+urlPath, reqBody)
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		req.Header.Set(api.CSRFHeader, c.csrfToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "do request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		apiErr := &api.ErrorResponse{StatusCode: resp.StatusCode} //nolint:exhaustruct // filled by the decoder
		if err = json.NewDecoder(resp.Body).Decode(apiErr); err != nil {
			return errors.Wrap(err, "decode error response", slog.Int("status", resp.StatusCode))
		}
		apiErr.StatusCode = resp.StatusCode
		return apiErr
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}
