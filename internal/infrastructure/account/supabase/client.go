package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/realitygames/fantasy-league/internal/domain/user"
	"github.com/realitygames/fantasy-league/internal/platform/logging"
	"github.com/realitygames/fantasy-league/internal/platform/resilience"
	"github.com/realitygames/fantasy-league/internal/usecase"
)

// Client verifies Supabase access tokens against the auth user endpoint.
type Client struct {
	httpClient  *http.Client
	userInfoURL string
	apiKey      string
	breaker     *resilience.CircuitBreaker
	logger      *logging.Logger
}

type Config struct {
	BaseURL      string
	UserInfoPath string
	APIKey       string
	Circuit      resilience.CircuitBreakerConfig
}

func NewClient(httpClient *http.Client, cfg Config, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		httpClient:  httpClient,
		userInfoURL: buildURL(cfg.BaseURL, cfg.UserInfoPath),
		apiKey:      strings.TrimSpace(cfg.APIKey),
		breaker:     resilience.NewCircuitBreakerFromConfig(cfg.Circuit),
		logger:      logger,
	}
}

func (c *Client) allow() error {
	if c.breaker == nil {
		return nil
	}
	return c.breaker.Allow()
}

func (c *Client) recordResult(failed bool) {
	if c.breaker == nil {
		return
	}
	if failed {
		c.breaker.RecordFailure()
		return
	}
	c.breaker.RecordSuccess()
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	if err := c.allow(); err != nil {
		return user.Principal{}, fmt.Errorf("%w: supabase auth circuit open", usecase.ErrDependencyUnavailable)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userInfoURL, nil)
	if err != nil {
		return user.Principal{}, fmt.Errorf("create user info request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordResult(true)
		return user.Principal{}, fmt.Errorf("request user info from supabase: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		c.recordResult(false)
		return user.Principal{}, fmt.Errorf("%w: token rejected", usecase.ErrUnauthorized)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		c.recordResult(true)
		return user.Principal{}, fmt.Errorf("read user info response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.recordResult(true)
		c.logger.WarnContext(ctx, "supabase user info non-200",
			"status_code", resp.StatusCode,
		)
		return user.Principal{}, crerr.Newf("supabase user info failed with status %d", resp.StatusCode)
	}
	c.recordResult(false)

	var decoded userInfoResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return user.Principal{}, fmt.Errorf("unmarshal user info response: %w", err)
	}

	if strings.TrimSpace(decoded.ID) == "" {
		return user.Principal{}, crerr.New("invalid user info response: id is empty")
	}

	return user.Principal{
		UserID: decoded.ID,
		Email:  decoded.Email,
	}, nil
}

type userInfoResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func buildURL(baseURL, path string) string {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	path = strings.TrimSpace(path)
	if path == "" {
		return baseURL
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return baseURL + path
}
