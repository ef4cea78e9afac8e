package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/realitygames/fantasy-league/internal/platform/logging"
)

// Client creates Stripe Checkout sessions for paid league entry fees.
type Client struct {
	httpClient *http.Client
	baseURL    string
	secretKey  string
	successURL string
	cancelURL  string
	logger     *logging.Logger
}

type Config struct {
	BaseURL    string
	SecretKey  string
	Timeout    time.Duration
	SuccessURL string
	CancelURL  string
}

type CheckoutSession struct {
	ID  string
	URL string
}

func NewClient(cfg Config, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		secretKey:  strings.TrimSpace(cfg.SecretKey),
		successURL: strings.TrimSpace(cfg.SuccessURL),
		cancelURL:  strings.TrimSpace(cfg.CancelURL),
		logger:     logger,
	}
}

// CreateCheckoutSession opens a hosted payment page for one league entry fee.
// Amount is whole US dollars.
func (c *Client) CreateCheckoutSession(ctx context.Context, leagueID, userID string, amountUSD int) (CheckoutSession, error) {
	if strings.TrimSpace(leagueID) == "" {
		return CheckoutSession{}, fmt.Errorf("league id is required")
	}
	if strings.TrimSpace(userID) == "" {
		return CheckoutSession{}, fmt.Errorf("user id is required")
	}
	if amountUSD <= 0 {
		return CheckoutSession{}, fmt.Errorf("amount must be positive")
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", c.successURL)
	form.Set("cancel_url", c.cancelURL)
	form.Set("client_reference_id", leagueID+":"+userID)
	form.Set("metadata[league_id]", leagueID)
	form.Set("metadata[user_id]", userID)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", "usd")
	form.Set("line_items[0][price_data][unit_amount]", strconv.Itoa(amountUSD*100))
	form.Set("line_items[0][price_data][product_data][name]", "League entry fee")

	endpoint := c.baseURL + "/v1/checkout/sessions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return CheckoutSession{}, fmt.Errorf("create checkout request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return CheckoutSession{}, fmt.Errorf("request checkout session: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return CheckoutSession{}, fmt.Errorf("read checkout response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "stripe checkout non-200",
			"status_code", resp.StatusCode,
			"league_id", leagueID,
		)
		return CheckoutSession{}, crerr.Newf("stripe checkout failed with status %d", resp.StatusCode)
	}

	var decoded checkoutSessionResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return CheckoutSession{}, fmt.Errorf("unmarshal checkout response: %w", err)
	}
	if strings.TrimSpace(decoded.ID) == "" || strings.TrimSpace(decoded.URL) == "" {
		return CheckoutSession{}, crerr.New("invalid checkout response: id or url is empty")
	}

	return CheckoutSession{ID: decoded.ID, URL: decoded.URL}, nil
}

type checkoutSessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}
