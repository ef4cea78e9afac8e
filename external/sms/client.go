package sms

import (
	"context"
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/realitygames/fantasy-league/internal/platform/logging"
	"github.com/realitygames/fantasy-league/internal/platform/resilience"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// errSMSTransient marks failures worth retrying and counting against the breaker.
var errSMSTransient = crerr.New("sms provider transient failure")

type Config struct {
	BaseURL    string
	APIKey     string
	SenderID   string
	Timeout    time.Duration
	MaxRetries int
	Circuit    resilience.CircuitBreakerConfig
}

type Client struct {
	client     *fasthttp.Client
	sendURL    string
	apiKey     string
	senderID   string
	timeout    time.Duration
	maxRetries int
	breaker    *resilience.CircuitBreaker
	logger     *logging.Logger
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
		client:     &fasthttp.Client{ReadTimeout: timeout, WriteTimeout: timeout},
		sendURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/") + "/v1/messages",
		apiKey:     strings.TrimSpace(cfg.APIKey),
		senderID:   strings.TrimSpace(cfg.SenderID),
		timeout:    timeout,
		maxRetries: cfg.MaxRetries,
		breaker:    resilience.NewCircuitBreakerFromConfig(cfg.Circuit),
		logger:     logger,
	}
}

type sendRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Body string `json:"body"`
}

func (c *Client) SendSMS(ctx context.Context, phone, message string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return fmt.Errorf("sms recipient phone is required")
	}
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("sms message body is required")
	}

	if c.breaker != nil {
		if err := c.breaker.Allow(); err != nil {
			return fmt.Errorf("sms provider circuit open: %w", err)
		}
	}

	payload, err := jsoniter.Marshal(sendRequest{
		From: c.senderID,
		To:   phone,
		Body: message,
	})
	if err != nil {
		return fmt.Errorf("marshal sms payload: %w", err)
	}

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("sms.send_url", c.sendURL),
			attribute.Int("sms.body_bytes", len(payload)),
		)
	}

	var lastErr error
	attempts := c.maxRetries + 1
	if attempts < 1 {
		attempts = 1
	}
	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = c.send(payload)
		c.recordCircuitResult(lastErr)
		if lastErr == nil {
			c.logger.InfoContext(ctx, "sms sent", "to", maskPhone(phone), "attempt", attempt+1)
			return nil
		}
		if !crerr.Is(lastErr, errSMSTransient) {
			break
		}
	}

	c.logger.WarnContext(ctx, "sms send failed", "to", maskPhone(phone), "error", lastErr)
	return fmt.Errorf("send sms: %w", lastErr)
}

func (c *Client) send(payload []byte) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.sendURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.SetBody(payload)

	if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
		return crerr.Mark(fmt.Errorf("request sms provider: %w", err), errSMSTransient)
	}

	status := resp.StatusCode()
	if status/100 == 2 {
		return nil
	}

	detail := buildFailureDetail(status, resp.Body())
	if isRetryableStatus(status) {
		return crerr.Mark(crerr.New(detail), errSMSTransient)
	}
	return crerr.New(detail)
}

func (c *Client) recordCircuitResult(err error) {
	if c.breaker == nil {
		return
	}
	if err == nil {
		c.breaker.RecordSuccess()
		return
	}
	// Only transient provider failures open the circuit.
	if crerr.Is(err, errSMSTransient) {
		c.breaker.RecordFailure()
		return
	}
	c.breaker.RecordSuccess()
}

func isRetryableStatus(status int) bool {
	if status == fasthttp.StatusRequestTimeout || status == fasthttp.StatusTooManyRequests {
		return true
	}
	return status >= 500
}

func buildFailureDetail(status int, body []byte) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("sms provider status=")
	_, _ = buf.WriteString(fmt.Sprintf("%d", status))
	if len(body) > 0 {
		_, _ = buf.WriteString(" body=")
		_, _ = buf.WriteString(truncateForLog(strings.TrimSpace(string(body)), 512))
	}
	return buf.String()
}

func maskPhone(phone string) string {
	if len(phone) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}

func truncateForLog(value string, max int) string {
	if max <= 0 || len(value) <= max {
		return value
	}
	return value[:max] + "...(truncated)"
}
