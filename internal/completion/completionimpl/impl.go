package completionimpl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/orgball2608/insta-event-calendar/internal/completion"
	"github.com/orgball2608/insta-event-calendar/internal/ratelimit"
	"github.com/orgball2608/insta-event-calendar/pkg/config"
	"github.com/orgball2608/insta-event-calendar/pkg/errors"
	"github.com/orgball2608/insta-event-calendar/pkg/logger"
	"github.com/tidwall/gjson"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

// OpenAI talks to an OpenAI compatible chat completions endpoint.
type OpenAI struct {
	client      *retryablehttp.Client
	limiter     ratelimit.Limiter
	endpoint    string
	apiKey      string
	model       string
	temperature float64
	logger      logger.Logger
}

func New(opts Opts) *OpenAI {
	log := opts.Logger.WithComponent("Completion")
	cfg := opts.Config.Completion

	client := retryablehttp.NewClient()
	client.Logger = log
	// the extractor owns the retry budget, one Complete is one request
	client.RetryMax = 0
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	client.HTTPClient.Timeout = cfg.Timeout

	return &OpenAI{
		client:      client,
		limiter:     ratelimit.NewInMemoryLimiter(cfg.RequestsPerMinute, time.Minute, 1),
		endpoint:    cfg.Endpoint,
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		logger:      log,
	}
}

var _ completion.Client = (*OpenAI)(nil)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

func (o *OpenAI) Complete(ctx context.Context, req completion.Request) (string, error) {
	if err := o.limiter.Wait(ctx, o.limiterKey()); err != nil {
		return "", errors.Transport("rate limiter wait aborted", err)
	}

	body, err := json.Marshal(chatRequest{
		Model: o.model,
		Messages: []chatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
		Temperature: o.temperature,
	})
	if err != nil {
		return "", err
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, o.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if o.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)
	}

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return "", errors.Transport("completion request failed", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Transport("failed to read completion response", err)
	}

	if resp.StatusCode >= 300 {
		if msg := gjson.GetBytes(raw, "error.message").String(); msg != "" {
			return "", errors.Transport(fmt.Sprintf("completion failed with HTTP %d", resp.StatusCode), errors.New(msg))
		}
		return "", errors.Transport(fmt.Sprintf("completion failed with HTTP %d", resp.StatusCode), nil)
	}

	content := gjson.GetBytes(raw, "choices.0.message.content")
	if !content.Exists() || strings.TrimSpace(content.String()) == "" {
		return "", errors.Transport("empty completion", completion.ErrEmptyCompletion)
	}
	return content.String(), nil
}

func (o *OpenAI) limiterKey() string {
	if u, err := url.Parse(o.endpoint); err == nil && u.Host != "" {
		return u.Host
	}
	return o.endpoint
}
