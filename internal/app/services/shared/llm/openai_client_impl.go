package llm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"nutrisha-service/internal/app/config"
	"nutrisha-service/internal/app/contracts"
	"nutrisha-service/internal/pkg/constvars"
	"nutrisha-service/internal/pkg/dto/requests"
	"nutrisha-service/internal/pkg/dto/responses"
	"nutrisha-service/internal/pkg/exceptions"
	"nutrisha-service/internal/pkg/utils"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const chatCompletionsPath = "/chat/completions"

// maxErrorBodyBytes bounds how much of an upstream error body ends up in logs.
const maxErrorBodyBytes = 2048

type chatCompletionClient struct {
	BaseUrl        string
	APIKey         string
	Model          string
	MaxRetries     int
	InitialBackoff time.Duration
	HTTPClient     *http.Client
	Limiter        *rate.Limiter
	Log            *zap.Logger
	sleep          func(ctx context.Context, d time.Duration) error
}

func NewChatCompletionClient(internalConfig *config.InternalConfig, logger *zap.Logger) contracts.ChatCompletionClient {
	llmConfig := internalConfig.LLM

	limit := rate.Inf
	if llmConfig.RequestsPerSecond > 0 {
		limit = rate.Limit(llmConfig.RequestsPerSecond)
	}

	return &chatCompletionClient{
		BaseUrl:        strings.TrimRight(llmConfig.BaseUrl, "/"),
		APIKey:         llmConfig.APIKey,
		Model:          llmConfig.Model,
		MaxRetries:     llmConfig.MaxRetries,
		InitialBackoff: time.Duration(llmConfig.InitialBackoffInMilliseconds) * time.Millisecond,
		HTTPClient: &http.Client{
			Timeout: time.Duration(llmConfig.RequestTimeoutInSeconds) * time.Second,
		},
		Limiter: rate.NewLimiter(limit, 1),
		Log:     logger,
		sleep:   sleepWithContext,
	}
}

func (c *chatCompletionClient) CreateChatCompletion(ctx context.Context, request *requests.ChatCompletion) (*responses.ChatCompletion, error) {
	requestID := utils.GetRequestID(ctx)
	if request.Model == "" {
		request.Model = c.Model
	}
	c.Log.Info("chatCompletionClient.CreateChatCompletion called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingModelKey, request.Model),
	)

	payload, err := json.Marshal(request)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	var lastErr error
	attempts := c.MaxRetries + 1
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			backoff := c.InitialBackoff * time.Duration(1<<(attempt-2))
			c.Log.Warn("chatCompletionClient.CreateChatCompletion retrying",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Int(constvars.LoggingAttemptKey, attempt),
				zap.Duration(constvars.LoggingBackoffKey, backoff),
				zap.Error(lastErr),
			)
			if err := c.sleep(ctx, backoff); err != nil {
				return nil, contextError(err)
			}
		}

		if err := c.Limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil, contextError(ctx.Err())
			}
			return nil, exceptions.ErrLLMRateLimiter(err)
		}

		result, retryable, err := c.send(ctx, payload)
		if err == nil {
			c.Log.Info("chatCompletionClient.CreateChatCompletion succeeded",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingModelKey, result.Model),
				zap.Int(constvars.LoggingAttemptKey, attempt),
				zap.Int(constvars.LoggingPromptTokensKey, result.Usage.PromptTokens),
				zap.Int(constvars.LoggingCompletionTokenKey, result.Usage.CompletionTokens),
			)
			return result, nil
		}
		if !retryable {
			c.Log.Error("chatCompletionClient.CreateChatCompletion failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Int(constvars.LoggingAttemptKey, attempt),
				zap.Error(err),
			)
			return nil, err
		}
		lastErr = err
	}

	c.Log.Error("chatCompletionClient.CreateChatCompletion retries exhausted",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingAttemptKey, attempts),
		zap.Error(lastErr),
	)
	return nil, exceptions.ErrLLMRequest(lastErr, attempts)
}

// send performs one attempt and reports whether a failure is worth retrying.
func (c *chatCompletionClient) send(ctx context.Context, payload []byte) (*responses.ChatCompletion, bool, error) {
	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, c.BaseUrl+chatCompletionsPath, bytes.NewReader(payload))
	if err != nil {
		return nil, false, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	req.Header.Set(constvars.HeaderAuthorization, constvars.AuthorizationBearerPrefix+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, contextError(ctx.Err())
		}
		return nil, true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		statusErr := fmt.Errorf("chat completions returned status %d", resp.StatusCode)
		retryable := resp.StatusCode == constvars.StatusTooManyRequests || resp.StatusCode >= constvars.StatusInternalServerError
		return nil, retryable, exceptions.ErrLLMUnexpectedStatus(statusErr, resp.StatusCode, upstreamMessage(body))
	}

	result := new(responses.ChatCompletion)
	err = json.NewDecoder(resp.Body).Decode(result)
	if err != nil {
		return nil, false, exceptions.ErrDecodeResponse(err, "ChatCompletion")
	}
	if len(result.Choices) == 0 {
		return nil, false, exceptions.ErrLLMEmptyChoices(nil)
	}
	return result, false, nil
}

// contextError maps an expired deadline to a gateway timeout. A canceled
// caller gets its own error back.
func contextError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return exceptions.ErrServerDeadlineExceeded(err)
	}
	return err
}

// upstreamMessage prefers the API's error.message over the raw body.
func upstreamMessage(body []byte) string {
	var apiErr responses.ChatCompletionError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return apiErr.Error.Message
	}
	return string(body)
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
