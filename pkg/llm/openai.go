package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"

	"wanderplan/internal/models/request_models"
	"wanderplan/pkg/utils"
)

// OpenAICompatibleClient talks to any chat-completions endpoint that speaks the OpenAI
// wire format. The bailian variant is this client pointed at DashScope.
type OpenAICompatibleClient struct {
	name   string
	client *openai.Client
	model  string
}

func NewOpenAICompatibleClient(name, apiKey, baseURL, model string) *OpenAICompatibleClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAICompatibleClient{
		name:   name,
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (c *OpenAICompatibleClient) Name() string { return c.name }

func (c *OpenAICompatibleClient) Close() error { return nil }

func (c *OpenAICompatibleClient) Generate(ctx context.Context, req request_models.GenerationRequest) (RawCandidate, error) {
	dayCount, err := utils.InclusiveDayCount(req.StartDate, req.EndDate)
	if err != nil || dayCount <= 0 {
		return nil, utils.NewBadRequestError("date range invalid")
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(req, dayCount)},
		},
		Temperature: 0.2,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, c.classify(ctx, err)
	}
	if len(resp.Choices) == 0 {
		return nil, utils.NewBadGatewayError(fmt.Sprintf("%s returned no choices", c.name), nil)
	}

	candidate, err := ParseCandidate(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	tagCorrelationID(candidate, resp.ID)
	return candidate, nil
}

// classify maps transport failures onto the error taxonomy. Context errors pass through
// untouched so the caller can tell a deadline from an upstream fault.
func (c *OpenAICompatibleClient) classify(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}

	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return &utils.AppError{
			Kind:    utils.KindBadRequest,
			Message: fmt.Sprintf("%s rejected the configured credentials", c.name),
			Cause:   err,
		}
	}
	if status != 0 {
		return utils.NewBadGatewayError(fmt.Sprintf("%s upstream returned status %d", c.name, status), err)
	}
	return utils.NewBadGatewayError(fmt.Sprintf("%s request failed", c.name), err)
}
