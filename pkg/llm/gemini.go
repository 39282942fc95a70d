package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"wanderplan/internal/models/request_models"
	"wanderplan/pkg/utils"
)

type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &GeminiClient{client: client, model: model}, nil
}

func (c *GeminiClient) Name() string { return ProviderGemini }

func (c *GeminiClient) Close() error { return c.client.Close() }

func (c *GeminiClient) Generate(ctx context.Context, req request_models.GenerationRequest) (RawCandidate, error) {
	dayCount, err := utils.InclusiveDayCount(req.StartDate, req.EndDate)
	if err != nil || dayCount <= 0 {
		return nil, utils.NewBadRequestError("date range invalid")
	}

	m := c.client.GenerativeModel(c.model)
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.2)
	m.SetTopP(0.8)
	m.SystemInstruction = genai.NewUserContent(genai.Text(SystemPrompt))

	resp, err := m.GenerateContent(ctx, genai.Text(BuildPrompt(req, dayCount)))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, utils.NewBadGatewayError("gemini request failed", err)
	}

	text := responseText(resp)
	if text == "" {
		return nil, utils.NewBadGatewayError("gemini returned no content", nil)
	}
	return ParseCandidate(text)
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		} else {
			fmt.Fprintf(&b, "%v", part)
		}
	}
	return b.String()
}
