package extractor

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"bomne-rental-backend/internal/apperr"
	"bomne-rental-backend/internal/domain"
	"bomne-rental-backend/internal/utils"
)

type OpenAIClient struct {
	client *openai.Client
	model  string
	cfg    Config
}

type headerTransport struct {
	rt      http.RoundTripper
	headers http.Header
}

func (t headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	cl := req.Clone(req.Context())
	for k, vs := range t.headers {
		for _, v := range vs {
			cl.Header.Add(k, v)
		}
	}
	return t.rt.RoundTrip(cl)
}

func NewOpenAI(cfg Config) *OpenAIClient {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	h := http.Header{}
	if cfg.Referrer != "" {
		h.Set("HTTP-Referer", cfg.Referrer)
	}
	if cfg.Title != "" {
		h.Set("X-Title", cfg.Title)
	}
	config.HTTPClient = &http.Client{
		Timeout:   60 * time.Second,
		Transport: headerTransport{rt: http.DefaultTransport, headers: h},
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(config),
		model:  model,
		cfg:    cfg,
	}
}

func (c *OpenAIClient) Extract(ctx context.Context, history []domain.ConversationTurn, g *domain.Grounding) (domain.Extraction, error) {
	today := ""
	if c.cfg.Now != nil {
		today = utils.DateOf(c.cfg.Now()).String()
	}
	msgs := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: SystemPrompt(c.cfg.ShopName, g, today),
	})
	for _, t := range history {
		role := openai.ChatMessageRoleUser
		if t.Role == domain.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: t.Text})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:      c.model,
		Messages:   msgs,
		Tools:      openAITools(),
		ToolChoice: "auto",
	})
	if err != nil {
		return domain.Extraction{}, apperr.Extraction(err)
	}
	if len(resp.Choices) == 0 {
		return domain.Extraction{}, apperr.Extraction(errors.New("model returned no choices"))
	}

	msg := resp.Choices[0].Message
	for _, tc := range msg.ToolCalls {
		if tc.Function.Name != CreateRentalTool {
			continue
		}
		intent, err := intentFromJSON(tc.Function.Arguments)
		if err != nil {
			return domain.Extraction{}, err
		}
		return intentExtraction(intent), nil
	}
	return textExtraction(msg.Content), nil
}
