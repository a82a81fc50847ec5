package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/homemadechefs/chefcms/internal/models"
)

// Client calls the Gemini generative API to translate content fields.
// Construct once per process and reuse; the underlying HTTP client pools
// connections.
type Client struct {
	client  *resty.Client
	apiKey  string
	model   string
	baseURL string
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// NewClient creates a Gemini translation client
func NewClient(apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		client:  resty.New().SetTimeout(timeout),
		apiKey:  apiKey,
		model:   model,
		baseURL: "https://generativelanguage.googleapis.com/v1beta/models",
	}
}

// Translate translates a single field's text into the target language.
// The response is used verbatim apart from whitespace trimming; markup
// preservation is requested in the prompt but not validated here.
func (c *Client) Translate(ctx context.Context, text string, target models.Language) (string, error) {
	prompt := BuildTranslationPrompt(text, target)

	response, err := c.callAPI(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("error calling Gemini API: %w", err)
	}

	return cleanResponse(response), nil
}

func (c *Client) callAPI(ctx context.Context, prompt string) (string, error) {
	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	req := geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{{
				Text: prompt,
			}},
		}},
	}

	var resp geminiResponse
	httpResp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&resp).
		SetError(&resp).
		Post(url)

	if err != nil {
		return "", fmt.Errorf("API request failed: %w", err)
	}

	if resp.Error != nil {
		return "", fmt.Errorf("API error: %s", resp.Error.Message)
	}

	if httpResp.IsError() {
		return "", fmt.Errorf("API returned status %d", httpResp.StatusCode())
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// cleanResponse trims whitespace and strips the markdown code fences the
// model sometimes wraps its output in.
func cleanResponse(response string) string {
	s := strings.TrimSpace(response)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```html")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}
