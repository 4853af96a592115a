package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://api.openai.com"
	DefaultModel   = "gpt-4o"
)

const promptTemplate = `You are a nutrition expert. Look at this image of %s. Based on the portion size visible in the image, estimate the total calories.

IMPORTANT: Respond with ONLY a JSON object in this exact format, nothing else:
{
  "calories": <number>,
  "portion": "<brief description of portion size>"
}

Do not include any other text, explanations, or markdown formatting.`

/* ─── Wire types ─────────────────────────────────────────────────────── */

type imageURL struct {
	URL string `json:"url"`
}

// contentPart is one element of a multimodal user message.
type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	Messages  []chatMessage `json:"messages"`
}

/* ─── Client ─────────────────────────────────────────────────────────── */

// OpenAI estimates calories with an OpenAI vision-capable chat model. It
// talks to the chat completions endpoint over plain net/http.
type OpenAI struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

var _ Estimator = (*OpenAI)(nil)

// NewOpenAI creates a client. Empty baseURL and model fall back to the
// public API and gpt-4o.
func NewOpenAI(apiKey, baseURL, model string) *OpenAI {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &OpenAI{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Estimate sends the photo and label to the model and parses its
// {"calories", "portion"} answer.
func (o *OpenAI) Estimate(ctx context.Context, img Image, label string) (Estimate, error) {
	if o.apiKey == "" {
		return Estimate{}, failed("OPENAI_API_KEY not set", nil)
	}
	if len(img.Data) == 0 {
		return Estimate{}, failed("empty image", nil)
	}

	content, err := o.complete(ctx, chatMessage{
		Role: "user",
		Content: []contentPart{
			{Type: "text", Text: fmt.Sprintf(promptTemplate, label)},
			{Type: "image_url", ImageURL: &imageURL{URL: img.DataURL()}},
		},
	})
	if err != nil {
		return Estimate{}, err
	}
	return parseEstimate(content)
}

// complete sends one chat completions request and returns the content of the
// first choice.
func (o *OpenAI) complete(ctx context.Context, msg chatMessage) (string, error) {
	bodyBytes, err := json.Marshal(chatRequest{
		Model:     o.model,
		MaxTokens: 500,
		Messages:  []chatMessage{msg},
	})
	if err != nil {
		return "", failed("marshal request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/v1/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", failed("create request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return "", failed("http request", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", failed("read response", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", failed(fmt.Sprintf("openai returned status %d", resp.StatusCode), fmt.Errorf("%s", respBytes))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBytes, &result); err != nil {
		return "", failed("unmarshal response", err)
	}
	if len(result.Choices) == 0 {
		return "", failed("no choices in response", nil)
	}
	return result.Choices[0].Message.Content, nil
}

// parseEstimate decodes the model's answer. Calories may come back as a
// float and are rounded to whole kcal.
func parseEstimate(content string) (Estimate, error) {
	var raw struct {
		Calories *float64 `json:"calories"`
		Portion  string   `json:"portion"`
	}
	if err := json.Unmarshal([]byte(stripFences(content)), &raw); err != nil {
		return Estimate{}, failed("parse model answer", err)
	}
	if raw.Calories == nil {
		return Estimate{}, failed("model answer has no calories", nil)
	}
	if *raw.Calories < 0 {
		return Estimate{}, failed(fmt.Sprintf("model answered %v calories", *raw.Calories), nil)
	}
	return Estimate{
		Calories: int(math.Round(*raw.Calories)),
		Portion:  strings.TrimSpace(raw.Portion),
	}, nil
}
