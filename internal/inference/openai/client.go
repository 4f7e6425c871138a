package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/at-ishikawa/lunaword/internal/inference"
	"resty.dev/v3"
)

const defaultBaseURL = "https://api.openai.com/v1"

type Client struct {
	httpClient *resty.Client
	model      string
}

func NewClient(apiKey, model, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Authorization", "Bearer "+apiKey)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient: client,
		model:      model,
	}
}

func (client Client) Close() error {
	return client.httpClient.Close()
}

// GetModel returns the model name configured for this client
func (client Client) GetModel() string {
	return client.model
}

type ChatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    float32         `json:"temperature,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

type ResponseFormat struct {
	Type string `json:"type"`
}

var jsonObjectFormat = &ResponseFormat{Type: "json_object"}

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Index        int           `json:"index"`
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type ChoiceMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

const wordCardSystemPrompt = `You are a lexicographer writing vocabulary flashcards for %[1]s-speaking learners of English.

The user sends a word or short phrase. It may be written in English or in another language.
If it is not English, translate it into the single most common English word or phrase first and describe that English word.

Return ONLY a JSON object with these fields:
- "word": the English word, lower-case unless it is a proper noun
- "phonetic": IPA transcription without surrounding slashes
- "meaning": the meaning in %[1]s, including the part of speech
- "roots": the etymology or word roots explained in %[1]s
- "collocations": 3 to 5 common English collocations
- "mnemonic": a short memory trick in %[1]s
- "category": one short topic label in %[1]s, such as a scene where the word is used
- "sentences": exactly 3 objects {"text": "<English sentence>", "translation": "<%[1]s translation>"} ordered from easy to difficult

If the input is not a real word or cannot be translated, return {"word": ""}.
Do not include any text outside the JSON.`

// GenerateWordCard implements the inference.Client interface. It makes a single attempt.
func (client *Client) GenerateWordCard(
	ctx context.Context,
	params inference.GenerateWordCardRequest,
) (inference.GenerateWordCardResponse, error) {
	language := params.MeaningLanguage
	if language == "" {
		language = "Chinese"
	}
	requestBody := ChatCompletionRequest{
		Model:          client.model,
		Temperature:    0.3,
		ResponseFormat: jsonObjectFormat,
		Messages: []Message{
			{Role: RoleSystem, Content: fmt.Sprintf(wordCardSystemPrompt, language)},
			{Role: RoleUser, Content: strings.TrimSpace(params.Query)},
		},
	}

	content, err := client.chatCompletion(ctx, requestBody)
	if err != nil {
		return inference.GenerateWordCardResponse{}, err
	}

	var decoded inference.GenerateWordCardResponse
	if err := json.Unmarshal([]byte(extractJSONObject(content)), &decoded); err != nil {
		slog.Default().Error("Failed to parse OpenAI response as JSON",
			"query", params.Query,
			"error", err)
		return inference.GenerateWordCardResponse{}, fmt.Errorf("json.Unmarshal(%s) > %w: %w", content, inference.ErrMalformedResponse, err)
	}
	if strings.TrimSpace(decoded.Word) == "" {
		return inference.GenerateWordCardResponse{}, fmt.Errorf("query %q > %w", params.Query, inference.ErrUnknownWord)
	}
	return decoded, nil
}

const suggestWordsSystemPrompt = `You help learners grow their English vocabulary around a topic.

The user sends a JSON object {"topic": string, "count": number, "exclude": [string]}.
Suggest exactly "count" distinct, useful English words that are closely related to the topic.
Never suggest any word listed in "exclude".

Return ONLY a JSON object {"words": ["word1", "word2", ...]} with lower-case words.`

// SuggestWords implements the inference.Client interface.
func (client *Client) SuggestWords(
	ctx context.Context,
	params inference.SuggestWordsRequest,
) (inference.SuggestWordsResponse, error) {
	userContent, err := json.Marshal(params)
	if err != nil {
		return inference.SuggestWordsResponse{}, fmt.Errorf("failed to marshal suggest request: %w", err)
	}
	requestBody := ChatCompletionRequest{
		Model:          client.model,
		Temperature:    0.7,
		ResponseFormat: jsonObjectFormat,
		Messages: []Message{
			{Role: RoleSystem, Content: suggestWordsSystemPrompt},
			{Role: RoleUser, Content: string(userContent)},
		},
	}

	content, err := client.chatCompletion(ctx, requestBody)
	if err != nil {
		return inference.SuggestWordsResponse{}, err
	}

	var decoded inference.SuggestWordsResponse
	if err := json.Unmarshal([]byte(extractJSONObject(content)), &decoded); err != nil {
		return inference.SuggestWordsResponse{}, fmt.Errorf("json.Unmarshal(%s) > %w: %w", content, inference.ErrMalformedResponse, err)
	}
	return decoded, nil
}

func (client *Client) chatCompletion(ctx context.Context, requestBody ChatCompletionRequest) (string, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		SetResult(&ChatCompletionResponse{}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return "", classifyResponseError(response.StatusCode(), response.String())
	}

	responseBody := response.Result().(*ChatCompletionResponse)
	if responseBody == nil || len(responseBody.Choices) == 0 {
		return "", fmt.Errorf("empty response body or choices: %s > %w", response.String(), inference.ErrMalformedResponse)
	}

	content := responseBody.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty response content: %s > %w", response.String(), inference.ErrMalformedResponse)
	}
	slog.Default().Debug("openai response content",
		"request", requestBody,
		"response", responseBody,
	)
	return content, nil
}
