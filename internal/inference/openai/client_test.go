package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/at-ishikawa/lunaword/internal/inference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"resty.dev/v3"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return &Client{
		httpClient: resty.New().SetBaseURL(server.URL),
		model:      "gpt-4",
	}
}

func writeCompletion(t *testing.T, w http.ResponseWriter, content string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err := json.NewEncoder(w).Encode(ChatCompletionResponse{
		ID:      "chatcmpl-123",
		Object:  "chat.completion",
		Created: 1677652288,
		Model:   "gpt-4",
		Choices: []Choice{
			{
				Index:        0,
				Message:      ChoiceMessage{Role: RoleAssistant, Content: content},
				FinishReason: "stop",
			},
		},
	})
	require.NoError(t, err)
}

func TestClient_GenerateWordCard(t *testing.T) {
	tests := []struct {
		name              string
		request           inference.GenerateWordCardRequest
		mockServerHandler func(t *testing.T, w http.ResponseWriter, r *http.Request)

		wantResponse inference.GenerateWordCardResponse
		wantErrorIs  error
		wantError    bool
	}{
		{
			name:    "Success",
			request: inference.GenerateWordCardRequest{Query: " Apple ", MeaningLanguage: "Chinese"},
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/chat/completions", r.URL.Path)

				var reqBody ChatCompletionRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
				assert.Equal(t, "gpt-4", reqBody.Model)
				require.Len(t, reqBody.Messages, 2)
				assert.Equal(t, RoleSystem, reqBody.Messages[0].Role)
				assert.Contains(t, reqBody.Messages[0].Content, "Chinese")
				assert.Equal(t, "Apple", reqBody.Messages[1].Content)
				require.NotNil(t, reqBody.ResponseFormat)
				assert.Equal(t, "json_object", reqBody.ResponseFormat.Type)

				writeCompletion(t, w, `{
					"word": "apple",
					"phonetic": "ˈæp.əl",
					"meaning": "n. 苹果",
					"roots": "古英语 æppel",
					"collocations": ["apple pie", "apple juice", "apple tree"],
					"mnemonic": "一天一苹果",
					"category": "水果",
					"sentences": [
						{"text": "I eat an apple.", "translation": "我吃一个苹果。"},
						{"text": "The apple tree blossomed.", "translation": "苹果树开花了。"},
						{"text": "She is the apple of his eye.", "translation": "她是他的掌上明珠。"}
					]
				}`)
			},
			wantResponse: inference.GenerateWordCardResponse{
				Word:         "apple",
				Phonetic:     "ˈæp.əl",
				Meaning:      "n. 苹果",
				Roots:        "古英语 æppel",
				Collocations: []string{"apple pie", "apple juice", "apple tree"},
				Mnemonic:     "一天一苹果",
				Category:     "水果",
				Sentences: []inference.Sentence{
					{Text: "I eat an apple.", Translation: "我吃一个苹果。"},
					{Text: "The apple tree blossomed.", Translation: "苹果树开花了。"},
					{Text: "She is the apple of his eye.", Translation: "她是他的掌上明珠。"},
				},
			},
		},
		{
			name:    "JSON wrapped in a code fence",
			request: inference.GenerateWordCardRequest{Query: "苹果"},
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				writeCompletion(t, w, "```json\n{\"word\": \"apple\", \"meaning\": \"n. {苹果}\"}\n```")
			},
			wantResponse: inference.GenerateWordCardResponse{
				Word:    "apple",
				Meaning: "n. {苹果}",
			},
		},
		{
			name:    "Unknown word",
			request: inference.GenerateWordCardRequest{Query: "qwxzv"},
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				writeCompletion(t, w, `{"word": ""}`)
			},
			wantErrorIs: inference.ErrUnknownWord,
		},
		{
			name:    "Malformed content",
			request: inference.GenerateWordCardRequest{Query: "apple"},
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				writeCompletion(t, w, `{"word": "apple", "collocations": "not a list"}`)
			},
			wantErrorIs: inference.ErrMalformedResponse,
		},
		{
			name:    "Empty choices",
			request: inference.GenerateWordCardRequest{Query: "apple"},
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"id": "x", "choices": []}`))
			},
			wantErrorIs: inference.ErrMalformedResponse,
		},
		{
			name:    "Quota exhausted",
			request: inference.GenerateWordCardRequest{Query: "apple"},
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error": {"message": "You exceeded your current quota", "type": "insufficient_quota", "code": "insufficient_quota"}}`))
			},
			wantErrorIs: inference.ErrInsufficientQuota,
		},
		{
			name:    "Quota exhausted with 429",
			request: inference.GenerateWordCardRequest{Query: "apple"},
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error": {"message": "You exceeded your current quota", "type": "insufficient_quota", "code": "insufficient_quota"}}`))
			},
			wantErrorIs: inference.ErrInsufficientQuota,
		},
		{
			name:    "Rate limited",
			request: inference.GenerateWordCardRequest{Query: "apple"},
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error": {"message": "Rate limit reached", "type": "requests", "code": "rate_limit_exceeded"}}`))
			},
			wantError: true,
		},
		{
			name:    "Rate limited without body",
			request: inference.GenerateWordCardRequest{Query: "apple"},
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
			wantError: true,
		},
		{
			name:    "Server error",
			request: inference.GenerateWordCardRequest{Query: "apple"},
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error": {"message": "boom"}}`))
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				tt.mockServerHandler(t, w, r)
			})

			got, err := client.GenerateWordCard(context.Background(), tt.request)
			if tt.wantErrorIs != nil {
				assert.ErrorIs(t, err, tt.wantErrorIs)
				return
			}
			if tt.wantError {
				require.Error(t, err)
				assert.NotErrorIs(t, err, inference.ErrInsufficientQuota)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantResponse, got)
		})
	}
}

func TestClient_SuggestWords(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var reqBody ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		require.Len(t, reqBody.Messages, 2)

		var userRequest inference.SuggestWordsRequest
		require.NoError(t, json.Unmarshal([]byte(reqBody.Messages[1].Content), &userRequest))
		assert.Equal(t, inference.SuggestWordsRequest{Topic: "fruit", Count: 3, Exclude: []string{"apple"}}, userRequest)

		writeCompletion(t, w, `{"words": ["banana", "cherry", "grape"]}`)
	})

	got, err := client.SuggestWords(context.Background(), inference.SuggestWordsRequest{
		Topic:   "fruit",
		Count:   3,
		Exclude: []string{"apple"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"banana", "cherry", "grape"}, got.Words)
}

func TestClient_SuggestWords_Malformed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeCompletion(t, w, `banana, cherry`)
	})

	_, err := client.SuggestWords(context.Background(), inference.SuggestWordsRequest{Topic: "fruit", Count: 2})
	assert.ErrorIs(t, err, inference.ErrMalformedResponse)
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "plain object",
			content: `{"a": 1}`,
			want:    `{"a": 1}`,
		},
		{
			name:    "surrounding prose",
			content: `Here you go: {"a": {"b": 2}} hope it helps`,
			want:    `{"a": {"b": 2}}`,
		},
		{
			name:    "braces inside strings",
			content: `{"a": "}{", "b": "\"}"}`,
			want:    `{"a": "}{", "b": "\"}"}`,
		},
		{
			name:    "incomplete object",
			content: `{"a": 1`,
			want:    `{"a": 1`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSONObject(tt.content))
		})
	}
}

func TestNewClient(t *testing.T) {
	client := NewClient("key", "gpt-4o-mini", "")
	defer client.Close()
	assert.Equal(t, "gpt-4o-mini", client.GetModel())
	assert.Equal(t, defaultBaseURL, client.httpClient.BaseURL())
}
