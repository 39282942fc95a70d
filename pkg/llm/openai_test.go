package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wanderplan/internal/models/request_models"
	"wanderplan/pkg/utils"
)

func shanghaiRequest() request_models.GenerationRequest {
	return request_models.GenerationRequest{
		Origin:      "Hangzhou",
		Destination: "Shanghai",
		StartDate:   "2025-01-10",
		EndDate:     "2025-01-12",
	}
}

func chatCompletion(id, content string) map[string]interface{} {
	return map[string]interface{}{
		"id":     id,
		"object": "chat.completion",
		"model":  "test-model",
		"choices": []interface{}{
			map[string]interface{}{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]interface{}{"role": "assistant", "content": content},
			},
		},
	}
}

func newUpstream(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAICompatibleClient_Generate(t *testing.T) {
	var gotBody map[string]interface{}
	srv := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatCompletion("chatcmpl-7", "```json\n"+minimalItinerary+"\n```"))
	})

	client := NewOpenAICompatibleClient(ProviderOpenAI, "sk-test", srv.URL, "gpt-test")
	candidate, err := client.Generate(context.Background(), shanghaiRequest())
	require.NoError(t, err)

	assert.Equal(t, "Shanghai", candidate["destination"])
	seg := candidate["days"].([]interface{})[0].(map[string]interface{})["segments"].([]interface{})[0].(map[string]interface{})
	assert.Contains(t, seg["notes"], "[ref:chatcmpl-7] ")

	assert.Equal(t, "gpt-test", gotBody["model"])
	format := gotBody["response_format"].(map[string]interface{})
	assert.Equal(t, "json_object", format["type"])
	messages := gotBody["messages"].([]interface{})
	require.Len(t, messages, 2)
	assert.Contains(t, messages[1].(map[string]interface{})["content"], "Exactly 3 entries")
}

func TestOpenAICompatibleClient_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		kind    utils.ErrorKind
		message string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":{"message":"bad key","type":"invalid_request_error"}}`, utils.KindBadRequest, "openai rejected the configured credentials"},
		{"forbidden", http.StatusForbidden, `{"error":{"message":"no access","type":"invalid_request_error"}}`, utils.KindBadRequest, "openai rejected the configured credentials"},
		{"server error", http.StatusInternalServerError, `{"error":{"message":"boom","type":"server_error"}}`, utils.KindBadGateway, "openai upstream returned status 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			client := NewOpenAICompatibleClient(ProviderOpenAI, "sk-test", srv.URL, "gpt-test")
			_, err := client.Generate(context.Background(), shanghaiRequest())
			require.Error(t, err)
			assert.Equal(t, tt.kind, utils.KindOf(err))
			assert.Equal(t, tt.message, utils.MessageOf(err))
		})
	}
}

func TestOpenAICompatibleClient_NonJSONContent(t *testing.T) {
	srv := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatCompletion("chatcmpl-8", "I am not able to plan that trip."))
	})

	client := NewOpenAICompatibleClient(ProviderBailian, "sk-test", srv.URL, "qwen-plus")
	_, err := client.Generate(context.Background(), shanghaiRequest())
	require.Error(t, err)
	assert.Equal(t, utils.KindBadGateway, utils.KindOf(err))
}

func TestOpenAICompatibleClient_DeadlinePropagates(t *testing.T) {
	srv := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := NewOpenAICompatibleClient(ProviderOpenAI, "sk-test", srv.URL, "gpt-test")
	_, err := client.Generate(ctx, shanghaiRequest())
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
