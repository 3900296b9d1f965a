package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synergyhealth/hospital-discovery/internal/domain/providers"
	"github.com/synergyhealth/hospital-discovery/pkg/config"
	apperrors "github.com/synergyhealth/hospital-discovery/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(&config.GeminiConfig{APIKey: "test-key", Model: "gemini-1.5-flash"})
	require.NoError(t, err)
	client.baseURL = server.URL
	return client
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(&config.GeminiConfig{})
	assert.Error(t, err)

	_, err = NewClient(nil)
	assert.Error(t, err)
}

func TestClient_Complete_ReturnsFirstCandidateText(t *testing.T) {
	var captured generateRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(generateResponse{
			Candidates: []struct {
				Content content `json:"content"`
			}{
				{Content: content{Parts: []contentPart{{Text: "ranked reply"}}}},
			},
		})
	})

	got, err := client.Complete(context.Background(), providers.CompletionRequest{
		Prompt: "rank these hospitals",
		System: "respond with JSON",
	})

	require.NoError(t, err)
	assert.Equal(t, "ranked reply", got)
	require.Len(t, captured.Contents, 1)
	assert.Equal(t, "rank these hospitals", captured.Contents[0].Parts[0].Text)
	require.NotNil(t, captured.SystemInstruction)
	assert.Equal(t, "respond with JSON", captured.SystemInstruction.Parts[0].Text)
}

func TestClient_Complete_EncodesImagesInline(t *testing.T) {
	var captured generateRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(generateResponse{
			Candidates: []struct {
				Content content `json:"content"`
			}{
				{Content: content{Parts: []contentPart{{Text: "summary"}}}},
			},
		})
	})

	_, err := client.Complete(context.Background(), providers.CompletionRequest{
		Prompt: "summarize this document",
		Images: []providers.ImagePart{{MIMEType: "image/png", Data: []byte{0x89, 0x50}}},
	})

	require.NoError(t, err)
	require.Len(t, captured.Contents[0].Parts, 2)
	inline := captured.Contents[0].Parts[1].InlineData
	require.NotNil(t, inline)
	assert.Equal(t, "image/png", inline.MIMEType)
	assert.Equal(t, "iVA=", inline.Data)
}

func TestClient_Complete_NonSuccessStatusIsExternalError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.Complete(context.Background(), providers.CompletionRequest{Prompt: "hi"})

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
	assert.Contains(t, err.Error(), "429")
}

func TestClient_Complete_EmptyCandidatesIsError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{})
	})

	_, err := client.Complete(context.Background(), providers.CompletionRequest{Prompt: "hi"})

	assert.Error(t, err)
}
