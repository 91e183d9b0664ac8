package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"callcenter-analysis-be/internal/protocol"
	"callcenter-analysis-be/pkg/llm"
	"callcenter-analysis-be/pkg/llm/factory"
	"callcenter-analysis-be/pkg/llm/ollama"
	"callcenter-analysis-be/pkg/llm/openai"
)

type stubProvider struct {
	reply   string
	err     error
	history []llm.Message
	opts    llm.Options
}

func (s *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	s.history = history
	for _, o := range options {
		o(&s.opts)
	}
	return s.reply, s.err
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

func TestParseAnalysis(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		want    protocol.Analysis
		wantErr bool
	}{
		{
			name:  "plain json",
			reply: `{"sentiment":7,"resolution":8,"agentPerformance":9,"insights":[{"type":"success","text":"ok"}],"metrics":{"customerEmotion":"Pozitif","problemResolved":true}}`,
			want: protocol.Analysis{
				OverallScore: 8, Sentiment: 7, Resolution: 8, AgentPerformance: 9,
				Insights: []protocol.Insight{{Type: "success", Text: "ok"}},
				Metrics:  protocol.Metrics{CustomerEmotion: "Pozitif", ProblemResolved: true},
			},
		},
		{
			name:  "fenced with out of range scores",
			reply: "```json\n{\"sentiment\":14,\"resolution\":-2,\"agentPerformance\":6.6}\n```",
			want: protocol.Analysis{
				OverallScore: 6, Sentiment: 10, Resolution: 0, AgentPerformance: 7,
				Insights: []protocol.Insight{},
			},
		},
		{
			name:  "fractional score rounds before averaging",
			reply: `{"sentiment":5,"resolution":5,"agentPerformance":6.5}`,
			want: protocol.Analysis{
				OverallScore: 6, Sentiment: 5, Resolution: 5, AgentPerformance: 7,
				Insights: []protocol.Insight{},
			},
		},
		{name: "not json", reply: "the customer seems happy", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAnalysis(tt.reply)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScoreSendsTranscriptAndOptions(t *testing.T) {
	stub := &stubProvider{reply: `{"sentiment":6,"resolution":6,"agentPerformance":6}`}
	s := NewLLMScorer(stub, nil)

	a, err := s.Score(context.Background(), []protocol.Turn{
		{Seq: 1, Role: protocol.RoleCustomer, Text: "faturam yanlış"},
		{Seq: 2, Role: protocol.RoleAgent, Text: "kontrol ediyorum"},
	})
	require.NoError(t, err)
	assert.Equal(t, 6, a.OverallScore)

	require.Len(t, stub.history, 2)
	assert.Equal(t, "system", stub.history[0].Role)
	assert.Contains(t, stub.history[1].Content, "Müşteri: faturam yanlış\nTemsilci: kontrol ediyorum")
	assert.True(t, stub.opts.JSONReply)
	assert.InDelta(t, 0.3, stub.opts.Temperature, 1e-9)
	assert.InDelta(t, 0.9, stub.opts.TopP, 1e-9)
	assert.Equal(t, 1500, stub.opts.MaxTokens)
}

func TestScoreErrors(t *testing.T) {
	s := NewLLMScorer(&stubProvider{}, nil)
	_, err := s.Score(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyConversation)

	boom := errors.New("connection refused")
	s = NewLLMScorer(&stubProvider{err: boom}, nil)
	_, err = s.ScoreText(context.Background(), "Customer: hi")
	assert.ErrorIs(t, err, boom)

	s = NewLLMScorer(&stubProvider{reply: "sorry, I cannot"}, nil)
	_, err = s.ScoreText(context.Background(), "Customer: hi")
	assert.Error(t, err)
}

func TestScoreOverOpenAICompatibleEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-oss-20b", body["model"])
		assert.EqualValues(t, 1500, body["max_tokens"])
		assert.Equal(t, map[string]interface{}{"type": "json_object"}, body["response_format"])

		content := "```json\n{\"sentiment\":8,\"resolution\":9,\"agentPerformance\":10,\"insights\":[{\"type\":\"info\",\"text\":\"x\"}]}\n```"
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{{"message": map[string]string{"content": content}}},
		})
	}))
	defer srv.Close()

	provider := openai.NewProvider("secret", srv.URL+"/v1", "gpt-oss-20b", 5*time.Second)
	a, err := NewLLMScorer(provider, nil).ScoreText(context.Background(), "Customer: hi\nAgent: hello")
	require.NoError(t, err)
	assert.Equal(t, 9, a.OverallScore)
	assert.Len(t, a.Insights, 1)
}

func TestScoreOverOllama(t *testing.T) {
	var body map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"model":   "llama3.1",
			"message": map[string]string{"role": "assistant", "content": `{"sentiment":4,"resolution":5,"agentPerformance":6}`},
			"done":    true,
		})
	}))
	defer srv.Close()

	provider, err := factory.NewLLMProvider("ollama", "llama3.1", srv.URL+"/", "", 5*time.Second)
	require.NoError(t, err)
	a, err := NewLLMScorer(provider, nil).Score(context.Background(), []protocol.Turn{
		{Seq: 1, Role: protocol.RoleCustomer, Text: "hattım çekmiyor"},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, a.OverallScore)

	assert.Equal(t, "llama3.1", body["model"])
	assert.Equal(t, false, body["stream"])
	assert.Equal(t, "json", body["format"])
	opts, ok := body["options"].(map[string]interface{})
	require.True(t, ok)
	assert.InDelta(t, 0.3, opts["temperature"], 1e-9)
	assert.InDelta(t, 0.9, opts["top_p"], 1e-9)
	assert.EqualValues(t, 1500, opts["num_predict"])

	msgs, ok := body["messages"].([]interface{})
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[1].(map[string]interface{})["content"], "Müşteri: hattım çekmiyor")
}

func TestOllamaErrorReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "model \"llama3.1\" not found"})
	}))
	defer srv.Close()

	_, err := ollama.NewProvider(srv.URL, "llama3.1", time.Second).Generate(context.Background(), "hi")
	require.EqualError(t, err, `ollama error (status 404): model "llama3.1" not found`)
}

func TestTruncateKeepsWholeRunes(t *testing.T) {
	assert.Equal(t, "çok", truncate("çok", 3))
	assert.Equal(t, "müş...", truncate("müşteri", 3))
	assert.True(t, utf8.ValidString(truncate("ğğğğğğ", 4)))
}
