package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"callcenter-analysis-be/internal/pkg/logger"
	"callcenter-analysis-be/internal/protocol"
	"callcenter-analysis-be/pkg/llm"
)

var ErrEmptyConversation = errors.New("conversation is empty")

const systemPrompt = "Sen bir müşteri hizmetleri analiz uzmanısın. Sadece JSON yanıt ver."

const analysisPrompt = `Aşağıdaki müşteri hizmetleri konuşmasını detaylı bir şekilde analiz et ve SADECE JSON formatında yanıt ver.

Konuşma:
%s

Analiz kriterleri:
1. sentiment: Müşterinin genel duygu durumu (1-10 arası sayı)
2. resolution: Problemin çözüm kalitesi (1-10 arası sayı)
3. agentPerformance: Temsilcinin performansı (1-10 arası sayı)
4. insights: İçgörüler dizisi (array) - En az 2, en fazla 5 içgörü
5. metrics: Ek metrikler nesnesi

JSON formatı (başka hiçbir şey yazma):
{
  "sentiment": sayı,
  "resolution": sayı,
  "agentPerformance": sayı,
  "insights": [{"type": "success/warning/info", "text": "açıklama"}],
  "metrics": {
    "responseTime": "Hızlı/Orta/Yavaş",
    "empathyLevel": "Yüksek/Orta/Düşük",
    "problemResolved": boolean,
    "customerEmotion": "Pozitif/Nötr/Negatif"
  }
}`

// modelAnalysis is what the model is asked to return. Scores arrive as JSON
// numbers that are not always integers.
type modelAnalysis struct {
	Sentiment        float64            `json:"sentiment"`
	Resolution       float64            `json:"resolution"`
	AgentPerformance float64            `json:"agentPerformance"`
	Insights         []protocol.Insight `json:"insights"`
	Metrics          protocol.Metrics   `json:"metrics"`
}

// LLMScorer scores a conversation with a chat model.
type LLMScorer struct {
	provider llm.LLMProvider
	logger   logger.ILogger
}

func NewLLMScorer(provider llm.LLMProvider, log logger.ILogger) *LLMScorer {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &LLMScorer{provider: provider, logger: log}
}

// speakerLabels name the speakers the way the Turkish prompt expects.
var speakerLabels = map[protocol.Role]string{
	protocol.RoleCustomer: "Müşteri",
	protocol.RoleAgent:    "Temsilci",
}

// Score renders turns as "Müşteri: <text>" / "Temsilci: <text>" lines and
// scores them.
func (s *LLMScorer) Score(ctx context.Context, turns []protocol.Turn) (protocol.Analysis, error) {
	return s.ScoreText(ctx, Transcript(turns))
}

// Transcript renders turns one per line with localized speaker labels.
func Transcript(turns []protocol.Turn) string {
	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		label, ok := speakerLabels[t.Role]
		if !ok {
			label = string(t.Role)
		}
		lines = append(lines, label+": "+t.Text)
	}
	return strings.Join(lines, "\n")
}

// ScoreText scores a transcript that is already rendered as text.
func (s *LLMScorer) ScoreText(ctx context.Context, transcript string) (protocol.Analysis, error) {
	if strings.TrimSpace(transcript) == "" {
		return protocol.Analysis{}, ErrEmptyConversation
	}

	reply, err := s.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: fmt.Sprintf(analysisPrompt, transcript)},
	}, llm.WithTemperature(0.3), llm.WithMaxTokens(1500), llm.WithTopP(0.9), llm.WithJSONReply())
	if err != nil {
		return protocol.Analysis{}, fmt.Errorf("scoring request: %w", err)
	}

	analysis, err := ParseAnalysis(reply)
	if err != nil {
		s.logger.Warn("Scorer", "Model reply is not a valid analysis", map[string]interface{}{
			"error": err, "reply": truncate(reply, 500),
		})
		return protocol.Analysis{}, err
	}
	return analysis, nil
}

// ParseAnalysis decodes a model reply, tolerating a Markdown code fence.
func ParseAnalysis(reply string) (protocol.Analysis, error) {
	var m modelAnalysis
	if err := json.Unmarshal([]byte(stripFence(reply)), &m); err != nil {
		return protocol.Analysis{}, fmt.Errorf("decode analysis: %w", err)
	}

	a := protocol.Analysis{
		Sentiment:        clamp(m.Sentiment),
		Resolution:       clamp(m.Resolution),
		AgentPerformance: clamp(m.AgentPerformance),
		Metrics:          m.Metrics,
		Insights:         m.Insights,
	}
	a.OverallScore = int(math.Round(float64(a.Sentiment+a.Resolution+a.AgentPerformance) / 3))
	if a.Insights == nil {
		a.Insights = []protocol.Insight{}
	}
	return a, nil
}

func stripFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func clamp(v float64) int {
	n := int(math.Round(v))
	if n < 0 {
		return 0
	}
	if n > 10 {
		return 10
	}
	return n
}

// truncate keeps at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
