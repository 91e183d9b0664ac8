package protocol

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEvent(t *testing.T) {
	tests := []struct {
		name  string
		frame string
		want  Event
	}{
		{
			name:  "customer widget message",
			frame: `{"type":"new_message","text":"Customer: speed is slow"}`,
			want:  TurnAppended{Turn: Turn{Role: RoleCustomer, Text: "speed is slow"}},
		},
		{
			name:  "localized speaker prefix",
			frame: `{"type":"new_message","text":"Temsilci: Merhaba"}`,
			want:  TurnAppended{Turn: Turn{Role: RoleAgent, Text: "Merhaba"}},
		},
		{
			name:  "text_added alias with seq",
			frame: `{"type":"text_added","text":"Agent: hello","seq":4}`,
			want:  TurnAppended{Turn: Turn{Seq: 4, Role: RoleAgent, Text: "hello"}},
		},
		{
			name:  "explicit role and content",
			frame: `{"type":"new_message","role":"Agent","content":"a: b","text":"Agent: a: b"}`,
			want:  TurnAppended{Turn: Turn{Role: RoleAgent, Text: "a: b"}},
		},
		{
			name:  "analyzing",
			frame: `{"type":"analyzing","message":"working"}`,
			want:  AnalysisStarted{},
		},
		{
			name:  "cleared carries generation",
			frame: `{"type":"cleared","generation":3}`,
			want:  SessionCleared{Generation: 3},
		},
		{
			name:  "live mode off",
			frame: `{"type":"live_mode_changed","enabled":false}`,
			want:  LiveModeChanged{Enabled: false},
		},
		{
			name:  "router error",
			frame: `{"type":"error","message":"scoring failed"}`,
			want:  ProtocolError{Message: "scoring failed"},
		},
		{
			name:  "connected",
			frame: `{"type":"connected","session_id":"s1","client_id":"c1","live_mode":true,"generation":2}`,
			want:  SessionJoined{SessionID: "s1", ConnectionID: "c1", LiveMode: true, Generation: 2},
		},
		{
			name:  "pong",
			frame: `{"type":"pong"}`,
			want:  Pong{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeEvent([]byte(tt.frame)))
		})
	}
}

func TestDecodeEventRejectsUnknownShapes(t *testing.T) {
	frames := []string{
		`not json`,
		`{}`,
		`{"type":"teleport"}`,
		`{"type":"new_message","text":"no speaker here"}`,
		`{"type":"new_message","text":"Customer:   "}`,
		`{"type":"analysis_result"}`,
		`{"type":"analysis_result","analysis":{"sentiment":"high"},"version":1}`,
		`{"type":"analysis_result","analysis":{"sentiment":7}}`,
		`{"type":"live_mode_changed"}`,
	}
	for _, raw := range frames {
		ev := DecodeEvent([]byte(raw))
		pe, isErr := ev.(ProtocolError)
		assert.True(t, isErr, "frame %s decoded as %#v", raw, ev)
		assert.True(t, pe.Local, "frame %s", raw)
	}
}

func TestAnalysisResultRoundTrip(t *testing.T) {
	res := AnalysisResult{
		Analysis: Analysis{
			OverallScore: 7, Sentiment: 6, Resolution: 8, AgentPerformance: 7,
			Metrics:  Metrics{ResponseTime: "Fast", EmpathyLevel: "High", ProblemResolved: true, CustomerEmotion: "Positive"},
			Insights: []Insight{{Type: "success", Text: "resolved on first contact"}},
		},
		Version:    3,
		Generation: 1,
		Timestamp:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	ev := DecodeEvent(EncodeEvent(AnalysisCompleted{Result: res}))
	require.IsType(t, AnalysisCompleted{}, ev)
	assert.Equal(t, res, ev.(AnalysisCompleted).Result)
}

func TestTurnAppendedCarriesSeqAndTime(t *testing.T) {
	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	ev := DecodeEvent(EncodeEvent(TurnAppended{Turn: Turn{Seq: 9, Role: RoleCustomer, Text: "hi", OccurredAt: at}}))
	require.IsType(t, TurnAppended{}, ev)
	turn := ev.(TurnAppended).Turn
	assert.Equal(t, 9, turn.Seq)
	assert.True(t, at.Equal(turn.OccurredAt))
}

func TestNewAppendTurn(t *testing.T) {
	_, err := NewAppendTurn(RoleCustomer, "   ")
	assert.ErrorIs(t, err, ErrEmptyText)

	_, err = NewAppendTurn(Role("Bot"), "hi")
	assert.ErrorIs(t, err, ErrInvalidRole)

	in, err := NewAppendTurn(RoleAgent, "  how can I help?  ")
	require.NoError(t, err)
	assert.Equal(t, "how can I help?", in.Text)
}

func TestDecodeIntent(t *testing.T) {
	in, err := DecodeIntent([]byte(`{"type":"add_text","text":"Customer: speed is slow"}`), RoleAgent)
	require.NoError(t, err)
	assert.Equal(t, AppendTurn{Role: RoleCustomer, Text: "speed is slow"}, in)

	in, err = DecodeIntent([]byte(`{"type":"add_text","text":"no prefix"}`), RoleAgent)
	require.NoError(t, err)
	assert.Equal(t, AppendTurn{Role: RoleAgent, Text: "no prefix"}, in)

	in, err = DecodeIntent([]byte(`{"type":"live_mode","enabled":true}`), RoleAgent)
	require.NoError(t, err)
	assert.Equal(t, SetLiveMode{Enabled: true}, in)

	_, err = DecodeIntent([]byte(`{"type":"add_text","text":""}`), RoleAgent)
	assert.ErrorIs(t, err, ErrEmptyText)

	_, err = DecodeIntent([]byte(`{"type":"launch"}`), RoleAgent)
	assert.Error(t, err)
}

func TestIntentRoundTrip(t *testing.T) {
	intents := []Intent{
		AppendTurn{Role: RoleCustomer, Text: "speed is slow"},
		RequestAnalysis{},
		ClearSession{},
		SetLiveMode{Enabled: true},
		SetLiveMode{Enabled: false},
		Ping{},
	}
	for _, in := range intents {
		got, err := DecodeIntent(EncodeIntent(in), RoleAgent)
		require.NoError(t, err)
		assert.Equal(t, in, got)
	}
}
