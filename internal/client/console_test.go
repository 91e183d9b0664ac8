package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"callcenter-analysis-be/internal/protocol"
)

// apply feeds wire frames through the decoder, the way a connection would.
func apply(c *Console, frames ...protocol.Event) []Update {
	out := make([]Update, 0, len(frames))
	for _, ev := range frames {
		decoded := protocol.DecodeEvent(protocol.EncodeEvent(ev))
		out = append(out, c.Apply(Frame{Event: decoded}))
	}
	return out
}

func appended(seq int, role protocol.Role, text string) protocol.TurnAppended {
	return protocol.TurnAppended{Turn: protocol.Turn{Seq: seq, Role: role, Text: text}}
}

func newTestConsole(role protocol.Role) *Console {
	return NewConsole("ws://localhost:0", Identity{SessionID: "s1", Role: role}, nil)
}

func TestConsoleEchoAppendsOnce(t *testing.T) {
	c := newTestConsole(protocol.RoleCustomer)
	apply(c, protocol.SessionJoined{SessionID: "s1", ConnectionID: "c1"})

	ups := apply(c, appended(1, protocol.RoleCustomer, "speed is slow"), appended(1, protocol.RoleCustomer, "speed is slow"))
	assert.Equal(t, UpdateTurn, ups[0].Kind)
	assert.Equal(t, UpdateNone, ups[1].Kind)
	require.Len(t, c.Turns(), 1)
	assert.Equal(t, protocol.RoleCustomer, c.Turns()[0].Role)
}

func TestConsoleLiveCyclesRenderInOrder(t *testing.T) {
	c := newTestConsole(protocol.RoleAgent)
	apply(c, protocol.SessionJoined{SessionID: "s1"}, protocol.LiveModeChanged{Enabled: true})
	assert.Equal(t, ModeLive, c.Mode())
	assert.ErrorIs(t, c.analysis.Request(0, c.Mode()), ErrLiveModeActive)

	ups := apply(c,
		appended(1, protocol.RoleCustomer, "no signal"),
		protocol.AnalysisStarted{},
		protocol.AnalysisCompleted{Result: result(1, 0, 4)},
		appended(2, protocol.RoleCustomer, "since yesterday"),
		protocol.AnalysisStarted{},
		protocol.AnalysisCompleted{Result: result(2, 0, 6)},
	)
	kinds := make([]UpdateKind, 0, len(ups))
	for _, u := range ups {
		kinds = append(kinds, u.Kind)
	}
	assert.Equal(t, []UpdateKind{
		UpdateTurn, UpdateAnalyzing, UpdateAnalysis,
		UpdateTurn, UpdateAnalyzing, UpdateAnalysis,
	}, kinds)
	assert.Equal(t, 6, c.LastAnalysis().Analysis.OverallScore)
}

func TestConsoleClearBeforeResultDiscardsIt(t *testing.T) {
	c := newTestConsole(protocol.RoleAgent)
	apply(c,
		protocol.SessionJoined{SessionID: "s1"},
		appended(1, protocol.RoleCustomer, "bill is wrong"),
		appended(2, protocol.RoleAgent, "checking"),
	)
	require.NoError(t, c.analysis.Request(len(c.Turns()), c.Mode()))

	ups := apply(c,
		protocol.AnalysisStarted{},
		protocol.SessionCleared{Generation: 1},
		protocol.AnalysisCompleted{Result: result(2, 0, 7)},
	)
	assert.Equal(t, UpdateCleared, ups[1].Kind)
	assert.Equal(t, UpdateNone, ups[2].Kind)
	assert.Equal(t, AnalysisIdle, c.AnalysisState())
	assert.Nil(t, c.LastAnalysis())
	assert.Empty(t, c.Turns())
}

func TestConsoleRejoinRebuildsTranscript(t *testing.T) {
	c := newTestConsole(protocol.RoleAgent)
	apply(c,
		protocol.SessionJoined{SessionID: "s1", ConnectionID: "c1"},
		appended(1, protocol.RoleCustomer, "hi"),
	)
	ups := apply(c, protocol.Pong{})
	assert.Equal(t, UpdateNone, ups[0].Kind)

	up := c.Apply(Frame{Closed: true})
	assert.Equal(t, UpdateDisconnected, up.Kind)
	assert.False(t, c.Connected())
	assert.ErrorIs(t, c.SubmitText("anyone?"), ErrNotConnected)

	// resync after reconnecting: the full log is replayed
	apply(c,
		protocol.SessionJoined{SessionID: "s1", ConnectionID: "c2"},
		appended(1, protocol.RoleCustomer, "hi"),
		appended(2, protocol.RoleAgent, "hello"),
		appended(3, protocol.RoleCustomer, "my line is down"),
		protocol.AnalysisCompleted{Result: result(3, 0, 5)},
	)
	assert.Equal(t, "c2", c.ConnectionID())
	assert.Equal(t, []protocol.Turn{
		{Seq: 1, Role: protocol.RoleCustomer, Text: "hi"},
		{Seq: 2, Role: protocol.RoleAgent, Text: "hello"},
		{Seq: 3, Role: protocol.RoleCustomer, Text: "my line is down"},
	}, stripTimes(c.Turns()))
	assert.Equal(t, 5, c.LastAnalysis().Analysis.OverallScore)
}

func TestConsoleRouterErrorResetsPending(t *testing.T) {
	c := newTestConsole(protocol.RoleAgent)
	apply(c, protocol.SessionJoined{SessionID: "s1"}, appended(1, protocol.RoleCustomer, "hi"), protocol.AnalysisStarted{})
	ups := apply(c, protocol.ProtocolError{Message: "analysis failed: timeout"})
	assert.Equal(t, UpdateNotice, ups[0].Kind)
	assert.Equal(t, AnalysisIdle, c.AnalysisState())
	assert.Equal(t, "analysis failed: timeout", c.Notice())
}

func TestConsoleActionsWithoutConnection(t *testing.T) {
	c := newTestConsole(protocol.RoleAgent)
	assert.ErrorIs(t, c.Analyze(), ErrNotConnected)
	assert.ErrorIs(t, c.Clear(), ErrNotConnected)
	assert.ErrorIs(t, c.ToggleLive(), ErrNotConnected)
	assert.ErrorIs(t, c.SubmitText("  "), protocol.ErrEmptyText)
}

func stripTimes(turns []protocol.Turn) []protocol.Turn {
	for i := range turns {
		turns[i].OccurredAt = time.Time{}
	}
	return turns
}
