package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"callcenter-analysis-be/internal/client"
	"callcenter-analysis-be/internal/handler"
	"callcenter-analysis-be/internal/pkg/logger"
	"callcenter-analysis-be/internal/protocol"
	"callcenter-analysis-be/internal/session"
	internalWS "callcenter-analysis-be/internal/websocket"
	"callcenter-analysis-be/pkg/events"
)

func init() {
	color.NoColor = true
}

// syncBuffer lets the test read output while the session loop writes it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type fixedScorer struct{}

func (fixedScorer) Score(ctx context.Context, turns []protocol.Turn) (protocol.Analysis, error) {
	return protocol.Analysis{
		OverallScore: 8, Sentiment: 7, Resolution: 9, AgentPerformance: 8,
		Metrics:  protocol.Metrics{CustomerEmotion: "Negatif", EmpathyLevel: "Yüksek", ProblemResolved: true},
		Insights: []protocol.Insight{{Type: "success", Text: "Temsilci özür diledi"}},
	}, nil
}

func startServer(t *testing.T) string {
	t.Helper()
	router := session.NewRouter(fixedScorer{})
	hub := internalWS.NewHub(router, 64, logger.NewNopLogger())
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	handler.NewSessionHandler(hub, logger.NewNopLogger()).RegisterRoutes(app, app.Group("/api"))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() {
		hub.Shutdown()
		router.Close()
		_ = app.Shutdown()
	})
	return "http://" + ln.Addr().String()
}

func TestRunSessionRendersTranscriptAndAnalysis(t *testing.T) {
	base := startServer(t)
	in, typed := io.Pipe()
	out := &syncBuffer{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	console := client.NewConsole(base, client.Identity{SessionID: "s1", Role: protocol.RoleCustomer}, nil)
	done := make(chan error, 1)
	go func() { done <- runSession(ctx, console, in, out, 0) }()

	waitFor := func(s string) {
		t.Helper()
		require.Eventually(t, func() bool { return strings.Contains(out.String(), s) }, 3*time.Second, 10*time.Millisecond, out.String())
	}
	waitFor("joined session s1 (manual mode)")

	_, _ = io.WriteString(typed, "faturamda fazla ücret var\n")
	waitFor("Customer: faturamda fazla ücret var")

	_, _ = io.WriteString(typed, "/analyze\n")
	waitFor("Analysis: 8/10")
	waitFor("emotion: Sinirli")
	waitFor("empathy: Yüksek")
	waitFor("issue: Fatura Hatası")
	waitFor("• Temsilci özür diledi")

	_, _ = io.WriteString(typed, "/live maybe\n")
	waitFor("usage: /live on|off")

	_, _ = io.WriteString(typed, "/live on\n")
	waitFor("live mode")

	_, _ = io.WriteString(typed, "/quit\n")
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("session did not stop on /quit")
	}
}

func TestDispatchWithoutConnection(t *testing.T) {
	console := client.NewConsole("http://127.0.0.1:0", client.Identity{SessionID: "s1", Role: protocol.RoleAgent}, nil)
	ctx := context.Background()

	quit, err := dispatch(ctx, console, "   ")
	assert.False(t, quit)
	assert.NoError(t, err)

	_, err = dispatch(ctx, console, "/analyze")
	assert.ErrorIs(t, err, client.ErrNotConnected)

	_, err = dispatch(ctx, console, "/bogus")
	assert.EqualError(t, err, "unknown command /bogus")

	quit, err = dispatch(ctx, console, "/quit")
	assert.True(t, quit)
	assert.NoError(t, err)
}

func TestRenderEvent(t *testing.T) {
	out := &bytes.Buffer{}
	renderer{out: out}.event(events.BaseEvent{
		Type:       events.TypeSessionCleared,
		Data:       map[string]interface{}{"session_id": "s1", "generation": 2},
		OccurredAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.Local),
	})
	assert.Equal(t, "10:00:00 conversation.cleared generation=2 session_id=s1\n", out.String())
}

func TestRenderDisconnect(t *testing.T) {
	out := &bytes.Buffer{}
	renderer{out: out}.update(client.Update{Kind: client.UpdateDisconnected, Err: errors.New("reset by peer")}, nil)
	assert.Equal(t, "· disconnected: reset by peer (type /reconnect)\n", out.String())
}

func TestRootCommandWiring(t *testing.T) {
	cmd := NewRootCommandWithIO(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	names := make([]string, 0)
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"customer", "agent", "invoice", "events"}, names)

	cmd.SetArgs([]string{"invoice", "--phone", "5321234567"})
	assert.Error(t, cmd.Execute())
}
