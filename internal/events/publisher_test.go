package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"callcenter-analysis-be/internal/dto"
	"callcenter-analysis-be/internal/protocol"
	pkgEvents "callcenter-analysis-be/pkg/events"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []pkgEvents.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, ev pkgEvents.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.EventType())
	}
	return out
}

func TestNatsSinkPublishesInOrder(t *testing.T) {
	pub := &recordingPublisher{}
	sink := NewNatsSink(pub, nil, 8)

	turn := protocol.Turn{Seq: 1, Role: protocol.RoleCustomer, Text: "hi", OccurredAt: time.Now()}
	sink.TurnAppended("s1", turn)
	sink.AnalysisCompleted("s1", []protocol.Turn{turn}, protocol.AnalysisResult{
		Analysis: protocol.Analysis{OverallScore: 7}, Version: 1,
	})
	sink.SessionCleared("s1", 1)
	sink.Close()

	assert.Equal(t, []string{
		pkgEvents.TypeTurnAppended,
		pkgEvents.TypeAnalysisCompleted,
		pkgEvents.TypeSessionCleared,
	}, pub.types())
	assert.Equal(t, 7, pub.events[1].Payload()["overall_score"])
	assert.Equal(t, 1, pub.events[2].Payload()["generation"])

	// after Close events are ignored
	sink.SessionCleared("s1", 2)
	sink.Close()
	assert.Len(t, pub.types(), 3)
}

func TestNatsSinkSurvivesBrokerErrors(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("no responders")}
	sink := NewNatsSink(pub, nil, 8)
	sink.SessionCleared("s1", 1)
	sink.SessionCleared("s1", 2)
	sink.Close()
	assert.Len(t, pub.types(), 2)
}

type bytesPublisher struct {
	payloads [][]byte
}

func (p *bytesPublisher) Publish(ctx context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

func TestArchiveSinkPublishesOnlyAnalyses(t *testing.T) {
	pub := &bytesPublisher{}
	sink := NewArchiveSink(pub, nil)

	turns := []protocol.Turn{{Seq: 1, Role: protocol.RoleCustomer, Text: "hi"}}
	sink.TurnAppended("s1", turns[0])
	sink.SessionCleared("s1", 1)
	sink.AnalysisCompleted("s1", turns, protocol.AnalysisResult{Version: 1, Generation: 1})

	require.Len(t, pub.payloads, 1)
	var msg dto.ArchiveConversationMessage
	require.NoError(t, json.Unmarshal(pub.payloads[0], &msg))
	assert.Equal(t, "s1", msg.SessionID)
	assert.Equal(t, 1, msg.Generation)
	assert.Len(t, msg.Turns, 1)
}
