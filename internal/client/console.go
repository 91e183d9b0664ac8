package client

import (
	"context"
	"errors"

	"callcenter-analysis-be/internal/pkg/logger"
	"callcenter-analysis-be/internal/protocol"
)

type UpdateKind int

const (
	UpdateNone UpdateKind = iota
	UpdateJoined
	UpdateTurn
	UpdateAnalyzing
	UpdateAnalysis
	UpdateCleared
	UpdateLiveMode
	UpdateNotice
	UpdateDisconnected
)

// Update tells the view what a frame changed.
type Update struct {
	Kind   UpdateKind
	Turn   protocol.Turn
	Result *protocol.AnalysisResult
	Mode   Mode
	Text   string
	Err    error
}

// Console is one operator view of a session: a connection plus the state
// projected from its frames. It is not safe for concurrent use; a single
// goroutine calls the actions and Apply.
type Console struct {
	base     string
	identity Identity
	logger   logger.ILogger

	conn         *Connection
	connectionID string

	store    *ConversationStore
	live     *LiveModeController
	analysis *AnalysisOrchestrator
}

func NewConsole(base string, id Identity, log logger.ILogger) *Console {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Console{
		base:     base,
		identity: id,
		logger:   log,
		store:    NewConversationStore(),
		live:     NewLiveModeController(),
		analysis: NewAnalysisOrchestrator(log),
	}
}

// Connect opens a fresh connection, replacing any previous one. The store is
// rebuilt from the resync frames that follow.
func (c *Console) Connect(ctx context.Context) error {
	c.Disconnect()
	conn, err := Open(ctx, c.base, c.identity, c.logger)
	if err != nil {
		return err
	}
	c.conn = conn
	return nil
}

// Disconnect closes the current connection and drains it in the background.
func (c *Console) Disconnect() {
	if c.conn == nil {
		return
	}
	old := c.conn
	c.conn = nil
	c.connectionID = ""
	_ = old.Close()
	go func() {
		for range old.Frames() {
		}
	}()
	c.analysis.Abandon()
}

// Frames is the stream of the current connection, nil when disconnected.
func (c *Console) Frames() <-chan Frame {
	if c.conn == nil {
		return nil
	}
	return c.conn.Frames()
}

func (c *Console) Connected() bool {
	return c.conn != nil && c.conn.Status() == StatusOpen
}

func (c *Console) Identity() Identity                     { return c.identity }
func (c *Console) ConnectionID() string                   { return c.connectionID }
func (c *Console) Turns() []protocol.Turn                 { return c.store.Turns() }
func (c *Console) Mode() Mode                             { return c.live.Mode() }
func (c *Console) AnalysisState() AnalysisState           { return c.analysis.State() }
func (c *Console) LastAnalysis() *protocol.AnalysisResult { return c.analysis.Result() }
func (c *Console) Notice() string                         { return c.analysis.Notice() }

// SubmitText sends a turn as the console's role. Nothing is shown until the
// router echoes it back.
func (c *Console) SubmitText(text string) error {
	in, err := protocol.NewAppendTurn(c.identity.Role, text)
	if err != nil {
		return err
	}
	return c.send(in)
}

// Analyze asks for a manual analysis of the current transcript.
func (c *Console) Analyze() error {
	if !c.Connected() {
		return ErrNotConnected
	}
	if err := c.analysis.Request(c.store.Len(), c.live.Mode()); err != nil {
		return err
	}
	if err := c.send(protocol.RequestAnalysis{}); err != nil {
		c.analysis.Abandon()
		return err
	}
	return nil
}

func (c *Console) Clear() error {
	return c.send(protocol.ClearSession{})
}

// ToggleLive requests the opposite of the confirmed mode.
func (c *Console) ToggleLive() error {
	return c.SetLive(c.live.Mode() != ModeLive)
}

// SetLive requests a specific mode; the change shows once the router confirms it.
func (c *Console) SetLive(enabled bool) error {
	if !c.Connected() {
		return ErrNotConnected
	}
	c.live.Request(enabled)
	return c.send(protocol.SetLiveMode{Enabled: enabled})
}

func (c *Console) Ping() error {
	return c.send(protocol.Ping{})
}

func (c *Console) send(in protocol.Intent) error {
	if c.conn == nil {
		return ErrNotConnected
	}
	return c.conn.Send(in)
}

// Apply folds one inbound frame into the view.
func (c *Console) Apply(f Frame) Update {
	if f.Closed {
		c.conn = nil
		c.connectionID = ""
		c.analysis.Abandon()
		return Update{Kind: UpdateDisconnected, Err: f.Err}
	}

	switch e := f.Event.(type) {
	case protocol.SessionJoined:
		c.connectionID = e.ConnectionID
		c.store.Reset(e.Generation)
		c.analysis.Cleared()
		c.live.Confirm(e.LiveMode)
		return Update{Kind: UpdateJoined, Mode: c.live.Mode(), Text: e.SessionID}
	case protocol.TurnAppended:
		if !c.store.Apply(e.Turn) {
			return Update{}
		}
		return Update{Kind: UpdateTurn, Turn: e.Turn}
	case protocol.AnalysisStarted:
		c.analysis.Started()
		return Update{Kind: UpdateAnalyzing}
	case protocol.AnalysisCompleted:
		if !c.analysis.Completed(e.Result, c.store.Version(), c.store.Generation()) {
			return Update{}
		}
		return Update{Kind: UpdateAnalysis, Result: c.analysis.Result()}
	case protocol.SessionCleared:
		c.store.Reset(e.Generation)
		c.analysis.Cleared()
		return Update{Kind: UpdateCleared}
	case protocol.LiveModeChanged:
		c.live.Confirm(e.Enabled)
		return Update{Kind: UpdateLiveMode, Mode: c.live.Mode()}
	case protocol.ProtocolError:
		c.analysis.Failed(e.Message)
		return Update{Kind: UpdateNotice, Text: e.Message, Err: errors.New(e.Message)}
	}
	return Update{}
}
