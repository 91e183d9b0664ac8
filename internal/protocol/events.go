package protocol

// Event is an inbound (router to client) message. The set of variants is closed.
type Event interface {
	event()
}

type SessionJoined struct {
	SessionID    string
	ConnectionID string
	LiveMode     bool
	Generation   int
}

type TurnAppended struct {
	Turn Turn
}

type AnalysisStarted struct{}

type AnalysisCompleted struct {
	Result AnalysisResult
}

type SessionCleared struct {
	Generation int
}

type LiveModeChanged struct {
	Enabled bool
}

// ProtocolError carries both decode failures and errors reported by the router.
// Local is set for frames this side could not decode.
type ProtocolError struct {
	Message string
	Local   bool
}

// Pong answers a keepalive ping. It is local to one connection.
type Pong struct{}

func (SessionJoined) event()     {}
func (TurnAppended) event()      {}
func (AnalysisStarted) event()   {}
func (AnalysisCompleted) event() {}
func (SessionCleared) event()    {}
func (LiveModeChanged) event()   {}
func (ProtocolError) event()     {}
func (Pong) event()              {}
