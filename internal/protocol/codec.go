package protocol

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Wire frame types.
const (
	FrameConnected       = "connected"
	FrameNewMessage      = "new_message"
	FrameTextAdded       = "text_added"
	FrameAnalyzing       = "analyzing"
	FrameAnalysisResult  = "analysis_result"
	FrameCleared         = "cleared"
	FrameLiveModeChanged = "live_mode_changed"
	FrameError           = "error"
	FramePong            = "pong"

	FrameAddText  = "add_text"
	FrameAnalyze  = "analyze"
	FrameClear    = "clear"
	FrameLiveMode = "live_mode"
	FramePing     = "ping"
)

// frame is the flat JSON object exchanged on the socket in both directions.
type frame struct {
	Type       string    `json:"type"`
	Text       string    `json:"text,omitempty"`
	Role       string    `json:"role,omitempty"`
	Content    string    `json:"content,omitempty"`
	Seq        int       `json:"seq,omitempty"`
	Enabled    *bool     `json:"enabled,omitempty"`
	Message    string    `json:"message,omitempty"`
	Analysis   *Analysis `json:"analysis,omitempty"`
	Version    *int      `json:"version,omitempty"`
	Generation *int      `json:"generation,omitempty"`
	SessionID  string    `json:"session_id,omitempty"`
	ClientID   string    `json:"client_id,omitempty"`
	LiveMode   *bool     `json:"live_mode,omitempty"`
	Timestamp  string    `json:"timestamp,omitempty"`
}

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }

func now() string { return time.Now().UTC().Format(time.RFC3339Nano) }

// EncodeEvent renders a router event as a wire frame.
func EncodeEvent(ev Event) []byte {
	f := frame{Timestamp: now()}
	switch e := ev.(type) {
	case SessionJoined:
		f.Type = FrameConnected
		f.SessionID = e.SessionID
		f.ClientID = e.ConnectionID
		f.LiveMode = boolPtr(e.LiveMode)
		f.Generation = intPtr(e.Generation)
	case TurnAppended:
		f.Type = FrameNewMessage
		f.Text = e.Turn.Line()
		f.Role = string(e.Turn.Role)
		f.Content = e.Turn.Text
		f.Seq = e.Turn.Seq
		if !e.Turn.OccurredAt.IsZero() {
			f.Timestamp = e.Turn.OccurredAt.UTC().Format(time.RFC3339Nano)
		}
	case AnalysisStarted:
		f.Type = FrameAnalyzing
	case AnalysisCompleted:
		a := e.Result.Analysis
		f.Type = FrameAnalysisResult
		f.Analysis = &a
		f.Version = intPtr(e.Result.Version)
		f.Generation = intPtr(e.Result.Generation)
		if !e.Result.Timestamp.IsZero() {
			f.Timestamp = e.Result.Timestamp.UTC().Format(time.RFC3339Nano)
		}
	case SessionCleared:
		f.Type = FrameCleared
		f.Generation = intPtr(e.Generation)
	case LiveModeChanged:
		f.Type = FrameLiveModeChanged
		f.Enabled = boolPtr(e.Enabled)
	case ProtocolError:
		f.Type = FrameError
		f.Message = e.Message
	case Pong:
		f.Type = FramePong
	default:
		f.Type = FrameError
		f.Message = fmt.Sprintf("unencodable event %T", ev)
	}
	data, _ := json.Marshal(f)
	return data
}

// DecodeEvent parses an inbound frame. Payloads that match no known variant
// come back as ProtocolError; decoding never fails outright.
func DecodeEvent(data []byte) Event {
	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		return ProtocolError{Local: true, Message: fmt.Sprintf("malformed frame: %v", err)}
	}

	switch f.Type {
	case FrameConnected:
		ev := SessionJoined{SessionID: f.SessionID, ConnectionID: f.ClientID}
		if f.LiveMode != nil {
			ev.LiveMode = *f.LiveMode
		}
		if f.Generation != nil {
			ev.Generation = *f.Generation
		}
		return ev
	case FrameNewMessage, FrameTextAdded:
		return decodeTurn(f)
	case FrameAnalyzing:
		return AnalysisStarted{}
	case FrameAnalysisResult:
		if f.Analysis == nil {
			return ProtocolError{Local: true, Message: "analysis_result without analysis"}
		}
		if f.Version == nil {
			return ProtocolError{Local: true, Message: "analysis_result without version"}
		}
		res := AnalysisResult{Analysis: *f.Analysis, Version: *f.Version, Timestamp: parseTime(f.Timestamp)}
		if f.Generation != nil {
			res.Generation = *f.Generation
		}
		return AnalysisCompleted{Result: res}
	case FrameCleared:
		ev := SessionCleared{}
		if f.Generation != nil {
			ev.Generation = *f.Generation
		}
		return ev
	case FrameLiveModeChanged:
		if f.Enabled == nil {
			return ProtocolError{Local: true, Message: "live_mode_changed without enabled"}
		}
		return LiveModeChanged{Enabled: *f.Enabled}
	case FrameError:
		return ProtocolError{Message: f.Message}
	case FramePong:
		return Pong{}
	case "":
		return ProtocolError{Local: true, Message: "frame without type"}
	default:
		return ProtocolError{Local: true, Message: fmt.Sprintf("unknown frame type: %s", f.Type)}
	}
}

func decodeTurn(f frame) Event {
	var (
		role Role
		text string
		ok   bool
	)
	if f.Role != "" {
		role, ok = ParseRole(f.Role)
		text = f.Content
		if text == "" {
			if _, t, split := SplitLine(f.Text); split {
				text = t
			} else {
				text = f.Text
			}
		}
	} else {
		role, text, ok = SplitLine(f.Text)
	}
	if !ok {
		return ProtocolError{Local: true, Message: fmt.Sprintf("%s with unknown speaker: %q", f.Type, f.Text)}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return ProtocolError{Local: true, Message: fmt.Sprintf("%s with empty text", f.Type)}
	}
	return TurnAppended{Turn: Turn{Seq: f.Seq, Role: role, Text: text, OccurredAt: parseTime(f.Timestamp)}}
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// EncodeIntent renders a client intent as a wire frame.
func EncodeIntent(in Intent) []byte {
	var f frame
	switch i := in.(type) {
	case AppendTurn:
		f.Type = FrameAddText
		f.Text = string(i.Role) + ": " + i.Text
	case RequestAnalysis:
		f.Type = FrameAnalyze
	case ClearSession:
		f.Type = FrameClear
	case SetLiveMode:
		f.Type = FrameLiveMode
		f.Enabled = boolPtr(i.Enabled)
	case Ping:
		f.Type = FramePing
	}
	data, _ := json.Marshal(f)
	return data
}

// DecodeIntent parses a client frame on the router side. An add_text without a
// recognised "<Role>:" prefix is attributed to fallback.
func DecodeIntent(data []byte, fallback Role) (Intent, error) {
	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("malformed frame: %w", err)
	}

	switch f.Type {
	case FrameAddText:
		role, text, ok := SplitLine(f.Text)
		if !ok {
			role, text = fallback, f.Text
		}
		return NewAppendTurn(role, text)
	case FrameAnalyze:
		return RequestAnalysis{}, nil
	case FrameClear:
		return ClearSession{}, nil
	case FrameLiveMode:
		enabled := false
		if f.Enabled != nil {
			enabled = *f.Enabled
		}
		return SetLiveMode{Enabled: enabled}, nil
	case FramePing:
		return Ping{}, nil
	default:
		return nil, fmt.Errorf("unknown message type: %s", f.Type)
	}
}
