package protocol

import (
	"errors"
	"strings"
)

var (
	ErrEmptyText   = errors.New("turn text must not be empty")
	ErrInvalidRole = errors.New("turn role must be Customer or Agent")
)

// Intent is an outbound (client to router) request. The set of variants is closed.
type Intent interface {
	intent()
}

type AppendTurn struct {
	Role Role
	Text string
}

type RequestAnalysis struct{}

type ClearSession struct{}

type SetLiveMode struct {
	Enabled bool
}

// Ping is the keepalive intent; it never reaches the session.
type Ping struct{}

func (AppendTurn) intent()      {}
func (RequestAnalysis) intent() {}
func (ClearSession) intent()    {}
func (SetLiveMode) intent()     {}
func (Ping) intent()            {}

// NewAppendTurn validates role and text before the intent exists, so encoding
// an AppendTurn never fails.
func NewAppendTurn(role Role, text string) (AppendTurn, error) {
	if !role.Valid() {
		return AppendTurn{}, ErrInvalidRole
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return AppendTurn{}, ErrEmptyText
	}
	return AppendTurn{Role: role, Text: text}, nil
}
