package client

import (
	"callcenter-analysis-be/internal/protocol"
)

// ConversationStore is the locally rendered transcript. It only changes in
// response to router events.
type ConversationStore struct {
	entries    []protocol.Turn
	version    int
	generation int
}

func NewConversationStore() *ConversationStore {
	return &ConversationStore{}
}

// Apply appends an echoed turn and reports whether a visible entry was added.
//
// Two rules keep echoes from double-posting: a turn whose router seq is not
// newer than the last one seen is a replay, and a turn with the same role and
// text as the newest entry is treated as the echo of that entry. The second
// rule collapses two identical consecutive messages from one speaker into a
// single entry; that is accepted in exchange for never showing duplicates.
func (s *ConversationStore) Apply(turn protocol.Turn) bool {
	if turn.Seq > 0 {
		if turn.Seq <= s.version {
			return false
		}
		s.version = turn.Seq
	} else {
		s.version++
	}

	if n := len(s.entries); n > 0 {
		last := s.entries[n-1]
		if last.Role == turn.Role && last.Text == turn.Text {
			return false
		}
	}
	s.entries = append(s.entries, turn)
	return true
}

// Reset empties the transcript for a new generation of the conversation.
func (s *ConversationStore) Reset(generation int) {
	s.entries = nil
	s.version = 0
	s.generation = generation
}

// Turns returns a copy of the visible transcript.
func (s *ConversationStore) Turns() []protocol.Turn {
	return append([]protocol.Turn(nil), s.entries...)
}

func (s *ConversationStore) Len() int {
	return len(s.entries)
}

// Version is the router-side turn count this view has caught up with. It can
// exceed Len when entries were collapsed.
func (s *ConversationStore) Version() int {
	return s.version
}

func (s *ConversationStore) Generation() int {
	return s.generation
}
