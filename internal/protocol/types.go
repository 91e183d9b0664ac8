package protocol

import (
	"strings"
	"time"
)

// Role identifies who authored a turn.
type Role string

const (
	RoleCustomer Role = "Customer"
	RoleAgent    Role = "Agent"
)

// roleAliases maps every label the widgets have used for a speaker to its Role.
var roleAliases = map[string]Role{
	"customer": RoleCustomer,
	"müşteri":  RoleCustomer,
	"agent":    RoleAgent,
	"temsilci": RoleAgent,
}

// ParseRole resolves a role label case-insensitively.
func ParseRole(s string) (Role, bool) {
	r, ok := roleAliases[strings.ToLower(strings.TrimSpace(s))]
	return r, ok
}

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleAgent
}

// Turn is one accepted message. Seq and OccurredAt are assigned by the router.
type Turn struct {
	Seq        int       `json:"seq"`
	Role       Role      `json:"role"`
	Text       string    `json:"text"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Line renders the turn in the "<Role>: <content>" transcript form.
func (t Turn) Line() string {
	return string(t.Role) + ": " + t.Text
}

// SplitLine parses a "<Role>: <content>" line. ok is false when the prefix is
// missing or names an unknown role.
func SplitLine(line string) (role Role, text string, ok bool) {
	idx := strings.Index(line, ":")
	if idx <= 0 {
		return "", "", false
	}
	role, ok = ParseRole(line[:idx])
	if !ok {
		return "", "", false
	}
	return role, strings.TrimSpace(line[idx+1:]), true
}

// Insight is one textual finding tagged by severity (success, warning, info).
type Insight struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type Metrics struct {
	ResponseTime    string `json:"responseTime"`
	EmpathyLevel    string `json:"empathyLevel"`
	ProblemResolved bool   `json:"problemResolved"`
	CustomerEmotion string `json:"customerEmotion"`
}

// Analysis is the structured output of the scoring engine. Scores are on a 0-10 scale.
type Analysis struct {
	OverallScore     int       `json:"overallScore"`
	Sentiment        int       `json:"sentiment"`
	Resolution       int       `json:"resolution"`
	AgentPerformance int       `json:"agentPerformance"`
	Metrics          Metrics   `json:"metrics"`
	Insights         []Insight `json:"insights"`
}

// AnalysisResult binds an Analysis to the log it was computed against.
// Version is the turn count and Generation the clear counter at request time;
// the result only applies while both still match.
type AnalysisResult struct {
	Analysis   Analysis  `json:"analysis"`
	Version    int       `json:"version"`
	Generation int       `json:"generation"`
	Timestamp  time.Time `json:"timestamp"`
}

// Matches reports whether the result was computed against the given log state.
func (r AnalysisResult) Matches(version, generation int) bool {
	return r.Version == version && r.Generation == generation
}
