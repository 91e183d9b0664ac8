package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"callcenter-analysis-be/internal/client"
	"callcenter-analysis-be/internal/protocol"
	"callcenter-analysis-be/pkg/scoring"
)

var (
	customerColor = color.New(color.FgYellow, color.Bold)
	agentColor    = color.New(color.FgCyan, color.Bold)
	systemColor   = color.New(color.FgHiBlack)
	errorColor    = color.New(color.FgRed)
	scoreColor    = color.New(color.FgMagenta, color.Bold)

	insightColors = map[string]*color.Color{
		"success": color.New(color.FgGreen),
		"warning": color.New(color.FgYellow),
		"info":    color.New(color.FgBlue),
	}
)

// renderer prints console updates as a scrolling transcript.
type renderer struct {
	out io.Writer
}

func (r renderer) system(format string, args ...interface{}) {
	systemColor.Fprintf(r.out, "· "+format+"\n", args...)
}

func (r renderer) error(err error) {
	errorColor.Fprintf(r.out, "! %v\n", err)
}

func (r renderer) update(u client.Update, turns []protocol.Turn) {
	switch u.Kind {
	case client.UpdateJoined:
		r.system("joined session %s (%s mode)", u.Text, u.Mode)
	case client.UpdateTurn:
		r.turn(u.Turn)
	case client.UpdateAnalyzing:
		r.system("analyzing...")
	case client.UpdateAnalysis:
		if u.Result != nil {
			r.analysis(u.Result.Analysis, turns)
		}
	case client.UpdateCleared:
		r.system("conversation cleared")
	case client.UpdateLiveMode:
		r.system("%s mode", u.Mode)
	case client.UpdateNotice:
		errorColor.Fprintf(r.out, "! %s\n", u.Text)
	case client.UpdateDisconnected:
		if u.Err != nil {
			r.system("disconnected: %v (type /reconnect)", u.Err)
			return
		}
		r.system("disconnected (type /reconnect)")
	}
}

func (r renderer) turn(t protocol.Turn) {
	c := agentColor
	if t.Role == protocol.RoleCustomer {
		c = customerColor
	}
	stamp := ""
	if !t.OccurredAt.IsZero() {
		stamp = t.OccurredAt.Local().Format("15:04:05") + " "
	}
	systemColor.Fprint(r.out, stamp)
	c.Fprintf(r.out, "%s: ", t.Role)
	fmt.Fprintln(r.out, t.Text)
}

// analysis prints the scores. turns, when given, adds the issue category.
func (r renderer) analysis(a protocol.Analysis, turns []protocol.Turn) {
	scoreColor.Fprintf(r.out, "── Analysis: %d/10 ──\n", a.OverallScore)
	fmt.Fprintf(r.out, "  sentiment %d  resolution %d  agent %d\n", a.Sentiment, a.Resolution, a.AgentPerformance)

	m := a.Metrics
	var parts []string
	if m.CustomerEmotion != "" {
		parts = append(parts, "emotion: "+display(client.EmotionLabels, scoring.EmotionCode(m.CustomerEmotion), m.CustomerEmotion))
	}
	if m.EmpathyLevel != "" {
		parts = append(parts, "empathy: "+display(client.EmpathyLabels, scoring.EmpathyCode(m.EmpathyLevel), m.EmpathyLevel))
	}
	if category := scoring.Categorize(turns); category != "" {
		parts = append(parts, "issue: "+client.Label(client.CategoryLabels, category))
	}
	if m.ResponseTime != "" {
		parts = append(parts, "response: "+m.ResponseTime)
	}
	if m.ProblemResolved {
		parts = append(parts, "resolved")
	} else {
		parts = append(parts, "unresolved")
	}
	fmt.Fprintf(r.out, "  %s\n", strings.Join(parts, "  "))

	for _, in := range a.Insights {
		c, ok := insightColors[in.Type]
		if !ok {
			c = insightColors["info"]
		}
		c.Fprintf(r.out, "  • %s\n", in.Text)
	}
}

func display(table map[string]string, code, raw string) string {
	if code == "" {
		return raw
	}
	return client.Label(table, code)
}
