package client

import (
	"errors"

	"callcenter-analysis-be/internal/pkg/logger"
	"callcenter-analysis-be/internal/protocol"
)

var (
	ErrAnalysisBusy   = errors.New("an analysis is already running")
	ErrNoTurns        = errors.New("no conversation to analyze")
	ErrLiveModeActive = errors.New("live mode analyzes automatically")
)

type AnalysisState int

const (
	AnalysisIdle AnalysisState = iota
	AnalysisPending
	AnalysisReady
)

func (s AnalysisState) String() string {
	switch s {
	case AnalysisPending:
		return "pending"
	case AnalysisReady:
		return "ready"
	default:
		return "idle"
	}
}

// AnalysisOrchestrator tracks the one analysis a view may be waiting for.
type AnalysisOrchestrator struct {
	logger logger.ILogger

	state  AnalysisState
	result *protocol.AnalysisResult
	notice string
}

func NewAnalysisOrchestrator(log logger.ILogger) *AnalysisOrchestrator {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &AnalysisOrchestrator{logger: log}
}

func (o *AnalysisOrchestrator) State() AnalysisState {
	return o.state
}

// Result is the last applied result, kept across new requests until a clear.
func (o *AnalysisOrchestrator) Result() *protocol.AnalysisResult {
	return o.result
}

// Notice is the last non-fatal failure message, empty when none.
func (o *AnalysisOrchestrator) Notice() string {
	return o.notice
}

// Request checks a manual trigger and, when allowed, enters Pending. The
// caller sends RequestAnalysis only on a nil return.
func (o *AnalysisOrchestrator) Request(turns int, mode Mode) error {
	switch {
	case mode == ModeLive:
		return ErrLiveModeActive
	case turns == 0:
		return ErrNoTurns
	case o.state == AnalysisPending:
		return ErrAnalysisBusy
	}
	o.state = AnalysisPending
	o.notice = ""
	return nil
}

// Started handles AnalysisStarted, which may come from another view's trigger.
func (o *AnalysisOrchestrator) Started() {
	o.state = AnalysisPending
	o.notice = ""
}

// Completed applies a result when it was computed against the log this view
// currently shows and reports whether it did.
func (o *AnalysisOrchestrator) Completed(res protocol.AnalysisResult, version, generation int) bool {
	if !res.Matches(version, generation) {
		o.logger.Info("Orchestrator", "Stale analysis discarded", map[string]interface{}{
			"result_version": res.Version, "result_generation": res.Generation,
			"version": version, "generation": generation,
		})
		if o.state == AnalysisPending {
			o.state = AnalysisIdle
		}
		return false
	}
	r := res
	o.result = &r
	o.state = AnalysisReady
	return true
}

// Cleared drops any pending wait and the shown result.
func (o *AnalysisOrchestrator) Cleared() {
	if o.state == AnalysisPending {
		o.logger.Info("Orchestrator", "Pending analysis discarded by clear", nil)
	}
	o.state = AnalysisIdle
	o.result = nil
}

// Failed handles an error reported by the router.
func (o *AnalysisOrchestrator) Failed(message string) {
	o.notice = message
	if o.state == AnalysisPending {
		o.state = AnalysisIdle
	}
}

// Abandon returns to Idle without a notice, used when the connection goes away.
func (o *AnalysisOrchestrator) Abandon() {
	if o.state == AnalysisPending {
		o.state = AnalysisIdle
	}
}
