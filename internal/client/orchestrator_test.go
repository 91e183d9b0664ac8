package client

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"callcenter-analysis-be/internal/protocol"
)

func result(version, generation, score int) protocol.AnalysisResult {
	return protocol.AnalysisResult{
		Analysis:   protocol.Analysis{OverallScore: score},
		Version:    version,
		Generation: generation,
	}
}

func TestOrchestratorRequestGuards(t *testing.T) {
	tests := []struct {
		name    string
		turns   int
		mode    Mode
		pending bool
		wantErr error
	}{
		{name: "no turns", turns: 0, mode: ModeManual, wantErr: ErrNoTurns},
		{name: "already pending", turns: 2, mode: ModeManual, pending: true, wantErr: ErrAnalysisBusy},
		{name: "live mode", turns: 2, mode: ModeLive, wantErr: ErrLiveModeActive},
		{name: "allowed", turns: 2, mode: ModeManual},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewAnalysisOrchestrator(nil)
			if tt.pending {
				o.Started()
			}
			err := o.Request(tt.turns, tt.mode)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantErr == nil {
				assert.Equal(t, AnalysisPending, o.State())
			}
		})
	}
}

func TestOrchestratorAppliesMatchingResult(t *testing.T) {
	o := NewAnalysisOrchestrator(nil)
	o.Started()
	assert.True(t, o.Completed(result(3, 0, 8), 3, 0))
	assert.Equal(t, AnalysisReady, o.State())
	assert.Equal(t, 8, o.Result().Analysis.OverallScore)
}

func TestOrchestratorDiscardsStaleResult(t *testing.T) {
	tests := []struct {
		name       string
		version    int
		generation int
	}{
		{name: "log extended since request", version: 4, generation: 0},
		{name: "log cleared and refilled to the same length", version: 3, generation: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewAnalysisOrchestrator(nil)
			o.Started()
			assert.False(t, o.Completed(result(3, 0, 8), tt.version, tt.generation))
			assert.Equal(t, AnalysisIdle, o.State())
			assert.Nil(t, o.Result())
		})
	}
}

func TestOrchestratorStaleResultKeepsPreviousResult(t *testing.T) {
	o := NewAnalysisOrchestrator(nil)
	o.Started()
	o.Completed(result(2, 0, 5), 2, 0)
	o.Started()
	assert.False(t, o.Completed(result(2, 0, 9), 3, 0))
	assert.Equal(t, 5, o.Result().Analysis.OverallScore)
}

func TestOrchestratorClearWhilePending(t *testing.T) {
	o := NewAnalysisOrchestrator(nil)
	o.Started()
	o.Cleared()
	assert.Equal(t, AnalysisIdle, o.State())
	assert.False(t, o.Completed(result(2, 0, 8), 0, 1))
	assert.Nil(t, o.Result())
}

func TestOrchestratorFailureNeverStaysPending(t *testing.T) {
	o := NewAnalysisOrchestrator(nil)
	assert.NoError(t, o.Request(1, ModeManual))
	o.Failed("analysis failed: timeout")
	assert.Equal(t, AnalysisIdle, o.State())
	assert.Equal(t, "analysis failed: timeout", o.Notice())

	assert.NoError(t, o.Request(1, ModeManual))
	assert.Empty(t, o.Notice())
}
