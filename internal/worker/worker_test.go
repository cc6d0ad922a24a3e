package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/aescanero/dago-matcher/internal/config"
	"github.com/aescanero/dago-matcher/internal/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const rulesDoc = `
rules:
  - condition: "ctx.priority == 'high'"
    target: urgent
  - match: {kind: bug}
    target: triage
fallback: backlog
results:
  urgent: "page {{owner}}"
`

func newTestWorker(t *testing.T, failFast bool) *Worker {
	t.Helper()
	rules, err := router.ParseRuleSet([]byte(rulesDoc))
	require.NoError(t, err)

	cfg := &config.Config{MaxLineBytes: 1024, FailFast: failFast}
	w := NewWorker(cfg, router.NewRouter(zap.NewNop()), rules, zap.NewNop())
	w.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }
	return w
}

func decodeDecisions(t *testing.T, out *bytes.Buffer) []Decision {
	t.Helper()
	var decisions []Decision
	decoder := json.NewDecoder(out)
	for decoder.More() {
		var d Decision
		require.NoError(t, decoder.Decode(&d))
		decisions = append(decisions, d)
	}
	return decisions
}

func TestWorker_Process(t *testing.T) {
	w := newTestWorker(t, false)
	input := strings.Join([]string{
		`{"execution_id": "e1", "node_id": "n1", "input": {"priority": "high", "owner": "ada"}}`,
		``,
		`{"execution_id": "e2", "input": {"priority": "low", "kind": "bug"}}`,
		`{"execution_id": "e3", "input": {"priority": "low"}}`,
	}, "\n")

	var out bytes.Buffer
	stats, err := w.Process(context.Background(), strings.NewReader(input), &out)
	require.NoError(t, err)

	assert.Equal(t, Stats{Processed: 3, Succeeded: 3, Failed: 0, Fallbacks: 1}, stats)

	decisions := decodeDecisions(t, &out)
	require.Len(t, decisions, 3)

	assert.Equal(t, "e1", decisions[0].ExecutionID)
	assert.Equal(t, "n1", decisions[0].NodeID)
	assert.Equal(t, "urgent", decisions[0].TargetNode)
	assert.Equal(t, "page ada", decisions[0].Output)
	assert.Equal(t, router.PathRule, decisions[0].PathTaken)
	assert.Equal(t, 1, decisions[0].Line)
	assert.NotEmpty(t, decisions[0].EvaluationID)
	assert.True(t, decisions[0].Timestamp.Equal(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)))

	assert.Equal(t, "triage", decisions[1].TargetNode)
	assert.Equal(t, 3, decisions[1].Line)

	assert.Equal(t, "backlog", decisions[2].TargetNode)
	assert.Equal(t, router.PathFallback, decisions[2].PathTaken)
}

func TestWorker_Process_ErrorLines(t *testing.T) {
	w := newTestWorker(t, false)
	input := strings.Join([]string{
		`not json`,
		`{"node_id": "n2", "input": {}}`,
		`{"execution_id": "e3", "input": {"kind": "bug"}}`,
	}, "\n")

	var out bytes.Buffer
	stats, err := w.Process(context.Background(), strings.NewReader(input), &out)
	require.NoError(t, err)
	assert.Equal(t, Stats{Processed: 3, Succeeded: 1, Failed: 2}, stats)

	decisions := decodeDecisions(t, &out)
	require.Len(t, decisions, 3)

	assert.Contains(t, decisions[0].Error, "failed to unmarshal work request")
	assert.Empty(t, decisions[0].TargetNode)

	assert.Contains(t, decisions[1].Error, "invalid work request")
	assert.Equal(t, "n2", decisions[1].NodeID)

	assert.Empty(t, decisions[2].Error)
	assert.Equal(t, "triage", decisions[2].TargetNode)
}

func TestWorker_Process_FailFast(t *testing.T) {
	w := newTestWorker(t, true)
	input := strings.Join([]string{
		`{"execution_id": "e1", "input": {"kind": "bug"}}`,
		`{"input": {}}`,
		`{"execution_id": "e3", "input": {"kind": "bug"}}`,
	}, "\n")

	var out bytes.Buffer
	stats, err := w.Process(context.Background(), strings.NewReader(input), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.Equal(t, Stats{Processed: 2, Succeeded: 1, Failed: 1}, stats)

	decisions := decodeDecisions(t, &out)
	require.Len(t, decisions, 2)
	assert.NotEmpty(t, decisions[1].Error)
}

func TestWorker_Process_InvalidRules(t *testing.T) {
	rules, err := router.ParseRuleSet([]byte("rules: [{match: {}}]\nfallback: x"))
	require.NoError(t, err)

	w := NewWorker(&config.Config{MaxLineBytes: 1024}, router.NewRouter(nil), rules, nil)

	var out bytes.Buffer
	stats, err := w.Process(context.Background(), strings.NewReader(`{"execution_id": "e1", "input": {}}`), &out)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Failed)

	decisions := decodeDecisions(t, &out)
	require.Len(t, decisions, 1)
	assert.Contains(t, decisions[0].Error, "routing failed")
	assert.Equal(t, "e1", decisions[0].ExecutionID)
}

func TestWorker_Process_Cancelled(t *testing.T) {
	w := newTestWorker(t, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	stats, err := w.Process(ctx, strings.NewReader(`{"execution_id": "e1", "input": {}}`), &out)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, stats.Processed)
	assert.Zero(t, out.Len())
}

func TestWorker_Process_LineTooLong(t *testing.T) {
	w := newTestWorker(t, false)
	long := `{"execution_id": "e1", "input": {"pad": "` + strings.Repeat("x", 2048) + `"}}`

	var out bytes.Buffer
	_, err := w.Process(context.Background(), strings.NewReader(long), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds 1024 bytes")
}
