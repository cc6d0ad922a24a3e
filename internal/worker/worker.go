package worker

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aescanero/dago-matcher/internal/config"
	"github.com/aescanero/dago-matcher/internal/router"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var validate = validator.New()

// WorkRequest represents a routing work request
type WorkRequest struct {
	ExecutionID string         `json:"execution_id" validate:"required"`
	NodeID      string         `json:"node_id"`
	Input       map[string]any `json:"input"`
}

// Decision is written for every request. Error is set instead of the
// routing fields when the request failed.
type Decision struct {
	ExecutionID  string         `json:"execution_id,omitempty"`
	NodeID       string         `json:"node_id,omitempty"`
	EvaluationID string         `json:"evaluation_id,omitempty"`
	TargetNode   string         `json:"target_node,omitempty"`
	Output       string         `json:"output,omitempty"`
	Reasoning    string         `json:"reasoning,omitempty"`
	PathTaken    string         `json:"path_taken,omitempty"`
	Context      map[string]any `json:"context,omitempty"`
	Error        string         `json:"error,omitempty"`
	Line         int            `json:"line"`
	Timestamp    time.Time      `json:"timestamp"`
}

// Stats summarizes a batch
type Stats struct {
	Processed int `json:"processed"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Fallbacks int `json:"fallbacks"`
}

// Worker routes batches of requests against one rule set
type Worker struct {
	config *config.Config
	router *router.Router
	rules  *router.RuleSet
	logger *zap.Logger
	now    func() time.Time
}

// NewWorker creates a new worker
func NewWorker(cfg *config.Config, routerInstance *router.Router, rules *router.RuleSet, logger *zap.Logger) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Worker{
		config: cfg,
		router: routerInstance,
		rules:  rules,
		logger: logger,
		now:    time.Now,
	}
}

// Process reads one JSON request per line from r and writes one JSON
// decision per request to w. Blank lines are skipped. A failed request
// produces an error line; with FailFast it also ends the batch with an
// error. Cancelling ctx stops the batch between requests.
func (w *Worker) Process(ctx context.Context, r io.Reader, out io.Writer) (Stats, error) {
	var stats Stats

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(64*1024, w.config.MaxLineBytes)), w.config.MaxLineBytes)
	encoder := json.NewEncoder(out)

	w.logger.Info("starting batch",
		zap.Int("num_rules", len(w.rules.Rules)),
		zap.Bool("fail_fast", w.config.FailFast),
	)

	line := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			w.logger.Warn("batch cancelled", zap.Int("line", line), zap.Error(err))
			return stats, err
		}

		line++
		data := scanner.Bytes()
		if len(bytes.TrimSpace(data)) == 0 {
			continue
		}

		stats.Processed++
		decision, err := w.handleLine(ctx, data, line)
		if err != nil {
			stats.Failed++
			w.logger.Error("failed to process routing request",
				zap.Int("line", line),
				zap.String("execution_id", decision.ExecutionID),
				zap.Error(err),
			)
		} else {
			stats.Succeeded++
			if decision.PathTaken == router.PathFallback {
				stats.Fallbacks++
			}
		}

		if encErr := encoder.Encode(decision); encErr != nil {
			return stats, fmt.Errorf("failed to write decision: %w", encErr)
		}

		if err != nil && w.config.FailFast {
			return stats, fmt.Errorf("line %d: %w", line, err)
		}
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return stats, fmt.Errorf("line %d exceeds %d bytes: %w", line+1, w.config.MaxLineBytes, err)
		}
		return stats, fmt.Errorf("failed to read requests: %w", err)
	}

	w.logger.Info("batch finished",
		zap.Int("processed", stats.Processed),
		zap.Int("succeeded", stats.Succeeded),
		zap.Int("failed", stats.Failed),
		zap.Int("fallbacks", stats.Fallbacks),
	)

	return stats, nil
}

// handleLine routes a single request line. The returned decision is always
// writable: on failure it carries the error.
func (w *Worker) handleLine(ctx context.Context, data []byte, line int) (*Decision, error) {
	decision := &Decision{Line: line, Timestamp: w.now().UTC()}

	request, err := parseWorkRequest(data)
	if request != nil {
		decision.ExecutionID = request.ExecutionID
		decision.NodeID = request.NodeID
	}
	if err != nil {
		decision.Error = err.Error()
		return decision, err
	}

	result, err := w.router.Route(ctx, request.Input, w.rules)
	if err != nil {
		err = fmt.Errorf("routing failed: %w", err)
		decision.Error = err.Error()
		return decision, err
	}

	decision.EvaluationID = result.EvaluationID
	decision.TargetNode = result.TargetNode
	decision.Output = result.Output
	decision.Reasoning = result.Reasoning
	decision.PathTaken = result.PathTaken
	decision.Context = result.Context

	w.logger.Debug("routing decision written",
		zap.String("execution_id", request.ExecutionID),
		zap.String("target_node", result.TargetNode),
	)

	return decision, nil
}

// parseWorkRequest decodes and validates one request line. The request is
// returned alongside validation errors so its identifiers can be reported.
func parseWorkRequest(data []byte) (*WorkRequest, error) {
	var request WorkRequest
	if err := json.Unmarshal(data, &request); err != nil {
		return nil, fmt.Errorf("failed to unmarshal work request: %w", err)
	}

	if err := validate.Struct(&request); err != nil {
		return &request, fmt.Errorf("invalid work request: %w", err)
	}

	return &request, nil
}
