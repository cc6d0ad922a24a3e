package router

import (
	"context"
	"fmt"

	"github.com/aescanero/dago-matcher/internal/eval/cel"
	"github.com/aescanero/dago-matcher/internal/eval/template"
	"github.com/aescanero/dago-matcher/internal/matcher"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Values of RoutingResult.PathTaken
const (
	PathRule     = "rule"
	PathFallback = "fallback"
)

// RoutingResult represents the result of a routing decision
type RoutingResult struct {
	EvaluationID string         `json:"evaluation_id"`
	TargetNode   string         `json:"target_node"`
	Output       string         `json:"output"`
	Reasoning    string         `json:"reasoning"`
	PathTaken    string         `json:"path_taken"` // "rule", "fallback"
	Context      map[string]any `json:"context"`
}

// Router evaluates rule sets against input contexts
type Router struct {
	celEvaluator   *cel.Evaluator
	templateEngine *template.Engine
	logger         *zap.Logger
}

// NewRouter creates a new router
func NewRouter(logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		celEvaluator:   cel.NewEvaluator(),
		templateEngine: template.NewEngine(),
		logger:         logger,
	}
}

// Route validates rules, evaluates them against input and renders the
// result for the committed case.
func (r *Router) Route(ctx context.Context, input map[string]any, rules *RuleSet) (*RoutingResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := r.Validate(rules); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	logger := r.logger.With(zap.String("evaluation_id", id))

	logger.Info("routing request",
		zap.Int("num_rules", len(rules.Rules)),
	)

	c := &compiler{
		ctx:          ctx,
		celEvaluator: r.celEvaluator,
		logger:       logger,
		trace:        &trace{},
	}
	steps, err := c.compileRules(rules.Rules, "rules")
	if err != nil {
		logger.Error("routing failed", zap.Error(err))
		return nil, fmt.Errorf("failed to compile rules: %w", err)
	}

	m := matcher.New[string](input, matcher.WithLogger(logger))
	run(m, steps)

	result := &RoutingResult{
		EvaluationID: id,
		PathTaken:    PathRule,
	}
	if m.Resolved() {
		result.Reasoning = fmt.Sprintf("matched %s: %s", c.trace.path, c.trace.reason)
	} else {
		logger.Info("no rules matched, using fallback",
			zap.String("fallback", rules.Fallback),
		)
		m.Otherwise(rules.Fallback)
		result.PathTaken = PathFallback
		result.Reasoning = "no rules matched"
	}

	result.TargetNode, _ = m.Resolve()
	result.Context = m.Context()

	output, err := r.renderOutput(m, rules.Results)
	if err != nil {
		logger.Error("routing failed",
			zap.String("target", result.TargetNode),
			zap.Error(err),
		)
		return nil, err
	}
	result.Output = output

	logger.Info("routing decision",
		zap.String("target", result.TargetNode),
		zap.String("path", result.PathTaken),
		zap.String("reasoning", result.Reasoning),
	)

	return result, nil
}

// renderOutput renders the result template registered for the committed
// case. Cases without a template resolve to their own key.
func (r *Router) renderOutput(m *matcher.Matcher[string], results map[string]string) (string, error) {
	var renderErr error

	resolvers := make(map[string]matcher.Resolver[string, string], len(results))
	for key, tmpl := range results {
		resolvers[key] = func(ctx matcher.Context, caseKey string) string {
			out, err := r.templateEngine.RenderCase(tmpl, ctx, caseKey)
			if err != nil {
				renderErr = fmt.Errorf("failed to render result for %q: %w", caseKey, err)
			}
			return out
		}
	}

	output := matcher.ResolveWithOr(m, resolvers, func(_ matcher.Context, key string) string {
		return key
	})
	return output, renderErr
}
