package router

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aescanero/dago-matcher/internal/eval/cel"
	"github.com/aescanero/dago-matcher/internal/matcher"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// step applies one compiled rule to a matcher scope
type step func(m *matcher.Matcher[string])

// trace records the innermost rule that committed a case
type trace struct {
	path   string
	reason string
}

// compiler turns rules into steps for a single evaluation
type compiler struct {
	ctx          context.Context
	celEvaluator *cel.Evaluator
	logger       *zap.Logger
	trace        *trace
}

// run applies steps in order until a case is committed
func run(m *matcher.Matcher[string], steps []step) {
	for _, s := range steps {
		if m.Resolved() {
			return
		}
		s(m)
	}
}

func (c *compiler) compileRules(rules []Rule, path string) ([]step, error) {
	steps := make([]step, 0, len(rules))
	for i := range rules {
		s, err := c.compileRule(&rules[i], fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		steps = append(steps, s)
	}
	return steps, nil
}

func (c *compiler) compileRule(rule *Rule, path string) (step, error) {
	apply, err := c.compileGuard(rule, path)
	if err != nil {
		return nil, err
	}

	reason := describe(rule)
	with := matcher.Context(rule.With)

	return func(m *matcher.Matcher[string]) {
		c.logger.Debug("evaluating rule",
			zap.String("rule", path),
			zap.String("guard", reason),
		)

		m.WithContext(with)
		apply(m)

		if m.Resolved() && c.trace.path == "" {
			c.trace.path = path
			c.trace.reason = reason
		}
	}, nil
}

func (c *compiler) compileGuard(rule *Rule, path string) (step, error) {
	if rule.Select != "" {
		return c.compileSelect(rule, path)
	}

	var guard matcher.Guard
	switch {
	case rule.Condition != "":
		guard = c.condition(rule.Condition, path)
	case rule.Match != nil:
		pattern, err := compilePattern(rule.Match)
		if err != nil {
			return nil, fmt.Errorf("%s.match: %w", path, err)
		}
		guard = pattern
	default:
		return nil, fmt.Errorf("%s: rule has no guard", path)
	}

	if rule.Target != "" {
		target := rule.Target
		return func(m *matcher.Matcher[string]) {
			m.MatchCase(guard, target)
		}, nil
	}

	delegate, err := c.branch(nil, rule.Rules, rule.Unwrap, path+".rules")
	if err != nil {
		return nil, err
	}
	return func(m *matcher.Matcher[string]) {
		m.MatchBranch(guard, delegate)
	}, nil
}

func (c *compiler) compileSelect(rule *Rule, path string) (step, error) {
	selector := c.selector(rule.Select, path)

	if len(rule.Cases) == 0 {
		return func(m *matcher.Matcher[string]) {
			m.SelectCase(selector)
		}, nil
	}

	cases := make(map[string]matcher.Target[string], len(rule.Cases))
	for key, body := range rule.Cases {
		if body.Target != "" {
			cases[key] = matcher.To(body.Target)
			continue
		}
		delegate, err := c.branch(body.With, body.Rules, body.Unwrap, fmt.Sprintf("%s.cases.%s.rules", path, key))
		if err != nil {
			return nil, err
		}
		cases[key] = matcher.Via(delegate)
	}

	return func(m *matcher.Matcher[string]) {
		m.SelectCaseIn(selector, cases)
	}, nil
}

// branch compiles a nested rule list into a delegate. with extends the
// branch context before its rules run; unwrap promotes the branch context
// when they are done.
func (c *compiler) branch(with map[string]any, rules []Rule, unwrap bool, path string) (matcher.Delegate[string], error) {
	steps, err := c.compileRules(rules, path)
	if err != nil {
		return nil, err
	}

	return func(b *matcher.Matcher[string]) {
		b.WithContext(matcher.Context(with))
		run(b, steps)
		if unwrap {
			b.Unwrap(nil)
		}
	}, nil
}

// condition wraps a CEL expression as a predicate guard. Evaluation errors
// and non-boolean results count as no match.
func (c *compiler) condition(expr, path string) matcher.Predicate {
	return func(ctx matcher.Context) bool {
		matched, err := c.celEvaluator.EvaluateBool(c.ctx, expr, ctx)
		if err != nil {
			c.logger.Warn("rule evaluation error",
				zap.String("rule", path),
				zap.String("condition", expr),
				zap.Error(err),
			)
			return false
		}
		return matched
	}
}

// selector reads a gjson path from the JSON form of the context. A missing
// path selects the empty string, which never commits.
func (c *compiler) selector(selectPath, path string) func(matcher.Context) string {
	return func(ctx matcher.Context) string {
		data, err := json.Marshal(ctx)
		if err != nil {
			c.logger.Warn("failed to encode context for select",
				zap.String("rule", path),
				zap.String("select", selectPath),
				zap.Error(err),
			)
			return ""
		}

		result := gjson.GetBytes(data, selectPath)
		if !result.Exists() {
			return ""
		}
		return result.String()
	}
}

// describe summarizes a rule's guard for reasoning and logs
func describe(rule *Rule) string {
	switch {
	case rule.Condition != "":
		return "condition " + rule.Condition
	case rule.Match != nil:
		return "match pattern"
	default:
		return "select " + rule.Select
	}
}
