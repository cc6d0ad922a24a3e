package router

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every rule-set validation error
var ErrInvalidConfig = errors.New("invalid rule set")

var validate = validator.New()

// RuleSet describes a matcher chain as data
type RuleSet struct {
	Rules    []Rule            `json:"rules" yaml:"rules" validate:"required,min=1"`
	Fallback string            `json:"fallback" yaml:"fallback" validate:"required"`
	Results  map[string]string `json:"results,omitempty" yaml:"results,omitempty"`
}

// Body is what happens when a guard matches: commit Target, or run Rules
// in a branch. With extends the context; Unwrap promotes the branch context
// to the parent when the branch ends.
type Body struct {
	With   map[string]any `json:"with,omitempty" yaml:"with,omitempty"`
	Target string         `json:"target,omitempty" yaml:"target,omitempty"`
	Rules  []Rule         `json:"rules,omitempty" yaml:"rules,omitempty"`
	Unwrap bool           `json:"unwrap,omitempty" yaml:"unwrap,omitempty"`
}

// Rule is one candidate case. Exactly one of Condition, Match or Select is
// set. A Select rule commits the selected value directly, or looks it up in
// Cases.
type Rule struct {
	Condition string          `json:"condition,omitempty" yaml:"condition,omitempty"`
	Match     map[string]any  `json:"match,omitempty" yaml:"match,omitempty"`
	Select    string          `json:"select,omitempty" yaml:"select,omitempty"`
	Cases     map[string]Body `json:"cases,omitempty" yaml:"cases,omitempty"`

	Body `yaml:",inline"`
}

// ParseRuleSet decodes a YAML (or JSON) rule set. Unknown fields are rejected.
// The result is not validated; see Router.Validate.
func ParseRuleSet(data []byte) (*RuleSet, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var rs RuleSet
	if err := decoder.Decode(&rs); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidConfig)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return &rs, nil
}

// LoadRuleSet reads and decodes a rule set file
func LoadRuleSet(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule set: %w", err)
	}

	rs, err := ParseRuleSet(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rs, nil
}

// Validate checks a rule set: schema, guard and body shapes, CEL conditions,
// match patterns and result templates.
func (r *Router) Validate(rs *RuleSet) error {
	if rs == nil {
		return fmt.Errorf("%w: rule set is nil", ErrInvalidConfig)
	}

	if err := validate.Struct(rs); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("%w: %s failed on %s", ErrInvalidConfig, fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := r.validateRules(rs.Rules, "rules"); err != nil {
		return err
	}

	for _, key := range sortedKeys(rs.Results) {
		if err := r.templateEngine.ValidateTemplate(rs.Results[key]); err != nil {
			return fmt.Errorf("%w: results.%s: %w", ErrInvalidConfig, key, err)
		}
	}

	return nil
}

func (r *Router) validateRules(rules []Rule, path string) error {
	for i := range rules {
		if err := r.validateRule(&rules[i], fmt.Sprintf("%s[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Router) validateRule(rule *Rule, path string) error {
	guards := 0
	if rule.Condition != "" {
		guards++
		if err := r.celEvaluator.ValidateExpression(rule.Condition); err != nil {
			return fmt.Errorf("%w: %s.condition: %w", ErrInvalidConfig, path, err)
		}
	}
	if rule.Match != nil {
		guards++
		if _, err := compilePattern(rule.Match); err != nil {
			return fmt.Errorf("%w: %s.match: %w", ErrInvalidConfig, path, err)
		}
	}
	if rule.Select != "" {
		guards++
	}
	if guards != 1 {
		return fmt.Errorf("%w: %s: exactly one of condition, match or select is required", ErrInvalidConfig, path)
	}

	if rule.Select != "" {
		if rule.Target != "" || len(rule.Rules) > 0 || rule.Unwrap {
			return fmt.Errorf("%w: %s: select rules take cases instead of target, rules or unwrap", ErrInvalidConfig, path)
		}
		for _, key := range sortedKeys(rule.Cases) {
			body := rule.Cases[key]
			casePath := fmt.Sprintf("%s.cases.%s", path, key)
			if body.With != nil && len(body.Rules) == 0 {
				return fmt.Errorf("%w: %s: with requires rules", ErrInvalidConfig, casePath)
			}
			if err := r.validateBody(&body, casePath); err != nil {
				return err
			}
		}
		return nil
	}

	if len(rule.Cases) > 0 {
		return fmt.Errorf("%w: %s: cases are only valid with select", ErrInvalidConfig, path)
	}
	return r.validateBody(&rule.Body, path)
}

func (r *Router) validateBody(body *Body, path string) error {
	hasTarget := body.Target != ""
	hasRules := len(body.Rules) > 0

	switch {
	case hasTarget && hasRules:
		return fmt.Errorf("%w: %s: target and rules are mutually exclusive", ErrInvalidConfig, path)
	case !hasTarget && !hasRules:
		return fmt.Errorf("%w: %s: target or rules is required", ErrInvalidConfig, path)
	case body.Unwrap && !hasRules:
		return fmt.Errorf("%w: %s: unwrap requires rules", ErrInvalidConfig, path)
	}

	if hasRules {
		return r.validateRules(body.Rules, path+".rules")
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
