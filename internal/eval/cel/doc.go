// Package cel provides a CEL (Common Expression Language) evaluator for rule conditions.
//
// CEL is a non-Turing complete expression language that provides fast, safe evaluation
// of conditions. Router rules use it as a predicate guard: the expression sees the
// matcher's current context under the ctx variable and must produce a boolean.
//
// Example usage:
//
//	evaluator := cel.NewEvaluator()
//
//	matched, err := evaluator.EvaluateBool(ctx, "ctx.priority == 'high' && ctx.score > 0.9", map[string]any{
//	    "priority": "high",
//	    "score":    0.95,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// matched == true
//
// Compiled programs are cached per expression, so repeated evaluation of the
// same rule set only pays the compile cost once.
//
// Supported operations:
//   - Comparisons: ==, !=, <, <=, >, >=
//   - Boolean logic: &&, ||, !
//   - String operations: contains, startsWith, endsWith, matches
//   - Arithmetic: +, -, *, /, %
//   - List operations: in, size
//   - Map access: ctx.field, ctx["field"], has(ctx.field)
package cel
