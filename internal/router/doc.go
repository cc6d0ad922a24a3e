// Package router evaluates declarative rule sets with the matcher engine.
//
// A rule set is a matcher chain written as data. Each rule has one guard and
// one body:
//   - condition: a CEL expression over the context, exposed as ctx
//   - match: a structural pattern; {$number: {...}} and {$string: {...}}
//     leaves become comparators and nested maps match nested records
//   - select: a gjson path whose value is committed directly or looked up
//     in cases
//
// A body commits a target, or runs nested rules in a branch. A branch works
// on a copy of the context; with extends it and unwrap promotes it back to
// the parent when the nested rules are done. Rules are tried in order and the
// first commitment wins; when nothing commits, fallback does.
//
// Example rule set:
//
//	rules:
//	  - condition: "ctx.priority == 'high'"
//	    target: urgent
//	  - match: {kind: bug, score: {$number: {min: 7}}}
//	    target: triage
//	  - select: ticket.queue
//	    cases:
//	      billing: {target: billing}
//	      tech:
//	        with: {tier: 2}
//	        unwrap: true
//	        rules:
//	          - match: {vip: true}
//	            target: tech_vip
//	fallback: default
//	results:
//	  urgent: "Page on-call for {{ctx.ticket.id}}"
//
// Example routing:
//
//	rules, err := router.LoadRuleSet("rules.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := router.NewRouter(logger).Route(ctx, input, rules)
//
// Results are Handlebars templates rendered against the final context and
// the committed case key. Cases without a template output their key.
package router
