// Package template provides a Handlebars template engine for rendering decision results.
//
// Router rule sets map each case key to a result template. Once a case has been
// committed, RenderCase renders that template against the final context.
//
// Example usage:
//
//	engine := template.NewEngine()
//
//	ctx := map[string]any{
//	    "customer": "ada",
//	    "priority": "high",
//	}
//
//	result, err := engine.RenderCase("{{case}}: {{customer}} ({{uppercase ctx.priority}})", ctx, "escalate")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// Output: escalate: ada (HIGH)
//
// Built-in helpers:
//   - uppercase - Convert string to uppercase
//   - lowercase - Convert string to lowercase
//   - trim - Trim whitespace from string
//   - default - Return default value if first arg is empty
//   - eq - Equality comparison
//   - ne - Inequality comparison
//   - gt - Greater than (for numbers)
//   - lt - Less than (for numbers)
//   - contains - Check if string contains substring
//   - join - Join array elements with separator
//   - len - Get length of array/string/map
//
// Example with helpers:
//
//	{{default assignee "unassigned"}}      # "unassigned" if assignee is empty
//	{{#if (eq status "active")}}...{{/if}} # Conditional
//	{{#if (gt score 0.8)}}...{{/if}}       # Numeric comparison
//	{{join tags ", "}}                     # "a, b, c"
package template
