package matcher_test

import (
	"fmt"
	"strings"

	"github.com/aescanero/dago-matcher/internal/eval/compare"
	"github.com/aescanero/dago-matcher/internal/matcher"
)

func ExampleNew() {
	decision, ok := matcher.New[string](matcher.Context{"kind": "bug", "severity": 8}).
		MatchCase(matcher.Pattern{"kind": "feature"}, "roadmap").
		MatchCase(matcher.Pattern{
			"kind":     "bug",
			"severity": matcher.Number(compare.NumberOptions{Min: compare.Bound(7)}),
		}, "hotfix").
		Otherwise("backlog").
		Resolve()

	fmt.Println(decision, ok)
	// Output: hotfix true
}

func ExampleMatcher_MatchBranch() {
	route := func(ctx matcher.Context) string {
		key, _ := matcher.New[string](ctx).
			MatchBranch(matcher.Pattern{"type": "ticket"}, func(b *matcher.Matcher[string]) {
				b.MatchCase(matcher.Pattern{"queue": "billing"}, "billing").
					MatchCase(matcher.Pattern{"queue": "tech"}, "support")
			}).
			Otherwise("inbox").
			Resolve()
		return key
	}

	fmt.Println(route(matcher.Context{"type": "ticket", "queue": "tech"}))
	fmt.Println(route(matcher.Context{"type": "ticket", "queue": "legal"}))
	fmt.Println(route(matcher.Context{"type": "alert"}))
	// Output:
	// support
	// inbox
	// inbox
}

func ExampleMatcher_Unwrap() {
	m := matcher.New[string](matcher.Context{"name": "ada"})
	m.Forward(func(b *matcher.Matcher[string]) {
		b.MapContext(func(ctx matcher.Context) matcher.Context {
			return matcher.Context{"name": strings.ToUpper(ctx["name"].(string))}
		}).Unwrap(nil)
	})
	m.Forward(func(b *matcher.Matcher[string]) {
		b.WithContext(matcher.Context{"name": "discarded"})
	})

	fmt.Println(m.Context()["name"])
	// Output: ADA
}

func ExampleResolveWithOr() {
	m := matcher.New[string](matcher.Context{"user": "grace", "unread": 3}).
		MatchCase(matcher.Predicate(func(ctx matcher.Context) bool { return ctx["unread"].(int) > 0 }), "inbox").
		Otherwise("idle")

	text := matcher.ResolveWithOr(m, map[string]matcher.Resolver[string, string]{
		"inbox": func(ctx matcher.Context, _ string) string {
			return fmt.Sprintf("%s has %d unread", ctx["user"], ctx["unread"])
		},
	}, func(_ matcher.Context, key string) string { return key })

	fmt.Println(text)
	// Output: grace has 3 unread
}

func ExampleMatcher_SelectCaseIn() {
	byQueue := func(ctx matcher.Context) string {
		q, _ := ctx["queue"].(string)
		return q
	}

	key, _ := matcher.New[string](matcher.Context{"queue": "billing"}).
		SelectCaseIn(byQueue, map[string]matcher.Target[string]{
			"billing": matcher.To("finance"),
			"tech":    matcher.To("support"),
		}).
		Otherwise("inbox").
		Resolve()

	fmt.Println(key)
	// Output: finance
}
