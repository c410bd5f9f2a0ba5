// Package intl is a scoped internationalization runtime: per-scope
// translation engines (composers) with locale fallback chains,
// pluralization, placeholder interpolation, and resource composition across
// a tree of caller scopes.
//
// # Basic Usage
//
// Create an Instance and translate through its global composer:
//
//	inst, err := intl.New(
//		intl.WithLocale("en"),
//		intl.WithFallbackLocale("en"),
//		intl.WithMessages(map[string]map[string]any{
//			"en": {"greeting": "hello {name}"},
//			"ja": {"greeting": "こんにちは、{name}"},
//		}),
//	)
//	defer inst.Close()
//
//	text := inst.Global().T("greeting", intl.M{"name": "Ada"})
//	// Output: "hello Ada"
//
// # Pluralization
//
// Messages encode plural branches with "|"; Tc threads a count through the
// locale's plural rule and binds it as the implicit argument {n}:
//
//	"no apples | one apple | {n} apples"
//
//	inst.Global().Tc("apples", 5) // "5 apples"
//
// Custom rules register per locale through WithPluralRules or a composer's
// RegisterPluralRule, without touching other scopes.
//
// # Scoped Composers
//
// Local composers attach to a host-provided scope context and compose with
// their ancestors: they can inherit the ancestor's locale, contribute
// resources to the global scope, or own fully independent state:
//
//	ctx := intl.NewSetupContext(nil)
//	c, err := inst.Use(ctx, intl.UseConfig{
//		Messages: map[string]map[string]any{
//			"en": {"title": "Settings"},
//		},
//	})
//	defer ctx.Teardown()
//
// Requesting intl.ScopeGlobal merges the contributed resources into the
// global composer and returns the global composer itself.
//
// # Fallback
//
// Resolution walks the active locale, its BCP-47 parents, the configured
// fallback locales, and the default locale, in that order. Missing keys
// degrade to the key text and a diagnostic instead of failing the caller.
//
// # Devtools
//
// SetDevtoolsHook installs a process-wide observer receiving init,
// translate, and locale-changed events from every composer. No events are
// emitted while no hook is installed.
package intl
