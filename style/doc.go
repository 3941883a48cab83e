// Package style keeps the stylesheets of a document in sync with host data.
//
// An [Updater] reads stylesheet templates from a [Document], runs one
// [lang.Pass] per template against the [lang.Context] of a [Provider], and
// hands the rendered CSS back to the document. Three modes exist:
//
//   - eager (default): every expression is replaced by its literal value
//     and the stylesheets are rewritten on each update;
//   - live (WithCSSVars): expressions become var(--<hash>) references on
//     the first update, and later updates only push the property map;
//   - standalone (WithStandalone): only declaration replacers run and
//     expressions stay in the output as written.
//
// A font declaration whose value uses font(--name) is followed by a
// text-decoration declaration computed from underline(--name).
package style
