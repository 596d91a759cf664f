// Package compose assembles build-tool descriptors from selected features.
//
// # Overview
//
// A [Catalog] maps feature names to [Fragment] values: optional bundles of
// dependencies, plugins, configuration entries, templates, computed
// properties and (for Maven) a parent. A [Composer] takes a [Request] (the
// selected features, explicit dependency overrides and a configuration map)
// and produces one [Descriptor].
//
// The composition runs in independent passes that execute concurrently:
//
//   - dependencies: feature dependencies followed by the explicit overrides
//   - plugins: feature plugins (filtered by role for Maven)
//   - configurations, templates and properties
//   - parent (Maven only) and excluded dependencies
//
// Entries flagged with LastVersion get their version from a [VersionResolver]
// before the descriptor is returned. Lookups run concurrently and the first
// failure aborts the whole composition; no partial descriptor is ever
// returned. Missing optional data (an absent fragment kind, an unknown
// configuration key, no parent) is never an error.
//
// # Build Systems
//
// Each build system lives in its own subpackage and exports a [BuildSystem]
// value:
//
//   - [maven]: scope normalization, build/reporting plugin roles, parent
//   - [gradle]: plugin overrides, templates under gradle/
//
// The [buildsystems] package lists them and constructs composers by name.
//
// # Usage
//
//	cat, err := compose.LoadCatalog("maven.toml")
//	composer, err := buildsystems.New("maven", cat, resolver)
//	desc, err := composer.Compose(ctx, compose.Request{
//	    Features: []string{"web-server", "lombok"},
//	    Config:   map[string]any{"javaVersion": "17"},
//	})
//
// Catalog fragments are never modified; every pass works on copies, so a
// catalog can be shared by concurrent compositions.
//
// [maven]: github.com/matzehuels/stackforge/pkg/compose/maven
// [gradle]: github.com/matzehuels/stackforge/pkg/compose/gradle
// [buildsystems]: github.com/matzehuels/stackforge/pkg/compose/buildsystems
package compose
