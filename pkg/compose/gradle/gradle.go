// Package gradle composes build.gradle descriptors.
//
// Gradle plugins are feature plugins followed by the request's explicit
// plugin overrides, resolved against the Gradle Plugin Portal. Dependency
// types are passed through as Gradle configurations; there is no scope
// mapping.
package gradle

import (
	"context"

	"github.com/matzehuels/stackforge/pkg/compose"
)

// Name identifies the Gradle build system.
const Name = "gradle"

// TemplateDir is where Gradle feature templates are written.
const TemplateDir = "gradle"

// BuildSystem registers the Gradle composer.
var BuildSystem = &compose.BuildSystem{
	Name:        Name,
	TemplateDir: TemplateDir,
	New: func(cat compose.Catalog, res compose.VersionResolver) compose.Composer {
		return New(cat, res)
	},
}

// Composer builds Gradle descriptors from a feature catalog.
type Composer struct {
	catalog  compose.Catalog
	resolver compose.VersionResolver
}

// New creates a Gradle composer.
func New(cat compose.Catalog, res compose.VersionResolver) *Composer {
	return &Composer{catalog: cat, resolver: res}
}

// Name returns "gradle".
func (c *Composer) Name() string { return Name }

// Compose builds the descriptor for req.
func (c *Composer) Compose(ctx context.Context, req compose.Request) (*compose.Descriptor, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	features := req.SelectedFeatures()

	return compose.Run(ctx, Name, req,
		func(ctx context.Context, d *compose.Descriptor) error {
			deps := append(compose.Dependencies(c.catalog, features), req.Dependencies...)
			resolved, err := compose.ResolveDependencies(ctx, deps, c.resolver.DependencyVersion)
			if err != nil {
				return err
			}
			d.Dependencies = resolved
			return nil
		},
		func(ctx context.Context, d *compose.Descriptor) error {
			plugins := append(compose.Plugins(c.catalog, features), req.Plugins...)
			resolved, err := compose.ResolvePlugins(ctx, plugins, c.resolver.PluginVersion, nil)
			if err != nil {
				return err
			}
			d.Plugins = resolved
			return nil
		},
		func(_ context.Context, d *compose.Descriptor) error {
			d.Configurations = compose.Configurations(c.catalog, features)
			return nil
		},
		func(_ context.Context, d *compose.Descriptor) error {
			d.Templates = compose.Templates(compose.TemplateNames(c.catalog, features), TemplateDir)
			return nil
		},
		func(_ context.Context, d *compose.Descriptor) error {
			d.Properties = compose.Properties(compose.PropertySpecs(c.catalog, features), req.Config)
			return nil
		},
		func(_ context.Context, d *compose.Descriptor) error {
			d.ExcludedDependencies = compose.Exclusions(req.Dependencies)
			return nil
		},
	)
}
