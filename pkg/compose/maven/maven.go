// Package maven composes pom.xml descriptors.
//
// Dependencies get a Maven scope derived from their declared type (see
// [ScopeFor]); plugins are split into build and reporting plugins by role and
// resolved against Maven Central like regular artifacts, including their own
// plugin dependencies. The first selected feature declaring a parent POM
// provides the parent.
package maven

import (
	"context"

	"github.com/matzehuels/stackforge/pkg/compose"
	"github.com/matzehuels/stackforge/pkg/errors"
)

// Name identifies the Maven build system.
const Name = "maven"

// TemplateDir is where Maven feature templates are written.
const TemplateDir = "maven"

// BuildSystem registers the Maven composer.
var BuildSystem = &compose.BuildSystem{
	Name:        Name,
	TemplateDir: TemplateDir,
	New: func(cat compose.Catalog, res compose.VersionResolver) compose.Composer {
		return New(cat, res)
	},
}

// Composer builds Maven descriptors from a feature catalog.
type Composer struct {
	catalog  compose.Catalog
	resolver compose.VersionResolver
}

// New creates a Maven composer.
func New(cat compose.Catalog, res compose.VersionResolver) *Composer {
	return &Composer{catalog: cat, resolver: res}
}

// Name returns "maven".
func (c *Composer) Name() string { return Name }

// Compose builds the descriptor for req. Plugin overrides in req are a
// Gradle concept and are rejected.
func (c *Composer) Compose(ctx context.Context, req compose.Request) (*compose.Descriptor, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if len(req.Plugins) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "maven does not accept plugin overrides")
	}
	features := req.SelectedFeatures()

	return compose.Run(ctx, Name, req,
		c.dependencies(features, req.Dependencies),
		c.plugins(features, compose.RoleBuild, func(d *compose.Descriptor, p []compose.Plugin) { d.BuildPlugins = p }),
		c.plugins(features, compose.RoleReporting, func(d *compose.Descriptor, p []compose.Plugin) { d.ReportingPlugins = p }),
		c.parent(features),
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

func (c *Composer) dependencies(features []string, overrides []compose.Dependency) compose.Pass {
	return func(ctx context.Context, d *compose.Descriptor) error {
		deps := append(compose.Dependencies(c.catalog, features), overrides...)
		resolved, err := compose.ResolveDependencies(ctx, deps, c.resolver.DependencyVersion)
		if err != nil {
			return err
		}
		for i := range resolved {
			resolved[i].Scope = ScopeFor(resolved[i].Type)
		}
		d.Dependencies = resolved
		return nil
	}
}

func (c *Composer) plugins(features []string, role string, set func(*compose.Descriptor, []compose.Plugin)) compose.Pass {
	return func(ctx context.Context, d *compose.Descriptor) error {
		resolved, err := compose.ResolvePlugins(ctx, compose.PluginsWithRole(c.catalog, features, role), c.pluginVersion, c.resolver.DependencyVersion)
		if err != nil {
			return err
		}
		set(d, resolved)
		return nil
	}
}

func (c *Composer) parent(features []string) compose.Pass {
	return func(ctx context.Context, d *compose.Descriptor) error {
		parent, err := compose.ResolveParent(ctx, compose.FirstParent(c.catalog, features), c.resolver.DependencyVersion)
		if err != nil {
			return err
		}
		d.Parent = parent
		return nil
	}
}

// pluginVersion looks Maven plugins up by their artifact coordinates.
func (c *Composer) pluginVersion(ctx context.Context, p compose.Plugin) (string, error) {
	return c.resolver.DependencyVersion(ctx, p.AsDependency())
}
