package compose

import (
	"context"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/stackforge/pkg/errors"
)

// VersionResolver looks up the newest published version of a coordinate.
//
// Implementations wrap registry clients (Maven Central, the Gradle Plugin
// Portal) and own retries and caching. Both methods must be safe for
// concurrent use and should return ctx.Err() when ctx is canceled.
type VersionResolver interface {
	// DependencyVersion returns the latest version of a Maven artifact.
	DependencyVersion(ctx context.Context, dep Dependency) (string, error)
	// PluginVersion returns the latest version of a Gradle plugin.
	PluginVersion(ctx context.Context, plugin Plugin) (string, error)
}

// DependencyLookup resolves the latest version of a dependency.
type DependencyLookup func(ctx context.Context, dep Dependency) (string, error)

// PluginLookup resolves the latest version of a plugin.
type PluginLookup func(ctx context.Context, plugin Plugin) (string, error)

// ResolveDependencies returns a copy of deps in the same order where every
// LastVersion entry has its Version set by lookup. Other entries pass through
// unchanged.
//
// Lookups run concurrently with no upper bound. The first failure cancels the
// context handed to the remaining lookups and is returned as a
// RESOLUTION_FAILED error; no partial result is returned.
func ResolveDependencies(ctx context.Context, deps []Dependency, lookup DependencyLookup) ([]Dependency, error) {
	out := slices.Clone(deps)
	g, ctx := errgroup.WithContext(ctx)
	for i := range out {
		if !out[i].LastVersion {
			continue
		}
		g.Go(func() error {
			v, err := versionOf(ctx, out[i].Coordinate(), func(ctx context.Context) (string, error) {
				return lookup(ctx, out[i])
			})
			if err != nil {
				return err
			}
			out[i].Version = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// ResolvePlugins is the plugin counterpart of [ResolveDependencies]. Plugin
// dependencies flagged LastVersion are resolved with deps; when deps is nil
// they pass through unchanged.
func ResolvePlugins(ctx context.Context, plugins []Plugin, lookup PluginLookup, deps DependencyLookup) ([]Plugin, error) {
	out := slices.Clone(plugins)
	g, ctx := errgroup.WithContext(ctx)
	for i := range out {
		p := &out[i]
		if p.LastVersion {
			plugin := *p
			g.Go(func() error {
				v, err := versionOf(ctx, plugin.Coordinate(), func(ctx context.Context) (string, error) {
					return lookup(ctx, plugin)
				})
				if err != nil {
					return err
				}
				p.Version = v
				return nil
			})
		}
		if deps != nil && len(p.Dependencies) > 0 {
			pluginDeps := p.Dependencies
			g.Go(func() error {
				resolved, err := ResolveDependencies(ctx, pluginDeps, deps)
				if err != nil {
					return err
				}
				p.Dependencies = resolved
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// ResolveParent resolves a single optional parent declaration. A nil parent
// stays nil.
func ResolveParent(ctx context.Context, parent *Dependency, lookup DependencyLookup) (*Dependency, error) {
	if parent == nil {
		return nil, nil
	}
	resolved, err := ResolveDependencies(ctx, []Dependency{*parent}, lookup)
	if err != nil {
		return nil, err
	}
	return &resolved[0], nil
}

// versionOf runs one lookup and turns failures, including an empty version,
// into RESOLUTION_FAILED errors naming the coordinate.
func versionOf(ctx context.Context, coord string, lookup func(context.Context) (string, error)) (string, error) {
	v, err := lookup(ctx)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeResolution, err, "resolve latest version of %s", coord)
	}
	if v == "" {
		return "", errors.New(errors.ErrCodeResolution, "resolve latest version of %s: registry returned no version", coord)
	}
	return v, nil
}
