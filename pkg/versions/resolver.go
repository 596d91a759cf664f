package versions

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/stackforge/pkg/compose"
	"github.com/matzehuels/stackforge/pkg/integrations/gradle"
	"github.com/matzehuels/stackforge/pkg/integrations/maven"
	"github.com/matzehuels/stackforge/pkg/observability"
)

// Lookup kinds reported to observability hooks.
const (
	KindDependency = "dependency"
	KindPlugin     = "plugin"
)

// ArtifactFetcher returns the latest version of a Maven artifact.
type ArtifactFetcher interface {
	FetchArtifact(ctx context.Context, coordinate string, refresh bool) (*maven.ArtifactInfo, error)
}

// PluginFetcher returns the latest version of a Gradle plugin.
type PluginFetcher interface {
	FetchPlugin(ctx context.Context, id string, refresh bool) (*gradle.PluginInfo, error)
}

// DefaultLookupTimeout bounds a single shared registry lookup.
const DefaultLookupTimeout = 30 * time.Second

// Options configures a Resolver.
type Options struct {
	Refresh bool                 // Bypass registry caches
	Timeout time.Duration        // Per-lookup bound (default: 30s)
	Logger  func(string, ...any) // Debug callback (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultLookupTimeout
	}
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

// Resolver implements compose.VersionResolver on top of registry clients.
type Resolver struct {
	artifacts ArtifactFetcher
	plugins   PluginFetcher
	opts      Options
	group     singleflight.Group
}

var _ compose.VersionResolver = (*Resolver)(nil)

// New creates a Resolver. plugins may be nil when only Maven lookups are
// needed; Gradle plugin lookups then fail.
func New(artifacts ArtifactFetcher, plugins PluginFetcher, opts Options) *Resolver {
	return &Resolver{artifacts: artifacts, plugins: plugins, opts: opts.WithDefaults()}
}

// DependencyVersion returns the latest version of dep on Maven Central.
func (r *Resolver) DependencyVersion(ctx context.Context, dep compose.Dependency) (string, error) {
	coord := dep.Group + ":" + dep.Artifact
	return r.lookup(ctx, KindDependency, coord, func(ctx context.Context) (string, error) {
		if r.artifacts == nil {
			return "", fmt.Errorf("no maven registry configured")
		}
		info, err := r.artifacts.FetchArtifact(ctx, coord, r.opts.Refresh)
		if err != nil {
			return "", err
		}
		return info.Version, nil
	})
}

// PluginVersion returns the latest version of a Gradle plugin. Plugins
// declared by Maven coordinates instead of an id are looked up as artifacts.
func (r *Resolver) PluginVersion(ctx context.Context, plugin compose.Plugin) (string, error) {
	if plugin.ID == "" {
		return r.DependencyVersion(ctx, plugin.AsDependency())
	}
	return r.lookup(ctx, KindPlugin, plugin.ID, func(ctx context.Context) (string, error) {
		if r.plugins == nil {
			return "", fmt.Errorf("no gradle plugin registry configured")
		}
		info, err := r.plugins.FetchPlugin(ctx, plugin.ID, r.opts.Refresh)
		if err != nil {
			return "", err
		}
		return info.Version, nil
	})
}

// lookup shares one fetch between concurrent callers of the same
// coordinate. The fetch runs detached from any single caller's context so
// that one caller giving up does not fail the others; each caller still
// returns as soon as its own context is done.
func (r *Resolver) lookup(ctx context.Context, kind, coord string, fetch func(context.Context) (string, error)) (string, error) {
	start := time.Now()
	ch := r.group.DoChan(kind+"|"+coord, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.opts.Timeout)
		defer cancel()
		return fetch(fetchCtx)
	})

	var (
		version string
		err     error
		shared  bool
	)
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case res := <-ch:
		err, shared = res.Err, res.Shared
		if err == nil {
			version = res.Val.(string)
		}
	}
	elapsed := time.Since(start)

	observability.Lookup().OnLookup(ctx, kind, coord, elapsed, err)
	if err != nil {
		r.opts.Logger("lookup %s %s failed: %v", kind, coord, err)
		return "", err
	}
	r.opts.Logger("lookup %s %s -> %s (%s, shared=%t)", kind, coord, version, elapsed.Round(time.Millisecond), shared)
	return version, nil
}
