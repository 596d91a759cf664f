package compose

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/stackforge/pkg/errors"
	"github.com/matzehuels/stackforge/pkg/observability"
)

// LibraryFeature is appended to the selection when composing a library
// project.
const LibraryFeature = "java-library"

// Request holds the caller's input to a composition.
type Request struct {
	// Features are the selected feature names, in selection order.
	Features []string `json:"features" toml:"features"`
	// Dependencies are explicit overrides appended after feature dependencies.
	Dependencies []Dependency `json:"dependencies,omitempty" toml:"dependencies"`
	// Plugins are explicit plugin overrides. Only Gradle accepts them.
	Plugins []Plugin `json:"plugins,omitempty" toml:"plugins"`
	// Config is the flat configuration map properties are resolved against.
	Config map[string]any `json:"config,omitempty" toml:"config"`
	// Library marks a library project; it selects [LibraryFeature].
	Library bool `json:"library,omitempty" toml:"library"`
}

// SelectedFeatures returns the feature selection including [LibraryFeature]
// for library projects.
func (r Request) SelectedFeatures() []string {
	if !r.Library {
		return r.Features
	}
	for _, f := range r.Features {
		if f == LibraryFeature {
			return r.Features
		}
	}
	out := make([]string, 0, len(r.Features)+1)
	out = append(out, r.Features...)
	return append(out, LibraryFeature)
}

// Validate checks override coordinates. Feature names are opaque: a name
// the catalog does not know contributes nothing.
func (r Request) Validate() error {
	for _, d := range r.Dependencies {
		if err := errors.ValidateCoordinate(d.Coordinate()); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRequest, err, "dependency override")
		}
	}
	for _, p := range r.Plugins {
		if p.ID == "" {
			if err := errors.ValidateCoordinate(p.Coordinate()); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidRequest, err, "plugin override")
			}
			continue
		}
		if err := errors.ValidatePluginID(p.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRequest, err, "plugin override")
		}
	}
	return nil
}

// Composer builds a [Descriptor] for one build system.
type Composer interface {
	// Name returns the build system name (e.g. "maven", "gradle").
	Name() string
	// Compose runs every composition pass concurrently and returns the
	// descriptor, or the first error with no descriptor.
	Compose(ctx context.Context, req Request) (*Descriptor, error)
}

// BuildSystem describes a supported build system. Each build system subpackage
// exports one.
type BuildSystem struct {
	// Name is the identifier used on the command line and in the HTTP API.
	Name string
	// TemplateDir is the directory feature templates are written under.
	TemplateDir string
	// New constructs a Composer over the given catalog and resolver.
	New func(cat Catalog, res VersionResolver) Composer
}

// FindBuildSystem returns the BuildSystem with the given name from systems, or
// nil if not found.
func FindBuildSystem(name string, systems []*BuildSystem) *BuildSystem {
	for _, bs := range systems {
		if bs.Name == name {
			return bs
		}
	}
	return nil
}

// Pass is one independent unit of a composition. A pass must only write the
// Descriptor fields it owns.
type Pass func(ctx context.Context, d *Descriptor) error

// Run executes passes concurrently against a fresh Descriptor. If any pass
// fails the remaining passes see a canceled context and Run returns the first
// error and a nil Descriptor.
func Run(ctx context.Context, buildSystem string, req Request, passes ...Pass) (*Descriptor, error) {
	hooks := observability.Compose()
	hooks.OnComposeStart(ctx, buildSystem, len(req.Features))
	start := time.Now()

	d := &Descriptor{BuildSystem: buildSystem}
	g, gctx := errgroup.WithContext(ctx)
	for _, pass := range passes {
		g.Go(func() error { return pass(gctx, d) })
	}
	err := g.Wait()

	hooks.OnComposeComplete(ctx, buildSystem, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return d, nil
}
