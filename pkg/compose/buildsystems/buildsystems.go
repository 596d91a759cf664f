// Package buildsystems provides the complete list of supported build systems.
//
// The individual build system packages (maven, gradle) import pkg/compose, so
// pkg/compose cannot import them back. Consumers that need the full list, or
// need to pick a composer by name, import this package.
//
// Usage:
//
//	composer, err := buildsystems.New("gradle", catalog, resolver)
//	if err != nil {
//	    return err // UNKNOWN_BUILD_SYSTEM
//	}
//	descriptor, err := composer.Compose(ctx, req)
package buildsystems

import (
	"github.com/matzehuels/stackforge/pkg/compose"
	"github.com/matzehuels/stackforge/pkg/compose/gradle"
	"github.com/matzehuels/stackforge/pkg/compose/maven"
	"github.com/matzehuels/stackforge/pkg/errors"
)

// All is the canonical list of supported build systems.
var All = []*compose.BuildSystem{
	maven.BuildSystem,
	gradle.BuildSystem,
}

// Find returns the BuildSystem with the given name, or nil if not found.
func Find(name string) *compose.BuildSystem {
	return compose.FindBuildSystem(name, All)
}

// Names returns the names of all supported build systems.
func Names() []string {
	names := make([]string, len(All))
	for i, bs := range All {
		names[i] = bs.Name
	}
	return names
}

// New constructs the composer for the named build system.
func New(name string, cat compose.Catalog, res compose.VersionResolver) (compose.Composer, error) {
	bs := Find(name)
	if bs == nil {
		return nil, errors.New(errors.ErrCodeUnknownBuildSystem, "unknown build system %q (supported: %v)", name, Names())
	}
	return bs.New(cat, res), nil
}
