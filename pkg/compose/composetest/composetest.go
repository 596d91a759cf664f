// Package composetest provides test doubles for composition: a scriptable
// [Resolver] and a small sample catalog.
package composetest

import (
	"context"
	"fmt"
	"sync"

	"github.com/matzehuels/stackforge/pkg/compose"
)

// Resolver is a deterministic compose.VersionResolver. Versions are keyed by
// coordinate ("group:artifact" for dependencies, the id or "group:artifact"
// for plugins). Unknown coordinates resolve to Default, or fail when Default
// is empty.
type Resolver struct {
	Versions map[string]string
	Default  string
	// Fail maps coordinates to the error their lookup returns.
	Fail map[string]error

	mu    sync.Mutex
	calls []string
}

var _ compose.VersionResolver = (*Resolver)(nil)

// Fixed returns a Resolver that answers version for every coordinate.
func Fixed(version string) *Resolver {
	return &Resolver{Default: version}
}

// DependencyVersion implements compose.VersionResolver.
func (r *Resolver) DependencyVersion(ctx context.Context, dep compose.Dependency) (string, error) {
	return r.lookup(ctx, dep.Coordinate())
}

// PluginVersion implements compose.VersionResolver.
func (r *Resolver) PluginVersion(ctx context.Context, p compose.Plugin) (string, error) {
	return r.lookup(ctx, p.Coordinate())
}

// Calls returns the coordinates looked up so far, in completion order.
func (r *Resolver) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *Resolver) lookup(ctx context.Context, coord string) (string, error) {
	r.mu.Lock()
	r.calls = append(r.calls, coord)
	r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err, ok := r.Fail[coord]; ok {
		return "", err
	}
	if v, ok := r.Versions[coord]; ok {
		return v, nil
	}
	if r.Default != "" {
		return r.Default, nil
	}
	return "", fmt.Errorf("no version for %s", coord)
}

// Catalog returns a small catalog covering every fragment kind:
//
//   - "web-server": a runtimeOnly dependency flagged for latest version, a
//     template and a property
//   - "lombok": a pinned compileOnly dependency
//   - "junit": a testImplementation dependency flagged for latest version
//   - "spring-boot": a parent, a build plugin with a plugin dependency and a
//     Gradle plugin id
//   - "site": a reporting plugin
//   - "java-library": a configuration entry
//
// Each call returns a fresh catalog.
func Catalog() compose.MapCatalog {
	return compose.MapCatalog{
		"web-server": {
			Dependencies: []compose.Dependency{
				{Group: "io.undertow", Artifact: "undertow-core", LastVersion: true, Type: "runtimeOnly"},
			},
			Templates:  []string{"web.xml"},
			Properties: []compose.PropertySpec{{Name: "server.port", Config: "port"}},
		},
		"lombok": {
			Dependencies: []compose.Dependency{
				{Group: "org.projectlombok", Artifact: "lombok", Version: "1.18.30", Type: "compileOnly"},
			},
		},
		"junit": {
			Dependencies: []compose.Dependency{
				{Group: "org.junit.jupiter", Artifact: "junit-jupiter", LastVersion: true, Type: "testImplementation"},
			},
		},
		"spring-boot": {
			Parent: &compose.Dependency{Group: "org.springframework.boot", Artifact: "spring-boot-starter-parent", LastVersion: true},
			Plugins: []compose.Plugin{
				{
					ID:          "org.springframework.boot",
					Group:       "org.springframework.boot",
					Artifact:    "spring-boot-maven-plugin",
					LastVersion: true,
					Role:        compose.RoleBuild,
					Dependencies: []compose.Dependency{
						{Group: "org.springframework", Artifact: "springloaded", LastVersion: true},
					},
				},
			},
		},
		"site": {
			Plugins: []compose.Plugin{
				{Group: "org.apache.maven.plugins", Artifact: "maven-project-info-reports-plugin", Version: "3.5.0", Role: compose.RoleReporting},
			},
		},
		compose.LibraryFeature: {
			Configuration: []string{"withSourcesJar()"},
		},
	}
}
