// Package integrations provides HTTP clients for the registries stackforge
// asks for latest versions.
//
// # Overview
//
// Each registry has its own subpackage:
//
//   - [maven]: Maven Central (dependencies and Maven plugins)
//   - [gradle]: Gradle Plugin Portal (Gradle plugins)
//
// # Client Pattern
//
// All registry clients follow a consistent pattern:
//
//	c := maven.NewClient(cache, 24*time.Hour)
//	info, err := c.FetchArtifact(ctx, "org.projectlombok:lombok", false) // false = use cache
//
// Clients handle:
//   - HTTP requests with retry on transient failures
//   - Response caching through [cache.Cache] with a configurable TTL
//   - API-specific parsing and normalization
//
// # Shared Infrastructure
//
// The [Client] type provides shared HTTP functionality used by all registry
// clients: default headers, caching, retries and [observability] HTTP hooks.
//
// [maven]: github.com/matzehuels/stackforge/pkg/integrations/maven
// [gradle]: github.com/matzehuels/stackforge/pkg/integrations/gradle
// [cache.Cache]: github.com/matzehuels/stackforge/pkg/cache.Cache
// [observability]: github.com/matzehuels/stackforge/pkg/observability
package integrations
