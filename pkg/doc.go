// Package pkg provides the libraries behind stackforge.
//
// # Overview
//
// Stackforge turns a set of selected features into a Maven or Gradle build
// descriptor. Each feature contributes a fragment (dependencies, plugins,
// configuration lines, templates, properties, a parent POM); the engine
// merges the fragments with the caller's explicit overrides and resolves
// "latest version" placeholders against public registries.
//
//  1. [compose] - Fragments, catalogs and the composition engine
//  2. [compose/maven], [compose/gradle] - Build system variants
//  3. [versions] - Latest-version resolution over registry clients
//  4. [integrations] - Maven Central and Gradle Plugin Portal clients
//  5. [cache], [config], [errors], [observability] - Infrastructure
//
// # Architecture
//
//	Catalog (TOML) + Request
//	         ↓
//	    [compose] extract fragments per feature
//	         ↓
//	    [versions] resolve latest versions (concurrently, cached)
//	         ↓
//	    [compose/maven] or [compose/gradle] normalize
//	         ↓
//	    Descriptor (JSON)
//
// # Quick Start
//
//	cat, _ := compose.LoadCatalog("features.toml")
//	resolver := versions.New(maven.NewClient(store, ttl), gradle.NewClient(store, ttl, ""), versions.Options{})
//	composer, _ := buildsystems.New("gradle", cat, resolver)
//	d, err := composer.Compose(ctx, compose.Request{Features: []string{"web-server", "junit"}})
package pkg
