// Package versions resolves "use the latest version" placeholders against
// public registries.
//
// [Resolver] implements compose.VersionResolver: Maven dependencies and Maven
// plugins are looked up on Maven Central, Gradle plugins on the Gradle Plugin
// Portal. Concurrent lookups of the same coordinate share one registry call.
package versions
