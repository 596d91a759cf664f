// Package maven provides an HTTP client for Maven repositories.
//
// # Overview
//
// The client answers one question: what is the newest published version of
// an artifact? By default it asks the Maven Central search API
// (https://search.maven.org). When a repository URL is configured (a Nexus or
// Artifactory mirror), it reads the artifact's maven-metadata.xml instead.
//
// # Usage
//
//	client := maven.NewClient(cache, 24*time.Hour)
//	artifact, err := client.FetchArtifact(ctx, "org.projectlombok:lombok", false)
//	fmt.Println(artifact.Version)
//
// # Coordinates
//
// Maven artifacts are identified by coordinates in the format "groupId:artifactId".
// For example: "com.google.guava:guava", "org.apache.commons:commons-lang3".
//
// # Metadata
//
// [ParseMetadata] and [Metadata.Latest] are shared with the Gradle Plugin
// Portal client: plugin markers are published as ordinary Maven artifacts.
// Latest prefers the highest stable version by semantic version ordering and
// falls back to the <release> element for version strings that do not parse.
//
// # Caching
//
// Responses are cached to reduce load on the registry. The cache TTL is set
// when creating the client. Pass refresh=true to bypass the cache.
package maven
