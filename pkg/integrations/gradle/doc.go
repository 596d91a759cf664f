// Package gradle provides an HTTP client for the Gradle Plugin Portal.
//
// # Overview
//
// Every plugin published to https://plugins.gradle.org has a plugin marker
// artifact named "<id>.gradle.plugin" in the group "<id>". The portal serves
// these markers from a Maven repository, so the newest version of a plugin is
// read from the marker's maven-metadata.xml:
//
//	https://plugins.gradle.org/m2/org/jetbrains/kotlin/jvm/org.jetbrains.kotlin.jvm.gradle.plugin/maven-metadata.xml
//
// # Usage
//
//	client := gradle.NewClient(cache, 24*time.Hour)
//	plugin, err := client.FetchPlugin(ctx, "org.springframework.boot", false)
//	fmt.Println(plugin.Version)
package gradle
