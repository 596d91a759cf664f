package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateFeatureName validates a feature identifier supplied by a caller.
// Feature names are opaque catalog keys, so the rules only reject input that
// is obviously malformed:
//   - No empty names
//   - No control characters or whitespace
//   - Maximum length of 128 characters
func ValidateFeatureName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidFeature, "feature name cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidFeature, "feature name too long (max 128 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidFeature, "feature name contains invalid characters: %q", name)
		}
	}
	return nil
}

// mavenPartRegex matches a single groupId, artifactId or version segment.
var mavenPartRegex = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9._-]*$`)

// ValidateCoordinate validates a Maven coordinate "groupId:artifactId" with an
// optional ":version" suffix.
func ValidateCoordinate(coord string) error {
	if coord == "" {
		return New(ErrCodeInvalidCoordinate, "coordinate cannot be empty")
	}
	parts := strings.Split(coord, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return New(ErrCodeInvalidCoordinate, "invalid coordinate %q (expected groupId:artifactId[:version])", coord)
	}
	for _, p := range parts {
		if !mavenPartRegex.MatchString(p) {
			return New(ErrCodeInvalidCoordinate, "invalid coordinate segment %q in %q", p, coord)
		}
	}
	return nil
}

// pluginIDRegex matches Gradle plugin ids (e.g. "org.springframework.boot").
var pluginIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9-]*(\.[A-Za-z0-9][A-Za-z0-9-]*)*$`)

// ValidatePluginID validates a Gradle plugin id.
func ValidatePluginID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidCoordinate, "plugin id cannot be empty")
	}
	if !pluginIDRegex.MatchString(id) {
		return New(ErrCodeInvalidCoordinate, "invalid plugin id: %q", id)
	}
	return nil
}

// ValidateTemplateName validates a template name before it is joined under a
// build-system directory.
//
// Validation rules:
//   - Name cannot be empty
//   - No absolute paths
//   - No path traversal sequences (..)
//   - No backslashes or control characters
func ValidateTemplateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidCatalog, "template name cannot be empty")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidCatalog, "template name contains invalid characters")
		}
	}
	if strings.HasPrefix(name, "/") {
		return New(ErrCodeInvalidCatalog, "template name must be relative: %q", name)
	}
	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidCatalog, "template name cannot contain path traversal sequences: %q", name)
	}
	if strings.Contains(name, "\\") {
		return New(ErrCodeInvalidCatalog, "template name cannot contain backslashes: %q", name)
	}
	return nil
}

// ValidateURL validates a registry URL string.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidConfig, "URL cannot be empty")
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidConfig, "URL must use http or https scheme: %q", rawURL)
	}
	return nil
}
