package maven

import (
	"encoding/xml"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Metadata is the subset of a maven-metadata.xml document needed to pick the
// newest version.
type Metadata struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Versioning struct {
		Latest   string   `xml:"latest"`
		Release  string   `xml:"release"`
		Versions []string `xml:"versions>version"`
	} `xml:"versioning"`
}

// ParseMetadata decodes a maven-metadata.xml document.
func ParseMetadata(data []byte) (*Metadata, error) {
	var md Metadata
	if err := xml.Unmarshal(data, &md); err != nil {
		return nil, err
	}
	return &md, nil
}

// MetadataURL returns the maven-metadata.xml location of an artifact in the
// repository rooted at repoURL.
func MetadataURL(repoURL, groupID, artifactID string) string {
	return strings.TrimSuffix(repoURL, "/") + "/" +
		strings.ReplaceAll(groupID, ".", "/") + "/" + artifactID + "/maven-metadata.xml"
}

// Latest returns the highest listed version. Pre-releases (and Maven
// qualifiers such as -M1, -RC2, -SNAPSHOT) are skipped unless
// includePrerelease is set. Versions that are not semantic versions are
// ignored; if none parse, <release> and then <latest> are returned.
func (m *Metadata) Latest(includePrerelease bool) string {
	var (
		best    *semver.Version
		bestRaw string
	)
	for _, raw := range m.Versioning.Versions {
		raw = strings.TrimSpace(raw)
		if !includePrerelease && isQualified(raw) {
			continue
		}
		v, err := semver.NewVersion(raw)
		if err != nil {
			continue
		}
		if !includePrerelease && v.Prerelease() != "" {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best, bestRaw = v, raw
		}
	}
	if best != nil {
		return bestRaw
	}
	if m.Versioning.Release != "" {
		return m.Versioning.Release
	}
	return m.Versioning.Latest
}

var qualifiers = map[string]bool{
	"snapshot": true, "alpha": true, "beta": true, "milestone": true, "m": true,
	"rc": true, "cr": true, "preview": true, "ea": true, "dev": true,
}

// isQualified reports Maven pre-release qualifiers that semver would treat
// as stable build metadata or fail to parse.
func isQualified(v string) bool {
	for _, tok := range versionTokens(v) {
		if qualifiers[tok] {
			return true
		}
	}
	return false
}

// versionTokens splits v the way Maven compares versions: on '.' and '-'
// and on every switch between digits and letters, so "1.0-RC1" yields
// "1", "0", "rc", "1".
func versionTokens(v string) []string {
	var (
		toks  []string
		start = -1
	)
	isDigit := func(b byte) bool { return b >= '0' && b <= '9' }
	lower := strings.ToLower(v)
	for i := 0; i <= len(lower); i++ {
		if i == len(lower) || lower[i] == '.' || lower[i] == '-' {
			if start >= 0 {
				toks = append(toks, lower[start:i])
			}
			start = -1
			continue
		}
		if start >= 0 && isDigit(lower[i]) != isDigit(lower[i-1]) {
			toks = append(toks, lower[start:i])
			start = i
		}
		if start < 0 {
			start = i
		}
	}
	return toks
}
