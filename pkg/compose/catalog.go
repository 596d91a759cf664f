package compose

import (
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/stackforge/pkg/errors"
)

// Catalog looks up the fragment contributed by a feature.
//
// Implementations must be safe for concurrent reads and must not hand out
// fragments that change after construction.
type Catalog interface {
	// Fragment returns the fragment for feature. ok is false when the
	// catalog does not know the feature, in which case it contributes
	// nothing.
	Fragment(feature string) (frag *Fragment, ok bool)
}

// MapCatalog is an in-memory [Catalog].
type MapCatalog map[string]*Fragment

// Fragment implements [Catalog]. A nil entry is treated as unknown.
func (c MapCatalog) Fragment(feature string) (*Fragment, bool) {
	f, ok := c[feature]
	return f, ok && f != nil
}

// Features returns the feature names in sorted order.
func (c MapCatalog) Features() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// catalogFile is the on-disk TOML layout:
//
//	[features.web-server]
//	templates = ["web.gradle"]
//
//	[[features.web-server.dependencies]]
//	group = "org.springframework.boot"
//	artifact = "spring-boot-starter-web"
//	lastVersion = true
//	type = "implementation"
type catalogFile struct {
	Features map[string]*Fragment `toml:"features"`
}

// LoadCatalog reads a TOML catalog file. See [ParseCatalog].
func LoadCatalog(path string) (MapCatalog, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "catalog %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "read catalog %s", path)
	}
	cat, err := ParseCatalog(string(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "catalog %s", path)
	}
	return cat, nil
}

// ParseCatalog decodes a TOML catalog. Unknown keys, unknown plugin roles and
// unsafe template names are rejected so typos in catalog data surface at load
// time rather than as silently missing entries.
func ParseCatalog(data string) (MapCatalog, error) {
	var file catalogFile
	md, err := toml.Decode(data, &file)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "decode catalog")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidCatalog, "unknown catalog keys: %s", strings.Join(keys, ", "))
	}

	cat := MapCatalog(file.Features)
	if cat == nil {
		cat = MapCatalog{}
	}
	for name, frag := range cat {
		if err := validateFragment(name, frag); err != nil {
			return nil, err
		}
	}
	return cat, nil
}

func validateFragment(name string, f *Fragment) error {
	if err := errors.ValidateFeatureName(name); err != nil {
		return err
	}
	if f == nil {
		return nil
	}
	for _, t := range f.Templates {
		if err := errors.ValidateTemplateName(t); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidCatalog, err, "feature %s", name)
		}
	}
	for _, p := range f.Plugins {
		switch p.Role {
		case "", RoleBuild, RoleReporting:
		default:
			return errors.New(errors.ErrCodeInvalidCatalog, "feature %s: plugin %s has unknown role %q", name, p.Coordinate(), p.Role)
		}
	}
	return nil
}
