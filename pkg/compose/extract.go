package compose

// collect flattens one fragment kind across the selected features. Features
// are visited in selection order and entries in declaration order; features
// unknown to the catalog or lacking the kind contribute nothing. Entries are
// copied, never deduplicated.
func collect[T any](cat Catalog, features []string, kind func(*Fragment) []T) []T {
	var out []T
	for _, feature := range features {
		frag, ok := cat.Fragment(feature)
		if !ok {
			continue
		}
		out = append(out, kind(frag)...)
	}
	return out
}

// Dependencies returns the dependencies contributed by features.
func Dependencies(cat Catalog, features []string) []Dependency {
	return collect(cat, features, func(f *Fragment) []Dependency { return f.Dependencies })
}

// Plugins returns the plugins contributed by features.
func Plugins(cat Catalog, features []string) []Plugin {
	return collect(cat, features, func(f *Fragment) []Plugin { return f.Plugins })
}

// PluginsWithRole returns the feature plugins whose role equals role.
// Plugins without a role match no role.
func PluginsWithRole(cat Catalog, features []string, role string) []Plugin {
	var out []Plugin
	for _, p := range Plugins(cat, features) {
		if p.Role != "" && p.Role == role {
			out = append(out, p)
		}
	}
	return out
}

// Configurations returns the build configuration entries contributed by
// features, verbatim.
func Configurations(cat Catalog, features []string) []string {
	return collect(cat, features, func(f *Fragment) []string { return f.Configuration })
}

// TemplateNames returns the template names contributed by features.
func TemplateNames(cat Catalog, features []string) []string {
	return collect(cat, features, func(f *Fragment) []string { return f.Templates })
}

// PropertySpecs returns the property specs contributed by features.
func PropertySpecs(cat Catalog, features []string) []PropertySpec {
	return collect(cat, features, func(f *Fragment) []PropertySpec { return f.Properties })
}

// FirstParent returns a copy of the parent declared by the first selected
// feature that has one. Later declarations are ignored.
func FirstParent(cat Catalog, features []string) *Dependency {
	for _, feature := range features {
		if frag, ok := cat.Fragment(feature); ok && frag.Parent != nil {
			parent := *frag.Parent
			return &parent
		}
	}
	return nil
}
