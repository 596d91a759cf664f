package compose

import "path"

// Templates pairs each template name with its destination under dir.
func Templates(names []string, dir string) []Template {
	if len(names) == 0 {
		return nil
	}
	out := make([]Template, len(names))
	for i, name := range names {
		out[i] = Template{Template: name, Destination: path.Join(dir, name)}
	}
	return out
}

// Properties resolves each property against config. A key missing from config
// yields a nil value.
func Properties(specs []PropertySpec, config map[string]any) []Property {
	if len(specs) == 0 {
		return nil
	}
	out := make([]Property, len(specs))
	for i, ps := range specs {
		out[i] = Property{Name: ps.Name, Value: config[ps.Config]}
	}
	return out
}

// Exclusions flattens the exclusion lists of the explicit override
// dependencies. Zero-value entries are dropped; duplicates are kept.
func Exclusions(overrides []Dependency) []Exclusion {
	var out []Exclusion
	for _, dep := range overrides {
		for _, ex := range dep.Exclude {
			if !ex.IsZero() {
				out = append(out, ex)
			}
		}
	}
	return out
}
