package compose

// Plugin roles used by Maven to split plugins into the <build> and
// <reporting> sections.
const (
	RoleBuild     = "build"
	RoleReporting = "reporting"
)

// Dependency is a library declaration contributed by a feature or supplied
// explicitly by the caller.
//
// Type carries the build-system-native dependency type (e.g. "implementation",
// "runtimeOnly", "testImplementation"). Scope is only set by build systems that
// normalize types into scopes (Maven).
type Dependency struct {
	Group       string      `json:"group" toml:"group"`
	Artifact    string      `json:"artifact" toml:"artifact"`
	Version     string      `json:"version,omitempty" toml:"version"`
	LastVersion bool        `json:"lastVersion,omitempty" toml:"lastVersion"`
	Type        string      `json:"type,omitempty" toml:"type"`
	Scope       string      `json:"scope,omitempty" toml:"scope"`
	Exclude     []Exclusion `json:"exclude,omitempty" toml:"exclude"`
}

// Coordinate returns "group:artifact".
func (d Dependency) Coordinate() string {
	return d.Group + ":" + d.Artifact
}

// Exclusion identifies a transitive dependency to exclude.
type Exclusion struct {
	Group    string `json:"group" toml:"group"`
	Artifact string `json:"artifact" toml:"artifact"`
}

// IsZero reports whether neither coordinate part is set.
func (e Exclusion) IsZero() bool {
	return e.Group == "" && e.Artifact == ""
}

// Plugin is a build plugin declaration.
//
// Gradle plugins are identified by ID (e.g. "org.springframework.boot"), Maven
// plugins by Group and Artifact. Role is only meaningful for Maven. Maven
// plugins may declare their own Dependencies, which are resolved together with
// the plugin.
type Plugin struct {
	ID           string       `json:"id,omitempty" toml:"id"`
	Group        string       `json:"group,omitempty" toml:"group"`
	Artifact     string       `json:"artifact,omitempty" toml:"artifact"`
	Version      string       `json:"version,omitempty" toml:"version"`
	LastVersion  bool         `json:"lastVersion,omitempty" toml:"lastVersion"`
	Role         string       `json:"role,omitempty" toml:"role"`
	Dependencies []Dependency `json:"dependencies,omitempty" toml:"dependencies"`
}

// Coordinate returns the plugin id, or "group:artifact" when no id is set.
func (p Plugin) Coordinate() string {
	if p.ID != "" {
		return p.ID
	}
	return p.Group + ":" + p.Artifact
}

// AsDependency returns the plugin's Maven coordinates as a dependency, used
// when a plugin version is looked up in a Maven repository.
func (p Plugin) AsDependency() Dependency {
	return Dependency{
		Group:       p.Group,
		Artifact:    p.Artifact,
		Version:     p.Version,
		LastVersion: p.LastVersion,
	}
}

// PropertySpec declares a computed property whose value is read from the
// request configuration under Config.
type PropertySpec struct {
	Name   string `json:"name" toml:"name"`
	Config string `json:"config" toml:"config"`
}

// Property is a resolved property. Value is nil when the configuration key
// was not supplied.
type Property struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// Template is a feature template paired with its destination path.
type Template struct {
	Template    string `json:"template"`
	Destination string `json:"destination"`
}

// Fragment is what a single feature contributes. Every kind is optional: a nil
// slice (or nil Parent) means the feature does not define it.
type Fragment struct {
	Dependencies  []Dependency   `json:"dependencies,omitempty" toml:"dependencies"`
	Plugins       []Plugin       `json:"plugins,omitempty" toml:"plugins"`
	Configuration []string       `json:"configuration,omitempty" toml:"configuration"`
	Templates     []string       `json:"templates,omitempty" toml:"templates"`
	Properties    []PropertySpec `json:"properties,omitempty" toml:"properties"`
	Parent        *Dependency    `json:"parent,omitempty" toml:"parent"`
}

// Kinds returns the names of the fragment kinds this fragment defines, in a
// fixed order.
func (f *Fragment) Kinds() []string {
	if f == nil {
		return nil
	}
	var kinds []string
	if f.Dependencies != nil {
		kinds = append(kinds, "dependencies")
	}
	if f.Plugins != nil {
		kinds = append(kinds, "plugins")
	}
	if f.Configuration != nil {
		kinds = append(kinds, "configuration")
	}
	if f.Templates != nil {
		kinds = append(kinds, "templates")
	}
	if f.Properties != nil {
		kinds = append(kinds, "properties")
	}
	if f.Parent != nil {
		kinds = append(kinds, "parent")
	}
	return kinds
}

// Descriptor is the composed build-tool descriptor handed to the renderer.
//
// Which fields are populated depends on the build system: Gradle fills
// Plugins, Maven fills BuildPlugins, ReportingPlugins and Parent.
type Descriptor struct {
	BuildSystem          string       `json:"buildSystem"`
	Dependencies         []Dependency `json:"dependencies,omitempty"`
	Plugins              []Plugin     `json:"plugins,omitempty"`
	BuildPlugins         []Plugin     `json:"buildPlugins,omitempty"`
	ReportingPlugins     []Plugin     `json:"reportingPlugins,omitempty"`
	Configurations       []string     `json:"configurations,omitempty"`
	Templates            []Template   `json:"templates,omitempty"`
	Properties           []Property   `json:"properties,omitempty"`
	Parent               *Dependency  `json:"parent,omitempty"`
	ExcludedDependencies []Exclusion  `json:"excludedDependencies,omitempty"`
}
