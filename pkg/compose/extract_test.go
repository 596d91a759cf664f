package compose

import (
	"reflect"
	"testing"
)

func testCatalog() MapCatalog {
	return MapCatalog{
		"a": {
			Dependencies:  []Dependency{{Group: "g", Artifact: "a1"}, {Group: "g", Artifact: "a2"}},
			Plugins:       []Plugin{{ID: "p.build", Role: RoleBuild}, {ID: "p.none"}},
			Configuration: []string{"conf-a"},
			Templates:     []string{"a.txt"},
		},
		"b": {
			Dependencies: []Dependency{{Group: "g", Artifact: "b1"}},
			Plugins:      []Plugin{{ID: "p.report", Role: RoleReporting}},
			Properties:   []PropertySpec{{Name: "b.prop", Config: "b"}},
			Parent:       &Dependency{Group: "parent", Artifact: "b"},
		},
		"c": {
			Parent: &Dependency{Group: "parent", Artifact: "c"},
		},
	}
}

func TestDependenciesOrder(t *testing.T) {
	got := Dependencies(testCatalog(), []string{"b", "missing", "a", "b"})
	var names []string
	for _, d := range got {
		names = append(names, d.Artifact)
	}
	want := []string{"b1", "a1", "a2", "b1"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("Dependencies() = %v, want %v", names, want)
	}
}

func TestPluginsWithRole(t *testing.T) {
	cat := testCatalog()
	features := []string{"a", "b"}

	tests := []struct {
		role string
		want []string
	}{
		{RoleBuild, []string{"p.build"}},
		{RoleReporting, []string{"p.report"}},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			var ids []string
			for _, p := range PluginsWithRole(cat, features, tt.role) {
				ids = append(ids, p.ID)
			}
			if !reflect.DeepEqual(ids, tt.want) {
				t.Errorf("PluginsWithRole(%q) = %v, want %v", tt.role, ids, tt.want)
			}
		})
	}

	if got := len(Plugins(cat, features)); got != 3 {
		t.Errorf("len(Plugins()) = %d, want 3", got)
	}
}

func TestExtractMissingKinds(t *testing.T) {
	cat := testCatalog()
	if got := Configurations(cat, []string{"b", "c"}); got != nil {
		t.Errorf("Configurations() = %v, want nil", got)
	}
	if got := TemplateNames(cat, []string{"a"}); !reflect.DeepEqual(got, []string{"a.txt"}) {
		t.Errorf("TemplateNames() = %v", got)
	}
	if got := PropertySpecs(cat, []string{"a", "b"}); len(got) != 1 || got[0].Name != "b.prop" {
		t.Errorf("PropertySpecs() = %v", got)
	}
	if got := Dependencies(cat, nil); got != nil {
		t.Errorf("Dependencies(nil) = %v, want nil", got)
	}
}

func TestFirstParent(t *testing.T) {
	cat := testCatalog()

	tests := []struct {
		features []string
		want     string
	}{
		{[]string{"c", "b"}, "c"},
		{[]string{"a", "b", "c"}, "b"},
		{[]string{"a"}, ""},
	}
	for _, tt := range tests {
		got := FirstParent(cat, tt.features)
		if tt.want == "" {
			if got != nil {
				t.Errorf("FirstParent(%v) = %+v, want nil", tt.features, got)
			}
			continue
		}
		if got == nil || got.Artifact != tt.want {
			t.Errorf("FirstParent(%v) = %+v, want %s", tt.features, got, tt.want)
		}
	}

	p := FirstParent(cat, []string{"b"})
	p.Version = "changed"
	if cat["b"].Parent.Version != "" {
		t.Error("FirstParent must return a copy")
	}
}
