package buildsystems

import (
	"testing"

	"github.com/matzehuels/stackforge/pkg/compose/composetest"
	"github.com/matzehuels/stackforge/pkg/errors"
)

func TestFind(t *testing.T) {
	for _, name := range []string{"maven", "gradle"} {
		bs := Find(name)
		if bs == nil {
			t.Fatalf("Find(%q) = nil", name)
		}
		if bs.Name != name || bs.TemplateDir != name {
			t.Errorf("Find(%q) = %+v", name, bs)
		}
	}
	if Find("ant") != nil {
		t.Error("Find(ant) should be nil")
	}
}

func TestNew(t *testing.T) {
	c, err := New("gradle", composetest.Catalog(), composetest.Fixed("1.0"))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if c.Name() != "gradle" {
		t.Errorf("Name() = %q", c.Name())
	}

	_, err = New("sbt", composetest.Catalog(), composetest.Fixed("1.0"))
	if !errors.Is(err, errors.ErrCodeUnknownBuildSystem) {
		t.Errorf("New(sbt) error = %v, want UNKNOWN_BUILD_SYSTEM", err)
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != 2 || names[0] != "maven" || names[1] != "gradle" {
		t.Errorf("Names() = %v", names)
	}
}
