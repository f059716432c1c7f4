package render

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-formbuilder/pkg/form"
)

type stubRenderer struct {
	name string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) Render(ctx context.Context, f form.Form, options Options) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistryRegisterAndGet(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(stubRenderer{name: "stub"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	renderer, err := registry.Get("stub")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if renderer.Name() != "stub" {
		t.Fatalf("wrong renderer: %q", renderer.Name())
	}
	if !registry.Has("stub") {
		t.Fatal("Has returned false for registered renderer")
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(stubRenderer{name: "stub"})

	err := registry.Register(stubRenderer{name: "stub"})
	if err == nil || !strings.Contains(err.Error(), "already registered") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestRegistryRejectsNilAndUnnamed(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(nil); err == nil {
		t.Fatal("nil renderer accepted")
	}
	if err := registry.Register(stubRenderer{name: ""}); err == nil {
		t.Fatal("unnamed renderer accepted")
	}
}

func TestRegistryListIsSorted(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(stubRenderer{name: "zeta"})
	registry.MustRegister(stubRenderer{name: "alpha"})

	names := registry.List()
	if len(names) != 2 || names[0] != "alpha" || names[1] != "zeta" {
		t.Fatalf("unexpected list: %v", names)
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	registry := NewRegistry()
	if _, err := registry.Get("missing"); err == nil {
		t.Fatal("expected error for unknown renderer")
	}
}
