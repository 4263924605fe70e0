package platform_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/richardhadden/metakit"
	"github.com/richardhadden/metakit/pkg/core"
)

const definitions = `
schema:
  name: NodeMeta
  fields:
    - name: abstract
      type: bool
      policy: do_not_inherit
      default: false
    - name: icon
      type: string
      default: generic
    - name: tags
      type: list
      policy: accumulate
types:
  - name: Entity
    meta:
      abstract: true
      icon: cube
      tags: [base]
  - name: Animal
    parent: Entity
    meta:
      tags: [living]
  - name: Dog
    parent: Animal
    meta:
      icon: paw
`

func setupService(t *testing.T, opts ...metakit.Option) (*core.Service, string) {
	t.Helper()
	tmpDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(tmpDir, "nodes.yaml"), []byte(definitions), 0644); err != nil {
		t.Fatalf("failed to write definitions: %v", err)
	}

	service, err := metakit.New(context.Background(), tmpDir, opts...)
	if err != nil {
		t.Fatalf("failed to init service: %v", err)
	}
	return service, tmpDir
}

func TestNew_LoadsAndResolves(t *testing.T) {
	service, _ := setupService(t)

	rec, err := service.Resolve("NodeMeta", "Dog")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if v, _ := rec.Get("icon"); v != "paw" {
		t.Errorf("expected 'paw', got %v", v)
	}
	if v, _ := rec.Get("abstract"); v != false {
		t.Errorf("expected reset abstract, got %v", v)
	}
	tags, _ := rec.Get("tags")
	if got := tags.([]any); len(got) != 2 || got[0] != "base" || got[1] != "living" {
		t.Errorf("expected [base living], got %v", got)
	}
}

func TestNew_MustExist(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nowhere")

	if _, err := metakit.New(context.Background(), missing, metakit.WithMustExist(true)); err == nil {
		t.Error("expected error for missing definition root")
	}

	// Open is the MustExist shorthand.
	if _, err := metakit.Open(context.Background(), missing); err == nil {
		t.Error("expected Open to fail on a missing root")
	}

	// Without MustExist the directory is created and the load is empty.
	service, err := metakit.New(context.Background(), missing)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if len(service.Hierarchies()) != 0 {
		t.Errorf("expected no hierarchies, got %v", service.Hierarchies())
	}
}

func TestNew_WithRepository(t *testing.T) {
	repo := &stubRepository{}
	service, err := metakit.New(context.Background(), "ignored", metakit.WithRepository(repo))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if !repo.initialized {
		t.Error("injected repository must be initialized")
	}
	if _, ok := service.Hierarchy("Stub"); !ok {
		t.Error("expected the stub's hierarchy to load")
	}
}

type stubRepository struct {
	initialized bool
}

func (s *stubRepository) Initialize(ctx context.Context) error {
	s.initialized = true
	return nil
}

func (s *stubRepository) Load(ctx context.Context) ([]*core.Manifest, error) {
	return []*core.Manifest{{
		Schema: core.SchemaDecl{
			Name:   "Stub",
			Fields: []core.FieldDecl{{Name: "x", Type: "int", Default: 0}},
		},
		Types: []core.TypeDecl{{Name: "Root"}},
	}}, nil
}
