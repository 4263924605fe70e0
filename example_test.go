package metakit_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/richardhadden/metakit"
)

// Example_basic demonstrates loading a hierarchy from a definition file and
// resolving an entity type's effective metadata.
func Example_basic() {
	tmpDir, err := os.MkdirTemp("", "metakit-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	definitions := `
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
      tags: [base]
  - name: Dog
    parent: Entity
    meta:
      icon: paw
      tags: [pet]
`
	if err := os.WriteFile(filepath.Join(tmpDir, "nodes.yaml"), []byte(definitions), 0644); err != nil {
		log.Fatal(err)
	}

	service, err := metakit.New(context.Background(), tmpDir)
	if err != nil {
		log.Fatal(err)
	}

	dog, err := service.Resolve("NodeMeta", "Dog")
	if err != nil {
		log.Fatal(err)
	}

	icon, _ := dog.Get("icon")
	abstract, _ := dog.Get("abstract")
	tags, _ := dog.Get("tags")
	fmt.Printf("icon: %v\n", icon)
	fmt.Printf("abstract: %v\n", abstract)
	fmt.Printf("tags: %v\n", tags)
	// Output:
	// icon: paw
	// abstract: false
	// tags: [base pet]
}

// ExampleDefine demonstrates building a schema and hierarchy in code rather
// than from manifest files.
func ExampleDefine() {
	schema, err := metakit.Define("EntityMeta",
		metakit.FieldSpec{Name: "display_name", Kind: metakit.KindString, Default: metakit.Placeholder},
		metakit.FieldSpec{Name: "roles", Kind: metakit.KindSet, Policy: metakit.Accumulate,
			DefaultFactory: func() any { return metakit.NewSet() }},
	)
	if err != nil {
		log.Fatal(err)
	}

	h := metakit.NewHierarchy(schema)

	root, _ := schema.NewRecord(map[string]any{
		"display_name": "Entity",
		"roles":        metakit.NewSet("reader"),
	})
	if _, err := h.Register("Entity", "", root); err != nil {
		log.Fatal(err)
	}

	child, _ := schema.NewRecord(map[string]any{
		"roles": metakit.NewSet("writer"),
	})
	if _, err := h.Register("Editor", "Entity", child); err != nil {
		log.Fatal(err)
	}

	rec, _ := h.Resolve("Editor")
	name := metakit.MustValue[string](rec, "display_name")
	roles := metakit.MustValue[metakit.Set](rec, "roles")
	fmt.Printf("display_name: %s\n", name)
	fmt.Printf("roles: %v\n", roles.Elems())
	// Output:
	// display_name: Entity
	// roles: [reader writer]
}
