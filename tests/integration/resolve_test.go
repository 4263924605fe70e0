package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richardhadden/metakit"
	"github.com/richardhadden/metakit/pkg/core"
)

const nodeDefinitions = `
schema:
  name: NodeMeta
  fields:
    - name: abstract
      type: bool
      policy: do_not_inherit
      default: false
    - name: display_name
      type: string
      inherit: true
    - name: tags
      type: list
      policy: accumulate
    - name: attrs
      type: map
      policy: accumulate
types:
  - name: Entity
    meta:
      abstract: true
      display_name: Entity
      tags: [base]
      attrs: {color: grey}
  - name: Animal
    parent: Entity
    meta:
      abstract: true
      tags: [living]
  - name: Dog
    parent: Animal
    meta:
      display_name: Dog
      attrs: {color: brown, sound: woof}
`

const edgeDefinitions = `{
  "schema": {
    "name": "EdgeMeta",
    "fields": [
      {"name": "weight", "type": "float", "default": 1.0},
      {"name": "directed", "type": "bool", "default": true}
    ]
  },
  "types": [
    {"name": "Link"},
    {"name": "Ownership", "parent": "Link", "meta": {"weight": 2.5}}
  ]
}`

func prepareDefinitions(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "nodes.yaml"), []byte(nodeDefinitions), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "edges"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "edges", "edges.json"), []byte(edgeDefinitions), 0644))
	return tmpDir
}

// TestResolveAcrossHierarchies loads YAML and JSON definitions from a
// nested directory tree and verifies the merge semantics end to end.
func TestResolveAcrossHierarchies(t *testing.T) {
	tmpDir := prepareDefinitions(t)
	ctx := context.Background()

	service, err := metakit.Open(ctx, tmpDir, metakit.WithStrict(true))
	require.NoError(t, err)

	assert.Equal(t, []string{"EdgeMeta", "NodeMeta"}, service.Hierarchies())

	// The leaf record reflects the whole chain.
	dog, err := service.Resolve("NodeMeta", "Dog")
	require.NoError(t, err)

	abstract, _ := dog.Get("abstract")
	assert.Equal(t, false, abstract, "do-not-inherit resets at the leaf")

	name, _ := dog.Get("display_name")
	assert.Equal(t, "Dog", name)

	tags, _ := dog.Get("tags")
	assert.Equal(t, []any{"base", "living"}, tags, "leaf declared no tags, chain accumulates")

	attrs, _ := dog.Get("attrs")
	assert.Equal(t, map[string]any{"color": "brown", "sound": "woof"}, attrs, "child wins on key collision")

	// The intermediate type keeps its own explicit abstract flag.
	animal, err := service.Resolve("NodeMeta", "Animal")
	require.NoError(t, err)
	abstract, _ = animal.Get("abstract")
	assert.Equal(t, true, abstract)

	// The inherited placeholder resolved from the root.
	animalName, _ := animal.Get("display_name")
	assert.Equal(t, "Entity", animalName)

	// JSON hierarchy with strict numbers.
	ownership, err := service.Resolve("EdgeMeta", "Ownership")
	require.NoError(t, err)
	weight, _ := ownership.Get("weight")
	assert.Equal(t, 2.5, weight)
	directed, _ := ownership.Get("directed")
	assert.Equal(t, true, directed)
}

// TestBrokenDefinitionsFailOpen verifies that a broken manifest fails the
// whole load with a diagnostic naming the file.
func TestBrokenDefinitionsFailOpen(t *testing.T) {
	tmpDir := t.TempDir()
	broken := `
schema:
  name: Broken
  fields:
    - name: orphan
      type: string
      inherit: true
types:
  - name: Root
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "broken.yaml"), []byte(broken), 0644))

	_, err := metakit.Open(context.Background(), tmpDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.yaml")
	assert.Contains(t, err.Error(), `"orphan"`)
}

// TestIntrospection verifies the observable state of the service and its
// repository after a load.
func TestIntrospection(t *testing.T) {
	tmpDir := prepareDefinitions(t)
	ctx := context.Background()

	service, err := metakit.Open(ctx, tmpDir)
	require.NoError(t, err)

	state, ok := service.State().(core.ServiceState)
	require.True(t, ok, "unexpected state type %T", service.State())

	assert.Equal(t, []string{"EdgeMeta", "NodeMeta"}, state.Hierarchies)
	assert.Equal(t, 5, state.TypeCount)
	assert.Equal(t, "repository", state.RepositoryType)
	assert.Equal(t, "service", service.ComponentType())
}
