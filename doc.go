// Package metakit is the Composition Root for the metakit library.
//
// It connects the merge engine (Domain Layer) with the definition-source
// adapters (Persistence Layer) using the Hexagonal Architecture pattern.
//
// Philosophy:
//
// Metakit is a hierarchical metadata merge engine. A schema declares typed
// fields, each carrying a merge policy; entity types form a tree, each
// optionally declaring its own record of that schema; the engine computes
// every type's effective record by merging its declaration with its
// ancestor's effective record, field by field, and detects values that were
// never supplied anywhere in the chain. While the default definition source
// reads YAML/JSON manifests from the filesystem, metakit's core is
// agnostic, allowing for other sources via core.Repository.
//
// Features:
//
//   - **Three merge policies**: inherit-or-override, do-not-inherit
//     (reset to default across the boundary), and accumulate (lists
//     concatenate, sets union, maps key-union).
//   - **Explicit-supply tracking**: an explicitly set child value always
//     wins; defaulted values never mask an inherited one.
//   - **Placeholder sentinel**: declare a field that must be supplied
//     somewhere in the hierarchy; its survival to resolution is an error.
//   - **Complete diagnostics**: schema definition collects every invalid
//     field into one error.
//   - **Default Adapter (FS)**: YAML/JSON manifest files discovered by
//     glob, with watch support for revalidation on change.
//
// Usage:
//
//	// Load every manifest under ./definitions
//	svc, err := metakit.New(ctx, "./definitions",
//		metakit.WithLogger(logger),
//	)
//
//	// Resolve an entity type's effective record
//	rec, err := svc.Resolve("entity_meta", "Animal")
package metakit
