package core

import (
	"fmt"
	"strings"
)

// SchemaDefinitionError reports every invalid field found while defining a
// schema. Both conditions are collected in one pass so authors get the
// complete diagnostics at once instead of one field per attempt.
type SchemaDefinitionError struct {
	Schema string

	// MissingDefault lists DoNotInherit fields that declare neither a
	// default value nor a default factory.
	MissingDefault []string

	// NonCollection lists Accumulate fields that are not of a collection
	// kind, or whose default is not a collection value.
	NonCollection []string
}

func (e *SchemaDefinitionError) Error() string {
	parts := make([]string, 0, 2)
	if len(e.MissingDefault) > 0 {
		parts = append(parts, fmt.Sprintf(
			"do-not-inherit field(s) %s provide no default value or factory",
			quoteJoin(e.MissingDefault)))
	}
	if len(e.NonCollection) > 0 {
		parts = append(parts, fmt.Sprintf(
			"accumulate field(s) %s are not of a collection type",
			quoteJoin(e.NonCollection)))
	}
	return fmt.Sprintf("schema %q: %s", e.Schema, strings.Join(parts, "; "))
}

func quoteJoin(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(quoted, ", ")
}

// SchemaMismatchError reports two records, or an own record and its
// hierarchy, bound to different schemas. Records merge by schema identity,
// not structural equality.
type SchemaMismatchError struct {
	// TypeName is the entity type involved; empty for a bare record merge.
	TypeName string
	Want     string
	Got      string
}

func (e *SchemaMismatchError) Error() string {
	if e.TypeName != "" {
		return fmt.Sprintf("type %q: own record must use schema %q, not %q",
			e.TypeName, e.Want, e.Got)
	}
	return fmt.Sprintf("cannot merge records of different schemas (%q and %q)",
		e.Want, e.Got)
}

// UnresolvableSchemaError reports a type that declares no record, has no
// ancestor record, and whose schema cannot produce a record from pure
// defaults.
type UnresolvableSchemaError struct {
	TypeName string
	Schema   string
	Cause    error
}

func (e *UnresolvableSchemaError) Error() string {
	return fmt.Sprintf("type %q: a %q record must be declared somewhere in the hierarchy, or the schema must be constructible from defaults: %v",
		e.TypeName, e.Schema, e.Cause)
}

func (e *UnresolvableSchemaError) Unwrap() error { return e.Cause }

// UnresolvedPlaceholderError reports a field that still holds the
// placeholder sentinel after full hierarchy resolution: the schema declared
// the field inheritable, but no type in the chain supplied a concrete
// value.
type UnresolvedPlaceholderError struct {
	TypeName  string
	FieldName string
}

func (e *UnresolvedPlaceholderError) Error() string {
	return fmt.Sprintf("type %q: field %q can inherit a value, but none is declared anywhere in the hierarchy",
		e.TypeName, e.FieldName)
}

// RecordValidationError reports an invalid, unknown or missing value at
// record construction.
type RecordValidationError struct {
	Schema string
	Field  string
	Reason string
}

func (e *RecordValidationError) Error() string {
	return fmt.Sprintf("schema %q: field %q: %s", e.Schema, e.Field, e.Reason)
}
