package core

// placeholder is the sentinel type marking a field that must receive a
// concrete value somewhere in the hierarchy. Equality is by tag: any two
// placeholder values compare equal, there is no singleton to manage.
type placeholder struct{}

// Placeholder is the sentinel default for fields that need no concrete value
// at declaration, but must be supplied by the record itself or by an
// ancestor's merged record. A placeholder surviving full resolution is an
// error (see UnresolvedPlaceholderError).
var Placeholder placeholder

// IsPlaceholder reports whether v is the placeholder sentinel.
func IsPlaceholder(v any) bool {
	_, ok := v.(placeholder)
	return ok
}
