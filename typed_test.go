package metakit_test

import (
	"strings"
	"testing"

	"github.com/richardhadden/metakit"
)

func typedRecord(t *testing.T) *metakit.Record {
	t.Helper()
	schema, err := metakit.Define("M",
		metakit.FieldSpec{Name: "label", Kind: metakit.KindString, Default: "base"},
		metakit.FieldSpec{Name: "count", Kind: metakit.KindInt, Default: 3},
	)
	if err != nil {
		t.Fatalf("Define failed: %v", err)
	}
	rec, err := schema.NewRecord(nil)
	if err != nil {
		t.Fatalf("NewRecord failed: %v", err)
	}
	return rec
}

func TestValue(t *testing.T) {
	rec := typedRecord(t)

	label, err := metakit.Value[string](rec, "label")
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	if label != "base" {
		t.Errorf("expected 'base', got %q", label)
	}

	// Wrong static type.
	_, err = metakit.Value[bool](rec, "count")
	if err == nil || !strings.Contains(err.Error(), "holds") {
		t.Errorf("expected type mismatch error, got %v", err)
	}

	// Unknown field.
	_, err = metakit.Value[string](rec, "missing")
	if err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestMustValue(t *testing.T) {
	rec := typedRecord(t)

	if got := metakit.MustValue[int](rec, "count"); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic for type mismatch")
		}
	}()
	_ = metakit.MustValue[bool](rec, "label")
}
