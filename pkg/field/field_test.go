package field

import (
	"reflect"
	"testing"
)

func TestStore_Scalars(t *testing.T) {
	tests := []struct {
		name    string
		field   Field
		value   interface{}
		want    interface{}
		wantErr bool
	}{
		{
			name:  "plain string",
			field: Field{Name: "targetname", Kind: KindString},
			value: "app",
			want:  "app",
		},
		{
			name:  "allowed value canonical casing",
			field: Field{Name: "optimize", Kind: KindString, Allowed: []string{"Off", "On", "Speed"}},
			value: "speed",
			want:  "Speed",
		},
		{
			name:    "rejected enumerated value",
			field:   Field{Name: "optimize", Kind: KindString, Allowed: []string{"Off", "On"}},
			value:   "fastest",
			wantErr: true,
		},
		{
			name:    "string field rejects int",
			field:   Field{Name: "targetname", Kind: KindString},
			value:   42,
			wantErr: true,
		},
		{
			name:  "path normalized",
			field: Field{Name: "targetdir", Kind: KindPath},
			value: `bin\debug\`,
			want:  "bin/debug",
		},
		{
			name:  "integer",
			field: Field{Name: "jobs", Kind: KindInteger},
			value: 8,
			want:  8,
		},
		{
			name:  "integer from whole float",
			field: Field{Name: "jobs", Kind: KindInteger},
			value: float64(8),
			want:  8,
		},
		{
			name:    "integer rejects fraction",
			field:   Field{Name: "jobs", Kind: KindInteger},
			value:   8.5,
			wantErr: true,
		},
		{
			name:  "boolean",
			field: Field{Name: "flatten", Kind: KindBoolean},
			value: true,
			want:  true,
		},
		{
			name:    "boolean rejects string",
			field:   Field{Name: "flatten", Kind: KindBoolean},
			value:   "yes",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.field.Store(nil, tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Store(%v) succeeded, expected error", tt.value)
				}
				if _, ok := AsValidationError(err); !ok {
					t.Errorf("Store(%v) error is not a ValidationError: %v", tt.value, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Store(%v) failed: %v", tt.value, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Store(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestStore_ListAccumulatesWithinBlock(t *testing.T) {
	f := Field{Name: "defines", Kind: KindList}

	v1, err := f.Store(nil, []string{"A", "B"})
	if err != nil {
		t.Fatalf("first store failed: %v", err)
	}
	v2, err := f.Store(v1, "C")
	if err != nil {
		t.Fatalf("second store failed: %v", err)
	}

	want := []string{"A", "B", "C"}
	if !reflect.DeepEqual(v2, want) {
		t.Errorf("accumulated value = %v, want %v", v2, want)
	}
}

func TestStore_ListRejectsMixedTypes(t *testing.T) {
	f := Field{Name: "defines", Kind: KindList}
	if _, err := f.Store(nil, []interface{}{"A", 3}); err == nil {
		t.Error("expected error for non-string list element")
	}
}

func TestStore_NestedListsFlatten(t *testing.T) {
	f := Field{Name: "defines", Kind: KindList}
	got, err := f.Store(nil, []interface{}{"A", []interface{}{"B", "C"}})
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	want := []string{"A", "B", "C"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Store = %v, want %v", got, want)
	}
}

func TestMerge_ListMovesDuplicateToEnd(t *testing.T) {
	f := Field{Name: "links", Kind: KindList}
	acc := f.Merge([]string{"m", "pthread"}, []string{"dl", "m"})
	want := []string{"pthread", "dl", "m"}
	if !reflect.DeepEqual(acc, want) {
		t.Errorf("Merge = %v, want %v", acc, want)
	}
}

func TestMerge_Keyed(t *testing.T) {
	f := Field{Name: "environment", Kind: KindKeyed}
	acc := f.Merge(
		map[string]string{"CC": "gcc", "LD": "ld"},
		map[string]string{"CC": "clang"},
	)
	want := map[string]string{"CC": "clang", "LD": "ld"}
	if !reflect.DeepEqual(acc, want) {
		t.Errorf("Merge = %v, want %v", acc, want)
	}
}

func TestCopy_Isolation(t *testing.T) {
	f := Field{Name: "defines", Kind: KindList}
	stored := []string{"A", "B"}

	copied := f.Copy(stored).([]string)
	copied[0] = "mutated"

	if stored[0] != "A" {
		t.Error("Copy aliased the stored list")
	}

	keyed := Field{Name: "environment", Kind: KindKeyed}
	storedMap := map[string]string{"CC": "gcc"}
	copiedMap := keyed.Copy(storedMap).(map[string]string)
	copiedMap["CC"] = "mutated"

	if storedMap["CC"] != "gcc" {
		t.Error("Copy aliased the stored map")
	}
}

func TestRemovePatterns(t *testing.T) {
	f := Field{Name: "files", Kind: KindPathList}
	got, err := f.RemovePatterns([]interface{}{"a.c", []interface{}{"b.c"}})
	if err != nil {
		t.Fatalf("RemovePatterns failed: %v", err)
	}
	want := []string{"a.c", "b.c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RemovePatterns = %v, want %v", got, want)
	}
}

func TestKind_Classification(t *testing.T) {
	tests := []struct {
		kind      Kind
		mergeable bool
		removable bool
	}{
		{KindString, false, false},
		{KindPath, false, false},
		{KindInteger, false, false},
		{KindBoolean, false, false},
		{KindList, true, true},
		{KindPathList, true, true},
		{KindKeyed, true, false}, // keyed fields merge but cannot be removed from
	}

	for _, tt := range tests {
		if got := tt.kind.Mergeable(); got != tt.mergeable {
			t.Errorf("%s.Mergeable() = %v, want %v", tt.kind, got, tt.mergeable)
		}
		if got := tt.kind.Removable(); got != tt.removable {
			t.Errorf("%s.Removable() = %v, want %v", tt.kind, got, tt.removable)
		}
	}
}

func TestEmptyValue(t *testing.T) {
	list := Field{Name: "defines", Kind: KindList}
	if v, ok := list.EmptyValue().([]string); !ok || len(v) != 0 {
		t.Errorf("list EmptyValue = %v, want empty []string", list.EmptyValue())
	}

	keyed := Field{Name: "environment", Kind: KindKeyed}
	if v, ok := keyed.EmptyValue().(map[string]string); !ok || len(v) != 0 {
		t.Errorf("keyed EmptyValue = %v, want empty map", keyed.EmptyValue())
	}

	scalar := Field{Name: "kind", Kind: KindString}
	if scalar.EmptyValue() != nil {
		t.Errorf("scalar EmptyValue = %v, want nil", scalar.EmptyValue())
	}
}
