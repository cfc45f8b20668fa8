package tensor

import (
	"strings"
	"testing"
)

func TestFromShapeFuncOrder(t *testing.T) {
	var visited [][]int
	a := FromShapeFunc([]int{2, 3}, func(index []int) int {
		visited = append(visited, append([]int(nil), index...))
		return index[0]*10 + index[1]
	})
	if a.Rank() != 2 || a.Dim(0) != 2 || a.Dim(1) != 3 {
		t.Fatalf("expected shape 2x3, got rank %d", a.Rank())
	}
	want := [][]int{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}}
	if len(visited) != len(want) {
		t.Fatalf("expected %d visits, got %d", len(want), len(visited))
	}
	for n, ix := range want {
		if visited[n][0] != ix[0] || visited[n][1] != ix[1] {
			t.Errorf("visit %d: expected %v, got %v", n, ix, visited[n])
		}
	}
	// storage is row-major, so At agrees with the generator
	if a.At(1, 2) != 12 {
		t.Errorf("expected element (1,2) to be 12, got %d", a.At(1, 2))
	}
}

func TestFromShapeFuncEmpty(t *testing.T) {
	calls := 0
	a := FromShapeFunc([]int{3, 0}, func(index []int) int {
		calls++
		return 0
	})
	if calls != 0 {
		t.Errorf("generator called %d times for an empty shape", calls)
	}
	if a.Size() != 0 {
		t.Errorf("expected size 0, got %d", a.Size())
	}
}

func TestSetAndAt(t *testing.T) {
	a := New[float64](NewDim(2), NewDim(2))
	a.Set(3.5, 1, 0)
	if a.At(1, 0) != 3.5 {
		t.Errorf("expected 3.5, got %v", a.At(1, 0))
	}
	if v := a.UncheckedAt(1, 0); v.(float64) != 3.5 {
		t.Errorf("expected 3.5 through the untyped accessor, got %v", v)
	}
}

func TestAtValidation(t *testing.T) {
	a := FromSlice([]int{1, 2, 3})
	for _, call := range []func(){
		func() { a.At(3) },
		func() { a.At(-1) },
		func() { a.At(0, 0) },
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Error("expected At to panic for an invalid index")
				}
			}()
			call()
		}()
	}
}

func TestFromSliceCopies(t *testing.T) {
	values := []int{1, 2, 3}
	a := FromSlice(values)
	values[0] = 99
	if a.At(0) != 1 {
		t.Errorf("tensor shares storage with the input slice")
	}
}

func TestDimThumbprints(t *testing.T) {
	d1 := NewDim(7)
	d2 := NewDim(7)
	if !d1.Equal(d2) {
		t.Error("dimensions of equal size must compare equal")
	}
	if d1.String() == d2.String() {
		t.Errorf("expected distinct thumbprints, both render as %q", d1.String())
	}
	if s := StaticDim(7).String(); s != "7" {
		t.Errorf("expected a static dimension to render as its size, got %q", s)
	}
	if !strings.HasPrefix(d1.String(), "7|") {
		t.Errorf("expected size prefix in %q", d1.String())
	}
}
