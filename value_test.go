package tensorism

import (
	"errors"
	"testing"
)

func countingSequence(n int) *Sequence {
	i := 0
	return NewSequence(func() (Value, error, bool) {
		if i >= n {
			return nil, nil, false
		}
		i++
		return Integer(i), nil, true
	})
}

func TestSequenceConsumedOnce(t *testing.T) {
	s := countingSequence(3)
	count := 0
	for _, ok := s.Next(); ok; _, ok = s.Next() {
		count++
	}
	if count != 3 {
		t.Fatalf("expected 3 values, got %d", count)
	}
	// a drained sequence stays drained
	if _, ok := s.Next(); ok {
		t.Error("expected Next to report false after exhaustion")
	}
	if s.IsKnown() {
		t.Error("a drained sequence must not report itself usable")
	}
}

func TestSequenceKeepsGeneratorError(t *testing.T) {
	boom := errors.New("boom")
	s := NewSequence(func() (Value, error, bool) {
		return nil, boom, false
	})
	if _, ok := s.Next(); ok {
		t.Fatal("expected Next to report false on generator failure")
	}
	if s.Err() != boom {
		t.Errorf("expected the generator error to be kept, got %v", s.Err())
	}
	if _, ok := s.Next(); ok {
		t.Error("a failed sequence must stay terminated")
	}
}

func TestArithmeticPromotion(t *testing.T) {
	if v, err := Integer(2).Self().Plus(Integer(3)); err != nil || v != Integer(5) {
		t.Errorf("2 + 3: expected Integer 5, got %v (%v)", v, err)
	}
	if v, err := Integer(2).Self().Plus(Float(0.5)); err != nil || v != Float(2.5) {
		t.Errorf("2 + 0.5: expected Float 2.5, got %v (%v)", v, err)
	}
	if v, err := Integer(1).Self().Divide(Integer(2)); err != nil || v != Float(0.5) {
		t.Errorf("1 / 2: expected Float 0.5, got %v (%v)", v, err)
	}
	if _, err := Integer(1).Self().Divide(Integer(0)); err == nil {
		t.Error("expected an error for division by zero")
	}
	if _, err := Integer(1).Self().Plus(countingSequence(1)); err == nil {
		t.Error("expected an error when adding a sequence")
	}
}

func TestFromGo(t *testing.T) {
	if v, err := FromGo(1.5); err != nil || v != Float(1.5) {
		t.Errorf("expected Float 1.5, got %v (%v)", v, err)
	}
	if v, err := FromGo(int32(7)); err != nil || v != Integer(7) {
		t.Errorf("expected Integer 7, got %v (%v)", v, err)
	}
	if _, err := FromGo("nope"); err == nil {
		t.Error("expected an error for an unsupported element type")
	}
}
