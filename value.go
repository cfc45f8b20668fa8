package tensorism

import (
	"fmt"

	"github.com/contactomorph/tensorism/tensor"
)

// ValueType represents the type of a runtime value.
type ValueType int8

// The value types generated code computes with.
const (
	Undefined ValueType = iota
	FloatType
	IntegerType
	SequenceType
	ArrayType
)

// Value is an interface for all values the generated code can produce:
// scalars, lazy sequences and freshly constructed arrays.
type Value interface {
	Self() ValueBase // helper indirection, see type ValueBase
	Type() ValueType // type of the value
	IsKnown() bool   // is this a usable value?
}

// ValueBase is a helper struct for operations on values.
type ValueBase struct {
	V Value
}

func (b ValueBase) String() string {
	return fmt.Sprintf("%v", b.V)
}

// Type returns the value type of a value.
func (b ValueBase) Type() ValueType {
	return b.V.Type()
}

// IsFloat is a predicate: is it a Float?
func (b ValueBase) IsFloat() bool {
	_, ok := b.V.(Float)
	return ok
}

// IsInteger is a predicate: is it an Integer?
func (b ValueBase) IsInteger() bool {
	_, ok := b.V.(Integer)
	return ok
}

// IsNumeric is a predicate: is it a scalar number?
func (b ValueBase) IsNumeric() bool {
	return b.IsFloat() || b.IsInteger()
}

// IsSequence is a predicate: is it a Sequence?
func (b ValueBase) IsSequence() bool {
	_, ok := b.V.(*Sequence)
	return ok
}

// AsFloat returns the value as a float, coercing integers. Non-numeric
// values yield an error.
func (b ValueBase) AsFloat() (float64, error) {
	switch v := b.V.(type) {
	case Float:
		return float64(v), nil
	case Integer:
		return float64(v), nil
	}
	return 0, fmt.Errorf("value is not numeric: %v", b.V)
}

// AsInteger returns the value as an integer, truncating floats.
func (b ValueBase) AsInteger() (int64, error) {
	switch v := b.V.(type) {
	case Integer:
		return int64(v), nil
	case Float:
		return int64(v), nil
	}
	return 0, fmt.Errorf("value is not numeric: %v", b.V)
}

// AsSequence returns the value as a Sequence, or an error.
func (b ValueBase) AsSequence() (*Sequence, error) {
	if s, ok := b.V.(*Sequence); ok {
		return s, nil
	}
	return nil, fmt.Errorf("value is not a sequence: %v", b.V)
}

// Plus calculates b + w.
func (b ValueBase) Plus(w Value) (Value, error) {
	return b.arith(w, "+",
		func(x, y int64) int64 { return x + y },
		func(x, y float64) float64 { return x + y })
}

// Minus calculates b - w.
func (b ValueBase) Minus(w Value) (Value, error) {
	return b.arith(w, "-",
		func(x, y int64) int64 { return x - y },
		func(x, y float64) float64 { return x - y })
}

// Times calculates b * w.
func (b ValueBase) Times(w Value) (Value, error) {
	return b.arith(w, "*",
		func(x, y int64) int64 { return x * y },
		func(x, y float64) float64 { return x * y })
}

// Divide calculates b / w. The result is always a Float; division by
// zero is an error, not an Inf.
func (b ValueBase) Divide(w Value) (Value, error) {
	x, err := b.AsFloat()
	if err != nil {
		return nil, err
	}
	y, err := w.Self().AsFloat()
	if err != nil {
		return nil, err
	}
	if y == 0 {
		return nil, fmt.Errorf("division by zero")
	}
	return Float(x / y), nil
}

// Mod calculates b % w on integers.
func (b ValueBase) Mod(w Value) (Value, error) {
	x, err := b.AsInteger()
	if err != nil {
		return nil, err
	}
	y, err := w.Self().AsInteger()
	if err != nil {
		return nil, err
	}
	if y == 0 {
		return nil, fmt.Errorf("division by zero")
	}
	return Integer(x % y), nil
}

// Negate calculates -b.
func (b ValueBase) Negate() (Value, error) {
	switch v := b.V.(type) {
	case Integer:
		return Integer(-v), nil
	case Float:
		return Float(-v), nil
	}
	return nil, fmt.Errorf("value is not numeric: %v", b.V)
}

func (b ValueBase) arith(w Value, op string,
	ints func(x, y int64) int64, floats func(x, y float64) float64) (Value, error) {
	//
	if b.IsInteger() && w.Self().IsInteger() {
		x, _ := b.AsInteger()
		y, _ := w.Self().AsInteger()
		return Integer(ints(x, y)), nil
	}
	if !b.IsNumeric() || !w.Self().IsNumeric() {
		return nil, fmt.Errorf("cannot compute %T %s %T", b.V, op, w)
	}
	x, _ := b.AsFloat()
	y, _ := w.Self().AsFloat()
	return Float(floats(x, y)), nil
}

// --- Scalars ---------------------------------------------------------------

// Float is a known floating-point scalar.
type Float float64

// Self returns this float, wrapped into a ValueBase struct.
func (f Float) Self() ValueBase { return ValueBase{f} }

// Type returns FloatType.
func (f Float) Type() ValueType { return FloatType }

// IsKnown is a predicate: is this a usable value?
func (f Float) IsKnown() bool { return true }

// Integer is a known integer scalar.
type Integer int64

// Self returns this integer, wrapped into a ValueBase struct.
func (n Integer) Self() ValueBase { return ValueBase{n} }

// Type returns IntegerType.
func (n Integer) Type() ValueType { return IntegerType }

// IsKnown is a predicate: is this a usable value?
func (n Integer) IsKnown() bool { return true }

// --- Array -----------------------------------------------------------------

// Array wraps a freshly constructed tensor, the result of an
// array-construction-mode compilation.
type Array struct {
	ND tensor.NDArray
}

// Self returns this array, wrapped into a ValueBase struct.
func (a Array) Self() ValueBase { return ValueBase{a} }

// Type returns ArrayType.
func (a Array) Type() ValueType { return ArrayType }

// IsKnown is a predicate: is this a usable value?
func (a Array) IsKnown() bool { return a.ND != nil }

func (a Array) String() string {
	return fmt.Sprintf("%v", a.ND)
}

// --- Sequence --------------------------------------------------------------

// Sequence is a lazy, finite stream of values: produced once, consumed
// once, never restarted by reuse. Expression-mode index binders lower to
// sequences, which aggregations then drain.
type Sequence struct {
	gen  func() (Value, error, bool)
	err  error
	done bool
}

// NewSequence creates a sequence from a generator. The generator returns
// the next value, or an error, or ok=false once the sequence is
// exhausted.
func NewSequence(gen func() (Value, error, bool)) *Sequence {
	return &Sequence{gen: gen}
}

// Next yields the next value of the sequence. After exhaustion, or after
// the generator failed, Next reports false forever; a generator failure
// is kept and exposed through Err.
func (s *Sequence) Next() (Value, bool) {
	if s.done {
		return nil, false
	}
	v, err, ok := s.gen()
	if err != nil {
		s.err = err
		s.done = true
		return nil, false
	}
	if !ok {
		s.done = true
		return nil, false
	}
	return v, true
}

// Err returns the generator error that terminated the sequence, if any.
func (s *Sequence) Err() error {
	return s.err
}

// Self returns this sequence, wrapped into a ValueBase struct.
func (s *Sequence) Self() ValueBase { return ValueBase{s} }

// Type returns SequenceType.
func (s *Sequence) Type() ValueType { return SequenceType }

// IsKnown is a predicate: is this a usable value?
func (s *Sequence) IsKnown() bool { return !s.done }

func (s *Sequence) String() string {
	return "<sequence>"
}

// FromGo coerces a Go value, typically a tensor element, into a Value.
func FromGo(v interface{}) (Value, error) {
	switch x := v.(type) {
	case Value:
		return x, nil
	case float64:
		return Float(x), nil
	case float32:
		return Float(x), nil
	case int:
		return Integer(x), nil
	case int8:
		return Integer(x), nil
	case int16:
		return Integer(x), nil
	case int32:
		return Integer(x), nil
	case int64:
		return Integer(x), nil
	case uint:
		return Integer(x), nil
	case uint8:
		return Integer(x), nil
	case uint16:
		return Integer(x), nil
	case uint32:
		return Integer(x), nil
	}
	return nil, fmt.Errorf("unsupported element type %T", v)
}

func (vt ValueType) String() string {
	switch vt {
	case Undefined:
		return "<undefined>"
	case FloatType:
		return "float"
	case IntegerType:
		return "integer"
	case SequenceType:
		return "sequence"
	case ArrayType:
		return "array"
	}
	return fmt.Sprintf("<illegal type: %d>", vt)
}
