package grammar

import "fmt"

// ErrorCode identifies a class of structural compile errors.
type ErrorCode string

// Structural error codes. R01xx are scanning errors, R02xx are parse errors.
const (
	ErrUnexpectedChar ErrorCode = "R0101"
	ErrUnbalanced     ErrorCode = "R0102"

	ErrForbiddenSemicolon ErrorCode = "R0201"
	ErrForbiddenBrace     ErrorCode = "R0202"
	ErrReusedIndex        ErrorCode = "R0203"
	ErrUndeclaredIndex    ErrorCode = "R0204"
	ErrInconsistentArity  ErrorCode = "R0205"
	ErrInvalidIndexList   ErrorCode = "R0206"
	ErrMissingTensorName  ErrorCode = "R0207"
	ErrUnusedIndex        ErrorCode = "R0208"
)

// Fixed diagnostic messages, one per error code.
var messages = map[ErrorCode]string{
	ErrUnexpectedChar:     "Unexpected character",
	ErrUnbalanced:         "Unbalanced delimiters",
	ErrForbiddenSemicolon: "Character ';' is forbidden",
	ErrForbiddenBrace:     "Characters '{' and '}' are forbidden",
	ErrReusedIndex:        "Illegal reused index name",
	ErrUndeclaredIndex:    "Undeclared index",
	ErrInconsistentArity:  "Inconsistent number of indexes",
	ErrInvalidIndexList:   "Invalid content in indexes",
	ErrMissingTensorName:  "Invalid tensor name: an identifier was expected",
	ErrUnusedIndex:        "Index is never used to subscript a tensor",
}

// CompileError is a structural compile-time error. It carries a fixed
// message and the source position of the offending token. The compiler
// fails fast on the first one encountered; there is no accumulation and
// no local recovery.
type CompileError struct {
	Code ErrorCode
	Pos  Pos
}

func compileError(code ErrorCode, pos Pos) *CompileError {
	return &CompileError{Code: code, Pos: pos}
}

// Message returns the fixed diagnostic message for the error's code.
func (e *CompileError) Message() string {
	return messages[e.Code]
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s at %s: %s", e.Code, e.Pos, e.Message())
}
