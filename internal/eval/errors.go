package eval

import (
	"fmt"

	"github.com/govox-lang/govox/internal/lexer"
)

// RuntimeError carries the (token, message) pair for every runtime
// failure, so the driver can report the offending line without the
// evaluator ever needing to format output itself.
type RuntimeError struct {
	Token   lexer.Token
	Message string
}

// Error renders the runtime diagnostic format: "<message>\n[line L]".
func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Token.Line)
}
