package logging

import (
	"fmt"
	"io"
	"os"
)

// ErrorOutput is where UserError writes. Tests swap it for a buffer.
var ErrorOutput io.Writer = os.Stderr

// UserError prints an error message for the end user, separate from the
// structured debug logging.
func UserError(format string, args ...interface{}) {
	fmt.Fprintf(ErrorOutput, "✗ "+format+"\n", args...)
}
