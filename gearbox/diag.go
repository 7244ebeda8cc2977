package gearbox

import (
	"fmt"
	"io"
	"os"
)

// DiagnosticsWriter receives skip-and-continue notices emitted while
// building, such as a dog ring left off a gear with too few teeth.
// Point it at io.Discard to silence, or at a buffer to test against.
var DiagnosticsWriter io.Writer = os.Stderr

func diagf(format string, args ...interface{}) {
	fmt.Fprintf(DiagnosticsWriter, "dogbox: "+format+"\n", args...)
}
