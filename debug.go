package smooothy

import (
	"fmt"
	"os"
)

// debugLogf prints a scene diagnostic to stderr when debug mode is on.
func (s *Scene) debugLogf(format string, args ...any) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[smooothy] "+format+"\n", args...)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. In release mode callers skip this entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("smooothy debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}
