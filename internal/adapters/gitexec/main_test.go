package gitexec

import (
	"testing"

	"go.uber.org/goleak"
)

// Every Run must reap its process and the pipe copiers.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
