package fptest

import (
	"testing"

	"github.com/openconfig/ondatra"

	"github.com/azmyali98/sonic-mgmt/topologies/binding"
)

// RunTests initializes the appropriate binding and runs the tests.
// It should be called from every test in the suite like this:
//
//	package test
//
//	import "github.com/azmyali98/sonic-mgmt/internal/fptest"
//
//	func TestMain(m *testing.M) {
//	  fptest.RunTests(m)
//	}
func RunTests(m *testing.M) {
	ondatra.RunTests(m, binding.New)
}
