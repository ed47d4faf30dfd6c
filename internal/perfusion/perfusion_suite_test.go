package perfusion_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestPerfusion(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Perfusion Session Suite")
}
