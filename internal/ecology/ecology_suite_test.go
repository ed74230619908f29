package ecology_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestEcology(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Ecology Suite")
}
