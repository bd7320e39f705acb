package runtime

import (
	"fmt"

	"github.com/py-lama/jslama/internal/version"
)

// MinNodeVersion is the oldest Node.js release generated projects target.
const MinNodeVersion = "18.0.0"

// CheckNode returns an error when t is not a usable Node.js.
func CheckNode(t Tool) error {
	if !t.Found() {
		return t.Err
	}
	ok, err := version.Satisfies(t.Version, ">= "+MinNodeVersion)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("node %s is older than the supported minimum %s", t.Version, MinNodeVersion)
	}
	return nil
}
