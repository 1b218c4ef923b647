// File: internal/patch/errors.go
// Brief: Typed errors of the patch lifecycle.

package patch

import (
	"fmt"

	"github.com/patjlm/gcp-hcp-apps/internal/fleet"
)

// GapError reports a rollout-frontier inconsistency: a target canonically
// preceding the frontier has no covering patch.
type GapError struct {
	Frontier fleet.Path
	Missing  fleet.Path
}

func (e *GapError) Error() string {
	return fmt.Sprintf("gap detected: patch exists at %s but missing from %s", e.Frontier, e.Missing)
}

// TargetExistsError reports that a promotion or coalescing step would
// overwrite an existing artifact.
type TargetExistsError struct {
	File string
}

func (e *TargetExistsError) Error() string {
	return "target already exists: " + e.File
}
