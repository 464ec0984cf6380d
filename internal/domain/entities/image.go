// Package entities defines core domain models and data structures.
package entities

import "fmt"

// ImageTagRepository is the local repository name used for fallback image builds
const ImageTagRepository = "syft_image_build"

// BuiltImage is a container image built from a Dockerfile found in the scanned tree.
// Images are never removed by this tool.
type BuiltImage struct {
	Index      int    // zero-based position of the Dockerfile in traversal order
	Dockerfile string // path relative to the scan root
	Tag        string // syft_image_build:index<N>
}

// BuiltImageTag returns the deterministic tag for the Dockerfile at index
func BuiltImageTag(index int) string {
	return fmt.Sprintf("%s:index%d", ImageTagRepository, index)
}

// RegistryCredentials authenticate the container tooling against a registry
type RegistryCredentials struct {
	Registry string
	Username string // defaults to "AWS" for ECR
	Password string
}
