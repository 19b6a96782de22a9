// Package helm provides a convenience function for registering the built-in
// Helm annotation parsers with a [magicschema.Registry].
package helm

import (
	"go.solidfoundation.dev/core/magicschema"
	"go.solidfoundation.dev/core/magicschema/helm/bitnami"
	"go.solidfoundation.dev/core/magicschema/helm/dadav"
	"go.solidfoundation.dev/core/magicschema/helm/losisin"
	"go.solidfoundation.dev/core/magicschema/helm/norwoodj"
)

// DefaultRegistry returns a [magicschema.Registry] populated with the four
// built-in Helm annotators: helm-schema (dadav), helm-values-schema (losisin),
// bitnami, and helm-docs (norwoodj).
func DefaultRegistry() magicschema.Registry {
	r := make(magicschema.Registry)
	r.Add(dadav.New(), losisin.New(), bitnami.New(), norwoodj.New())

	return r
}
