// Package generators holds the build pipeline members and the registry that
// assembles them.
//
// A build runs two phases over the same ordered pipeline. In the context
// phase each ContextGenerator reads sources and publishes values into the
// shared Context. In the output phase each OutputGenerator renders files
// through a writer. A member may take part in either phase, both or none.
package generators
