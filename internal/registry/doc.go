// Package registry is the catalog of computation models compiled into the
// binary.
//
// Each model package exposes a Module whose Register method adds its
// constructors under a stable name. The application registers every core
// module at startup, and sessions instantiate models by name from the
// resulting Registry. Registering the same name twice is a programming error
// and panics.
package registry
