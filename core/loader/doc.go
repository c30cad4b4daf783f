// Package loader registers the HTTP features and mounts their routes.
//
// A feature is a vertical slice (handler, service, routes) implementing:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager keeps features in registration order, ignores a second
// registration under the same name, skips disabled features and stops at the
// first Load error. The server registers 'catalog' and 'integrity'.
package loader
