// Package version provides version information for the application.
//
// Values are injected at build time with -ldflags and fall back to the module
// build information embedded by the Go toolchain.
package version
