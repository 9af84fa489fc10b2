// Package helmrepo provides functionality for reading Helm chart repositories.
//
// This package resolves repository URLs to the location of their index
// document and retrieves that document over HTTP(S) using Helm's getter
// providers.
package helmrepo
