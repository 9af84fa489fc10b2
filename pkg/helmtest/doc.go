// Package helmtest provides testing utilities for Helm repository operations.
//
// This package offers index document fixtures and an [httptest.Server] based
// chart repository so tests can exercise the full fetch pipeline without
// network access.
package helmtest
