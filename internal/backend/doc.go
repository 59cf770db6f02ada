// Package backend is the HTTP client for the API management backend. It
// implements the resource and profile service contracts consumed by the
// console controllers, plus the authentication endpoints used by the CLI.
package backend
