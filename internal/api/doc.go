// Package api provides the HTTP handlers for the task backend.
package api
