// Package domain defines the core business entities of the task backend
// and their validation rules.
package domain
