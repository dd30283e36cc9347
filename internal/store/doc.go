// Package store defines the persistence interfaces used by the rest of the
// application, along with common store errors. Concrete implementations live
// under internal/platform.
package store
