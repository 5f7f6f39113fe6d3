// Package store defines interfaces for data persistence operations on
// the membership registry. These interfaces abstract the underlying
// storage mechanism from the application's core logic, so the HTTP
// layer depends only on behavior, not on a specific database.
package store
