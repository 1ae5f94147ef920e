// Package store defines interfaces for data persistence operations on tasks
// and users. These interfaces abstract the underlying data storage mechanism
// from the application's core logic, and the sentinel errors declared here are
// the only store faults the layers above ever inspect.
package store
