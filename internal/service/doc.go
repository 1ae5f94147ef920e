// Package service contains the application use cases for tasks and users.
//
// Services validate input through the domain entities, apply the business
// rules that span more than one store call (an owner must exist before a task
// references it, passwords are hashed before storage) and translate store
// errors into the service sentinels that the API layer maps to HTTP statuses.
// Multi-step operations run inside store.RunInTransaction.
package service
