// Package api handles incoming HTTP requests for the task and user
// resources. Handlers decode and validate request bodies, call the services
// and translate their errors into problem responses via HandleAPIError.
// Authentication, tracing and CORS live in the middleware subpackage.
package api
