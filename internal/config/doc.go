// Package config handles configuration loading, parsing, and validation
// from environment variables and an optional config.yaml file. It provides
// type-safe access to the settings needed by the server, the database pool
// and the authentication layer.
package config
