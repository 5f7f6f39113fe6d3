// Package config handles configuration loading, parsing, and validation
// from environment variables and an optional config file. It provides
// type-safe access to the settings the server and store need while
// keeping configuration details out of the business logic.
package config
