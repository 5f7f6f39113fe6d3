// Package postgres provides the PostgreSQL implementations of the data
// storage interfaces defined in the internal/store package. It owns
// query execution, transaction boundaries, code-to-id resolution for
// the lookup tables, and the mapping between database rows and domain
// entities.
package postgres
