// Package uid holds the identifier generators: snowflake for numeric
// database keys, UUID for externally visible tokens, and a compact object id
// for request correlation.
package uid

// NumberID generates ordered numeric identifiers.
type NumberID interface {
	Generate() int64
}

// StringID generates string identifiers.
type StringID interface {
	Generate() string
}
