// Package hash holds the secret hashing strategies.
//
// Passwords are stored only as hashes (bcrypt by default, argon2id behind a
// config switch). HMAC is for deterministic digests of opaque tokens so the
// plain token never touches storage.
package hash
