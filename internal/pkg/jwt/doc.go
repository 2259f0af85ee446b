// Package jwt issues and verifies the HS512 access tokens used by the HTTP
// API, and carries verified claims through the request context.
package jwt
