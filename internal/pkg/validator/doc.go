// Package validator wraps struct validation behind a small interface so
// request and domain inputs are checked the same way everywhere.
package validator
