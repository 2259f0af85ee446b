// Package clock abstracts the time source.
//
// Code that reasons about expiry depends on Clocker instead of calling
// time.Now directly, so tests can freeze time.
package clock
