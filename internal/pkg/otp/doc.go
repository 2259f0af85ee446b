// Package otp wraps time-based one-time passwords for the staff 2FA flow:
// generate a secret plus provisioning URI, then validate authenticator codes.
package otp
