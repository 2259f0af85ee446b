// Package mail keeps the application independent from a specific email
// provider. Use cases depend on the Mail interface; SMTP delivery and the
// retrying dispatcher live here.
package mail
