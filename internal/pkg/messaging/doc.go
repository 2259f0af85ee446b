// Package messaging is the broker-agnostic event bus. The account module
// publishes domain events through it and the notification module subscribes;
// the concrete broker (Kafka, NATS, NSQ, Google Pub/Sub) is picked by
// configuration.
package messaging
