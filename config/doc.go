// Package config loads the service configuration from the environment and an
// optional config file, and provides the database pool constructors with the
// tuning the service expects.
package config
