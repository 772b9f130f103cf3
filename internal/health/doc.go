// Package health serves liveness and readiness probes for the i18n server.
// Readiness runs every registered check concurrently under one timeout.
package health
