// Package telemetry configures structured logging for the quarry tool.
// The resolution core is pure and does not log; the front-end and CLI
// obtain their zerolog loggers here.
package telemetry
