// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// IngestService turns document bytes into stored chunks; QueryService
// answers questions against them.
package services
