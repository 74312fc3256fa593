// Package kernel contains shared value objects used across the marketplace
// aggregates: identifiers, geographic points, monetary amounts, and contact
// details. All types are immutable and constructed through validating factory
// functions; zero values fail validation.
package kernel
