// Package rider contains the Rider aggregate: a courier who carries at most
// one delivery at a time. Availability flips are the concurrency-sensitive
// part of dispatch and are guarded both here and by the storage layer's
// conditional claim.
package rider
