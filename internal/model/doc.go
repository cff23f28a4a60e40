// Package model defines the board entities exchanged with the backend.
//
// These are read models: the client never mutates them locally, it only
// refetches them after a cache invalidation.
package model
