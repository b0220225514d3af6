// Package services contains the application services the client views share:
// the persisted session and the cached service catalog.
package services
