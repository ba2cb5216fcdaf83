// Package persist provides store.Persister implementations: a JSON file on
// local disk, an object in blob storage and an in-memory slot.
package persist
