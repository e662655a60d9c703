// Package kvstore provides the device-local key-value store backing all
// game state. Writes are best-effort: a full disk or unwritable database
// degrades to a silent no-op, reads degrade to "absent", and the app
// keeps running on whatever made it into memory.
package kvstore

// Store is the persistence contract every other component depends on.
// No call returns an error; failure modes are absorbed per the contract
// above. Each call is independently atomic at the backend's granularity.
type Store interface {
	// Get returns the value for key, or ok=false if it is absent or
	// the backend failed.
	Get(key string) (value string, ok bool)
	// Set stores value under key, best-effort.
	Set(key, value string)
	// Remove deletes key, best-effort.
	Remove(key string)
	// Keys enumerates every key currently present, in no particular
	// order, regardless of namespace.
	Keys() []string
}
