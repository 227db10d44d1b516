package session

// Store defines the interface for the durable credential slot. A store holds
// at most one live credential; Save replaces the prior value unconditionally.
type Store interface {
	// Load returns the stored credential, or an empty string when no
	// credential is present.
	Load() (string, error)

	// Save overwrites the stored credential.
	Save(credential string) error

	// Clear removes the stored credential. Clearing an already-empty store
	// is not an error.
	Clear() error
}
