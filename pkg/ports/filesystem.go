package ports

// FileSystem is where captured frames land.
type FileSystem interface {
	// WriteFile replaces path with data. Readers never observe a partial
	// frame, including when a retry overwrites an earlier attempt.
	WriteFile(path string, data []byte) error

	// MkdirAll creates the output directory and its parents.
	MkdirAll(path string) error

	// MkdirTemp creates a fresh output directory when none was requested.
	MkdirTemp(pattern string) (string, error)
}
