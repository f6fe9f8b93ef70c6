package domain

// Resolution is the outcome of a resolution hook call that did not fail.
// The zero value means the identifier was not handled and the host should
// fall back to its default resolution chain.
type Resolution struct {
	// Handled is true when the identifier carried the reserved prefix.
	Handled bool
	// File is the absolute path of the single matched file.
	File string
	// Query is the query suffix of the identifier, empty or starting with "?".
	Query string
}

// Path returns the resolved path with the query suffix re-attached.
func (r Resolution) Path() string {
	return r.File + r.Query
}
