package models

// AccessInfo lists the users and groups allowed to see a document once
// it lands in the knowledge store. Enforcement happens server-side; this
// is carried through as-is.
type AccessInfo struct {
	Users  []string `json:"users,omitempty"`
	Groups []string `json:"groups,omitempty"`
}

// ItemMetadata describes a document's external identity and display
// attributes. URL is the unique key used to correlate local documents
// with remote files - dedup and update both key on it, never on file
// content or path.
type ItemMetadata struct {
	Title      string `json:"title"`
	URL        string `json:"url" validate:"required"`
	ContextURL string `json:"context_url,omitempty"`
	Date       string `json:"date,omitempty"`
	Source     string `json:"source,omitempty"`
}

// ExtraMetadata is the metadata blob attached to every uploaded file.
// The remote store keeps it opaque under a reserved meta key and hands
// it back verbatim on file listings.
type ExtraMetadata struct {
	Auth     AccessInfo   `json:"auth"`
	Metadata ItemMetadata `json:"metadata"`
}

// Document is a local document reference plus its declared metadata.
// Immutable once handed to an operation.
type Document struct {
	Path string        `json:"path"`
	Meta ExtraMetadata `json:"meta"`
}

// URL returns the document's external identity.
func (d Document) URL() string {
	return d.Meta.Metadata.URL
}

// Identifier returns the best human-readable identity for result
// records: the external URL when declared, the local path otherwise.
func (d Document) Identifier() string {
	if url := d.URL(); url != "" {
		return url
	}
	return d.Path
}
