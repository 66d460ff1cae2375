package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/ternarybob/colligo/internal/models"
)

// manifestFile is the on-disk sync manifest: a list of documents with
// their external identity and access metadata.
type manifestFile struct {
	Documents []manifestDocument `toml:"documents"`
}

type manifestDocument struct {
	Path       string   `toml:"path"`
	Title      string   `toml:"title"`
	URL        string   `toml:"url"`
	ContextURL string   `toml:"context_url"`
	Date       string   `toml:"date"`
	Source     string   `toml:"source"`
	Users      []string `toml:"users"`
	Groups     []string `toml:"groups"`
}

// loadManifest reads a TOML manifest and converts it into documents.
// Relative document paths resolve against the manifest's directory.
func loadManifest(path string) ([]models.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	var manifest manifestFile
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	if len(manifest.Documents) == 0 {
		return nil, fmt.Errorf("manifest %s lists no documents", path)
	}

	baseDir := filepath.Dir(path)

	docs := make([]models.Document, 0, len(manifest.Documents))
	for i, md := range manifest.Documents {
		if md.Path == "" {
			return nil, fmt.Errorf("manifest %s: document %d has no path", path, i+1)
		}
		if md.URL == "" {
			return nil, fmt.Errorf("manifest %s: document %s has no url", path, md.Path)
		}

		docPath := md.Path
		if !filepath.IsAbs(docPath) {
			docPath = filepath.Join(baseDir, docPath)
		}

		docs = append(docs, models.Document{
			Path: docPath,
			Meta: models.ExtraMetadata{
				Auth: models.AccessInfo{
					Users:  md.Users,
					Groups: md.Groups,
				},
				Metadata: models.ItemMetadata{
					Title:      md.Title,
					URL:        md.URL,
					ContextURL: md.ContextURL,
					Date:       md.Date,
					Source:     md.Source,
				},
			},
		})
	}

	return docs, nil
}
