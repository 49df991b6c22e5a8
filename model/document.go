package model

import (
	"os"
	"path/filepath"
	"strings"
)

// Document is a lore source handed to the extractors: campaign notes,
// session logs or setting documents in markdown.
type Document struct {
	Title    string   `json:"title"`
	Source   string   `json:"source,omitempty"`
	Content  string   `json:"content"`
	Metadata Metadata `json:"metadata,omitempty"`
}

// NewDocumentFromFile reads a file into a Document. The title defaults to
// the file name without extension and the source to the path.
func NewDocumentFromFile(filePath string, metadata Metadata) (*Document, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	filename := filepath.Base(filePath)
	title := strings.TrimSuffix(filename, filepath.Ext(filename))
	if title == "" {
		title = filename
	}

	return &Document{
		Title:    title,
		Source:   filePath,
		Content:  string(content),
		Metadata: metadata,
	}, nil
}

// Origin names the document for provenance properties.
func (d *Document) Origin() string {
	if d.Title != "" {
		return d.Title
	}
	if d.Source != "" {
		return filepath.Base(d.Source)
	}
	return "document"
}
