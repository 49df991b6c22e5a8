package model

// RetrievalResult is a passage returned by the external retriever. Facts is
// filled by graph enrichment.
type RetrievalResult struct {
	Text     string       `json:"text"`
	Metadata Metadata     `json:"metadata,omitempty"`
	Score    float64      `json:"score"`
	Facts    []EntityFact `json:"facts,omitempty"`
}

// EntityFact is an entity mentioned by a retrieval result together with its
// relationships.
type EntityFact struct {
	Entity  EntityView      `json:"entity"`
	Related []RelatedEntity `json:"related,omitempty"`
}
