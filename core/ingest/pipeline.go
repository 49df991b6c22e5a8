package ingest

import (
	"errors"

	"github.com/siherrmann/loregraph/helper"
	"github.com/siherrmann/loregraph/model"
)

// ExtractFunc extracts entities and relationships from a document.
type ExtractFunc func(doc *model.Document) (*ExtractionResult, error)

// Pipeline runs several extractors over a document and merges what they
// find.
type Pipeline struct {
	Extractors []ExtractFunc
}

func NewPipeline(extractors ...ExtractFunc) *Pipeline {
	return &Pipeline{Extractors: extractors}
}

// AddExtractor appends an extractor that runs after the existing ones.
func (p *Pipeline) AddExtractor(extractor ExtractFunc) {
	p.Extractors = append(p.Extractors, extractor)
}

// Process merges the results of all extractors. A failing extractor does
// not stop the others; its error is joined into the returned error. A nil
// document yields an empty result.
func (p *Pipeline) Process(doc *model.Document) (*ExtractionResult, error) {
	result := &ExtractionResult{}
	if doc == nil {
		return result, nil
	}

	var errs []error
	for _, extract := range p.Extractors {
		r, err := extract(doc)
		if err != nil {
			errs = append(errs, helper.NewError("extract "+doc.Origin(), err))
		}
		result.Merge(r)
	}
	return result, errors.Join(errs...)
}
