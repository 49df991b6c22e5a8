package ingest

import (
	"fmt"
	"strings"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
	"github.com/siherrmann/loregraph/helper"
	"github.com/siherrmann/loregraph/model"
)

// NERModel is the token classification model used for entity detection.
const NERModel = "KnightsAnalytics/distilbert-NER"

// NewNEREntityExtractor creates an extractor backed by a NER model. The
// model is downloaded on first use. Detected persons become NPCs,
// locations LOCATIONs, organizations FACTIONs and everything else
// CONCEPTs. It never finds relationships.
func NewNEREntityExtractor() (ExtractFunc, error) {
	modelPath, err := helper.PrepareModel(NERModel, "model.onnx")
	if err != nil {
		return nil, err
	}

	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create hugot session: %w", err)
	}

	config := hugot.TokenClassificationConfig{
		ModelPath: modelPath,
		Name:      "ner-pipeline",
		Options: []hugot.TokenClassificationOption{
			pipelines.WithSimpleAggregation(),
			pipelines.WithIgnoreLabels([]string{"O"}),
		},
	}
	nerPipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			return nil, fmt.Errorf("failed to create NER pipeline: %w (cleanup error: %v)", err, destroyErr)
		}
		return nil, fmt.Errorf("failed to create NER pipeline: %w", err)
	}

	return func(doc *model.Document) (*ExtractionResult, error) {
		result := &ExtractionResult{}
		if doc == nil || strings.TrimSpace(doc.Content) == "" {
			return result, nil
		}

		output, err := nerPipeline.RunPipeline([]string{doc.Content})
		if err != nil {
			return nil, fmt.Errorf("failed to run NER: %w", err)
		}
		if len(output.Entities) == 0 {
			return result, nil
		}

		origin := doc.Origin()
		seen := map[string]bool{}
		for _, entity := range output.Entities[0] {
			name := strings.TrimSpace(entity.Word)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true

			result.Entities = append(result.Entities, ExtractedEntity{
				Name: name,
				Type: entityTypeForLabel(entity.Entity),
				Properties: model.Properties{
					"description":        model.String("Named entity detected in " + origin),
					"information_source": model.String(origin),
				},
			})
		}
		return result, nil
	}, nil
}

// entityTypeForLabel maps a NER label such as "B-PER" to an entity type.
func entityTypeForLabel(label string) model.EntityType {
	label = strings.TrimPrefix(strings.TrimPrefix(label, "B-"), "I-")
	switch label {
	case "PER":
		return model.EntityNPC
	case "LOC":
		return model.EntityLocation
	case "ORG":
		return model.EntityFaction
	default:
		return model.EntityConcept
	}
}
