package scoring

import (
	"encoding/json"
	"fmt"

	"leak-diagnostic/internal/common/errors"
	"leak-diagnostic/internal/models"

	"github.com/xeipuuv/gojsonschema"
)

// resultSchema is the structural contract the scoring service must honor
// before its payload is trusted by the report builder.
const resultSchema = `{
	"type": "object",
	"required": ["industry", "totalLeakagePercent", "totalLeakageDollars", "topThreeLeaks", "leaks"],
	"properties": {
		"industry": {"type": "string"},
		"totalLeakagePercent": {"type": "number", "minimum": 0, "maximum": 100},
		"totalLeakageDollars": {"type": "number", "minimum": 0},
		"potentialRecovery": {"type": "number", "minimum": 0},
		"topThreeLeaks": {
			"type": "array",
			"maxItems": 3,
			"items": {
				"type": "object",
				"required": ["category", "leakageDollars"],
				"properties": {
					"category": {"type": "string"},
					"leakagePercent": {"type": "number"},
					"leakageDollars": {"type": "number"}
				}
			}
		},
		"leaks": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["category", "leakageDollars"],
				"properties": {
					"category": {"type": "string"},
					"leakagePercent": {"type": "number"},
					"leakageDollars": {"type": "number"}
				}
			}
		}
	}
}`

var resultSchemaLoader = gojsonschema.NewStringLoader(resultSchema)

// errorEnvelope is the error-inside-success shape the service uses.
type errorEnvelope struct {
	Error string `json:"error"`
}

// ParseResult decodes a transport-successful scoring payload. An embedded
// error message, a payload that fails the schema, or unparseable JSON all
// surface as scoring service errors.
func ParseResult(body []byte) (*models.Result, error) {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, errors.NewScoringServiceError(fmt.Sprintf("malformed result payload: %v", err))
	}
	if envelope.Error != "" {
		return nil, errors.NewScoringServiceError(envelope.Error)
	}

	validation, err := gojsonschema.Validate(resultSchemaLoader, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, errors.NewScoringServiceError(fmt.Sprintf("result validation failed: %v", err))
	}
	if !validation.Valid() {
		detail := "result payload violates contract"
		if errs := validation.Errors(); len(errs) > 0 {
			detail = fmt.Sprintf("result payload violates contract: %s", errs[0].String())
		}
		return nil, errors.NewScoringServiceError(detail)
	}

	var result models.Result
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, errors.NewScoringServiceError(fmt.Sprintf("malformed result payload: %v", err))
	}
	return &result, nil
}
