package ai

import (
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Loose schemas describing what the prompts ask the model to return. They are
// advisory: a violation is logged, never fatal, since the verdict rules already
// default missing fields to safe values.
var payloadSchemas = map[string]*jsonschema.Schema{
	"passport": jsonschema.MustCompileString("passport.json", `{
		"type": "object",
		"properties": {
			"fullName": {"type": "string"},
			"passportNumber": {"type": "string"},
			"nationality": {"type": "string"},
			"dateOfBirth": {"type": "string"},
			"expiryDate": {"type": "string"},
			"isValid": {"type": "boolean"},
			"nameMatches": {"type": "boolean"},
			"issues": {"type": "array", "items": {"type": "string"}}
		}
	}`),
	"photo": jsonschema.MustCompileString("photo.json", `{
		"type": "object",
		"properties": {
			"faceDetected": {"type": "boolean"},
			"backgroundOk": {"type": "boolean"},
			"lookingAtCamera": {"type": "boolean"},
			"photoQuality": {"type": "string"},
			"hasGlasses": {"type": "boolean"},
			"hasHeadCovering": {"type": "boolean"},
			"isAcceptable": {"type": "boolean"},
			"issues": {"type": "array", "items": {"type": "string"}}
		}
	}`),
	"diploma": jsonschema.MustCompileString("diploma.json", `{
		"type": "object",
		"properties": {
			"nameOnDocument": {"type": "string"},
			"institution": {"type": "string"},
			"qualification": {"type": "string"},
			"dateIssued": {"type": "string"},
			"appearsLegitimate": {"type": "boolean"},
			"nameMatches": {"type": "boolean"},
			"issues": {"type": "array", "items": {"type": "string"}}
		}
	}`),
}

// validatePayload checks the extracted object against the type's schema.
func validatePayload(documentType string, extracted map[string]interface{}) error {
	schema, ok := payloadSchemas[documentType]
	if !ok {
		return nil
	}
	return schema.Validate(toPlain(extracted))
}

// jsonschema validates plain interface{} trees; map values decoded by
// encoding/json already satisfy that, so this is a shallow copy.
func toPlain(extracted map[string]interface{}) interface{} {
	plain := make(map[string]interface{}, len(extracted))
	for k, v := range extracted {
		plain[k] = v
	}
	return plain
}
