package ai

import (
	"fmt"
	"strings"
)

const manualReviewError = "AI verification failed. Document will be manually reviewed."

// boolField reads a boolean with a missing-means-false default.
func boolField(data map[string]interface{}, key string) bool {
	value, ok := data[key].(bool)
	return ok && value
}

func stringField(data map[string]interface{}, key string) string {
	value, _ := data[key].(string)
	return value
}

func issuesField(data map[string]interface{}) []string {
	raw, ok := data["issues"].([]interface{})
	if !ok {
		return nil
	}
	issues := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			issues = append(issues, s)
		}
	}
	return issues
}

// deriveVerdict applies the per-type acceptance rules to the extracted payload.
//
// Passport and photo default every missing boolean to false. Diploma treats a
// missing nameMatches as a pass: only an explicit false fails it. The asymmetry
// is intentional and pinned by tests.
func deriveVerdict(documentType, claimedName string, extracted map[string]interface{}) Verdict {
	verdict := Verdict{ExtractedData: extracted}

	switch documentType {
	case "passport":
		isValid := boolField(extracted, "isValid")
		nameMatches := boolField(extracted, "nameMatches")
		verdict.Verified = isValid && nameMatches
		switch {
		case !isValid:
			verdict.Error = "Passport appears invalid or expires too soon. Your passport must be valid for at least 1 year."
		case !nameMatches:
			verdict.Error = fmt.Sprintf("Name mismatch: Passport shows %q but you entered %q. Please check your information.",
				stringField(extracted, "fullName"), claimedName)
		default:
			verdict.Message = fmt.Sprintf("Passport verified! Name: %s, Expires: %s",
				stringField(extracted, "fullName"), stringField(extracted, "expiryDate"))
		}

	case "photo":
		faceDetected := boolField(extracted, "faceDetected")
		isAcceptable := boolField(extracted, "isAcceptable")
		verdict.Verified = isAcceptable && faceDetected
		switch {
		case !faceDetected:
			verdict.Error = "No clear face detected. Please upload a proper passport photo."
		case !isAcceptable:
			verdict.Error = fmt.Sprintf("Photo issues: %s", strings.Join(issuesField(extracted), ", "))
		default:
			verdict.Message = "Photo verified! Meets passport photo requirements."
		}

	case "diploma":
		appearsLegitimate := boolField(extracted, "appearsLegitimate")
		nameRejected := false
		if value, ok := extracted["nameMatches"].(bool); ok && !value {
			nameRejected = true
		}
		verdict.Verified = appearsLegitimate && !nameRejected
		switch {
		case !appearsLegitimate:
			verdict.Error = "Document does not appear to be a valid diploma or certificate."
		case nameRejected:
			verdict.Error = fmt.Sprintf("Name mismatch on diploma. Document shows %q.", stringField(extracted, "nameOnDocument"))
		default:
			verdict.Message = fmt.Sprintf("Diploma verified! %s from %s",
				stringField(extracted, "qualification"), stringField(extracted, "institution"))
		}
	}

	return verdict
}

// failedVerdict is the normalized shape for any adapter-level failure.
func failedVerdict() Verdict {
	return Verdict{Verified: false, Error: manualReviewError, ExtractedData: nil}
}
