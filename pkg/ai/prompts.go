package ai

import "fmt"

func passportPrompt(claimedName string) string {
	return fmt.Sprintf(`Analyze this passport image. Extract and return:
1. Full name on passport
2. Passport number
3. Nationality
4. Date of birth
5. Expiry date
6. Is the passport valid (not expired, must be valid for at least 1 YEAR from today, readable, genuine-looking)?

The candidate claims their name is: %q

Respond in JSON format:
{
    "fullName": "...",
    "passportNumber": "...",
    "nationality": "...",
    "dateOfBirth": "...",
    "expiryDate": "...",
    "isValid": true/false,
    "nameMatches": true/false,
    "issues": ["list any issues found"]
}`, claimedName)
}

func photoPrompt() string {
	return `Analyze this passport-style photo. Check:
1. Is there a clear human face visible?
2. Is the background white or light colored?
3. Is the person looking at the camera?
4. Is the photo high quality (not blurry)?
5. Is the person wearing glasses or head covering?

Respond in JSON format:
{
    "faceDetected": true/false,
    "backgroundOk": true/false,
    "lookingAtCamera": true/false,
    "photoQuality": "good/acceptable/poor",
    "hasGlasses": true/false,
    "hasHeadCovering": true/false,
    "isAcceptable": true/false,
    "issues": ["list any issues"]
}`
}

func diplomaPrompt(claimedName string) string {
	return fmt.Sprintf(`Analyze this diploma/certificate image. Extract:
1. Name on the document
2. Institution name
3. Degree/qualification type
4. Date issued
5. Is it a legitimate-looking document?

The candidate claims their name is: %q

Respond in JSON format:
{
    "nameOnDocument": "...",
    "institution": "...",
    "qualification": "...",
    "dateIssued": "...",
    "appearsLegitimate": true/false,
    "nameMatches": true/false,
    "issues": ["list any issues"]
}`, claimedName)
}

// promptFor selects the instruction template for the document type.
func promptFor(documentType, claimedName string) string {
	switch documentType {
	case "passport":
		return passportPrompt(claimedName)
	case "photo":
		return photoPrompt()
	case "diploma":
		return diplomaPrompt(claimedName)
	default:
		return "Describe this document."
	}
}
