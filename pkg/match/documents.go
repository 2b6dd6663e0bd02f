package match

import "strings"

const (
	essayRawCap          = 30
	recommendationCap    = 15
	extraDocumentCap     = 20
	minEssayLength       = 100
	longEssayLength      = 500
	minEssayWords        = 250
	maxEssayWords        = 650
	longLetterLength     = 100
	countedLetters       = 2
	categoryPoints       = 3
	recommendationPoints = 5
)

// requiredCategories are the document kinds an application is expected to
// include; each present category is worth three points.
var requiredCategories = []string{"transcript", "certificate", "diploma", "test_score", "identification"}

var firstPersonTokens = map[string]bool{
	"i": true, "me": true, "my": true, "mine": true,
	"we": true, "our": true, "ours": true,
}

var conclusionMarkers = []string{"in conclusion", "to conclude", "in summary", "overall", "finally"}

// scoreDocuments turns the optional supporting material into the 0-20
// document component. Sub-scores are summed first and the total capped
// last, so a strong essay alone can saturate the cap.
func scoreDocuments(docs *SupportingDocuments) int {
	if docs == nil {
		return 0
	}
	essay := ""
	if docs.Essays != nil {
		essay = docs.Essays.Content
	}
	total := scoreEssay(essay) +
		scoreRecommendations(docs.Recommendations) +
		scoreExtraDocuments(docs.Documents)
	if total > documentScoreCap {
		total = documentScoreCap
	}
	return total
}

// scoreEssay awards five flat-rate points per passed quality check.
// Essays under 100 characters score nothing at all.
func scoreEssay(content string) int {
	if len(content) < minEssayLength {
		return 0
	}
	raw := 0
	words := strings.Fields(content)
	if len(words) >= minEssayWords && len(words) <= maxEssayWords {
		raw += 5
	}
	if hasFirstPerson(words) {
		raw += 5
	}
	if countSentences(content) >= 3 {
		raw += 5
	}
	if len(content) > longEssayLength {
		raw += 5
	}
	if hasEssayStructure(content) {
		raw += 5
	}
	if raw > essayRawCap {
		raw = essayRawCap
	}
	return raw
}

func hasFirstPerson(words []string) bool {
	for _, w := range words {
		w = strings.Trim(strings.ToLower(w), ".,;:!?\"'()")
		if firstPersonTokens[w] {
			return true
		}
	}
	return false
}

func countSentences(content string) int {
	n := 0
	for _, part := range strings.FieldsFunc(content, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	}) {
		if strings.TrimSpace(part) != "" {
			n++
		}
	}
	return n
}

// hasEssayStructure is a cheap proxy for "has an intro, a conclusion and
// a main point": three or more paragraphs, or an explicit closing marker.
func hasEssayStructure(content string) bool {
	paragraphs := 0
	for _, p := range strings.Split(content, "\n\n") {
		if strings.TrimSpace(p) != "" {
			paragraphs++
		}
	}
	if paragraphs >= 3 {
		return true
	}
	lower := strings.ToLower(content)
	for _, marker := range conclusionMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func scoreRecommendations(recs []Recommendation) int {
	if len(recs) == 0 {
		return 0
	}
	counted := len(recs)
	if counted > countedLetters {
		counted = countedLetters
	}
	pts := counted * recommendationPoints
	for _, r := range recs {
		if r.Completed && r.Submitted {
			pts += 2
		}
		if len(r.LetterContent) > longLetterLength {
			pts += 3
		}
	}
	if pts > recommendationCap {
		pts = recommendationCap
	}
	return pts
}

func scoreExtraDocuments(docs []ExtraDocument) int {
	pts := 0
	for _, category := range requiredCategories {
		for _, d := range docs {
			if strings.Contains(strings.ToLower(d.Type), category) ||
				strings.Contains(strings.ToLower(d.Name), category) {
				pts += categoryPoints
				break
			}
		}
	}
	for _, d := range docs {
		if d.Verified {
			pts++
		}
		if d.Complete {
			pts++
		}
	}
	if pts > extraDocumentCap {
		pts = extraDocumentCap
	}
	return pts
}
