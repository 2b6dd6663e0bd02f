package match

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/unipath/backend/pkg/catalog"
)

// Status labels for the academic sub-scores.
const (
	statusExcellent    = "excellent"
	statusGood         = "good"
	statusAverage      = "average"
	statusBelowAverage = "below_average"
)

// Status labels for the major match.
const (
	statusPerfectMatch = "perfect_match"
	statusGoodMatch    = "good_match"
	statusPartialMatch = "partial_match"
	statusNoMatch      = "no_match"
)

const (
	// 20 (GPA) + 24 (SAT) + 24 (IELTS): theoretical maximum of the
	// academic sub-scores.
	maxAcademicPoints = 68
	// The academic baseline contributes at most 44 of the final score.
	baselineCeiling = 44
	// Supporting documents contribute at most 20.
	documentScoreCap = 20
	// Flat extension-point bonus added to every score.
	valueAddPoints = 4
	// The pre-tier compatibility score is capped at 80.
	rawScoreCap = 80
	// The pre-tier acceptance probability is capped at 70.
	probabilityCap = 70
	// Universities scoring below this never reach the caller.
	qualifyingScore = 30
	// At most this many suggestions are returned.
	maxSuggestions = 6
)

func scoreGPA(gpa float64) ScoreDetail {
	d := ScoreDetail{Value: strconv.FormatFloat(gpa, 'f', -1, 64)}
	switch {
	case gpa >= 3.9:
		d.Band, d.Status, d.Points = "3.9-4.0", statusExcellent, 20
	case gpa >= 3.7:
		d.Band, d.Status, d.Points = "3.7-3.8", statusGood, 17
	case gpa >= 3.5:
		d.Band, d.Status, d.Points = "3.5-3.6", statusGood, 14
	case gpa >= 3.0:
		d.Band, d.Status, d.Points = "3.0-3.4", statusAverage, 10
	default:
		d.Band, d.Status, d.Points = "below 3.0", statusBelowAverage, 5
	}
	return d
}

func scoreSAT(sat int) ScoreDetail {
	d := ScoreDetail{Value: strconv.Itoa(sat)}
	switch {
	case sat >= 1500:
		d.Band, d.Status, d.Points = "1500-1600", statusExcellent, 24
	case sat >= 1400:
		d.Band, d.Status, d.Points = "1400-1490", statusGood, 20
	case sat >= 1300:
		d.Band, d.Status, d.Points = "1300-1390", statusGood, 16
	case sat >= 1200:
		d.Band, d.Status, d.Points = "1200-1290", statusAverage, 12
	default:
		d.Band, d.Status, d.Points = "below 1200", statusBelowAverage, 6
	}
	return d
}

func scoreIELTS(band float64) ScoreDetail {
	d := ScoreDetail{Value: strconv.FormatFloat(band, 'f', -1, 64)}
	switch {
	case band >= 7.5:
		d.Band, d.Status, d.Points = "7.5-9.0", statusExcellent, 24
	case band >= 7.0:
		d.Band, d.Status, d.Points = "7.0-7.4", statusGood, 20
	case band >= 6.5:
		d.Band, d.Status, d.Points = "6.5-6.9", statusGood, 16
	case band >= 6.0:
		d.Band, d.Status, d.Points = "6.0-6.4", statusAverage, 12
	default:
		d.Band, d.Status, d.Points = "below 6.0", statusBelowAverage, 6
	}
	return d
}

// scoreMajor compares the intended major against a university's program
// list, case-insensitively and in both directions.
func scoreMajor(major string, programs []string) ScoreDetail {
	d := ScoreDetail{Value: major, Status: statusNoMatch, Band: "no matching program"}

	m := normalizeText(major)
	if m == "" {
		return d
	}
	for _, prog := range programs {
		p := normalizeText(prog)
		if p == "" {
			continue
		}
		if strings.Contains(p, m) || strings.Contains(m, p) {
			d.Status, d.Points, d.Band = statusPerfectMatch, 5, prog
			return d
		}
	}
	// Plain one-way containment; full containment is already handled above.
	for _, prog := range programs {
		if strings.Contains(normalizeText(prog), m) {
			d.Status, d.Points, d.Band = statusGoodMatch, 3, prog
			return d
		}
	}

	majorTokens := tokenize(major)
	var partial []string
	for _, prog := range programs {
		progTokens := tokenize(prog)
		if tokensOverlap(majorTokens, progTokens) {
			partial = append(partial, prog)
		}
	}
	if len(partial) > 0 {
		d.Status, d.Points, d.Band = statusPartialMatch, 2, strings.Join(partial, ", ")
	}
	return d
}

func tokensOverlap(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if strings.Contains(y, x) || strings.Contains(x, y) {
				return true
			}
		}
	}
	return false
}

// parseAcceptanceRate reads a display string like "5%" into a float.
// Unparseable values count as 0 so only the tier adjustment applies.
func parseAcceptanceRate(s string) float64 {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	rate, err := strconv.ParseFloat(s, 64)
	if err != nil || rate < 0 {
		return 0
	}
	return rate
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func reasonLabel(status string) string {
	return strings.ToUpper(strings.ReplaceAll(status, "_", " "))
}

// ScoreUniversities runs the full scoring pipeline over one catalog
// snapshot: per-university sub-scores, baseline + document + value-add
// composition, ranking-tier adjustment, then filtering, deduplication by
// name, ordering by score (ranking as tie-break) and truncation to six.
func ScoreUniversities(profile Profile, docs *SupportingDocuments, universities []catalog.University) []Suggestion {
	gpaDetail := scoreGPA(profile.GPA)
	satDetail := scoreSAT(profile.SATScore)
	ieltsDetail := scoreIELTS(profile.LanguageScore)
	// The document score depends only on the request, not the university.
	docScore := scoreDocuments(docs)

	suggestions := make([]Suggestion, 0, len(universities))
	for _, u := range universities {
		majorDetail := scoreMajor(profile.Major, u.Programs)

		academic := gpaDetail.Points + satDetail.Points + ieltsDetail.Points
		baseline := math.Min(float64(academic)/maxAcademicPoints*baselineCeiling, baselineCeiling)

		raw := math.Round(math.Min(baseline+float64(docScore)+valueAddPoints+float64(majorDetail.Points), rawScoreCap))
		score := int(raw)
		probability := int(math.Round(math.Min(raw*0.8, probabilityCap)))

		var tierTag string
		switch {
		case u.Ranking <= 10:
			score += 5
			tierTag = "Top Tier University"
			probability = clampInt(probability-20, 5, 100)
		case u.Ranking <= 50:
			score += 3
			tierTag = "High Ranking University"
			probability = clampInt(probability-10, 10, 100)
		case u.Ranking <= 100:
			score += 1
			tierTag = "Good University"
			probability = clampInt(probability-5, 15, 100)
		default:
			probability = clampInt(probability+10, 0, 80)
		}

		rate := parseAcceptanceRate(u.Acceptance)
		probability = clampInt(int(math.Round(float64(probability)-rate/2)), 5, 95)
		score = clampInt(score, 0, 100)

		reasons := []string{
			fmt.Sprintf("%s GPA", reasonLabel(gpaDetail.Status)),
			fmt.Sprintf("%s SAT SCORE", reasonLabel(satDetail.Status)),
			fmt.Sprintf("%s IELTS SCORE", reasonLabel(ieltsDetail.Status)),
			fmt.Sprintf("%s MAJOR MATCH", reasonLabel(majorDetail.Status)),
		}
		if tierTag != "" {
			reasons = append(reasons, tierTag)
		}

		suggestions = append(suggestions, Suggestion{
			ID:                    u.ID,
			Name:                  u.Name,
			Location:              u.Location,
			Ranking:               u.Ranking,
			Rating:                u.Rating,
			Tuition:               u.Tuition,
			Acceptance:            u.Acceptance,
			Students:              u.Students,
			Image:                 u.Image,
			Programs:              u.Programs,
			Highlights:            u.Highlights,
			MatchScore:            score,
			AcceptanceProbability: probability,
			Reason:                strings.Join(reasons, ", "),
			Deadline:              u.Deadline,
			ScoreDetails: ScoreBreakdown{
				GPA:   gpaDetail,
				SAT:   satDetail,
				IELTS: ieltsDetail,
				Major: majorDetail,
			},
		})
	}

	qualified := suggestions[:0]
	seen := make(map[string]bool, len(suggestions))
	for _, s := range suggestions {
		if s.MatchScore < qualifyingScore {
			continue
		}
		if seen[s.Name] {
			continue
		}
		seen[s.Name] = true
		qualified = append(qualified, s)
	}

	sort.SliceStable(qualified, func(i, j int) bool {
		if qualified[i].MatchScore != qualified[j].MatchScore {
			return qualified[i].MatchScore > qualified[j].MatchScore
		}
		return qualified[i].Ranking < qualified[j].Ranking
	})

	if len(qualified) > maxSuggestions {
		qualified = qualified[:maxSuggestions]
	}
	return qualified
}
