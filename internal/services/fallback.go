package services

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"adcopy/internal/models"
)

// offerPattern picks a dollar amount (and whatever follows it up to the next
// period) or a "<n> mo|month|down" financing phrase out of a description.
var offerPattern = regexp.MustCompile(`(?i)\$[^\s,.]+[^.]*|\d+\s?(?:mo|month|down)`)

var toneAngles = map[models.ToneType]string{
	models.ToneUrgent:      "Today only",
	models.ToneLuxury:      "Premium experience",
	models.ToneCasual:      "No hassle",
	models.ToneTrustworthy: "Trusted choice",
}

// FallbackVariations builds template-based ad copy when the AI provider is
// unavailable or fails. It always returns exactly req.Variants records.
func FallbackVariations(req *models.GenerateAdsRequest) []models.Variation {
	angle := toneAngle(req.Tone)
	proof := proofElement(req.Name)
	benefit := benefitClause(req.Desc)
	offer := ExtractOffer(req.Desc)

	aud := ""
	if len(req.Audience) > 0 {
		aud = fmt.Sprintf("For %s.", strings.Join(req.Audience, ", "))
	}

	variations := make([]models.Variation, 0, req.Variants)
	for i := 0; i < req.Variants; i++ {
		base := models.VariationBase{
			ID:       newVariationID(),
			Platform: req.Platform,
			Tone:     req.Tone,
		}

		switch req.Platform {
		case models.PlatformGoogleSearch:
			variations = append(variations, models.GoogleSearchVariation{
				VariationBase: base,
				Headlines: []string{
					Truncate(fmt.Sprintf("%s — %s", req.Name, angle), 30),
					Truncate(benefit, 30),
					Truncate(fmt.Sprintf("In Stock • %s", req.Tone), 30),
				},
				Descriptions: []string{
					Truncate(fmt.Sprintf("%s. %s %s", benefit, aud, proof), 90),
					Truncate(fmt.Sprintf("%s. Visit now.", offer), 90),
				},
			})
		case models.PlatformGoogleDisplay:
			variations = append(variations, models.GoogleDisplayVariation{
				VariationBase: base,
				ShortHeadline: Truncate(req.Name, 30),
				LongHeadline:  Truncate(fmt.Sprintf("%s: %s", angle, benefit), 90),
				Descriptions: []string{
					Truncate(fmt.Sprintf("%s. %s", benefit, aud), 90),
					Truncate(fmt.Sprintf("%s. %s", offer, proof), 90),
				},
			})
		case models.PlatformMeta:
			variations = append(variations, models.MetaVariation{
				VariationBase: base,
				Primary:       Truncate(fmt.Sprintf("%s. %s %s", benefit, aud, proof), 125),
				Headline:      Truncate(fmt.Sprintf("%s — %s", req.Name, angle), 40),
				Description:   Truncate(offer, 30),
			})
		case models.PlatformTikTok:
			variations = append(variations, models.TikTokVariation{
				VariationBase: base,
				Caption:       Truncate(fmt.Sprintf("%s! %s. %s #%s", angle, benefit, offer, firstWord(req.Name)), 100),
			})
		}
	}

	return variations
}

func newVariationID() string {
	return uuid.New().String()[:8]
}

func toneAngle(tone models.ToneType) string {
	if angle, ok := toneAngles[tone]; ok {
		return angle
	}
	return "Great value"
}

// proofElement returns a vehicle proof line when the name looks like it
// carries a model year, otherwise a generic one.
func proofElement(name string) string {
	hasDigit := strings.ContainsFunc(name, unicode.IsDigit)
	if hasDigit && strings.Contains(name, "20") {
		return "Low miles. Clean title."
	}
	return "Top-rated by customers."
}

// benefitClause takes the text before the first period of the description,
// or the whole description when it has none.
func benefitClause(desc string) string {
	if i := strings.Index(desc, "."); i >= 0 {
		return desc[:i]
	}
	return desc
}

// ExtractOffer pulls a price or financing phrase out of the description.
func ExtractOffer(desc string) string {
	if m := offerPattern.FindString(desc); m != "" {
		return m
	}
	return "Special pricing available"
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Truncate cuts text to at most limit characters, preferring the last word
// boundary inside the cut and trimming trailing whitespace.
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}

	cut := string(runes[:limit])
	if i := strings.LastIndex(cut, " "); i > 0 {
		return strings.TrimSpace(cut[:i])
	}
	return strings.TrimSpace(cut)
}
