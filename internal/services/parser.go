package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"adcopy/internal/models"
)

// ErrUnusableCompletion marks provider replies the parser could not turn
// into variations. The generator treats it like any provider failure and
// falls back to templates.
var ErrUnusableCompletion = errors.New("unusable completion")

type aiVariation struct {
	Headlines     []string `json:"headlines"`
	Descriptions  []string `json:"descriptions"`
	ShortHeadline *string  `json:"shortHeadline"`
	LongHeadline  *string  `json:"longHeadline"`
	Primary       *string  `json:"primary"`
	Headline      *string  `json:"headline"`
	Description   *string  `json:"description"`
	Caption       *string  `json:"caption"`
}

type aiPayload struct {
	Variations []aiVariation `json:"variations"`
}

// ParseCompletion extracts the JSON document from the first choice of a
// provider reply and maps it into at most req.Variants platform-shaped
// variation records, substituting defaults for missing fields.
func ParseCompletion(resp *ChatCompletionResponse, req *models.GenerateAdsRequest) ([]models.Variation, error) {
	if resp == nil || len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", ErrUnusableCompletion)
	}

	content := resp.Choices[0].Message.Content
	doc, err := extractJSON(content)
	if err != nil {
		return nil, err
	}

	var payload aiPayload
	if err := json.Unmarshal([]byte(doc), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnusableCompletion, err)
	}
	if len(payload.Variations) == 0 {
		return nil, fmt.Errorf("%w: no variations in payload", ErrUnusableCompletion)
	}

	raw := payload.Variations
	if len(raw) > req.Variants {
		raw = raw[:req.Variants]
	}

	variations := make([]models.Variation, 0, len(raw))
	for _, v := range raw {
		variations = append(variations, formatVariation(v, req))
	}
	return variations, nil
}

// extractJSON takes the body of the first ```json fence when present,
// otherwise the whole content.
func extractJSON(content string) (string, error) {
	if content == "" {
		return "", fmt.Errorf("%w: empty content", ErrUnusableCompletion)
	}

	start := strings.Index(content, "```json")
	if start < 0 {
		return content, nil
	}
	start += len("```json")
	end := strings.Index(content[start:], "```")
	if end < 0 {
		return "", fmt.Errorf("%w: unterminated code fence", ErrUnusableCompletion)
	}
	return content[start : start+end], nil
}

func formatVariation(v aiVariation, req *models.GenerateAdsRequest) models.Variation {
	base := models.VariationBase{
		ID:       newVariationID(),
		Platform: req.Platform,
		Tone:     req.Tone,
	}

	switch req.Platform {
	case models.PlatformGoogleSearch:
		return models.GoogleSearchVariation{
			VariationBase: base,
			Headlines:     defaultStrings(v.Headlines, "Default headline", 3),
			Descriptions:  defaultStrings(v.Descriptions, "Default description", 2),
		}
	case models.PlatformGoogleDisplay:
		return models.GoogleDisplayVariation{
			VariationBase: base,
			ShortHeadline: defaultString(v.ShortHeadline, "Default short"),
			LongHeadline:  defaultString(v.LongHeadline, "Default long headline"),
			Descriptions:  defaultStrings(v.Descriptions, "Default description", 2),
		}
	case models.PlatformTikTok:
		return models.TikTokVariation{
			VariationBase: base,
			Caption:       defaultString(v.Caption, "Default caption #hashtag"),
		}
	default: // meta
		return models.MetaVariation{
			VariationBase: base,
			Primary:       defaultString(v.Primary, "Default primary text"),
			Headline:      defaultString(v.Headline, "Default headline"),
			Description:   defaultString(v.Description, "Default desc"),
		}
	}
}

func defaultString(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}

func defaultStrings(s []string, def string, count int) []string {
	if s != nil {
		return s
	}
	out := make([]string, count)
	for i := range out {
		out[i] = def
	}
	return out
}
