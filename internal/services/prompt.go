package services

import (
	"fmt"
	"strings"

	"adcopy/internal/models"
)

var automotiveKeywords = []string{"car", "auto", "vehicle", "toyota", "honda", "ford", "camry", "dealership"}

var ecommerceKeywords = []string{"shop", "buy", "order", "shipping", "ecommerce", "store"}

const automotiveContext = `
AUTOMOTIVE CONTEXT:
- Emphasize reliability, financing options, warranties
- Include mileage, year, features if available
- Focus on local market and trade-in value
- Use trust-building language for high-ticket purchases`

const ecommerceContext = `
ECOMMERCE CONTEXT:
- Highlight product benefits and unique features
- Include pricing, shipping, or return policies
- Create urgency with limited offers
- Focus on convenience and value`

const generalContext = `
GENERAL BUSINESS CONTEXT:
- Focus on main value proposition
- Highlight what makes you different
- Include social proof when possible
- Create clear call-to-action`

// platformRequirements is the prose version of the platform spec table used
// inside the prompt.
var platformRequirements = map[models.PlatformType]string{
	models.PlatformGoogleSearch:  "Headlines: 30 chars max (3 needed), Descriptions: 90 chars max (2 needed). Focus on search intent.",
	models.PlatformGoogleDisplay: "Short headline: 30 chars, Long headline: 90 chars, Descriptions: 90 chars each (2 needed).",
	models.PlatformMeta:          "Primary text: 125 chars (soft), Headline: 40 chars (soft), Description: 30 chars (soft). Visual-first platform.",
	models.PlatformTikTok:        "Caption: 100 chars (soft). Short, punchy, casual. Hook in first 3 words.",
}

var responseFormats = map[models.PlatformType]string{
	models.PlatformGoogleSearch: `
{
  "variations": [
    {
      "headlines": ["30 char headline 1", "30 char headline 2", "30 char headline 3"],
      "descriptions": ["90 char description 1", "90 char description 2"]
    }
  ]
}`,
	models.PlatformGoogleDisplay: `
{
  "variations": [
    {
      "shortHeadline": "30 char short headline",
      "longHeadline": "90 char long headline",
      "descriptions": ["90 char description 1", "90 char description 2"]
    }
  ]
}`,
	models.PlatformMeta: `
{
  "variations": [
    {
      "primary": "125 char primary text",
      "headline": "40 char headline",
      "description": "30 char description"
    }
  ]
}`,
	models.PlatformTikTok: `
{
  "variations": [
    {
      "caption": "100 char caption with hashtags"
    }
  ]
}`,
}

// BusinessContext picks the prompt context block by keyword-matching the
// product name and description. Automotive wins over e-commerce; anything
// unmatched falls through to the general block.
func BusinessContext(name, desc string) string {
	nameLower := strings.ToLower(name)
	descLower := strings.ToLower(desc)

	if matchesAny(nameLower, descLower, automotiveKeywords) {
		return automotiveContext
	}
	if matchesAny(nameLower, descLower, ecommerceKeywords) {
		return ecommerceContext
	}
	return generalContext
}

func matchesAny(name, desc string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(name, kw) || strings.Contains(desc, kw) {
			return true
		}
	}
	return false
}

// BuildPrompt assembles the provider instruction string for a validated
// request. Pure string formatting; it cannot fail.
func BuildPrompt(req *models.GenerateAdsRequest) string {
	platformSpecs, ok := platformRequirements[req.Platform]
	if !ok {
		platformSpecs = "General social media best practices"
	}

	audienceStr := "general audience"
	if len(req.Audience) > 0 {
		audienceStr = strings.Join(req.Audience, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert copywriter specializing in high-converting %s ads.\n\n", req.Platform)
	fmt.Fprintf(&b, "Create %d different ad variations with these requirements:\n\n", req.Variants)
	fmt.Fprintf(&b, "PRODUCT/SERVICE: %s\n", req.Name)
	fmt.Fprintf(&b, "DESCRIPTION: %s\n", req.Desc)
	fmt.Fprintf(&b, "TARGET AUDIENCE: %s\n", audienceStr)
	fmt.Fprintf(&b, "TONE: %s\n", req.Tone)
	fmt.Fprintf(&b, "PLATFORM: %s\n\n", req.Platform)
	fmt.Fprintf(&b, "PLATFORM REQUIREMENTS:\n%s\n\n", platformSpecs)
	fmt.Fprintf(&b, "%s\n\n", BusinessContext(req.Name, req.Desc))
	fmt.Fprintf(&b, "FORMAT YOUR RESPONSE AS JSON:\n%s\n\n", responseFormats[req.Platform])
	b.WriteString("COPYWRITING BEST PRACTICES:\n")
	b.WriteString("- Use power words and emotional triggers\n")
	b.WriteString("- Include social proof when relevant\n")
	b.WriteString("- Create urgency without being pushy\n")
	b.WriteString("- Address pain points and benefits\n")
	b.WriteString("- Use numbers and specifics when possible\n")
	fmt.Fprintf(&b, "- Match the %s tone exactly\n", req.Tone)
	b.WriteString("- Stay within character limits\n\n")
	fmt.Fprintf(&b, "Focus on what converts for %s on %s.", audienceStr, req.Platform)

	return b.String()
}
