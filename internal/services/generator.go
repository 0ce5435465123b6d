package services

import (
	"context"
	"log"

	"adcopy/internal/models"
)

// AdGenerator orchestrates the AI and fallback generation paths. Generation
// never fails outright: any provider or parse error degrades to the
// deterministic template path.
type AdGenerator struct {
	client CompletionClient
}

func NewAdGenerator(client CompletionClient) *AdGenerator {
	return &AdGenerator{client: client}
}

// Generate returns the variations for a validated request. The provider is
// only consulted when a credential is configured; every failure along the
// prompt → provider → parse path routes to the fallback templates.
func (g *AdGenerator) Generate(ctx context.Context, req *models.GenerateAdsRequest) []models.Variation {
	if g.client == nil || !g.client.Configured() {
		return FallbackVariations(req)
	}

	prompt := BuildPrompt(req)

	resp, err := g.client.CreateChatCompletion(ctx, prompt)
	if err != nil {
		log.Printf("AI provider failed, using template fallback: %v", err)
		return FallbackVariations(req)
	}

	variations, err := ParseCompletion(resp, req)
	if err != nil {
		log.Printf("AI response unusable, using template fallback: %v", err)
		return FallbackVariations(req)
	}

	return variations
}
