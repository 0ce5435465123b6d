package services

import (
	"strings"
	"testing"

	"adcopy/internal/models"
)

func TestBusinessContextClassification(t *testing.T) {
	tests := []struct {
		name string
		desc string
		want string
	}{
		{"2019 Toyota Camry SE", "Clean CarFax, 62k miles", "AUTOMOTIVE CONTEXT"},
		{"Winter Jacket", "Free shipping on all orders", "ECOMMERCE CONTEXT"},
		{"Gadget", "Buy one get one free this week only", "ECOMMERCE CONTEXT"},
		{"Yoga Mat Premium", "Extra thick mat with great grip", "GENERAL BUSINESS CONTEXT"},
	}

	for _, tt := range tests {
		got := BusinessContext(tt.name, tt.desc)
		if !strings.Contains(got, tt.want) {
			t.Fatalf("BusinessContext(%q, %q): expected %s block, got %q", tt.name, tt.desc, tt.want, got)
		}
	}
}

func TestBusinessContextAutomotiveWinsOverEcommerce(t *testing.T) {
	// A dealership description mentioning shipping still classifies as automotive.
	got := BusinessContext("Used Car Superstore", "Nationwide shipping available")
	if !strings.Contains(got, "AUTOMOTIVE CONTEXT") {
		t.Fatalf("expected automotive block, got %q", got)
	}
}

func TestBuildPromptContainsRequestFields(t *testing.T) {
	req := &models.GenerateAdsRequest{
		Name:     "Standing Desk Pro",
		Desc:     "Ergonomic standing desk with memory presets",
		Audience: []string{"remote workers", "designers"},
		Tone:     models.ToneCasual,
		Platform: models.PlatformGoogleSearch,
		Variants: 4,
	}

	prompt := BuildPrompt(req)

	for _, want := range []string{
		"Create 4 different ad variations",
		"PRODUCT/SERVICE: Standing Desk Pro",
		"TARGET AUDIENCE: remote workers, designers",
		"TONE: Casual",
		"PLATFORM: google_search",
		"Headlines: 30 chars max (3 needed)",
		`"variations"`,
		"COPYWRITING BEST PRACTICES",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildPromptDefaultsAudience(t *testing.T) {
	req := &models.GenerateAdsRequest{
		Name:     "Standing Desk Pro",
		Desc:     "Ergonomic standing desk with memory presets",
		Tone:     models.ToneTrustworthy,
		Platform: models.PlatformMeta,
		Variants: 3,
	}

	prompt := BuildPrompt(req)
	if !strings.Contains(prompt, "TARGET AUDIENCE: general audience") {
		t.Fatalf("expected general audience default in prompt")
	}
}
