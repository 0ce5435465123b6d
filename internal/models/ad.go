// internal/models/ad.go
package models

import (
	"encoding/json"
	"time"
)

type PlatformType string

const (
	PlatformGoogleSearch  PlatformType = "google_search"
	PlatformGoogleDisplay PlatformType = "google_display"
	PlatformMeta          PlatformType = "meta"
	PlatformTikTok        PlatformType = "tiktok"
)

type ToneType string

const (
	ToneUrgent      ToneType = "Urgent"
	ToneLuxury      ToneType = "Luxury"
	ToneCasual      ToneType = "Casual"
	ToneTrustworthy ToneType = "Trustworthy"
)

// FieldSpec describes one text field of a platform's ad format.
type FieldSpec struct {
	Max   int `json:"max"`
	Count int `json:"count"`
}

// PlatformSpec describes the ad format of a platform. Soft means the
// character limits are advisory rather than enforced by the platform.
type PlatformSpec struct {
	Label  string               `json:"label"`
	Fields map[string]FieldSpec `json:"fields"`
	Soft   bool                 `json:"soft"`
}

// PlatformSpecs is loaded once and never mutated.
var PlatformSpecs = map[PlatformType]PlatformSpec{
	PlatformGoogleSearch: {
		Label: "Google Search (RSA)",
		Fields: map[string]FieldSpec{
			"headlines":    {Max: 30, Count: 3},
			"descriptions": {Max: 90, Count: 2},
		},
		Soft: false,
	},
	PlatformGoogleDisplay: {
		Label: "Google Display",
		Fields: map[string]FieldSpec{
			"shortHeadline": {Max: 30, Count: 1},
			"longHeadline":  {Max: 90, Count: 1},
			"descriptions":  {Max: 90, Count: 2},
		},
		Soft: false,
	},
	PlatformMeta: {
		Label: "Meta (FB/IG)",
		Fields: map[string]FieldSpec{
			"primary":     {Max: 125, Count: 1},
			"headline":    {Max: 40, Count: 1},
			"description": {Max: 30, Count: 1},
		},
		Soft: true,
	},
	PlatformTikTok: {
		Label: "TikTok",
		Fields: map[string]FieldSpec{
			"caption": {Max: 100, Count: 1},
		},
		Soft: true,
	},
}

type GenerateAdsRequest struct {
	Name     string       `json:"name" validate:"required,min=1,max=100"`
	Desc     string       `json:"desc" validate:"required,min=10,max=500"`
	Audience []string     `json:"audience"`
	Tone     ToneType     `json:"tone" validate:"omitempty,oneof=Urgent Luxury Casual Trustworthy"`
	Platform PlatformType `json:"platform" validate:"omitempty,oneof=google_search google_display meta tiktok"`
	Variants int          `json:"variants" validate:"omitempty,min=1,max=5"`
}

// ApplyDefaults fills the optional fields before validation so the
// generation engine only ever sees a fully populated request.
func (r *GenerateAdsRequest) ApplyDefaults() {
	if r.Audience == nil {
		r.Audience = []string{}
	}
	if r.Tone == "" {
		r.Tone = ToneTrustworthy
	}
	if r.Platform == "" {
		r.Platform = PlatformMeta
	}
	if r.Variants == 0 {
		r.Variants = 3
	}
}

// VariationBase carries the fields shared by every platform's variation shape.
type VariationBase struct {
	ID       string       `json:"id"`
	Platform PlatformType `json:"platform"`
	Tone     ToneType     `json:"tone"`
}

func (b VariationBase) Common() VariationBase { return b }

// Variation is one generated ad-copy candidate. The concrete type is
// determined by the platform the copy was generated for.
type Variation interface {
	Common() VariationBase
}

type GoogleSearchVariation struct {
	VariationBase
	Headlines    []string `json:"headlines"`
	Descriptions []string `json:"descriptions"`
}

type GoogleDisplayVariation struct {
	VariationBase
	ShortHeadline string   `json:"shortHeadline"`
	LongHeadline  string   `json:"longHeadline"`
	Descriptions  []string `json:"descriptions"`
}

type MetaVariation struct {
	VariationBase
	Primary     string `json:"primary"`
	Headline    string `json:"headline"`
	Description string `json:"description"`
}

type TikTokVariation struct {
	VariationBase
	Caption string `json:"caption"`
}

// Ad is a persisted generation record. Input and variations are stored as
// raw JSON documents; the shape of variations depends on the platform.
type Ad struct {
	ID         string          `json:"id"`
	RequestID  string          `json:"request_id"`
	Platform   string          `json:"platform"`
	InputData  json.RawMessage `json:"input_data"`
	Variations json.RawMessage `json:"variations"`
	IsFavorite bool            `json:"is_favorite"`
	Tags       []string        `json:"tags"`
	CreatedAt  time.Time       `json:"created_at"`
}

type GenerateAdsResponse struct {
	Success     bool        `json:"success"`
	Variations  []Variation `json:"variations"`
	GeneratedAt time.Time   `json:"generated_at"`
	RequestID   string      `json:"request_id"`
}

type UpdateTagsRequest struct {
	Tags []string `json:"tags" validate:"required"`
}
