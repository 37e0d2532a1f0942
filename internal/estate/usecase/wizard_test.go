package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Bobybuu/real-estate-Gabby-sub000/internal/estate/domain"
)

func completeDraft() *domain.ListingDraft {
	draft := &domain.ListingDraft{
		Title:       "Sunny bungalow",
		Description: "Three bedrooms near the park",
		Category:    domain.CategoryHouse,
		Price:       250000,
		Address:     "12 Hill St",
		City:        "Nakuru",
		Region:      "Rift Valley",
	}
	draft.AddAttachment(domain.MediaAttachment{FileName: "front.jpg", Data: []byte("aa")})
	return draft
}

func TestStepBasics(t *testing.T) {
	draft := completeDraft()
	assert.True(t, CanAdvance(StepBasics, draft).OK)

	draft.Title = ""
	check := CanAdvance(StepBasics, draft)
	assert.False(t, check.OK)
	assert.Equal(t, "title is required", check.Reason)

	draft.Title = "x"
	draft.Category = ""
	assert.False(t, CanAdvance(StepBasics, draft).OK)
}

func TestStepLocation(t *testing.T) {
	draft := completeDraft()
	assert.True(t, CanAdvance(StepLocation, draft).OK)

	draft.Region = ""
	check := CanAdvance(StepLocation, draft)
	assert.False(t, check.OK)
	assert.Equal(t, "region is required", check.Reason)
}

func TestStepPricingLandRequiresSize(t *testing.T) {
	draft := completeDraft()
	draft.Category = domain.CategoryLand

	draft.SizeAcres = 0
	assert.False(t, CanAdvance(StepPricing, draft).OK)

	draft.SizeAcres = 2.5
	assert.True(t, CanAdvance(StepPricing, draft).OK)
}

func TestStepPricingNonLandIgnoresSize(t *testing.T) {
	draft := completeDraft()
	draft.SizeAcres = 0
	assert.True(t, CanAdvance(StepPricing, draft).OK)

	draft.Price = 0
	assert.False(t, CanAdvance(StepPricing, draft).OK)
}

func TestFinalStepRequiresMedia(t *testing.T) {
	draft := completeDraft()
	assert.True(t, CanAdvance(StepMedia, draft).OK)

	// Rejected no matter how complete the rest of the draft is.
	draft.Attachments = nil
	check := CanAdvance(StepMedia, draft)
	assert.False(t, check.OK)
	assert.Equal(t, "at least one photo is required", check.Reason)
}

func TestUnknownStepRejected(t *testing.T) {
	assert.False(t, CanAdvance(9, completeDraft()).OK)
}
