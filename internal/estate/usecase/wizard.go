package usecase

import "github.com/Bobybuu/real-estate-Gabby-sub000/internal/estate/domain"

// Wizard steps of the listing creation flow.
const (
	StepBasics   = 1
	StepLocation = 2
	StepPricing  = 3
	StepMedia    = 4
)

type StepCheck struct {
	OK     bool
	Reason string
}

func pass() StepCheck { return StepCheck{OK: true} }

func fail(reason string) StepCheck { return StepCheck{Reason: reason} }

// CanAdvance decides whether the creation wizard may move past the given
// step. It is a pure function of the draft: no I/O, no logging, no state,
// so it can be tested without any network or UI harness.
func CanAdvance(step int, draft *domain.ListingDraft) StepCheck {
	switch step {
	case StepBasics:
		if draft.Title == "" {
			return fail("title is required")
		}
		if draft.Description == "" {
			return fail("description is required")
		}
		if draft.Category == "" {
			return fail("category is required")
		}
		return pass()
	case StepLocation:
		if draft.Address == "" {
			return fail("address is required")
		}
		if draft.City == "" {
			return fail("city is required")
		}
		if draft.Region == "" {
			return fail("region is required")
		}
		return pass()
	case StepPricing:
		if draft.Price <= 0 {
			return fail("price must be positive")
		}
		if draft.Category == domain.CategoryLand && draft.SizeAcres <= 0 {
			return fail("land size must be positive")
		}
		return pass()
	case StepMedia:
		if len(draft.Attachments) == 0 {
			return fail("at least one photo is required")
		}
		return pass()
	default:
		return fail("unknown step")
	}
}
