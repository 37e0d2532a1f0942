package domain

type InquiryKind string

const (
	InquiryProperty   InquiryKind = "property_inquiry"
	InquiryValuation  InquiryKind = "valuation_request"
	InquiryManagement InquiryKind = "management_request"
	InquiryGeneral    InquiryKind = "general_inquiry"
)

// Inquiry is a contact-form submission. It is constructed fresh per
// submission and never retained after the call that sends it.
//
// The backend schema only has name/email/phone/message columns, so the
// kind-specific fields below are folded into the message body by the
// inquiry usecase before sending.
type Inquiry struct {
	Kind    InquiryKind
	Name    string
	Email   string
	Phone   string
	Message string

	// Property inquiry.
	ListingID string

	// Valuation request.
	Address string
	SqFt    string

	// Management request.
	PropertyAddress string
	Units           string
}
