package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Bobybuu/real-estate-Gabby-sub000/internal/estate/domain"
)

const inquiriesPath = "/api/v1/inquiries/"

// InquiryUsecase submits contact/inquiry forms. Payloads are built fresh
// per submission and never retained past the call that sends them.
type InquiryUsecase struct {
	gateway Gateway
	logger  *zap.Logger
}

func NewInquiryUsecase(gateway Gateway, logger *zap.Logger) *InquiryUsecase {
	return &InquiryUsecase{gateway: gateway, logger: logger}
}

func (uc *InquiryUsecase) Submit(ctx context.Context, inquiry domain.Inquiry) error {
	kind := inquiry.Kind
	if kind == "" {
		kind = domain.InquiryGeneral
	}
	payload := map[string]any{
		"name":         inquiry.Name,
		"email":        inquiry.Email,
		"phone":        inquiry.Phone,
		"inquiry_type": string(kind),
		"message":      FoldMessage(inquiry),
	}
	if inquiry.ListingID != "" {
		payload["listing_id"] = inquiry.ListingID
	}

	if _, err := uc.gateway.Post(ctx, inquiriesPath, payload); err != nil {
		uc.logger.Warn("inquiry submission failed",
			zap.String("kind", string(kind)),
			zap.Error(err))
		return err
	}
	uc.logger.Info("inquiry submitted", zap.String("kind", string(kind)))
	return nil
}

// FoldMessage folds kind-specific fields into the message body, since the
// backend schema has no dedicated columns for them. The templates are part
// of the submission contract:
//
//	valuation:  "Address: <address>\nSquare Footage: <sqft>\n\n<message>"
//	management: "Property Address: <address>\nUnits: <units>\n\n<message>"
//
// Other kinds send the message untouched.
func FoldMessage(inquiry domain.Inquiry) string {
	switch inquiry.Kind {
	case domain.InquiryValuation:
		return fmt.Sprintf("Address: %s\nSquare Footage: %s\n\n%s",
			inquiry.Address, inquiry.SqFt, inquiry.Message)
	case domain.InquiryManagement:
		return fmt.Sprintf("Property Address: %s\nUnits: %s\n\n%s",
			inquiry.PropertyAddress, inquiry.Units, inquiry.Message)
	default:
		return inquiry.Message
	}
}
