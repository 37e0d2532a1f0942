package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Bobybuu/real-estate-Gabby-sub000/internal/adapter/api"
	"github.com/Bobybuu/real-estate-Gabby-sub000/internal/estate/domain"
)

func TestSubmitValuationFoldsFieldsIntoMessage(t *testing.T) {
	gw := new(MockGateway)
	uc := NewInquiryUsecase(gw, zap.NewNop())

	var sent map[string]any
	gw.On("Post", mock.Anything, inquiriesPath, mock.Anything).
		Run(func(args mock.Arguments) {
			sent = args.Get(2).(map[string]any)
		}).
		Return(&api.Response{Status: 201}, nil).Once()

	err := uc.Submit(context.Background(), domain.Inquiry{
		Kind:    domain.InquiryValuation,
		Name:    "Jo Mwangi",
		Email:   "jo@example.com",
		Address: "12 Example Rd",
		SqFt:    "2000",
		Message: "Near the highway",
	})
	require.NoError(t, err)

	assert.Equal(t, "valuation_request", sent["inquiry_type"])
	assert.Equal(t, "Address: 12 Example Rd\nSquare Footage: 2000\n\nNear the highway", sent["message"])
	gw.AssertExpectations(t)
}

func TestSubmitManagementTemplate(t *testing.T) {
	gw := new(MockGateway)
	uc := NewInquiryUsecase(gw, zap.NewNop())

	var sent map[string]any
	gw.On("Post", mock.Anything, inquiriesPath, mock.Anything).
		Run(func(args mock.Arguments) {
			sent = args.Get(2).(map[string]any)
		}).
		Return(&api.Response{Status: 201}, nil).Once()

	err := uc.Submit(context.Background(), domain.Inquiry{
		Kind:            domain.InquiryManagement,
		Name:            "Jo Mwangi",
		Email:           "jo@example.com",
		PropertyAddress: "4 Acacia Ave",
		Units:           "12",
		Message:         "Looking for full management",
	})
	require.NoError(t, err)
	assert.Equal(t, "Property Address: 4 Acacia Ave\nUnits: 12\n\nLooking for full management", sent["message"])
}

func TestSubmitPropertyInquiryCarriesListingID(t *testing.T) {
	gw := new(MockGateway)
	uc := NewInquiryUsecase(gw, zap.NewNop())

	var sent map[string]any
	gw.On("Post", mock.Anything, inquiriesPath, mock.Anything).
		Run(func(args mock.Arguments) {
			sent = args.Get(2).(map[string]any)
		}).
		Return(&api.Response{Status: 201}, nil).Once()

	err := uc.Submit(context.Background(), domain.Inquiry{
		Kind:      domain.InquiryProperty,
		Name:      "Jo",
		Email:     "jo@example.com",
		ListingID: "42",
		Message:   "Is it still available?",
	})
	require.NoError(t, err)
	assert.Equal(t, "42", sent["listing_id"])
	assert.Equal(t, "Is it still available?", sent["message"], "non-folding kinds send the message untouched")
}

func TestSubmitDefaultsToGeneralKind(t *testing.T) {
	gw := new(MockGateway)
	uc := NewInquiryUsecase(gw, zap.NewNop())

	var sent map[string]any
	gw.On("Post", mock.Anything, inquiriesPath, mock.Anything).
		Run(func(args mock.Arguments) {
			sent = args.Get(2).(map[string]any)
		}).
		Return(&api.Response{Status: 201}, nil).Once()

	require.NoError(t, uc.Submit(context.Background(), domain.Inquiry{
		Name: "Jo", Email: "jo@example.com", Message: "hello",
	}))
	assert.Equal(t, "general_inquiry", sent["inquiry_type"])
	_, hasListing := sent["listing_id"]
	assert.False(t, hasListing)
}

func TestSubmitSurfacesValidationError(t *testing.T) {
	gw := new(MockGateway)
	uc := NewInquiryUsecase(gw, zap.NewNop())
	valErr := &domain.APIError{
		Kind:   domain.ErrKindValidation,
		Status: 400,
		Fields: map[string][]string{"email": {"invalid email"}},
	}
	gw.On("Post", mock.Anything, inquiriesPath, mock.Anything).Return(nil, valErr).Once()

	err := uc.Submit(context.Background(), domain.Inquiry{Name: "Jo"})
	assert.ErrorIs(t, err, valErr)
}
