package services

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/pay2post/pay2post/internal/models"
	mock_models "github.com/pay2post/pay2post/internal/models/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPublish(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sinkMock := mock_models.NewMockSink(ctrl)
	publisherService := NewPublisherService(sinkMock, "@pay2talks")

	ctx := context.Background()

	testCases := []struct {
		testName    string
		order       models.Order
		test        func(t *testing.T)
		expectedErr error
	}{
		{
			testName: "Should publish text from an anonymous submitter",
			order: models.Order{
				DisplayName: "alice",
				Kind:        models.ContentKindText,
				Content:     "hello world",
				PriceUSD:    decimal.NewFromFloat(1.10),
				Anon:        true,
			},
			test: func(t *testing.T) {
				sinkMock.EXPECT().
					SendText(gomock.Any(), "@pay2talks", "💬 From Anonymous\n💰 Paid $1.10\n\nhello world").
					Return(nil)
			},
		},
		{
			testName: "Should attribute a named submitter",
			order: models.Order{
				DisplayName: "alice",
				Kind:        models.ContentKindText,
				Content:     "hi",
				PriceUSD:    decimal.NewFromFloat(0.20),
			},
			test: func(t *testing.T) {
				sinkMock.EXPECT().
					SendText(gomock.Any(), "@pay2talks", "💬 From @alice\n💰 Paid $0.20\n\nhi").
					Return(nil)
			},
		},
		{
			testName: "Should fall back when the submitter has no handle",
			order: models.Order{
				Kind:     models.ContentKindText,
				Content:  "hi",
				PriceUSD: decimal.NewFromFloat(0.20),
			},
			test: func(t *testing.T) {
				sinkMock.EXPECT().
					SendText(gomock.Any(), "@pay2talks", "💬 From Unknown User\n💰 Paid $0.20\n\nhi").
					Return(nil)
			},
		},
		{
			testName: "Should publish an image with the caption",
			order: models.Order{
				DisplayName: "alice",
				Kind:        models.ContentKindImage,
				Content:     "file-123",
				PriceUSD:    decimal.NewFromFloat(15.00),
				Anon:        true,
			},
			test: func(t *testing.T) {
				sinkMock.EXPECT().
					SendImage(gomock.Any(), "@pay2talks", "file-123", "💬 From Anonymous\n💰 Paid $15.00\n\n").
					Return(nil)
			},
		},
		{
			testName: "Should publish a voice message with the caption",
			order: models.Order{
				DisplayName: "alice",
				Kind:        models.ContentKindVoice,
				Content:     "file-456",
				PriceUSD:    decimal.NewFromFloat(14.70),
			},
			test: func(t *testing.T) {
				sinkMock.EXPECT().
					SendVoice(gomock.Any(), "@pay2talks", "file-456", "💬 From @alice\n💰 Paid $14.70\n\n").
					Return(nil)
			},
		},
		{
			testName: "Should propagate a sink failure",
			order: models.Order{
				Kind:     models.ContentKindText,
				Content:  "hi",
				PriceUSD: decimal.NewFromFloat(0.20),
			},
			test: func(t *testing.T) {
				sinkMock.EXPECT().
					SendText(gomock.Any(), "@pay2talks", gomock.Any()).
					Return(errors.New("channel unavailable"))
			},
			expectedErr: errors.New("channel unavailable"),
		},
		{
			testName: "Should reject an unknown content kind",
			order: models.Order{
				Kind:     "sticker",
				PriceUSD: decimal.NewFromFloat(1.00),
			},
			expectedErr: ErrUnsupportedContent,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			if tc.test != nil {
				tc.test(t)
			}

			err := publisherService.Publish(ctx, tc.order)

			if tc.expectedErr != nil {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
		})
	}
}
