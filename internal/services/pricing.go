package services

import (
	"errors"
	"unicode/utf8"

	"github.com/pay2post/pay2post/internal/models"
	"github.com/shopspring/decimal"
)

var (
	ErrUnsupportedContent = errors.New("unsupported content kind")
)

// Pricing rates in USD. Text is priced per character, voice per second of
// duration, images at a flat rate regardless of size.
var (
	textRatePerChar    = decimal.NewFromFloat(0.10)
	imageFlatRate      = decimal.NewFromFloat(15.00)
	voiceRatePerSecond = decimal.NewFromFloat(0.35)
)

type PricingService struct{}

func NewPricingService() *PricingService {
	return &PricingService{}
}

// Price quotes the USD amount for a submission, rounded to two decimals.
// Pure and deterministic; unsupported kinds yield ErrUnsupportedContent.
func (p *PricingService) Price(submission models.Submission) (decimal.Decimal, error) {
	switch submission.Kind {
	case models.ContentKindText:
		chars := utf8.RuneCountInString(submission.Text)
		return textRatePerChar.Mul(decimal.NewFromInt(int64(chars))).Round(2), nil
	case models.ContentKindImage:
		return imageFlatRate, nil
	case models.ContentKindVoice:
		seconds := decimal.NewFromInt(int64(submission.DurationSeconds))
		return voiceRatePerSecond.Mul(seconds).Round(2), nil
	default:
		return decimal.Zero, ErrUnsupportedContent
	}
}
