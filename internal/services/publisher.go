package services

import (
	"context"
	"fmt"

	"github.com/pay2post/pay2post/internal/models"
)

// PublisherService renders the attribution caption and emits paid content
// into the target channel through the sink.
type PublisherService struct {
	sink      models.Sink
	channelID string
}

func NewPublisherService(sink models.Sink, channelID string) *PublisherService {
	return &PublisherService{sink: sink, channelID: channelID}
}

func renderCaption(order models.Order) string {
	displayName := "Unknown User"
	if order.Anon {
		displayName = "Anonymous"
	} else if order.DisplayName != "" {
		displayName = "@" + order.DisplayName
	}

	return fmt.Sprintf("💬 From %s\n💰 Paid $%s\n\n", displayName, order.PriceUSD.StringFixed(2))
}

// Publish sends the order's content to the channel with its caption. A
// failed send leaves the order untouched; the reconciliation loop retries
// the publish on its next pass.
func (ps *PublisherService) Publish(ctx context.Context, order models.Order) error {
	caption := renderCaption(order)

	switch order.Kind {
	case models.ContentKindText:
		return ps.sink.SendText(ctx, ps.channelID, caption+order.Content)
	case models.ContentKindImage:
		return ps.sink.SendImage(ctx, ps.channelID, order.Content, caption)
	case models.ContentKindVoice:
		return ps.sink.SendVoice(ctx, ps.channelID, order.Content, caption)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedContent, order.Kind)
	}
}
