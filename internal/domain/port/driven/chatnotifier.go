package driven

import (
	"context"

	"github.com/GoshPosh/slack-pull-reminder/internal/domain/model"
)

// ChatNotifier posts a message to a chat channel.
// A non-nil error means the call itself failed; a rejected message is
// reported through DeliveryResult.
type ChatNotifier interface {
	Post(ctx context.Context, text string) (model.DeliveryResult, error)
}
