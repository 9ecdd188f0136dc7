package app

import (
	"github.com/warzonebot/warzone-core/internal/domain"
	"github.com/warzonebot/warzone-core/internal/infrastructure/logger"
	"github.com/warzonebot/warzone-core/internal/infrastructure/notifier"
	"github.com/warzonebot/warzone-core/internal/infrastructure/outbox"
)

func (a *application) InitNotifier() domain.EventNotifier {
	if a.config.Notifier.URL == "" {
		return notifier.NewNoopNotifier()
	}
	return notifier.NewWebhookNotifier(a.config.Notifier.URL, a.config.Notifier.APIKey)
}

func (a *application) InitOutboxProcessor(
	outboxRepo domain.OutboxRepository,
	n domain.EventNotifier,
	logger *logger.Logger,
) domain.OutboxProcessor {
	return outbox.NewProcessor(outboxRepo, n, logger)
}

// StartOutboxProcessor kicks off background event delivery.
func (a *application) StartOutboxProcessor(processor domain.OutboxProcessor) {
	processor.StartBackgroundProcessing()
}
