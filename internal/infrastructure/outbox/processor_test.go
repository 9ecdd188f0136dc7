package outbox

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warzonebot/warzone-core/internal/domain"
	"github.com/warzonebot/warzone-core/internal/infrastructure/logger"
	"github.com/warzonebot/warzone-core/internal/infrastructure/repository/memory"
)

type recordingNotifier struct {
	delivered []*domain.OutboxEvent
	err       error
}

func (n *recordingNotifier) Notify(event *domain.OutboxEvent) error {
	if n.err != nil {
		return n.err
	}
	n.delivered = append(n.delivered, event)
	return nil
}

func newTestProcessor(repo domain.OutboxRepository, n domain.EventNotifier) *Processor {
	return NewProcessor(repo, n, logger.NewLogger("test", "error"))
}

func TestProcessEvents_DeliversAndMarksProcessed(t *testing.T) {
	store := memory.NewStore()
	repo := store.Outbox()
	notifier := &recordingNotifier{}
	processor := newTestProcessor(repo, notifier)

	event := domain.NewOutboxEvent(domain.EventTypeAttackResolved, domain.JSONB{"attacker_id": int64(1)})
	require.NoError(t, repo.Save(event))

	require.NoError(t, processor.ProcessEvents())

	require.Len(t, notifier.delivered, 1)
	assert.Equal(t, event.ID, notifier.delivered[0].ID)

	pending, err := repo.GetPendingEvents(10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestProcessEvents_RetriesOnDeliveryFailure(t *testing.T) {
	store := memory.NewStore()
	repo := store.Outbox()
	notifier := &recordingNotifier{err: errors.New("webhook unreachable")}
	processor := newTestProcessor(repo, notifier)

	event := domain.NewOutboxEvent(domain.EventTypeBoxOpened, domain.JSONB{"user_id": int64(2)})
	require.NoError(t, repo.Save(event))

	require.NoError(t, processor.ProcessEvents())

	pending, err := repo.GetPendingEvents(10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, 1, pending[0].RetryCount)
}

func TestProcessEvents_MarksFailedAfterMaxRetries(t *testing.T) {
	store := memory.NewStore()
	repo := store.Outbox()
	notifier := &recordingNotifier{err: errors.New("webhook unreachable")}
	processor := newTestProcessor(repo, notifier)

	event := domain.NewOutboxEvent(domain.EventTypeGiftGranted, domain.JSONB{"user_id": int64(3)})
	event.RetryCount = 5
	require.NoError(t, repo.Save(event))

	require.NoError(t, processor.ProcessEvents())

	pending, err := repo.GetPendingEvents(10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestProcessEvent_RejectsUnknownType(t *testing.T) {
	store := memory.NewStore()
	repo := store.Outbox()
	processor := newTestProcessor(repo, &recordingNotifier{})

	event := domain.NewOutboxEvent("SOMETHING_ELSE", nil)
	require.NoError(t, repo.Save(event))

	err := processor.ProcessEvent(event)
	require.Error(t, err)
}

func TestProcessEvents_StoppedProcessorReturnsError(t *testing.T) {
	store := memory.NewStore()
	processor := newTestProcessor(store.Outbox(), &recordingNotifier{})

	processor.StartBackgroundProcessing()
	processor.StopBackgroundProcessing()

	err := processor.ProcessEvents()
	require.Error(t, err)
}
