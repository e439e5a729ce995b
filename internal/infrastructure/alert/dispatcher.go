package alert

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julija05/kidseducation-guard/internal/domain/entity"
	"github.com/julija05/kidseducation-guard/internal/domain/service"
	"github.com/julija05/kidseducation-guard/internal/infrastructure/metrics"
)

const notifyTimeout = 5 * time.Second

// Dispatcher はアラートを非同期で各通知チャネルへ配信します
type Dispatcher struct {
	notifiers []service.AlertNotifier
	events    chan *entity.AlertEvent
	done      chan struct{}
	now       func() time.Time

	mu     sync.RWMutex
	closed bool
}

// NewDispatcher は新しいDispatcherを作成し、配信ループを開始します
func NewDispatcher(bufferSize int, notifiers ...service.AlertNotifier) *Dispatcher {
	d := newDispatcher(bufferSize, notifiers...)
	go d.processLoop()
	return d
}

func newDispatcher(bufferSize int, notifiers ...service.AlertNotifier) *Dispatcher {
	if bufferSize <= 0 {
		bufferSize = 1000
	}
	return &Dispatcher{
		notifiers: notifiers,
		events:    make(chan *entity.AlertEvent, bufferSize),
		done:      make(chan struct{}),
		now:       time.Now,
	}
}

// Dispatch はアラートをキューに追加します（非ブロッキング）
func (d *Dispatcher) Dispatch(ctx context.Context, subjectID uuid.UUID, eventType entity.AlertEventType, details map[string]string) {
	event := entity.NewAlertEvent(subjectID, eventType, details, d.now())

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		slog.Warn("alert dispatcher stopped, dropping alert",
			"event_type", string(eventType),
			"subject_id", subjectID.String(),
		)
		metrics.TrackAlertDropped()
		return
	}

	select {
	case d.events <- event:
	default:
		slog.Warn("alert buffer full, dropping alert",
			"event_type", string(eventType),
			"subject_id", subjectID.String(),
		)
		metrics.TrackAlertDropped()
	}
}

// processLoop はバッファからアラートを読み取り配信します
func (d *Dispatcher) processLoop() {
	defer close(d.done)
	for event := range d.events {
		d.deliver(event)
	}
}

// deliver は全通知チャネルへ配信します
// 失敗はログに残し、他のチャネルへの配信は継続します
func (d *Dispatcher) deliver(event *entity.AlertEvent) {
	for _, notifier := range d.notifiers {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		err := notifier.Notify(ctx, event)
		cancel()

		metrics.TrackAlert(notifier.Name(), err)
		if err != nil {
			slog.Error("failed to deliver alert",
				"error", err,
				"notifier", notifier.Name(),
				"alert_id", event.ID.String(),
				"event_type", string(event.EventType),
			)
		}
	}
}

// Shutdown は残りのアラートを配信してから停止します
func (d *Dispatcher) Shutdown() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.events)
	d.mu.Unlock()

	<-d.done
}

// インターフェースの実装を保証
var _ service.AlertDispatcher = (*Dispatcher)(nil)
