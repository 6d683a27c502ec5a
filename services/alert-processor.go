package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// AlertSource evaluates a user's current alerts.
type AlertSource func(ctx context.Context, userID string) ([]Alert, error)

// Publisher delivers a payload to a user's open dashboards.
type Publisher interface {
	SendToUser(userID string, payload []byte) error
	List() []string
}

// AlertMessage is the websocket envelope for an alert list.
type AlertMessage struct {
	Type  string  `json:"type"`
	Count int     `json:"count"`
	Data  []Alert `json:"data"`
}

const MessageNotifications = "notifications"

// AlertProcessor pushes fresh alerts to connected users after each change
// and on a fixed interval, since lease and payment windows expire with the
// calendar alone.
type AlertProcessor struct {
	source    AlertSource
	publisher Publisher
	interval  time.Duration

	stopOnce sync.Once
	stop     chan struct{}

	mu      sync.Mutex
	pending map[string]bool // user -> another change arrived during the push
}

func NewAlertProcessor(source AlertSource, publisher Publisher, interval time.Duration) *AlertProcessor {
	if interval <= 0 {
		interval = time.Hour
	}
	return &AlertProcessor{
		source:    source,
		publisher: publisher,
		interval:  interval,
		stop:      make(chan struct{}),
		pending:   make(map[string]bool),
	}
}

func (ap *AlertProcessor) Start() {
	ticker := time.NewTicker(ap.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				ap.ProcessAll(context.Background())
			case <-ap.stop:
				return
			}
		}
	}()
}

func (ap *AlertProcessor) Stop() {
	ap.stopOnce.Do(func() { close(ap.stop) })
}

// ProcessAll re-evaluates every connected user.
func (ap *AlertProcessor) ProcessAll(ctx context.Context) {
	users := ap.publisher.List()
	for _, userID := range users {
		ap.Push(ctx, userID)
	}
	logrus.WithField("users", len(users)).Debug("alert refresh pushed")
}

// Changed implements the usecase change notifier. It returns at once; the
// push runs on a per-user goroutine, and changes that arrive while it is
// busy collapse into one more push.
func (ap *AlertProcessor) Changed(ctx context.Context, userID string) {
	ap.mu.Lock()
	if _, busy := ap.pending[userID]; busy {
		ap.pending[userID] = true
		ap.mu.Unlock()
		return
	}
	ap.pending[userID] = false
	ap.mu.Unlock()

	go ap.drain(context.WithoutCancel(ctx), userID)
}

func (ap *AlertProcessor) drain(ctx context.Context, userID string) {
	for {
		ap.Push(ctx, userID)

		ap.mu.Lock()
		if !ap.pending[userID] {
			delete(ap.pending, userID)
			ap.mu.Unlock()
			return
		}
		ap.pending[userID] = false
		ap.mu.Unlock()
	}
}

// Push evaluates userID's alerts and sends them if the user is connected.
func (ap *AlertProcessor) Push(ctx context.Context, userID string) {
	payload, err := ap.Message(ctx, userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("could not evaluate alerts")
		return
	}
	// not being connected is the common case
	_ = ap.publisher.SendToUser(userID, payload)
}

// Message renders userID's current alerts as an AlertMessage.
func (ap *AlertProcessor) Message(ctx context.Context, userID string) ([]byte, error) {
	alerts, err := ap.source(ctx, userID)
	if err != nil {
		return nil, err
	}
	return json.Marshal(AlertMessage{
		Type:  MessageNotifications,
		Count: len(alerts),
		Data:  alerts,
	})
}
