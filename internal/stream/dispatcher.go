package stream

import (
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/betbot/sportsbook/internal/metrics"
	"github.com/betbot/sportsbook/internal/state"
)

// Notifier receives user-facing notifications pushed by the server.
type Notifier interface {
	Notify(n Notification)
}

// Dispatcher routes inbound frames by event type into the state store.
// Dispatch is total: a malformed or unknown message is dropped with a log
// line, never an error, so one bad frame cannot take the channel down.
type Dispatcher struct {
	store    *state.Store
	notifier Notifier
	log      *logrus.Entry
}

// NewDispatcher builds a dispatcher over the given store. notifier may be
// nil, in which case notifications are only logged.
func NewDispatcher(store *state.Store, notifier Notifier) *Dispatcher {
	return &Dispatcher{
		store:    store,
		notifier: notifier,
		log:      logrus.WithField("component", "dispatcher"),
	}
}

// Dispatch routes one raw frame. It runs on the read loop goroutine, in
// delivery order, and never panics.
func (d *Dispatcher) Dispatch(raw []byte) {
	defer func() {
		if r := recover(); r != nil {
			d.log.WithField("panic", r).Error("dispatch panic recovered, message dropped")
		}
	}()

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		metrics.MalformedMessages.Inc()
		d.log.WithError(err).Warn("unparseable frame dropped")
		return
	}

	switch env.Event {
	case EventOddsUpdate:
		var u OddsUpdate
		if err := json.Unmarshal(env.Data, &u); err != nil {
			d.dropMalformed(env.Event, err)
			return
		}
		d.store.ApplyOdds(u.MatchID, u.Odds, u.Odds.UpdatedAt)

	case EventMatchUpdate:
		var u MatchUpdate
		if err := json.Unmarshal(env.Data, &u); err != nil {
			d.dropMalformed(env.Event, err)
			return
		}
		d.store.MergeMatch(u.MatchID, u.Score, u.Status, u.Minute, u.Timestamp)

	case EventBalanceUpdate:
		var u BalanceUpdate
		if err := json.Unmarshal(env.Data, &u); err != nil {
			d.dropMalformed(env.Event, err)
			return
		}
		d.store.SetBalance(u.Balance)

	case EventNotification:
		var n Notification
		if err := json.Unmarshal(env.Data, &n); err != nil {
			d.dropMalformed(env.Event, err)
			return
		}
		if d.notifier != nil {
			d.notifier.Notify(n)
		} else {
			d.log.WithFields(logrus.Fields{
				"type":  n.Type,
				"title": n.Title,
			}).Info(n.Message)
		}

	default:
		// Unknown event types are ignored for forward compatibility.
		d.log.WithField("event", env.Event).Debug("unknown event ignored")
		return
	}

	metrics.MessagesDispatched.WithLabelValues(env.Event).Inc()
}

func (d *Dispatcher) dropMalformed(event string, err error) {
	metrics.MalformedMessages.Inc()
	d.log.WithError(err).WithField("event", event).Warn("malformed payload dropped")
}
