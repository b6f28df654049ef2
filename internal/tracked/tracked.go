// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package tracked provides payload types that report their lifecycle.
//
// A [Tracker] hands out [B] values with increasing identifiers and counts
// every construction, clone and destruction, both as plain counters and
// as a Prometheus counter vector. [Broken] is a payload whose initializer
// always fails.
package tracked

import (
	"errors"
	"strconv"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Lifecycle event labels.
const (
	EventConstruct = "construct"
	EventClone     = "clone"
	EventDestroy   = "destroy"
)

// Tracker counts the lifecycle events of the values it creates.
// It is safe for concurrent use.
type Tracker struct {
	nextID    atomic.Int64
	construct atomic.Int64
	clone     atomic.Int64
	destroy   atomic.Int64

	events *prometheus.CounterVec
	logger *zap.Logger
}

// NewTracker creates a tracker whose counters are registered on reg.
// A nil reg leaves the counters unregistered; a nil logger disables
// logging.
func NewTracker(reg prometheus.Registerer, logger *zap.Logger) (*Tracker, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	events := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "variant",
			Subsystem: "tracked",
			Name:      "events_total",
			Help:      "Number of lifecycle events observed on tracked payloads.",
		},
		[]string{"event"})
	for _, e := range []string{EventConstruct, EventClone, EventDestroy} {
		events.WithLabelValues(e)
	}
	if reg != nil {
		if err := reg.Register(events); err != nil {
			return nil, err
		}
	}
	return &Tracker{events: events, logger: logger}, nil
}

// New constructs a fresh B.
func (t *Tracker) New() B {
	b := B{ID: t.nextID.Add(1) - 1, tracker: t}
	t.record(EventConstruct, &t.construct)
	t.logger.Debug("*B"+strconv.FormatInt(b.ID, 10), zap.String("event", EventConstruct))
	return b
}

// Stats is a snapshot of a tracker's counters.
type Stats struct {
	Constructed int64
	Cloned      int64
	Destroyed   int64
}

// Live returns the number of values created and not yet destroyed.
func (s Stats) Live() int64 { return s.Constructed + s.Cloned - s.Destroyed }

// Stats returns the current counters.
func (t *Tracker) Stats() Stats {
	return Stats{
		Constructed: t.construct.Load(),
		Cloned:      t.clone.Load(),
		Destroyed:   t.destroy.Load(),
	}
}

// Live returns the number of values created and not yet destroyed.
func (t *Tracker) Live() int64 { return t.Stats().Live() }

// Events returns the counter vector, labelled by event.
func (t *Tracker) Events() *prometheus.CounterVec { return t.events }

func (t *Tracker) record(event string, n *atomic.Int64) {
	n.Add(1)
	t.events.WithLabelValues(event).Inc()
}

// B is a payload with an identity. Cloning a B yields a new identity;
// destroying it is reported to its tracker.
type B struct {
	ID      int64
	tracker *Tracker
}

// Clone returns a copy of b with a new identifier.
func (b B) Clone() B {
	t := b.tracker
	if t == nil {
		return b
	}
	c := B{ID: t.nextID.Add(1) - 1, tracker: t}
	t.record(EventClone, &t.clone)
	t.logger.Debug("*B"+strconv.FormatInt(c.ID, 10)+"(B"+strconv.FormatInt(b.ID, 10)+")",
		zap.String("event", EventClone))
	return c
}

// Destroy reports the end of b's lifetime.
func (b *B) Destroy() {
	t := b.tracker
	if t == nil {
		return
	}
	t.record(EventDestroy, &t.destroy)
	t.logger.Debug("~B"+strconv.FormatInt(b.ID, 10), zap.String("event", EventDestroy))
}

func (b B) String() string { return "B" + strconv.FormatInt(b.ID, 10) }

// ErrBroken is returned by [InitBroken].
var ErrBroken = errors.New("tracked: broken payload cannot be constructed")

// Broken is a payload that can never be constructed.
type Broken struct{}

// InitBroken is the initializer of Broken. It always fails.
func InitBroken(*Broken) error { return ErrBroken }
