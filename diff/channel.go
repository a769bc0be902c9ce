package diff

import (
	"github.com/sirupsen/logrus"

	"github.com/tphakala/go-rtaudio/rtqueue"
)

// EventSender is the control-thread end of an event channel. It implements
// EventQueue, so a Memo can Update straight into it.
type EventSender struct {
	prod *rtqueue.Producer[ParamEvent]
	log  *logrus.Entry

	// dropped as of the last log line
	loggedDrops uint64
}

// EventReceiver is the audio-thread end of an event channel. Its methods
// never block, allocate or log.
type EventReceiver struct {
	cons *rtqueue.Consumer[ParamEvent]
}

// NewEventChannel creates a bounded channel holding at least capacity events
// (DefaultChannelCapacity if capacity <= 0).
//
// When the audio thread falls behind and the channel is full, new events are
// dropped and counted; queued events are never overwritten, so what the
// receiver sees is always applied in diff order. Drops are logged as
// warnings from the sending side.
func NewEventChannel(capacity int) (*EventSender, *EventReceiver) {
	if capacity <= 0 {
		capacity = DefaultChannelCapacity
	}
	prod, cons := rtqueue.New[ParamEvent](capacity).Split()

	logrus.WithFields(logrus.Fields{
		"function": "NewEventChannel",
		"capacity": prod.Cap(),
	}).Debug("Created parameter event channel")

	return &EventSender{
			prod: prod,
			log:  logrus.WithField("component", "diff.EventSender"),
		}, &EventReceiver{
			cons: cons,
		}
}

// Push implements EventQueue. A full channel drops ev.
func (s *EventSender) Push(ev ParamEvent) {
	if s.prod.TryPush(ev) {
		return
	}

	dropped := s.prod.Dropped()
	if s.loggedDrops == 0 || dropped-s.loggedDrops >= dropLogInterval {
		s.log.WithFields(logrus.Fields{
			"function": "Push",
			"path":     ev.Path,
			"data":     ev.Data.String(),
			"dropped":  dropped,
			"capacity": s.prod.Cap(),
		}).Warn("Parameter event channel full, dropping newest event")
		s.loggedDrops = dropped
	}
}

// TryPush pushes ev and reports whether it was accepted, without logging.
func (s *EventSender) TryPush(ev ParamEvent) bool {
	return s.prod.TryPush(ev)
}

// Dropped returns the number of events dropped so far.
func (s *EventSender) Dropped() uint64 {
	return s.prod.Dropped()
}

// Len returns the number of queued events.
func (s *EventSender) Len() int {
	return s.prod.Len()
}

// Pop removes the oldest event.
func (r *EventReceiver) Pop() (ParamEvent, bool) {
	return r.cons.TryPop()
}

// Drain passes every queued event to fn in order and returns the count.
func (r *EventReceiver) Drain(fn func(ParamEvent)) int {
	return r.cons.Drain(fn)
}

// DrainInto patches p with every queued event. Events that fail to decode are
// passed to onErr if it is non-nil and otherwise skipped.
func DrainInto[P any](r *EventReceiver, p Patcher[P], onErr func(ParamEvent, error)) int {
	n := 0
	for {
		ev, ok := r.cons.TryPop()
		if !ok {
			return n
		}
		if err := PatchEvent(p, ev); err != nil && onErr != nil {
			onErr(ev, err)
		}
		n++
	}
}
