// Package sse streams note changes to HTTP clients as Server-Sent Events.
package sse

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"
)

// Event names written on the "event:" line.
const (
	EventNoteCreated  = "note.created"
	EventNoteDeleted  = "note.deleted"
	EventListRefresh  = "list.refresh"
	EventStoreChanged = "store.changed"
)

// DefaultHeartbeat is how often an idle stream gets a keep-alive comment.
const DefaultHeartbeat = 30 * time.Second

const (
	clientBuffer = 64
	retryMillis  = 3000
)

// Event is one message for every connected client.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type clients map[chan []byte]struct{}

// envelope is what the loop receives: an event, optionally followed by a
// throttled list.refresh.
type envelope struct {
	event   Event
	refresh bool
}

// Broker fans events out to subscribers. One goroutine owns the client set,
// the event sequence and the refresh throttle; callers reach it through
// channels.
type Broker struct {
	// Heartbeat is read by ServeHTTP. Zero disables keep-alive comments.
	Heartbeat time.Duration

	refreshMin time.Duration
	events     chan envelope
	control    chan func(clients)
	stop       chan struct{}
	stopped    chan struct{}
	closed     atomic.Bool
}

// NewBroker starts a broker that sends at most one list.refresh per
// refreshThrottle.
func NewBroker(refreshThrottle time.Duration) *Broker {
	if refreshThrottle <= 0 {
		refreshThrottle = 2 * time.Second
	}
	b := &Broker{
		Heartbeat:  DefaultHeartbeat,
		refreshMin: refreshThrottle,
		events:     make(chan envelope, 256),
		control:    make(chan func(clients)),
		stop:       make(chan struct{}),
		stopped:    make(chan struct{}),
	}
	go b.loop()
	return b
}

func (b *Broker) loop() {
	defer close(b.stopped)

	subs := make(clients)
	var (
		seq         uint64
		lastRefresh time.Time
	)

	send := func(e Event) {
		data, err := json.Marshal(e.Data)
		if err != nil {
			return
		}
		seq++
		msg := frame(seq, e.Type, data)
		for ch := range subs {
			select {
			case ch <- msg:
			default:
				// slow client, drop
			}
		}
	}

	for {
		select {
		case <-b.stop:
			for ch := range subs {
				close(ch)
			}
			return
		case fn := <-b.control:
			fn(subs)
		case env := <-b.events:
			send(env.event)
			if env.refresh && time.Since(lastRefresh) >= b.refreshMin {
				lastRefresh = time.Now()
				send(Event{Type: EventListRefresh, Data: struct{}{}})
			}
		}
	}
}

func frame(id uint64, event string, data []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("id: ")
	buf.WriteString(strconv.FormatUint(id, 10))
	buf.WriteString("\nevent: ")
	buf.WriteString(event)
	buf.WriteString("\ndata: ")
	buf.Write(data)
	buf.WriteString("\n\n")
	return buf.Bytes()
}

// do runs fn on the loop goroutine. It reports false once the broker is
// closed.
func (b *Broker) do(fn func(clients)) bool {
	if b.closed.Load() {
		return false
	}
	select {
	case b.control <- fn:
		return true
	case <-b.stopped:
		return false
	}
}

func (b *Broker) post(env envelope) {
	if b.closed.Load() {
		return
	}
	select {
	case b.events <- env:
	case <-b.stopped:
	}
}

// Close stops the loop and closes every subscriber channel. Safe to call
// more than once.
func (b *Broker) Close() {
	if b.closed.CompareAndSwap(false, true) {
		close(b.stop)
	}
	<-b.stopped
}

// Subscribe registers a client. The channel is closed on Unsubscribe or
// Close.
func (b *Broker) Subscribe() chan []byte {
	ch := make(chan []byte, clientBuffer)
	if !b.do(func(c clients) { c[ch] = struct{}{} }) {
		close(ch)
	}
	return ch
}

// Unsubscribe removes a client and closes its channel.
func (b *Broker) Unsubscribe(ch chan []byte) {
	b.do(func(c clients) {
		if _, ok := c[ch]; ok {
			delete(c, ch)
			close(ch)
		}
	})
}

// ClientCount returns the number of subscribers.
func (b *Broker) ClientCount() int {
	resp := make(chan int, 1)
	if !b.do(func(c clients) { resp <- len(c) }) {
		return 0
	}
	return <-resp
}

// Publish sends e to all subscribers.
func (b *Broker) Publish(e Event) {
	b.post(envelope{event: e})
}

// PublishNoteEvent matches noteservice.EventFunc. kind is "created" or
// "deleted"; anything else only triggers the refresh.
func (b *Broker) PublishNoteEvent(kind string, id int64) {
	var name string
	switch kind {
	case "created":
		name = EventNoteCreated
	case "deleted":
		name = EventNoteDeleted
	}
	if name == "" {
		b.post(envelope{event: Event{Type: EventListRefresh, Data: struct{}{}}})
		return
	}
	b.post(envelope{
		event:   Event{Type: name, Data: map[string]int64{"id": id}},
		refresh: true,
	})
}

// PublishStoreChanged tells clients the database file changed on disk.
func (b *Broker) PublishStoreChanged() {
	b.Publish(Event{Type: EventStoreChanged, Data: struct{}{}})
}

// ServeHTTP streams events until the client disconnects or the broker
// closes (GET /api/events).
func (b *Broker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("retry: " + strconv.Itoa(retryMillis) + "\n\n"))
	flusher.Flush()

	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	var tick <-chan time.Time
	if b.Heartbeat > 0 {
		t := time.NewTicker(b.Heartbeat)
		defer t.Stop()
		tick = t.C
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case <-tick:
			_, _ = w.Write([]byte(": ping\n\n"))
			flusher.Flush()
		case msg, ok := <-ch:
			if !ok {
				return
			}
			_, _ = w.Write(msg)
			flusher.Flush()
		}
	}
}
