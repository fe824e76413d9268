package mailer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTransport struct {
	mu   sync.Mutex
	sent []*Email
	err  error
}

func (f *fakeTransport) Send(_ context.Context, email *Email) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, email)
	return f.err
}

func (f *fakeTransport) sentEmails() []*Email {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*Email(nil), f.sent...)
}

func TestDispatcher_DeliversQueuedEmail(t *testing.T) {
	transport := &fakeTransport{}
	d := NewDispatcher(transport, 4, time.Second)

	d.Enqueue(&Email{To: "asha@example.com", Subject: "hello"})
	d.Close()

	sent := transport.sentEmails()
	require.Len(t, sent, 1)
	assert.Equal(t, "asha@example.com", sent[0].To)
}

func TestDispatcher_DeliveryFailureIsSwallowed(t *testing.T) {
	transport := &fakeTransport{err: eris.New("connection refused")}
	d := NewDispatcher(transport, 4, time.Second)

	d.Enqueue(&Email{To: "asha@example.com"})
	d.Close()

	// One attempt, no retry, no panic.
	assert.Len(t, transport.sentEmails(), 1)
}

func TestDispatcher_DeliversInOrder(t *testing.T) {
	transport := &fakeTransport{}
	d := NewDispatcher(transport, 8, time.Second)

	for _, subject := range []string{"first", "second", "third"} {
		d.Enqueue(&Email{To: "a@example.com", Subject: subject})
	}
	d.Close()

	sent := transport.sentEmails()
	require.Len(t, sent, 3)
	assert.Equal(t, "first", sent[0].Subject)
	assert.Equal(t, "third", sent[2].Subject)
}

func TestDispatcher_CloseIsIdempotent(t *testing.T) {
	d := NewDispatcher(&fakeTransport{}, 1, time.Second)
	d.Close()
	d.Close()
}
