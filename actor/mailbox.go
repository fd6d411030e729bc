package actor

import (
	"context"
	"sync"
)

// defaultMailboxSize is the default channel buffer for an actor's inbox.
const defaultMailboxSize = 128

// handlerObject is the erased unit of work a Mailbox[A] transports: a
// closure that already knows its concrete message and response types, and
// needs only the actor value itself (of the mailbox's own type A) to run.
// Building one of these at send time, instead of matching on a message
// variant at receive time, is what lets a single mailbox serve any number
// of message types without the dispatcher ever switching on one.
type handlerObject[A Actor] interface {
	invoke(actor A, actorCtx *Context, stopped <-chan struct{})
}

// handlerEntry is the concrete handlerObject for one (A, M, R) triple. Its
// type parameters are fixed when Send constructs it, so invoke performs
// exactly one call — Handle — with no type assertion.
type handlerEntry[A Handler[M, R], M any, R any] struct {
	ctx  context.Context
	msg  M
	resp chan<- R
	errc chan<- error
}

func (h *handlerEntry[A, M, R]) invoke(actor A, actorCtx *Context, stopped <-chan struct{}) {
	// A panicking handler fails this one response with ErrResponseFailed
	// rather than taking down the dispatcher goroutine.
	defer func() {
		if recover() != nil {
			h.failResponse()
		}
	}()

	r, err := actor.Handle(h.ctx, h.msg, actorCtx)

	// The mailbox was stopped while this handler was running: the actor is
	// being torn down, so the caller observes a failure rather than a
	// result produced after Kill was already underway.
	select {
	case <-stopped:
		h.failResponse()
		return
	default:
	}

	if err != nil {
		select {
		case h.errc <- err:
		default:
		}
		return
	}
	select {
	case h.resp <- r:
	default:
	}
}

// Mailbox is the per-actor FIFO queue of handler objects: exactly one
// consumer (the dispatcher goroutine started by the registry on Add) and
// many producers (every Send call targeting the actor).
type Mailbox[A Actor] struct {
	queue   chan handlerObject[A]
	stopCh  chan struct{}
	stopped sync.Once
	wg      sync.WaitGroup
}

func newMailbox[A Actor](size int) *Mailbox[A] {
	if size <= 0 {
		size = defaultMailboxSize
	}
	return &Mailbox[A]{
		queue:  make(chan handlerObject[A], size),
		stopCh: make(chan struct{}),
	}
}

// push enqueues a handler object: a non-blocking attempt first, then a
// blocking one racing against the mailbox being stopped or the caller's
// context expiring.
func (m *Mailbox[A]) push(ctx context.Context, obj handlerObject[A]) error {
	select {
	case m.queue <- obj:
		return nil
	case <-m.stopCh:
		return ErrSendFailed
	default:
	}

	select {
	case m.queue <- obj:
		return nil
	case <-m.stopCh:
		return ErrSendFailed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run is the actor's dispatcher loop. It processes handler objects strictly
// in order, so handlers observe serialized access to the actor: the next
// handler never starts until the current one's invoke returns.
func (m *Mailbox[A]) run(actor A, actorCtx *Context) {
	defer m.wg.Done()
	for {
		select {
		case obj, ok := <-m.queue:
			if !ok {
				return
			}
			obj.invoke(actor, actorCtx, m.stopCh)
		case <-m.stopCh:
			m.drain()
			return
		}
	}
}

// drain responds to every handler object still queued when the mailbox was
// stopped, so no caller is left hanging forever: a message is either
// handled or surfaces a failure to the caller, never silently lost.
func (m *Mailbox[A]) drain() {
	for {
		select {
		case obj, ok := <-m.queue:
			if !ok {
				return
			}
			// The actor is gone; fail any pending response channel.
			if f, ok := obj.(interface{ failResponse() }); ok {
				f.failResponse()
			}
		default:
			return
		}
	}
}

func (h *handlerEntry[A, M, R]) failResponse() {
	select {
	case h.errc <- ErrResponseFailed:
	default:
	}
}

// stop signals the dispatcher to stop accepting new work and drain what is
// queued, then waits for the goroutine to exit.
func (m *Mailbox[A]) stop() {
	m.stopped.Do(func() {
		close(m.stopCh)
	})
	m.wg.Wait()
}

func (m *Mailbox[A]) closed() bool {
	select {
	case <-m.stopCh:
		return true
	default:
		return false
	}
}

// Send builds a handler object for message M (response R) and delivers it
// to ref's mailbox, then waits for the actor's handler to run and produce a
// response, or for ctx to expire, or for the actor to disappear mid-flight.
//
// The generic parameters A, M, R are fixed here, at construction time, so
// the dispatcher's later call to obj.invoke is a direct, monomorphized
// call into A.Handle with no further type assertion or dynamic dispatch.
func Send[M any, R any, A Handler[M, R]](ctx context.Context, ref *LocalRef[A], msg M) (R, error) {
	var zero R
	if ref == nil || ref.mailbox == nil {
		return zero, ErrSendFailed
	}
	if ref.mailbox.closed() {
		return zero, ErrSendFailed
	}

	resp := make(chan R, 1)
	errc := make(chan error, 1)
	obj := &handlerEntry[A, M, R]{ctx: ctx, msg: msg, resp: resp, errc: errc}

	if err := ref.mailbox.push(ctx, obj); err != nil {
		return zero, err
	}

	select {
	case r := <-resp:
		return r, nil
	case err := <-errc:
		return zero, err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
