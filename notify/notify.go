// Package notify is a fire-and-forget broadcast facade over NSQ, kept
// entirely outside the actor dispatch core. It exists because request/reply
// through a Delegate is the wrong shape for "tell everyone interested" —
// an actor's handler reaches it through its *actor.Context and its
// configured actor.Broadcaster, never directly.
package notify

import (
	"context"
	"fmt"

	"github.com/nsqio/go-nsq"
)

// Client is a Producer bound to one or more nsqd instances, plus any
// Subscriptions it has started. It satisfies actor.Broadcaster.
type Client struct {
	producer *nsq.Producer
	nsqCfg   *nsq.Config
	subs     []*nsq.Consumer
}

// Config names the nsqd instances a Client's Producer can use. NSQDAddresses
// takes precedence over NSQDAddr. NewClient keeps the first address for
// which nsq.NewProducer succeeds; NewProducer does not dial, so no
// connection is attempted until the first Publish and an unreachable
// address is not skipped.
type Config struct {
	NSQDAddr      string
	NSQDAddresses []string
}

// NewClient dials a Producer against cfg's nsqd addresses.
func NewClient(cfg Config) (*Client, error) {
	nsqCfg := nsq.NewConfig()

	addrs := cfg.NSQDAddresses
	if len(addrs) == 0 && cfg.NSQDAddr != "" {
		addrs = []string{cfg.NSQDAddr}
	}
	if len(addrs) == 0 {
		return nil, fmt.Errorf("notify: no nsqd addresses configured")
	}

	var lastErr error
	for _, addr := range addrs {
		p, err := nsq.NewProducer(addr, nsqCfg)
		if err != nil {
			lastErr = err
			continue
		}
		return &Client{producer: p, nsqCfg: nsqCfg}, nil
	}
	return nil, fmt.Errorf("notify: failed to connect to any nsqd address: %w", lastErr)
}

// Publish satisfies actor.Broadcaster. ctx is accepted for interface
// symmetry with the rest of the runtime's call surface; go-nsq's Publish is
// itself synchronous and uncancellable.
func (c *Client) Publish(ctx context.Context, topic string, payload []byte) error {
	return c.producer.Publish(topic, payload)
}

// Handler is called once per delivered message on a topic/channel pair
// started with Subscribe. Returning a non-nil error causes go-nsq to retry
// delivery per its own backoff policy.
type Handler func(ctx context.Context, payload []byte) error

// Subscribe starts a consumer on topic/channel against nsqdAddr, invoking
// handler for every message it delivers. The returned Consumer is also kept
// on the Client so Close can stop every Subscription started through it.
func (c *Client) Subscribe(topic, channel, nsqdAddr string, handler Handler) error {
	consumer, err := nsq.NewConsumer(topic, channel, c.nsqCfg)
	if err != nil {
		return fmt.Errorf("notify: new consumer for %s/%s: %w", topic, channel, err)
	}
	consumer.AddHandler(nsq.HandlerFunc(func(msg *nsq.Message) error {
		return handler(context.Background(), msg.Body)
	}))
	if err := consumer.ConnectToNSQD(nsqdAddr); err != nil {
		return fmt.Errorf("notify: connect consumer to %s: %w", nsqdAddr, err)
	}
	c.subs = append(c.subs, consumer)
	return nil
}

// Close stops the Producer and every Subscription started through Subscribe.
func (c *Client) Close() {
	for _, s := range c.subs {
		s.Stop()
	}
	c.producer.Stop()
}
