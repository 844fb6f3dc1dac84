package cereal

import (
	"context"
	"time"

	"github.com/pfeiferj/gomsgq"
	"github.com/pkg/errors"

	"pfeifer.dev/polyproj/settings"
)

type Encoder[T any] func(T) ([]byte, error)

type Publisher[T any] struct {
	Pub     gomsgq.MsgqPublisher
	encoder Encoder[T]
}

func (p *Publisher[T]) Send(obj T) error {
	b, err := p.encoder(obj)
	if err != nil {
		return err
	}
	p.Pub.Send(b)
	return nil
}

// WaitForSubscriber blocks until at least one subscriber has registered on
// the topic. Creating a publisher drops every registered reader, and readers
// only register again on their next read, so anything sent before that is
// never seen by them.
func (p *Publisher[T]) WaitForSubscriber(ctx context.Context) error {
	for !subscribed(p.Pub.Msgq.Header) {
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "no subscriber on topic")
		case <-time.After(time.Millisecond):
		}
	}
	return nil
}

func subscribed(h gomsgq.Header) bool {
	n := *h.NumReaders
	if n == 0 {
		return false
	}
	for i := range n {
		if h.ReadValids[i] == 0 {
			return false
		}
	}
	return true
}

func NewPublisher[T any](name string, encoder Encoder[T]) (publisher Publisher[T]) {
	msgq := gomsgq.Msgq{}
	err := msgq.Init(name, settings.DEFAULT_SEGMENT_SIZE)
	if err != nil {
		panic(err)
	}
	pub := gomsgq.MsgqPublisher{}
	pub.Init(msgq)

	publisher.Pub = pub
	publisher.encoder = encoder
	return publisher
}

func NewQueryPublisher(name string) Publisher[Query] {
	return NewPublisher[Query](name, EncodeQuery)
}

func NewResultPublisher(name string) Publisher[Result] {
	return NewPublisher[Result](name, EncodeResult)
}
