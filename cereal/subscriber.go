package cereal

import (
	"log/slog"

	"github.com/pfeiferj/gomsgq"
	"github.com/pkg/errors"

	"pfeifer.dev/polyproj/settings"
)

type Decoder[T any] func([]byte) (T, error)

type Subscriber[T any] struct {
	Sub     gomsgq.MsgqSubscriber
	decoder Decoder[T]
}

// Read returns the next message. success is false once the queue is
// drained. A message that fails to decode is consumed and returned as err
// with success still true, so callers can keep draining.
func (s *Subscriber[T]) Read() (obj T, success bool, err error) {
	data := s.Sub.Read()
	if len(data) == 0 {
		return obj, false, nil
	}
	obj, err = s.decoder(data)
	if err != nil {
		return obj, true, errors.Wrap(err, "could not decode message")
	}
	return obj, true, nil
}

func (s *Subscriber[T]) Close() {
	err, err2 := s.Sub.Msgq.Close()
	if err != nil {
		slog.Warn("could not close subscriber", "error", err)
	}
	if err2 != nil {
		slog.Warn("could not close subscriber", "error", err2)
	}
}

func NewSubscriber[T any](name string, decoder Decoder[T], conflate bool) (subscriber Subscriber[T]) {
	msgq := gomsgq.Msgq{}
	err := msgq.Init(name, settings.DEFAULT_SEGMENT_SIZE)
	if err != nil {
		panic(err)
	}
	sub := gomsgq.MsgqSubscriber{}
	sub.Conflate = conflate
	sub.Init(msgq)

	subscriber.Sub = sub
	subscriber.decoder = decoder
	return subscriber
}

func NewQuerySubscriber(name string) Subscriber[Query] {
	return NewSubscriber[Query](name, DecodeQuery, false)
}

func NewResultSubscriber(name string) Subscriber[Result] {
	return NewSubscriber[Result](name, DecodeResult, false)
}
