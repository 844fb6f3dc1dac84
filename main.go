package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"pfeifer.dev/polyproj/cereal"
	"pfeifer.dev/polyproj/cli"
	m "pfeifer.dev/polyproj/math"
	ms "pfeifer.dev/polyproj/settings"
	"pfeifer.dev/polyproj/utils"
)

func main() {
	cli.Handle(serve)
}

type service struct {
	polyline    *m.Polyline
	queryTopic  string
	resultTopic string
	opts        []m.ProjectOption
}

func newService(p *m.Polyline, s ms.PolyprojSettings) *service {
	return &service{
		polyline:    p,
		queryTopic:  s.QueryTopic,
		resultTopic: s.ResultTopic,
		opts:        s.ProjectOptions(),
	}
}

// serve answers projection queries from the query topic on the result
// topic until ctx is done.
func serve(ctx context.Context, p *m.Polyline) error {
	return newService(p, ms.Settings).run(ctx)
}

func (s *service) run(ctx context.Context) error {
	sub, pub := s.open()
	defer sub.Close()
	return s.loop(ctx, &sub, &pub)
}

func (s *service) open() (cereal.Subscriber[cereal.Query], cereal.Publisher[cereal.Result]) {
	sub := cereal.NewQuerySubscriber(s.queryTopic)
	pub := cereal.NewResultPublisher(s.resultTopic)
	slog.Info("serving projections",
		"queryTopic", s.queryTopic,
		"resultTopic", s.resultTopic,
		"vertices", s.polyline.Len(),
		"closed", s.polyline.Closed(),
	)
	return sub, pub
}

func (s *service) loop(ctx context.Context, sub *cereal.Subscriber[cereal.Query], pub *cereal.Publisher[cereal.Result]) error {
	for {
		select {
		case <-ctx.Done():
			slog.Info("stopping projection service")
			return nil
		case <-time.After(ms.LOOP_DELAY):
		}
		s.drain(sub, pub)
	}
}

// drain answers every query waiting on sub. Queries that cannot be decoded
// are skipped since they carry no id to answer to.
func (s *service) drain(sub *cereal.Subscriber[cereal.Query], pub *cereal.Publisher[cereal.Result]) (answered int) {
	for {
		query, success, err := sub.Read()
		if !success {
			return answered
		}
		if err != nil {
			utils.Logwe(errors.Wrap(err, "skipping malformed query"))
			continue
		}
		res := handleQuery(s.polyline, query, s.opts)
		utils.Loge(errors.Wrap(pub.Send(res), "could not send projection result"))
		answered++
	}
}

func handleQuery(p *m.Polyline, query cereal.Query, opts []m.ProjectOption) cereal.Result {
	res, err := p.Project(query.Point, opts...)
	if err != nil {
		slog.Warn("could not project query", "id", query.ID, "query", query.Point, "error", err)
		return cereal.Result{ID: query.ID, Result: m.Result{Query: query.Point}, Err: err.Error()}
	}
	slog.Debug("projected query",
		"id", query.ID,
		"query", query.Point,
		"distance", res.Distance,
		"solutions", res.Count(),
	)
	return cereal.Result{ID: query.ID, Result: res}
}
