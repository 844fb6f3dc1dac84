package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"

	"pfeifer.dev/polyproj/cereal"
	"pfeifer.dev/polyproj/maps"
	pm "pfeifer.dev/polyproj/math"
	"pfeifer.dev/polyproj/params"
	ms "pfeifer.dev/polyproj/settings"
	"pfeifer.dev/polyproj/utils"
)

// ServeFunc runs the projection service against a loaded polyline.
type ServeFunc func(ctx context.Context, p *pm.Polyline) error

// LoadPolyline builds the polyline named by the vertices and osm-way flags,
// falling back to the vertices file from the settings.
func LoadPolyline(ctx context.Context, cmd *cli.Command) (*pm.Polyline, error) {
	path := cmd.String("vertices")
	if path == "" {
		path = ms.Settings.VerticesFile
	}
	if cmd.IsSet("osm-way") {
		points, err := maps.LoadOSMWay(ctx, path, cmd.Int64("osm-way"))
		if err != nil {
			return nil, err
		}
		return pm.NewPolyline(points)
	}
	return maps.LoadPolyline(path)
}

func precision(cmd *cli.Command) int {
	if cmd.IsSet("precision") {
		return int(cmd.Int("precision"))
	}
	return ms.Settings.Precision
}

func projectOptions(cmd *cli.Command) []pm.ProjectOption {
	if cmd.IsSet("tolerance") {
		return []pm.ProjectOption{pm.WithTolerance(cmd.Float64("tolerance"))}
	}
	return ms.Settings.ProjectOptions()
}

// queries collects query points from the x/y/z flags, repeated point flags
// and a queries file, in that order.
func queries(cmd *cli.Command) ([]pm.Point, error) {
	res := []pm.Point{}
	if cmd.IsSet("x") || cmd.IsSet("y") || cmd.IsSet("z") {
		q, err := ParseQuery(cmd.String("x"), cmd.String("y"), cmd.String("z"))
		if err != nil {
			return nil, err
		}
		res = append(res, q)
	}
	for _, value := range cmd.StringSlice("point") {
		q, err := ParsePoint(value)
		if err != nil {
			return nil, err
		}
		res = append(res, q)
	}
	if path := cmd.String("queries"); path != "" {
		points, err := maps.LoadRows(path)
		if err != nil {
			return nil, errors.Wrap(err, "could not load queries")
		}
		res = append(res, points...)
	}
	if len(res) == 0 {
		return nil, errors.New("no query point given, use --x/--y/--z, --point or --queries")
	}
	return res, nil
}

func project(ctx context.Context, cmd *cli.Command, out io.Writer) error {
	p, err := LoadPolyline(ctx, cmd)
	if err != nil {
		return err
	}
	qs, err := queries(cmd)
	if err != nil {
		return err
	}
	results, err := p.ProjectMany(ctx, qs, projectOptions(cmd)...)
	if err != nil {
		return err
	}
	for _, res := range results {
		fmt.Fprint(out, Render(res, precision(cmd)))
	}
	ms.SaveLastQuery(qs[len(qs)-1])
	return nil
}

func prompt(ctx context.Context, cmd *cli.Command, out io.Writer) error {
	p, err := LoadPolyline(ctx, cmd)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "Please enter a point to calculate projection.")
	for {
		q, err := promptQuery()
		if err != nil {
			return err
		}
		res, err := p.Project(q, projectOptions(cmd)...)
		if err != nil {
			return err
		}
		fmt.Fprint(out, Render(res, precision(cmd)))
		if !promptAgain() {
			return nil
		}
	}
}

// send publishes the queries to a running service and waits for their results.
func send(ctx context.Context, cmd *cli.Command, out io.Writer) error {
	qs, err := queries(cmd)
	if err != nil {
		return err
	}

	sub := cereal.NewResultSubscriber(ms.Settings.ResultTopic)
	defer sub.Close()
	pub := cereal.NewQueryPublisher(ms.Settings.QueryTopic)

	ctx, cancel := context.WithTimeout(ctx, cmd.Duration("timeout"))
	defer cancel()

	if err := pub.WaitForSubscriber(ctx); err != nil {
		return errors.Wrap(err, "polyproj service is not running")
	}

	id := uint64(time.Now().UnixNano())
	for i, q := range qs {
		if err := pub.Send(cereal.Query{ID: id + uint64(i), Point: q}); err != nil {
			return errors.Wrap(err, "could not send query")
		}
	}

	results := make([]*cereal.Result, len(qs))
	received := 0
	for received < len(qs) {
		select {
		case <-ctx.Done():
			return errors.Wrapf(ctx.Err(), "no result from service, got %d of %d", received, len(qs))
		case <-time.After(ms.LOOP_DELAY):
		}
		for {
			res, success, err := sub.Read()
			if !success {
				break
			}
			if err != nil {
				utils.Logwe(err)
				continue
			}
			if res.ID < id || res.ID >= id+uint64(len(qs)) || results[res.ID-id] != nil {
				continue
			}
			results[res.ID-id] = &res
			received++
		}
	}

	for _, res := range results {
		if !res.OK() {
			fmt.Fprint(out, RenderError(errors.New(res.Err)))
			continue
		}
		fmt.Fprint(out, Render(res.Result, precision(cmd)))
	}
	return nil
}

func settingsCommand() *cli.Command {
	return &cli.Command{
		Name:  "settings",
		Usage: "Show or change the persisted settings",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Print the current settings",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					fmt.Fprintf(cmd.Root().Writer, "log_level: %s\nvertices_file: %s\ntie_tolerance: %g\nprecision: %d\nquery_topic: %s\nresult_topic: %s\n",
						ms.Settings.LogLevel,
						ms.Settings.VerticesFile,
						ms.Settings.TieTolerance,
						ms.Settings.Precision,
						ms.Settings.QueryTopic,
						ms.Settings.ResultTopic,
					)
					return nil
				},
			},
			{
				Name:      "set",
				Usage:     "Change a setting",
				ArgsUsage: "NAME VALUE",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 2 {
						return errors.New("settings set needs a NAME and a VALUE")
					}
					if err := ms.Settings.Set(cmd.Args().Get(0), cmd.Args().Get(1)); err != nil {
						return err
					}
					ms.Settings.Save()
					return nil
				},
			},
			{
				Name:  "reset",
				Usage: "Restore the default settings",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					ms.Settings.Default()
					ms.Settings.Save()
					return params.RemoveParam(params.LAST_QUERY_POINT)
				},
			},
		},
	}
}

func queryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Category: "Query",
			Name:     "x",
			Usage:    "x coordinate of the query point",
			Value:    "0",
		},
		&cli.StringFlag{
			Category: "Query",
			Name:     "y",
			Usage:    "y coordinate of the query point",
			Value:    "0",
		},
		&cli.StringFlag{
			Category: "Query",
			Name:     "z",
			Usage:    "z coordinate of the query point",
			Value:    "0",
		},
		&cli.StringSliceFlag{
			Category: "Query",
			Name:     "point",
			Aliases:  []string{"p"},
			Usage:    "a query point as \"x y z\", may be repeated",
		},
		&cli.StringFlag{
			Category: "Query",
			Name:     "queries",
			Aliases:  []string{"q"},
			Usage:    "a file of query points in the vertex row format",
		},
	}
}

func Command(serve ServeFunc) *cli.Command {
	return &cli.Command{
		Name:  "polyproj",
		Usage: "Project points onto a 3D polyline. Without a command, serve projection queries",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Category: "Inputs and Outputs",
				Name:     "vertices",
				Aliases:  []string{"i"},
				Usage:    "The vertex file, one \"x y z\" row per vertex after a header line, or an osm pbf file with --osm-way",
			},
			&cli.Int64Flag{
				Category: "Inputs and Outputs",
				Name:     "osm-way",
				Usage:    "Read the vertices from this way of an osm pbf file",
			},
			&cli.IntFlag{
				Category: "Inputs and Outputs",
				Name:     "precision",
				Usage:    "Significant digits in printed numbers, -1 for as many as needed",
			},
			&cli.Float64Flag{
				Category: "Projection",
				Name:     "tolerance",
				Usage:    "Report edges within this distance of the minimum as ties",
			},
			&cli.StringFlag{
				Category: "Logging",
				Name:     "log-level",
				Usage:    "debug, info, warn or error",
			},
			&cli.StringFlag{
				Category: "Logging",
				Name:     "log-format",
				Usage:    "text or json",
				Value:    "text",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			utils.SetupLogger(cmd.ErrWriter, cmd.String("log-format"))
			params.EnsureParamDirectories()
			ms.Settings.Load()
			if cmd.IsSet("log-level") {
				ms.Settings.LogLevel = cmd.String("log-level")
				ms.Settings.SetLogLevel()
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:    "project",
				Aliases: []string{"p"},
				Usage:   "Project query points given as flags or in a file",
				Flags:   queryFlags(),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return project(ctx, cmd, cmd.Root().Writer)
				},
			},
			{
				Name:  "prompt",
				Usage: "Ask for query points one coordinate at a time",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return prompt(ctx, cmd, cmd.Root().Writer)
				},
			},
			{
				Name:    "interactive",
				Aliases: []string{"tui"},
				Usage:   "Edit a query point and see its projections",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					p, err := LoadPolyline(ctx, cmd)
					if err != nil {
						return err
					}
					return interactive(p, precision(cmd), projectOptions(cmd))
				},
			},
			{
				Name:  "info",
				Usage: "Describe the loaded polyline",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					p, err := LoadPolyline(ctx, cmd)
					if err != nil {
						return err
					}
					fmt.Fprint(cmd.Root().Writer, RenderInfo(p, precision(cmd)))
					return nil
				},
			},
			{
				Name:  "send",
				Usage: "Send query points to a running polyproj service and print the results",
				Flags: append(queryFlags(), &cli.DurationFlag{
					Name:  "timeout",
					Usage: "How long to wait for results",
					Value: 5 * time.Second,
				}),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return send(ctx, cmd, cmd.Root().Writer)
				},
			},
			settingsCommand(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p, err := LoadPolyline(ctx, cmd)
			if err != nil {
				return err
			}
			return serve(ctx, p)
		},
	}
}

func Handle(serve ServeFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := Command(serve)
	if err := cmd.Run(ctx, os.Args); err != nil {
		stop()
		log.Fatal(err)
	}
}
