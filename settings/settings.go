package settings

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	m "pfeifer.dev/polyproj/math"
	"pfeifer.dev/polyproj/params"
	"pfeifer.dev/polyproj/utils"
)

var (
	Settings = PolyprojSettings{}
)

type PolyprojSettings struct {
	LogLevel     string  `json:"log_level"`
	VerticesFile string  `json:"vertices_file"`
	TieTolerance float64 `json:"tie_tolerance"`
	Precision    int     `json:"precision"`
	QueryTopic   string  `json:"query_topic"`
	ResultTopic  string  `json:"result_topic"`
}

func (s *PolyprojSettings) Default() {
	s.LogLevel = "error"
	s.VerticesFile = "coord.txt"
	s.TieTolerance = 0
	s.Precision = DEFAULT_PRECISION
	s.QueryTopic = QUERY_TOPIC
	s.ResultTopic = RESULT_TOPIC
}

func (s *PolyprojSettings) Load() (success bool) {
	s.Default() // set defaults so settings not already in param are defaulted
	data, err := params.GetParam(params.POLYPROJ_SETTINGS)
	if err != nil {
		utils.Logde(err)
		s.SetLogLevel()
		return false
	}

	err = s.Unmarshal(data)
	if err != nil {
		utils.Loge(err)
		return false
	}

	s.SetLogLevel()

	return true
}

func (s *PolyprojSettings) Save() {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		utils.Loge(err)
		return
	}
	err = params.PutParam(params.POLYPROJ_SETTINGS, data)
	if err != nil {
		utils.Loge(err)
		return
	}
}

func (s *PolyprojSettings) Unmarshal(data []byte) error {
	err := json.Unmarshal(data, s)
	return errors.Wrap(err, "could not unmarshal settings")
}

// ProjectOptions returns the projection options selected by the settings.
func (s *PolyprojSettings) ProjectOptions() []m.ProjectOption {
	if s.TieTolerance == 0 {
		return nil
	}
	return []m.ProjectOption{m.WithTolerance(s.TieTolerance)}
}

// Set changes a single setting by its json name.
func (s *PolyprojSettings) Set(name string, value string) error {
	switch name {
	case "log_level":
		s.LogLevel = value
		s.SetLogLevel()
	case "vertices_file":
		s.VerticesFile = value
	case "tie_tolerance":
		tolerance, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return errors.Wrap(err, "could not parse tie tolerance")
		}
		if tolerance < 0 {
			return m.ErrInvalidTolerance
		}
		s.TieTolerance = tolerance
	case "precision":
		precision, err := strconv.Atoi(value)
		if err != nil {
			return errors.Wrap(err, "could not parse precision")
		}
		if precision < -1 {
			return errors.Errorf("precision must be -1 or greater, got %d", precision)
		}
		s.Precision = precision
	case "query_topic":
		s.QueryTopic = value
	case "result_topic":
		s.ResultTopic = value
	default:
		return errors.Errorf("unknown setting %q", name)
	}
	return nil
}

func (s *PolyprojSettings) SetLogLevel() {
	switch strings.ToLower(s.LogLevel) {
	case "debug":
		utils.SetLogLevel(slog.LevelDebug)
	case "info":
		utils.SetLogLevel(slog.LevelInfo)
	case "warn":
		utils.SetLogLevel(slog.LevelWarn)
	case "error":
		utils.SetLogLevel(slog.LevelError)
	default:
		utils.SetLogLevel(slog.LevelError)
	}
}

type lastQuery struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func SaveLastQuery(q m.Point) {
	data, err := json.Marshal(lastQuery{X: q.X, Y: q.Y, Z: q.Z})
	if err != nil {
		utils.Loge(err)
		return
	}
	utils.Logwe(params.PutParam(params.LAST_QUERY_POINT, data))
}

func LoadLastQuery() (q m.Point, ok bool) {
	data, err := params.GetParam(params.LAST_QUERY_POINT)
	if err != nil {
		utils.Logde(err)
		return q, false
	}
	var last lastQuery
	if err := json.Unmarshal(data, &last); err != nil {
		utils.Logwe(errors.Wrap(err, "could not unmarshal last query point"))
		return q, false
	}
	return m.NewPoint(last.X, last.Y, last.Z), true
}
