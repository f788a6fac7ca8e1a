package railway

import (
	"context"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/railgentic/railapi"
	"github.com/effective-security/railgentic/schema"
	"github.com/effective-security/railgentic/tools"
)

const TrainScheduleToolName = "get_train_schedule"

const trainScheduleTimeout = 15 * time.Second

// TrainScheduleRequest represents the tool input.
type TrainScheduleRequest struct {
	TrainNumber string `json:"train_number" yaml:"train_number" validate:"required" jsonschema:"title=Train Number,description=The 4 or 5 digit train number, e.g. '12301'."`
}

func (r *TrainScheduleRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return invalidf("train number is required")
	}
	if !isTrainNumber(r.TrainNumber) {
		return invalidf("train number must be 4 or 5 digits")
	}
	return nil
}

// ScheduleStop is one station on the route. DepartureTime is converted
// from the upstream minutes-since-midnight integer; Day is the 1-indexed
// relative day of the journey.
type ScheduleStop struct {
	StationCode   string `json:"station_code"`
	StationName   string `json:"station_name,omitempty"`
	DepartureTime string `json:"departure_time"`
	Day           int    `json:"day"`
	IsStop        bool   `json:"is_stop"`
}

// TrainScheduleResult is the full route plus the halting-stations subset.
type TrainScheduleResult struct {
	TrainInfo     TrainInfo      `json:"train_info"`
	TotalStations int            `json:"total_stations"`
	TotalStops    int            `json:"total_stops"`
	Route         []ScheduleStop `json:"route"`
	MajorStops    []ScheduleStop `json:"major_stops"`
}

// TrainScheduleTool fetches the complete route and timetable of a train.
type TrainScheduleTool struct {
	name        string
	description string

	client *railapi.Client
}

var _ tools.Tool[TrainScheduleRequest, TrainScheduleResult] = (*TrainScheduleTool)(nil)

func NewTrainSchedule(client *railapi.Client) *TrainScheduleTool {
	return &TrainScheduleTool{
		name:        TrainScheduleToolName,
		description: "Get the complete route and timetable of a train: every station with departure time and journey day, plus the subset of stations where the train actually halts.",
		client:      client,
	}
}

func (t *TrainScheduleTool) Name() string {
	return t.name
}

func (t *TrainScheduleTool) Description() string {
	return t.description
}

func (t *TrainScheduleTool) Parameters() any {
	sc, _ := schema.New(reflect.TypeOf(TrainScheduleRequest{}))
	return sc.Parameters
}

func (t *TrainScheduleTool) Run(ctx context.Context, req *TrainScheduleRequest) (*TrainScheduleResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("trainNo", req.TrainNumber)

	body, err := t.client.Get(ctx, "/trainSchedule", params, trainScheduleTimeout)
	if err != nil {
		return nil, err
	}

	var data railapi.Record
	if err := railapi.DecodeData(body, &data); err != nil {
		if errors.Is(err, railapi.ErrNoData) {
			return nil, errors.WithMessagef(railapi.ErrNoData, "no schedule found for train %s", req.TrainNumber)
		}
		return nil, err
	}

	stations := data.List("stations", "route", "schedule")
	if len(stations) == 0 {
		return nil, errors.WithMessagef(railapi.ErrNoData, "no schedule found for train %s", req.TrainNumber)
	}

	res := &TrainScheduleResult{
		TrainInfo: TrainInfo{
			Number: data.StrDef(req.TrainNumber, "trainNumber", "train_number"),
			Name:   data.StrDef("Unknown", "trainName", "train_name"),
		},
		TotalStations: len(stations),
	}

	for _, s := range stations {
		day, dayOK := s.Int("day", "dayCount")
		if !dayOK {
			day = 1
		}
		stop := ScheduleStop{
			StationCode:   s.StrDef("Unknown", "stationCode", "station_code", "code"),
			StationName:   s.Str("stationName", "station_name"),
			DepartureTime: minutesToTime(s.Int("stdMin", "departureMinutes", "std_min")),
			Day:           day,
			IsStop:        s.Bool("stoppingStation", "isStop", "stop"),
		}
		res.Route = append(res.Route, stop)
		if stop.IsStop {
			res.TotalStops++
			res.MajorStops = append(res.MajorStops, stop)
		}
	}

	return res, nil
}

func (t *TrainScheduleTool) Call(ctx context.Context, input string) (string, error) {
	return runCall[TrainScheduleRequest, TrainScheduleResult](ctx, t, input)
}

func (r *TrainScheduleResult) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s): %d stations, %d stops\n",
		r.TrainInfo.Name, r.TrainInfo.Number, r.TotalStations, r.TotalStops)
	for _, s := range r.MajorStops {
		fmt.Fprintf(&sb, "  %s dep %s day %d\n", s.StationCode, s.DepartureTime, s.Day)
	}
	return sb.String()
}
