package railway

import (
	"context"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/railgentic/railapi"
	"github.com/effective-security/railgentic/schema"
	"github.com/effective-security/railgentic/tools"
)

const LiveStationToolName = "get_live_station_trains"

const liveStationTimeout = 10 * time.Second

// defaultLiveWindowHours is the lookahead window when the agent does not
// provide one.
const defaultLiveWindowHours = 4

// LiveStationRequest represents the tool input.
type LiveStationRequest struct {
	Source      string `json:"source" yaml:"source" validate:"required" jsonschema:"title=Source,description=Source station code, e.g. 'NDLS'."`
	Destination string `json:"destination" yaml:"destination" validate:"required" jsonschema:"title=Destination,description=Destination station code, e.g. 'CNB'."`
	Hours       int    `json:"hours,omitempty" yaml:"hours,omitempty" jsonschema:"title=Hours,description=Lookahead window in hours; defaults to 4."`
}

func (r *LiveStationRequest) Validate() error {
	if err := validate.Struct(r); err != nil ||
		strings.TrimSpace(r.Source) == "" || strings.TrimSpace(r.Destination) == "" {
		return invalidf("source and destination station codes are required")
	}
	return nil
}

// LiveTrain is one departure within the window.
type LiveTrain struct {
	TrainNumber        string `json:"train_number"`
	TrainName          string `json:"train_name"`
	ScheduledDeparture string `json:"scheduled_departure"`
	ExpectedDeparture  string `json:"expected_departure"`
	Delay              string `json:"delay"`
	Platform           string `json:"platform"`
}

// LiveStationResult lists trains running between two stations in the next
// few hours.
type LiveStationResult struct {
	Source      string      `json:"source"`
	Destination string      `json:"destination"`
	TrainCount  int         `json:"train_count"`
	Trains      []LiveTrain `json:"trains"`
}

// LiveStationTool fetches trains running between two stations in the next
// N hours.
type LiveStationTool struct {
	name        string
	description string

	client *railapi.Client
}

var _ tools.Tool[LiveStationRequest, LiveStationResult] = (*LiveStationTool)(nil)

func NewLiveStation(client *railapi.Client) *LiveStationTool {
	return &LiveStationTool{
		name:        LiveStationToolName,
		description: "Fetch trains running between two stations in the next N hours (default 4). Requires station CODES such as 'NDLS' or 'CNB', not city names.",
		client:      client,
	}
}

func (t *LiveStationTool) Name() string {
	return t.name
}

func (t *LiveStationTool) Description() string {
	return t.description
}

func (t *LiveStationTool) Parameters() any {
	sc, _ := schema.New(reflect.TypeOf(LiveStationRequest{}))
	return sc.Parameters
}

func (t *LiveStationTool) Run(ctx context.Context, req *LiveStationRequest) (*LiveStationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	source := strings.ToUpper(strings.TrimSpace(req.Source))
	destination := strings.ToUpper(strings.TrimSpace(req.Destination))
	hours := req.Hours
	if hours <= 0 {
		hours = defaultLiveWindowHours
	}

	params := url.Values{}
	params.Set("source", source)
	params.Set("destination", destination)
	params.Set("hours", strconv.Itoa(hours))

	body, err := t.client.Get(ctx, "/liveStation", params, liveStationTimeout)
	if err != nil {
		return nil, err
	}

	var data railapi.Record
	if err := railapi.DecodeData(body, &data); err != nil {
		return nil, err
	}

	raw := data.List("trains", "trainList")
	if len(raw) == 0 {
		return nil, errors.WithMessagef(railapi.ErrNoData,
			"no trains found running from %s to %s in the next %d hours", source, destination, hours)
	}

	res := &LiveStationResult{
		Source:      data.StrDef(source, "source"),
		Destination: data.StrDef(destination, "destination"),
	}
	if n, ok := data.Int("trainCount", "train_count"); ok {
		res.TrainCount = n
	} else {
		res.TrainCount = len(raw)
	}

	for _, tr := range raw {
		res.Trains = append(res.Trains, LiveTrain{
			TrainNumber:        tr.StrDef("Unknown", "trainNumber", "train_number"),
			TrainName:          tr.StrDef("Unknown", "trainName", "train_name"),
			ScheduledDeparture: tr.StrDef("N/A", "scheduledDeparture", "scheduled_departure", "std"),
			ExpectedDeparture:  tr.StrDef("N/A", "expectedDeparture", "expected_departure", "etd"),
			Delay:              tr.StrDef("On Time", "delay", "delayTime"),
			Platform:           tr.StrDef("TBD", "platform", "platformNumber"),
		})
	}

	return res, nil
}

func (t *LiveStationTool) Call(ctx context.Context, input string) (string, error) {
	return runCall[LiveStationRequest, LiveStationResult](ctx, t, input)
}
