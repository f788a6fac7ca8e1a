package railway

import (
	"context"
	"net/url"
	"reflect"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/railgentic/railapi"
	"github.com/effective-security/railgentic/schema"
	"github.com/effective-security/railgentic/tools"
)

const LiveTrainStatusToolName = "get_live_train_status"

const liveTrainStatusTimeout = 15 * time.Second

// LiveTrainStatusRequest represents the tool input.
type LiveTrainStatusRequest struct {
	TrainNumber string `json:"train_number" yaml:"train_number" validate:"required" jsonschema:"title=Train Number,description=The 4 or 5 digit train number."`
	Date        string `json:"date,omitempty" yaml:"date,omitempty" jsonschema:"title=Date,description=Journey start date in YYYY-MM-DD format; defaults to today."`
}

func (r *LiveTrainStatusRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return invalidf("train number is required")
	}
	if !isTrainNumber(r.TrainNumber) {
		return invalidf("train number must be 4 or 5 digits")
	}
	return nil
}

// LiveTrainStatusResult is the current position of a running train.
type LiveTrainStatusResult struct {
	TrainInfo      TrainInfo `json:"train_info"`
	CurrentStation string    `json:"current_station"`
	DelayMinutes   string    `json:"delay_minutes"`
	ArrivalTime    string    `json:"arrival_time"`
	DepartureTime  string    `json:"departure_time"`
	StatusNote     string    `json:"status_note"`
	LastUpdated    string    `json:"last_updated"`
}

// LiveTrainStatusTool tracks the current location and delay of a running
// train.
type LiveTrainStatusTool struct {
	name        string
	description string

	client *railapi.Client
}

var _ tools.Tool[LiveTrainStatusRequest, LiveTrainStatusResult] = (*LiveTrainStatusTool)(nil)

func NewLiveTrainStatus(client *railapi.Client) *LiveTrainStatusTool {
	return &LiveTrainStatusTool{
		name:        LiveTrainStatusToolName,
		description: "Track the current location and delay of a running train. Optional journey start date in YYYY-MM-DD format.",
		client:      client,
	}
}

func (t *LiveTrainStatusTool) Name() string {
	return t.name
}

func (t *LiveTrainStatusTool) Description() string {
	return t.description
}

func (t *LiveTrainStatusTool) Parameters() any {
	sc, _ := schema.New(reflect.TypeOf(LiveTrainStatusRequest{}))
	return sc.Parameters
}

func (t *LiveTrainStatusTool) Run(ctx context.Context, req *LiveTrainStatusRequest) (*LiveTrainStatusResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("trainNo", req.TrainNumber)
	if req.Date != "" {
		params.Set("date", req.Date)
	}

	body, err := t.client.Get(ctx, "/liveTrainStatus", params, liveTrainStatusTimeout)
	if err != nil {
		return nil, err
	}

	var data railapi.Record
	if err := railapi.DecodeData(body, &data); err != nil {
		if errors.Is(err, railapi.ErrNoData) {
			return nil, errors.WithMessagef(railapi.ErrNoData,
				"no live status for train %s, it may not be running today", req.TrainNumber)
		}
		return nil, err
	}

	res := &LiveTrainStatusResult{
		TrainInfo: TrainInfo{
			Number: data.StrDef(req.TrainNumber, "trainNumber", "train_number"),
			Name:   data.StrDef("Unknown", "trainName", "train_name"),
		},
		CurrentStation: data.StrDef("Unknown", "currentStation", "current_station_name", "station"),
		DelayMinutes:   data.StrDef("On Time", "delay", "delayMinutes", "late"),
		ArrivalTime:    data.StrDef("N/A", "arrivalTime", "eta", "arrival"),
		DepartureTime:  data.StrDef("N/A", "departureTime", "etd", "departure"),
		StatusNote:     data.StrDef("N/A", "status", "statusNote", "position"),
		LastUpdated:    data.StrDef("N/A", "lastUpdated", "last_update_time"),
	}

	return res, nil
}

func (t *LiveTrainStatusTool) Call(ctx context.Context, input string) (string, error) {
	return runCall[LiveTrainStatusRequest, LiveTrainStatusResult](ctx, t, input)
}
