package railway

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/railgentic/railapi"
	"github.com/effective-security/railgentic/schema"
	"github.com/effective-security/railgentic/tools"
)

const SeatAvailabilityToolName = "check_seat_availability"

const seatAvailabilityTimeout = 20 * time.Second

// SeatAvailabilityRequest represents the tool input.
type SeatAvailabilityRequest struct {
	Source      string `json:"source" yaml:"source" validate:"required" jsonschema:"title=Source,description=Source station code."`
	Destination string `json:"destination" yaml:"destination" validate:"required" jsonschema:"title=Destination,description=Destination station code."`
	Date        string `json:"date" yaml:"date" validate:"required" jsonschema:"title=Date,description=Journey date in DD-MM-YYYY format."`
	TrainNumber string `json:"train_number,omitempty" yaml:"train_number,omitempty" jsonschema:"title=Train Number,description=Optional 4 or 5 digit train number to filter on."`
}

func (r *SeatAvailabilityRequest) Validate() error {
	if err := validate.Struct(r); err != nil ||
		strings.TrimSpace(r.Source) == "" || strings.TrimSpace(r.Destination) == "" || strings.TrimSpace(r.Date) == "" {
		return invalidf("source, destination and date are required")
	}
	if r.TrainNumber != "" && !isTrainNumber(r.TrainNumber) {
		return invalidf("train number must be 4 or 5 digits")
	}
	return nil
}

// TrainAvailability is the per-class availability of one matching train.
type TrainAvailability struct {
	TrainInfo     TrainInfo           `json:"train_info"`
	DepartureTime string              `json:"departure_time"`
	ArrivalTime   string              `json:"arrival_time"`
	Duration      string              `json:"duration"`
	Classes       []ClassAvailability `json:"classes"`
}

// SeatAvailabilityResult lists availability for every matching train.
type SeatAvailabilityResult struct {
	Source      string              `json:"source"`
	Destination string              `json:"destination"`
	Date        string              `json:"date"`
	Trains      []TrainAvailability `json:"trains"`
}

// SeatAvailabilityTool checks seat availability per class for trains
// between two stations on a date.
type SeatAvailabilityTool struct {
	name        string
	description string

	client *railapi.Client
}

var _ tools.Tool[SeatAvailabilityRequest, SeatAvailabilityResult] = (*SeatAvailabilityTool)(nil)

func NewSeatAvailability(client *railapi.Client) *SeatAvailabilityTool {
	return &SeatAvailabilityTool{
		name:        SeatAvailabilityToolName,
		description: "Check seat availability per class for trains between two stations on a date (DD-MM-YYYY). Optionally filter to a single train number.",
		client:      client,
	}
}

func (t *SeatAvailabilityTool) Name() string {
	return t.name
}

func (t *SeatAvailabilityTool) Description() string {
	return t.description
}

func (t *SeatAvailabilityTool) Parameters() any {
	sc, _ := schema.New(reflect.TypeOf(SeatAvailabilityRequest{}))
	return sc.Parameters
}

func (t *SeatAvailabilityTool) Run(ctx context.Context, req *SeatAvailabilityRequest) (*SeatAvailabilityResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	source := strings.ToUpper(strings.TrimSpace(req.Source))
	destination := strings.ToUpper(strings.TrimSpace(req.Destination))

	trains, err := fetchTrainsBetween(ctx, t.client, source, destination, req.Date, seatAvailabilityTimeout)
	if err != nil {
		if errors.Is(err, railapi.ErrNoData) {
			return nil, errors.WithMessagef(railapi.ErrNoData,
				"no trains found between %s and %s on %s", source, destination, req.Date)
		}
		return nil, err
	}

	res := &SeatAvailabilityResult{
		Source:      source,
		Destination: destination,
		Date:        req.Date,
	}
	for _, tr := range trains {
		if req.TrainNumber != "" && trainNumberOf(tr) != req.TrainNumber {
			continue
		}
		avail := TrainAvailability{
			TrainInfo: TrainInfo{
				Number: tr.StrDef("Unknown", "trainNumber", "train_number", "trainNo"),
				Name:   trainNameOf(tr),
			},
			DepartureTime: tr.StrDef("N/A", "departureTime", "departure_time", "fromStd"),
			ArrivalTime:   tr.StrDef("N/A", "arrivalTime", "arrival_time", "toSta"),
			Duration:      tr.StrDef("N/A", "duration", "travelTime"),
		}
		for _, c := range tr.List("availability", "avlClasses", "classes") {
			avail.Classes = append(avail.Classes, classAvailability(c))
		}
		res.Trains = append(res.Trains, avail)
	}

	if len(res.Trains) == 0 {
		if req.TrainNumber != "" {
			return nil, errors.WithMessagef(railapi.ErrNoData,
				"train %s not found between %s and %s on %s", req.TrainNumber, source, destination, req.Date)
		}
		return nil, errors.WithMessagef(railapi.ErrNoData,
			"no trains found between %s and %s on %s", source, destination, req.Date)
	}

	return res, nil
}

func (t *SeatAvailabilityTool) Call(ctx context.Context, input string) (string, error) {
	return runCall[SeatAvailabilityRequest, SeatAvailabilityResult](ctx, t, input)
}
