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

const FareToolName = "get_fare"

const fareTimeout = 15 * time.Second

// FareRequest represents the tool input.
type FareRequest struct {
	TrainNumber string `json:"train_number" yaml:"train_number" validate:"required" jsonschema:"title=Train Number,description=The 4 or 5 digit train number."`
	Source      string `json:"source" yaml:"source" validate:"required" jsonschema:"title=Source,description=Source station code."`
	Destination string `json:"destination" yaml:"destination" validate:"required" jsonschema:"title=Destination,description=Destination station code."`
	Date        string `json:"date,omitempty" yaml:"date,omitempty" jsonschema:"title=Date,description=Journey date in DD-MM-YYYY format; defaults to tomorrow."`
}

func (r *FareRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return invalidf("train number, source and destination are required")
	}
	if !isTrainNumber(r.TrainNumber) {
		return invalidf("train number must be 4 or 5 digits")
	}
	if strings.TrimSpace(r.Source) == "" || strings.TrimSpace(r.Destination) == "" {
		return invalidf("source and destination station codes are required")
	}
	return nil
}

// FareResult is the per-class fare table of one train on one route.
type FareResult struct {
	TrainInfo   TrainInfo           `json:"train_info"`
	Source      string              `json:"source"`
	Destination string              `json:"destination"`
	Date        string              `json:"date"`
	Fares       []ClassAvailability `json:"fares"`
}

// FareTool fetches ticket prices per class for a train on a route.
type FareTool struct {
	name        string
	description string

	client *railapi.Client
}

var _ tools.Tool[FareRequest, FareResult] = (*FareTool)(nil)

func NewFare(client *railapi.Client) *FareTool {
	return &FareTool{
		name:        FareToolName,
		description: "Get ticket prices for the different classes of a specific train between two stations. Date defaults to tomorrow, format DD-MM-YYYY.",
		client:      client,
	}
}

func (t *FareTool) Name() string {
	return t.name
}

func (t *FareTool) Description() string {
	return t.description
}

func (t *FareTool) Parameters() any {
	sc, _ := schema.New(reflect.TypeOf(FareRequest{}))
	return sc.Parameters
}

func (t *FareTool) Run(ctx context.Context, req *FareRequest) (*FareResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	source := strings.ToUpper(strings.TrimSpace(req.Source))
	destination := strings.ToUpper(strings.TrimSpace(req.Destination))
	date := req.Date
	if date == "" {
		date = tomorrowDMY()
	}

	trains, err := fetchTrainsBetween(ctx, t.client, source, destination, date, fareTimeout)
	if err != nil {
		if errors.Is(err, railapi.ErrNoData) {
			return nil, errors.WithMessagef(railapi.ErrNoData,
				"train %s not found between %s and %s on %s", req.TrainNumber, source, destination, date)
		}
		return nil, err
	}

	for _, tr := range trains {
		if trainNumberOf(tr) != req.TrainNumber {
			continue
		}
		res := &FareResult{
			TrainInfo: TrainInfo{
				Number: req.TrainNumber,
				Name:   trainNameOf(tr),
			},
			Source:      source,
			Destination: destination,
			Date:        date,
		}
		for _, c := range tr.List("availability", "avlClasses", "classes") {
			res.Fares = append(res.Fares, classAvailability(c))
		}
		return res, nil
	}

	return nil, errors.WithMessagef(railapi.ErrNoData,
		"train %s not found between %s and %s on %s", req.TrainNumber, source, destination, date)
}

func (t *FareTool) Call(ctx context.Context, input string) (string, error) {
	return runCall[FareRequest, FareResult](ctx, t, input)
}
