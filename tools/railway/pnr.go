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
	"github.com/effective-security/xlog"
)

const PNRStatusToolName = "get_pnr_status"

const pnrStatusTimeout = 15 * time.Second

// PNRStatusRequest represents the tool input.
type PNRStatusRequest struct {
	PNR string `json:"pnr" yaml:"pnr" validate:"required" jsonschema:"title=PNR,description=The 10-digit PNR number of the booking."`
}

func (r *PNRStatusRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return invalidf("PNR is required")
	}
	if len(r.PNR) != 10 || !numerals.MatchString(r.PNR) {
		return invalidf("PNR must be exactly 10 digits")
	}
	return nil
}

// PassengerStatus is one passenger on the booking, 1-indexed.
type PassengerStatus struct {
	Number        int    `json:"number"`
	BookingStatus string `json:"booking_status"`
	CurrentStatus string `json:"current_status"`
}

// PNRStatusResult is the shaped booking status.
type PNRStatusResult struct {
	PNR        string            `json:"pnr"`
	TrainInfo  TrainInfo         `json:"train_info"`
	Journey    JourneyDetails    `json:"journey_details"`
	Passengers []PassengerStatus `json:"passengers"`
	ChartWait  string            `json:"chart_status,omitempty"`
}

// PNRStatusTool fetches detailed PNR status including train, journey and
// per-passenger booking/current status.
type PNRStatusTool struct {
	name        string
	description string

	client *railapi.Client
}

var _ tools.Tool[PNRStatusRequest, PNRStatusResult] = (*PNRStatusTool)(nil)

func NewPNRStatus(client *railapi.Client) *PNRStatusTool {
	return &PNRStatusTool{
		name:        PNRStatusToolName,
		description: "Fetch detailed PNR status including train info, journey details, and per-passenger booking and current status. Requires the 10-digit PNR number.",
		client:      client,
	}
}

func (t *PNRStatusTool) Name() string {
	return t.name
}

func (t *PNRStatusTool) Description() string {
	return t.description
}

func (t *PNRStatusTool) Parameters() any {
	sc, _ := schema.New(reflect.TypeOf(PNRStatusRequest{}))
	return sc.Parameters
}

func (t *PNRStatusTool) Run(ctx context.Context, req *PNRStatusRequest) (*PNRStatusResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	logger.ContextKV(ctx, xlog.DEBUG, "tool", t.name, "pnr", req.PNR)

	params := url.Values{}
	params.Set("pnr", req.PNR)

	body, err := t.client.Get(ctx, "/pnrStatus", params, pnrStatusTimeout)
	if err != nil {
		return nil, err
	}

	var data railapi.Record
	if err := railapi.DecodeData(body, &data); err != nil {
		if errors.Is(err, railapi.ErrNoData) {
			return nil, errors.WithMessage(railapi.ErrNoData, "the PNR might be invalid or flushed")
		}
		return nil, err
	}

	res := &PNRStatusResult{
		PNR: req.PNR,
		TrainInfo: TrainInfo{
			Number: data.StrDef("Unknown", "trainNumber", "train_number", "trainNo"),
			Name:   data.StrDef("Unknown", "trainName", "train_name"),
		},
		Journey: JourneyDetails{
			DateOfJourney: data.StrDef("N/A", "doj", "dateOfJourney", "journeyDate"),
			DepartureTime: data.StrDef("N/A", "departureTime", "departure_time"),
			ArrivalTime:   data.StrDef("N/A", "arrivalTime", "arrival_time"),
			FromStation:   data.StrDef("N/A", "from", "fromStation", "boardingPoint"),
			ToStation:     data.StrDef("N/A", "to", "toStation", "reservationUpto"),
			Duration:      data.StrDef("N/A", "duration", "journeyDuration"),
		},
		ChartWait: data.Str("chartStatus", "chart_status"),
	}

	for i, p := range data.List("passengers", "passengerList") {
		res.Passengers = append(res.Passengers, PassengerStatus{
			Number:        i + 1,
			BookingStatus: p.StrDef("N/A", "bookingStatus", "booking_status"),
			CurrentStatus: p.StrDef("N/A", "currentStatus", "current_status"),
		})
	}

	return res, nil
}

func (t *PNRStatusTool) Call(ctx context.Context, input string) (string, error) {
	return runCall[PNRStatusRequest, PNRStatusResult](ctx, t, input)
}

func (r *PNRStatusResult) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "PNR %s: %s (%s), %s -> %s on %s\n",
		r.PNR, r.TrainInfo.Name, r.TrainInfo.Number,
		r.Journey.FromStation, r.Journey.ToStation, r.Journey.DateOfJourney)
	for _, p := range r.Passengers {
		fmt.Fprintf(&sb, "  Passenger %d: booked %s, current %s\n", p.Number, p.BookingStatus, p.CurrentStatus)
	}
	return sb.String()
}
