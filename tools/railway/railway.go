// Package railway implements the IRCTC tool set: eight request/response
// adapters over the upstream REST API, exposed to agent runtimes through
// the tools contract.
//
// Every tool follows the same shape: validate the request before any
// network call, build query parameters, invoke the upstream client with a
// fixed timeout, then project the loosely shaped upstream payload into a
// stable result schema using ordered fallback key chains.
package railway

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/bububa/ljson"
	"github.com/cockroachdb/errors"
	"github.com/effective-security/railgentic/llmutils"
	"github.com/effective-security/railgentic/tools"
	"github.com/effective-security/xlog"
	"github.com/go-playground/validator/v10"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/railgentic", "railway")

var validate = validator.New(validator.WithRequiredStructEnabled())

// ErrInvalidInput marks request precondition failures,
// detected before any network call.
var ErrInvalidInput = errors.New("invalid input")

func invalidf(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrInvalidInput)
}

var numerals = regexp.MustCompile(`^[0-9]+$`)

// isTrainNumber reports whether s is a 4 or 5 digit train number.
func isTrainNumber(s string) bool {
	return (len(s) == 4 || len(s) == 5) && numerals.MatchString(s)
}

// parseInput unmarshals a tool-call argument string produced by an LLM.
func parseInput(input string, req any) error {
	if err := ljson.Unmarshal(llmutils.CleanJSON([]byte(input)), req); err != nil {
		return errors.WithStack(tools.ErrFailedUnmarshalInput)
	}
	return nil
}

// runCall is the common Call implementation: parse LLM JSON input, run the
// typed tool, marshal the result.
func runCall[I any, O any](ctx context.Context, t tools.Tool[I, O], input string) (string, error) {
	var req I
	if err := parseInput(input, &req); err != nil {
		return "", err
	}
	out, err := t.Run(ctx, &req)
	if err != nil {
		return "", err
	}
	return llmutils.ToJSON(out), nil
}

// minutesToTime converts a minutes-since-midnight value to "HH:MM".
// ok=false means the field was absent upstream. Values of a full day or
// more keep an hour of 24+ without wrapping: schedule rows carry the
// journey day in a separate field.
func minutesToTime(minutes int, ok bool) string {
	if !ok {
		return "N/A"
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// tomorrowDMY returns tomorrow's date in the DD-MM-YYYY format the
// availability endpoints expect.
func tomorrowDMY() string {
	return time.Now().AddDate(0, 0, 1).Format("02-01-2006")
}

// TrainInfo identifies a train by its 4-5 digit number.
type TrainInfo struct {
	Number string `json:"number"`
	Name   string `json:"name"`
}

// JourneyDetails describes one booked journey leg.
type JourneyDetails struct {
	DateOfJourney string `json:"date_of_journey"`
	DepartureTime string `json:"departure_time"`
	ArrivalTime   string `json:"arrival_time"`
	FromStation   string `json:"from_station"`
	ToStation     string `json:"to_station"`
	Duration      string `json:"duration"`
}
