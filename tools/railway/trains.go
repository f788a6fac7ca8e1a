package railway

import (
	"context"
	"net/url"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/railgentic/railapi"
)

// trainsEndpoint serves fare, seat availability and train search queries.
const trainsEndpoint = "/trainAvailability"

// fetchTrainsBetween queries the upstream train list for one
// (source, destination, date) triple. Shapes vary: the list may sit
// directly under "data" or nested one level deeper.
func fetchTrainsBetween(ctx context.Context, client *railapi.Client, source, destination, date string, timeout time.Duration) ([]railapi.Record, error) {
	params := url.Values{}
	params.Set("source", source)
	params.Set("destination", destination)
	params.Set("date", date)

	body, err := client.Get(ctx, trainsEndpoint, params, timeout)
	if err != nil {
		return nil, err
	}

	var data railapi.Record
	err = railapi.DecodeData(body, &data)
	if err == nil {
		return data.List("trains", "trainList", "trainBtwnStnsList"), nil
	}
	if errors.Is(err, railapi.ErrNoData) {
		return nil, err
	}

	// some responses return the list directly under "data"
	var list []railapi.Record
	if err := railapi.DecodeData(body, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// ClassAvailability is one class entry of a train: fare, availability and
// the upstream confirmation-chance hint when present.
type ClassAvailability struct {
	Class              string `json:"class"`
	Fare               string `json:"fare"`
	Status             string `json:"status"`
	Availability       string `json:"availability,omitempty"`
	ConfirmationChance string `json:"confirmation_chance,omitempty"`
}

func classAvailability(c railapi.Record) ClassAvailability {
	return ClassAvailability{
		Class:              c.StrDef("N/A", "classType", "class", "enqClass"),
		Fare:               formatFare(c),
		Status:             c.StrDef("N/A", "currentStatus", "status", "availablityStatus", "availabilityStatus"),
		Availability:       c.Str("availablityNumber", "availability", "available"),
		ConfirmationChance: c.Str("confirmProb", "prediction", "chances"),
	}
}

// formatFare renders the fare as a currency-prefixed string, or "N/A"
// when the upstream omits it.
func formatFare(c railapi.Record) string {
	fare := c.Str("totalFare", "fare", "ticketFare", "totalCollectibleAmount")
	if fare == "" {
		return "N/A"
	}
	return "₹" + fare
}

func trainNumberOf(tr railapi.Record) string {
	return tr.Str("trainNumber", "train_number", "trainNo")
}

func trainNameOf(tr railapi.Record) string {
	return tr.StrDef("Unknown", "trainName", "train_name")
}
