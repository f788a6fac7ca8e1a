package railway_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/railgentic/railapi"
	"github.com/effective-security/railgentic/tools/railway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const availabilityBody = `{"data":{"trains":[
	{"trainNumber":"12004","trainName":"Lucknow Shatabdi","departureTime":"06:10","arrivalTime":"12:25","duration":"6:15","availability":[
		{"classType":"CC","totalFare":"985","currentStatus":"AVAILABLE-0044","confirmProb":"98%"},
		{"classType":"EC","totalFare":"1870","currentStatus":"WL/12"}
	]},
	{"trainNumber":"12034","trainName":"Kanpur Shatabdi","departureTime":"15:50","availability":[
		{"classType":"CC","totalFare":"920","currentStatus":"RAC 4"}
	]}
]}}`

func Test_SeatAvailability(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/trainAvailability", r.URL.Path)
		assert.Equal(t, "NDLS", r.URL.Query().Get("source"))
		assert.Equal(t, "CNB", r.URL.Query().Get("destination"))
		assert.Equal(t, "15-10-2026", r.URL.Query().Get("date"))
		_, _ = w.Write([]byte(availabilityBody))
	})

	tool := railway.NewSeatAvailability(client)
	res, err := tool.Run(context.Background(), &railway.SeatAvailabilityRequest{
		Source:      "ndls",
		Destination: "cnb",
		Date:        "15-10-2026",
	})
	require.NoError(t, err)

	require.Len(t, res.Trains, 2)
	first := res.Trains[0]
	assert.Equal(t, "12004", first.TrainInfo.Number)
	assert.Equal(t, "06:10", first.DepartureTime)
	assert.Equal(t, "12:25", first.ArrivalTime)
	assert.Equal(t, "6:15", first.Duration)
	require.Len(t, first.Classes, 2)
	assert.Equal(t, railway.ClassAvailability{
		Class:              "CC",
		Fare:               "₹985",
		Status:             "AVAILABLE-0044",
		ConfirmationChance: "98%",
	}, first.Classes[0])
	assert.Equal(t, "WL/12", first.Classes[1].Status)
}

func Test_SeatAvailability_TrainFilter(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(availabilityBody))
	})

	tool := railway.NewSeatAvailability(client)
	res, err := tool.Run(context.Background(), &railway.SeatAvailabilityRequest{
		Source:      "NDLS",
		Destination: "CNB",
		Date:        "15-10-2026",
		TrainNumber: "12034",
	})
	require.NoError(t, err)

	require.Len(t, res.Trains, 1)
	assert.Equal(t, "12034", res.Trains[0].TrainInfo.Number)
}

func Test_SeatAvailability_FilterNoMatch(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(availabilityBody))
	})

	tool := railway.NewSeatAvailability(client)
	_, err := tool.Run(context.Background(), &railway.SeatAvailabilityRequest{
		Source:      "NDLS",
		Destination: "CNB",
		Date:        "15-10-2026",
		TrainNumber: "12560",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, railapi.ErrNoData))
	assert.Contains(t, err.Error(), "train 12560 not found between NDLS and CNB on 15-10-2026")
}

func Test_SeatAvailability_NoTrains(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{}}`))
	})

	tool := railway.NewSeatAvailability(client)
	_, err := tool.Run(context.Background(), &railway.SeatAvailabilityRequest{
		Source:      "NDLS",
		Destination: "CNB",
		Date:        "15-10-2026",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, railapi.ErrNoData))
	assert.Contains(t, err.Error(), "no trains found between NDLS and CNB on 15-10-2026")
}

func Test_SeatAvailability_Validation(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	tool := railway.NewSeatAvailability(client)

	tcases := []*railway.SeatAvailabilityRequest{
		{},
		{Source: "NDLS", Destination: "CNB"},
		{Source: "NDLS", Date: "15-10-2026"},
		{Source: "NDLS", Destination: "CNB", Date: "15-10-2026", TrainNumber: "12"},
	}
	for _, req := range tcases {
		_, err := tool.Run(context.Background(), req)
		require.Error(t, err)
		assert.True(t, errors.Is(err, railway.ErrInvalidInput))
	}
	assert.Equal(t, int32(0), calls.Load())
}
