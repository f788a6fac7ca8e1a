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

func Test_TrainSchedule(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "12301", r.URL.Query().Get("trainNo"))
		_, _ = w.Write([]byte(`{
			"data": {
				"trainName": "Howrah Rajdhani",
				"trainNumber": "12301",
				"stations": [
					{"stationCode": "A", "stationName": "Alpha", "stdMin": 60, "day": 1, "stoppingStation": true},
					{"stationCode": "B", "stationName": "Bravo", "stdMin": 125, "day": 1, "stoppingStation": false}
				]
			}
		}`))
	})

	tool := railway.NewTrainSchedule(client)
	res, err := tool.Run(context.Background(), &railway.TrainScheduleRequest{TrainNumber: "12301"})
	require.NoError(t, err)

	assert.Equal(t, "Howrah Rajdhani", res.TrainInfo.Name)
	assert.Equal(t, 2, res.TotalStations)
	assert.Equal(t, 1, res.TotalStops)

	require.Len(t, res.Route, 2)
	assert.Equal(t, "01:00", res.Route[0].DepartureTime)
	assert.Equal(t, "02:05", res.Route[1].DepartureTime)
	assert.False(t, res.Route[1].IsStop)

	require.Len(t, res.MajorStops, 1)
	assert.Equal(t, "A", res.MajorStops[0].StationCode)
	assert.Equal(t, "01:00", res.MajorStops[0].DepartureTime)
	assert.Equal(t, 1, res.MajorStops[0].Day)
}

func Test_TrainSchedule_MissingMinutes(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"data": {
				"trainName": "Test Express",
				"stations": [
					{"stationCode": "A", "stoppingStation": true},
					{"stationCode": "B", "stdMin": 1440, "day": 2, "stoppingStation": true}
				]
			}
		}`))
	})

	tool := railway.NewTrainSchedule(client)
	res, err := tool.Run(context.Background(), &railway.TrainScheduleRequest{TrainNumber: "1234"})
	require.NoError(t, err)

	// absent minutes render as N/A, a full day is kept without rollover
	assert.Equal(t, "N/A", res.Route[0].DepartureTime)
	assert.Equal(t, 1, res.Route[0].Day)
	assert.Equal(t, "24:00", res.Route[1].DepartureTime)
	assert.Equal(t, 2, res.Route[1].Day)
}

func Test_TrainSchedule_Validation(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	tool := railway.NewTrainSchedule(client)

	for _, number := range []string{"", "123", "123456", "12a45"} {
		_, err := tool.Run(context.Background(), &railway.TrainScheduleRequest{TrainNumber: number})
		require.Error(t, err, "train: %q", number)
		assert.True(t, errors.Is(err, railway.ErrInvalidInput), "train: %q", number)
	}
	assert.Equal(t, int32(0), calls.Load())
}

func Test_TrainSchedule_NoData(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":null}`))
	})
	tool := railway.NewTrainSchedule(client)

	_, err := tool.Run(context.Background(), &railway.TrainScheduleRequest{TrainNumber: "12301"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, railapi.ErrNoData))
	assert.Contains(t, err.Error(), "12301")
}
