package railway

import (
	"context"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/railgentic/railapi"
	"github.com/effective-security/railgentic/schema"
	"github.com/effective-security/railgentic/tools"
	"github.com/effective-security/xlog"
)

const TrainSearchToolName = "search_trains"

const trainSearchTimeout = 15 * time.Second

// trainSearchWorkers bounds the parallel station-pair fan-out.
const trainSearchWorkers = 4

// TrainSearchRequest represents the tool input. Source and destination
// accept either a station code or one of the known city names.
type TrainSearchRequest struct {
	Source      string `json:"source" yaml:"source" validate:"required" jsonschema:"title=Source,description=Source station code or city name, e.g. 'NDLS' or 'Delhi'."`
	Destination string `json:"destination" yaml:"destination" validate:"required" jsonschema:"title=Destination,description=Destination station code or city name."`
	Date        string `json:"date,omitempty" yaml:"date,omitempty" jsonschema:"title=Date,description=Journey date in DD-MM-YYYY format; defaults to tomorrow."`
}

func (r *TrainSearchRequest) Validate() error {
	if err := validate.Struct(r); err != nil ||
		strings.TrimSpace(r.Source) == "" || strings.TrimSpace(r.Destination) == "" {
		return invalidf("source and destination are required")
	}
	return nil
}

// FoundTrain is one train in the merged search result.
type FoundTrain struct {
	TrainInfo     TrainInfo `json:"train_info"`
	Source        string    `json:"source"`
	Destination   string    `json:"destination"`
	DepartureTime string    `json:"departure_time"`
	ArrivalTime   string    `json:"arrival_time"`
	Duration      string    `json:"duration"`
}

// TrainSearchResult is the merged, de-duplicated train list across every
// expanded station pair, sorted by departure time.
type TrainSearchResult struct {
	Source       string       `json:"source"`
	Destination  string       `json:"destination"`
	Date         string       `json:"date"`
	PairsQueried int          `json:"pairs_queried"`
	Trains       []FoundTrain `json:"trains"`
}

// TrainSearchTool finds all trains between two stations or cities.
//
// City names are expanded into candidate station codes and every
// (source, destination) code pair is queried on a bounded worker pool;
// a failure on any single pair is logged and skipped, and the tool fails
// only when the merged result set is empty.
type TrainSearchTool struct {
	name        string
	description string

	client *railapi.Client
}

var _ tools.Tool[TrainSearchRequest, TrainSearchResult] = (*TrainSearchTool)(nil)

func NewTrainSearch(client *railapi.Client) *TrainSearchTool {
	return &TrainSearchTool{
		name:        TrainSearchToolName,
		description: "Find all trains between two stations. Accepts station codes or well-known city names (a city expands to all of its stations). Date defaults to tomorrow, format DD-MM-YYYY.",
		client:      client,
	}
}

func (t *TrainSearchTool) Name() string {
	return t.name
}

func (t *TrainSearchTool) Description() string {
	return t.description
}

func (t *TrainSearchTool) Parameters() any {
	sc, _ := schema.New(reflect.TypeOf(TrainSearchRequest{}))
	return sc.Parameters
}

type stationPair struct {
	source      string
	destination string
}

func (t *TrainSearchTool) Run(ctx context.Context, req *TrainSearchRequest) (*TrainSearchResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	date := req.Date
	if date == "" {
		date = tomorrowDMY()
	}

	var pairs []stationPair
	for _, src := range expandStations(req.Source) {
		for _, dst := range expandStations(req.Destination) {
			pairs = append(pairs, stationPair{source: src, destination: dst})
		}
	}

	jobs := make(chan stationPair)
	results := make(chan []FoundTrain, len(pairs))

	var wg sync.WaitGroup
	workers := min(trainSearchWorkers, len(pairs))
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for pair := range jobs {
				found, err := t.queryPair(ctx, pair, date)
				if err != nil {
					// a single failed pair never fails the search
					logger.ContextKV(ctx, xlog.WARNING,
						"tool", t.name,
						"status", "pair_query_failed",
						"source", pair.source,
						"destination", pair.destination,
						"err", err.Error(),
					)
					continue
				}
				results <- found
			}
		}()
	}

	for _, pair := range pairs {
		jobs <- pair
	}
	close(jobs)
	wg.Wait()
	close(results)

	seen := make(map[string]bool)
	res := &TrainSearchResult{
		Source:       req.Source,
		Destination:  req.Destination,
		Date:         date,
		PairsQueried: len(pairs),
	}
	for found := range results {
		for _, tr := range found {
			if seen[tr.TrainInfo.Number] {
				continue
			}
			seen[tr.TrainInfo.Number] = true
			res.Trains = append(res.Trains, tr)
		}
	}

	if len(res.Trains) == 0 {
		return nil, errors.WithMessagef(railapi.ErrNoData,
			"no trains found between %s and %s on %s", req.Source, req.Destination, date)
	}

	sort.Slice(res.Trains, func(i, j int) bool {
		return res.Trains[i].DepartureTime < res.Trains[j].DepartureTime
	})

	return res, nil
}

func (t *TrainSearchTool) queryPair(ctx context.Context, pair stationPair, date string) ([]FoundTrain, error) {
	trains, err := fetchTrainsBetween(ctx, t.client, pair.source, pair.destination, date, trainSearchTimeout)
	if err != nil {
		return nil, err
	}

	found := make([]FoundTrain, 0, len(trains))
	for _, tr := range trains {
		found = append(found, FoundTrain{
			TrainInfo: TrainInfo{
				Number: tr.StrDef("Unknown", "trainNumber", "train_number", "trainNo"),
				Name:   trainNameOf(tr),
			},
			Source:        tr.StrDef(pair.source, "fromStationCode", "from", "source"),
			Destination:   tr.StrDef(pair.destination, "toStationCode", "to", "destination"),
			DepartureTime: tr.StrDef("N/A", "departureTime", "departure_time", "fromStd"),
			ArrivalTime:   tr.StrDef("N/A", "arrivalTime", "arrival_time", "toSta"),
			Duration:      tr.StrDef("N/A", "duration", "travelTime"),
		})
	}
	return found, nil
}

func (t *TrainSearchTool) Call(ctx context.Context, input string) (string, error) {
	return runCall[TrainSearchRequest, TrainSearchResult](ctx, t, input)
}
