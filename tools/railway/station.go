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
)

const StationSearchToolName = "resolve_station_code"

const stationSearchTimeout = 10 * time.Second

// maxStationMatches caps the matches returned to the agent.
const maxStationMatches = 5

// StationSearchRequest represents the tool input.
type StationSearchRequest struct {
	Query string `json:"station_name" yaml:"station_name" validate:"required" jsonschema:"title=Station Name,description=A city name or partial station name to resolve into station codes, e.g. 'Delhi'."`
}

func (r *StationSearchRequest) Validate() error {
	if err := validate.Struct(r); err != nil || strings.TrimSpace(r.Query) == "" {
		return invalidf("station name is required")
	}
	return nil
}

// StationMatch is one candidate station.
type StationMatch struct {
	Name     string `json:"name"`
	Code     string `json:"code"`
	Location string `json:"location"`
}

// StationSearchResult lists the top candidate stations for the query.
type StationSearchResult struct {
	MatchFound bool           `json:"match_found"`
	Stations   []StationMatch `json:"stations"`
}

// StationSearchTool resolves a city or station name into station codes.
type StationSearchTool struct {
	name        string
	description string

	client *railapi.Client
}

var _ tools.Tool[StationSearchRequest, StationSearchResult] = (*StationSearchTool)(nil)

func NewStationSearch(client *railapi.Client) *StationSearchTool {
	return &StationSearchTool{
		name:        StationSearchToolName,
		description: "Find the station code for a city name, e.g. 'Delhi' -> 'NDLS'. Use this before searching for trains when only a city name is known.",
		client:      client,
	}
}

func (t *StationSearchTool) Name() string {
	return t.name
}

func (t *StationSearchTool) Description() string {
	return t.description
}

func (t *StationSearchTool) Parameters() any {
	sc, _ := schema.New(reflect.TypeOf(StationSearchRequest{}))
	return sc.Parameters
}

func (t *StationSearchTool) Run(ctx context.Context, req *StationSearchRequest) (*StationSearchResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("code", strings.TrimSpace(req.Query))

	body, err := t.client.Get(ctx, "/stationSearch", params, stationSearchTimeout)
	if err != nil {
		return nil, err
	}

	var data []railapi.Record
	if err := railapi.DecodeData(body, &data); err != nil {
		if errors.Is(err, railapi.ErrNoData) {
			return nil, errors.WithMessagef(railapi.ErrNoData, "no station found for %q", req.Query)
		}
		return nil, err
	}

	res := &StationSearchResult{
		MatchFound: true,
	}
	for _, s := range data {
		res.Stations = append(res.Stations, StationMatch{
			Name: s.StrDef("Unknown", "station_name", "stationName", "name"),
			Code: s.StrDef("Unknown", "station_code", "stationCode", "code"),
			Location: strings.TrimSuffix(fmt.Sprintf("%s, %s",
				s.Str("city_name", "cityName", "city"),
				s.Str("state_name", "stateName", "state")), ", "),
		})
		if len(res.Stations) == maxStationMatches {
			break
		}
	}

	return res, nil
}

func (t *StationSearchTool) Call(ctx context.Context, input string) (string, error) {
	return runCall[StationSearchRequest, StationSearchResult](ctx, t, input)
}
