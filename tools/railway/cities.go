package railway

import "strings"

// cityStations maps well-known city names to their candidate station
// codes. The train search tool fans out across every code pair when the
// agent passes city names instead of codes. Read-only after init.
var cityStations = map[string][]string{
	"delhi":     {"NDLS", "DLI", "NZM", "ANVT", "DEE"},
	"new delhi": {"NDLS"},
	"mumbai":    {"CSMT", "BCT", "DR", "LTT", "BDTS"},
	"bombay":    {"CSMT", "BCT", "DR", "LTT", "BDTS"},
	"kolkata":   {"HWH", "SDAH", "KOAA"},
	"calcutta":  {"HWH", "SDAH", "KOAA"},
	"chennai":   {"MAS", "MS"},
	"bengaluru": {"SBC", "YPR", "BNC"},
	"bangalore": {"SBC", "YPR", "BNC"},
	"hyderabad": {"SC", "HYB", "KCG"},
	"pune":      {"PUNE"},
	"ahmedabad": {"ADI"},
	"jaipur":    {"JP"},
	"lucknow":   {"LKO", "LJN"},
	"kanpur":    {"CNB"},
	"patna":     {"PNBE", "PPTA", "RJPB", "DNR"},
	"varanasi":  {"BSB", "BSBS"},
	"bhopal":    {"BPL", "HBJ"},
	"nagpur":    {"NGP"},
	"surat":     {"ST", "UDN"},
}

// expandStations resolves a city name to its candidate station codes.
// Anything not in the table is treated as a literal station code.
func expandStations(nameOrCode string) []string {
	key := strings.ToLower(strings.TrimSpace(nameOrCode))
	if codes, ok := cityStations[key]; ok {
		return codes
	}
	return []string{strings.ToUpper(strings.TrimSpace(nameOrCode))}
}
