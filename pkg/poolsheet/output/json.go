// Package output serializes built pool data to JSON and Parquet.
package output

import (
	"encoding/json"

	"github.com/spreadpool/poolsheet-go/pkg/poolsheet/models"
)

// ToJSON serializes any value, optionally indented.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// WeekToJSON serializes a single weekly record.
func WeekToJSON(week *models.WeeklyPoolRecord, pretty bool) ([]byte, error) {
	return ToJSON(week, pretty)
}

// DatasetToJSON serializes a build keyed by "{year}_week_{week}".
func DatasetToJSON(data map[string]*models.WeeklyPoolRecord, pretty bool) ([]byte, error) {
	return ToJSON(data, pretty)
}
