package output

import (
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
	"github.com/spreadpool/poolsheet-go/pkg/poolsheet/models"
)

// PickRow is one player's pick for one game slot, flattened for analytics.
type PickRow struct {
	Key          string  `parquet:"key"`
	Year         int32   `parquet:"year"`
	Week         int32   `parquet:"week"`
	PlayerID     string  `parquet:"player_id"`
	PlayerName   string  `parquet:"player_name"`
	Slot         int32   `parquet:"slot"`
	GameID       string  `parquet:"game_id"`
	Team         string  `parquet:"team"`
	ThreePoint   bool    `parquet:"three_point"`
	Covered      *bool   `parquet:"covered,optional"`
	FavoriteTeam string  `parquet:"favorite_team"`
	UnderdogTeam string  `parquet:"underdog_team"`
	Spread       float64 `parquet:"spread"`
	WeekPoints   int32   `parquet:"week_points"`
}

// PickRows flattens the picks of the given weeks in order.
func PickRows(weeks []*models.WeeklyPoolRecord) []PickRow {
	var rows []PickRow
	for _, week := range weeks {
		for _, pp := range week.PlayerPicks {
			for slot, pick := range pp.Picks {
				row := PickRow{
					Key:        week.Key,
					Year:       int32(week.Year),
					Week:       int32(week.Week),
					PlayerID:   pp.ID,
					PlayerName: pp.Name,
					Slot:       int32(slot),
					GameID:     pick.GameID,
					Team:       pick.Team,
					ThreePoint: pick.ThreePoint,
					Covered:    pick.Covered,
					WeekPoints: int32(pp.Points),
				}
				if g, ok := week.Game(pick.GameID); ok {
					row.FavoriteTeam = g.FavoriteTeam
					row.UnderdogTeam = g.UnderdogTeam
					row.Spread = g.Spread
				}
				rows = append(rows, row)
			}
		}
	}
	return rows
}

// WritePicksParquet writes rows as a zstd-compressed Parquet file.
func WritePicksParquet(w io.Writer, rows []PickRow) error {
	codec := &zstd.Codec{
		Level:       zstd.SpeedBestCompression,
		Concurrency: 4,
	}

	writer := parquet.NewGenericWriter[PickRow](w,
		parquet.Compression(codec),
	)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("error writing pick rows: %w", err)
	}
	// Close flushes the last row group and writes the footer.
	if err := writer.Close(); err != nil {
		return fmt.Errorf("error closing Parquet writer: %w", err)
	}
	return nil
}

// WritePicksParquetFile creates path and writes rows to it.
func WritePicksParquetFile(path string, rows []PickRow) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating Parquet file: %w", err)
	}
	defer file.Close()

	if err := WritePicksParquet(file, rows); err != nil {
		return err
	}
	return file.Close()
}
