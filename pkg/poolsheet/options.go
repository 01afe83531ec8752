// Package poolsheet extracts weekly spread pool records from spreadsheet
// files and reconciles them against final scores.
package poolsheet

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spreadpool/poolsheet-go/pkg/poolsheet/models"
	"github.com/spreadpool/poolsheet-go/pkg/poolsheet/parser"
)

// DefaultSheetName is the worksheet read from every weekly file.
const DefaultSheetName = "Sheet1"

// DefaultConcurrency bounds concurrent score feed requests during a build.
const DefaultConcurrency = 4

// Options configures extraction and build behavior.
type Options struct {
	// SheetName is the worksheet to parse. Empty means DefaultSheetName.
	SheetName string
	// Rules holds the nominal anchors of each block.
	Rules models.ParsingRules
	// Parser holds probe windows and limits.
	Parser parser.Options
	// Concurrency bounds concurrent score fetches. Zero means DefaultConcurrency.
	Concurrency int
	// Logger receives diagnostics. Nil discards them.
	Logger logrus.FieldLogger
}

// DefaultOptions returns options with the default sheet and probe windows.
// Rules are left empty and must be supplied by the caller.
func DefaultOptions() Options {
	return Options{
		SheetName:   DefaultSheetName,
		Parser:      parser.DefaultOptions(),
		Concurrency: DefaultConcurrency,
	}
}

func (o Options) sheetName() string {
	if o.SheetName == "" {
		return DefaultSheetName
	}
	return o.SheetName
}

func (o Options) concurrency() int {
	if o.Concurrency <= 0 {
		return DefaultConcurrency
	}
	return o.Concurrency
}

func (o Options) logger() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
