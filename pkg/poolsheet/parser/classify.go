package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/spreadpool/poolsheet-go/pkg/poolsheet/models"
)

// threePointMarker flags the bonus pick in a picks column.
const threePointMarker = "**"

var (
	fractionalScorePattern = regexp.MustCompile(`^(\d+)\s*(1/2)?$`)
	asteriskNumberPattern  = regexp.MustCompile(`^\*?\s*(\d+(?:\.\d+)?)(?:\s*\*)?$`)
)

// CellClass is the kind assigned to a cell of a picks column.
type CellClass int

const (
	// ClassEmpty is a missing or blank cell.
	ClassEmpty CellClass = iota
	// ClassNumeric is a tiebreak or points value.
	ClassNumeric
	// ClassPick is a team pick.
	ClassPick
)

func (c CellClass) String() string {
	switch c {
	case ClassNumeric:
		return "numeric"
	case ClassPick:
		return "pick"
	default:
		return "empty"
	}
}

// Classification is the result of classifying one picks column cell.
// Value is set for ClassNumeric, Pick for ClassPick.
type Classification struct {
	Class CellClass
	// Rule names the rule that decided the class.
	Rule  string
	Value float64
	Pick  models.Pick
}

// NumericRule recognizes a numeric cell and returns its value.
type NumericRule struct {
	Name  string
	Match func(models.Cell) (float64, bool)
}

// NumericRules are applied in order; the first match classifies the cell as
// numeric. Cells no rule accepts are picks.
var NumericRules = []NumericRule{
	{Name: "native-numeric", Match: MatchNativeNumeric},
	{Name: "fractional-score", Match: MatchFractionalScore},
	{Name: "asterisk-number", Match: MatchAsteriskNumber},
}

// MatchNativeNumeric accepts cells stored as numbers.
func MatchNativeNumeric(c models.Cell) (float64, bool) {
	if c.IsNumeric() {
		return c.Number, true
	}
	return 0, false
}

// MatchFractionalScore accepts whole or half point text such as "10" or "10 1/2".
func MatchFractionalScore(c models.Cell) (float64, bool) {
	text := strings.TrimSpace(c.Text)
	if !fractionalScorePattern.MatchString(text) {
		return 0, false
	}
	v, err := ConvertScore(text)
	if err != nil {
		return 0, false
	}
	return v, true
}

// MatchAsteriskNumber accepts numbers wrapped in single asterisks such as "*10*".
func MatchAsteriskNumber(c models.Cell) (float64, bool) {
	m := asteriskNumberPattern.FindStringSubmatch(strings.TrimSpace(c.Text))
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParsePick reads a pick cell. A "**" marker designates the three-point pick
// and is stripped from the team code.
func ParsePick(text string) models.Pick {
	raw := strings.TrimSpace(text)
	return models.Pick{
		Team:       strings.ToUpper(strings.TrimSpace(strings.Replace(raw, threePointMarker, "", 1))),
		ThreePoint: strings.Contains(raw, threePointMarker),
	}
}

// ClassifyCell classifies a picks column cell. ok is false for a missing cell.
func ClassifyCell(cell models.Cell, ok bool) Classification {
	if !ok || (!cell.IsNumeric() && strings.TrimSpace(cell.Text) == "") {
		return Classification{Class: ClassEmpty}
	}
	for _, rule := range NumericRules {
		if v, matched := rule.Match(cell); matched {
			return Classification{Class: ClassNumeric, Rule: rule.Name, Value: v}
		}
	}
	return Classification{Class: ClassPick, Rule: "pick", Pick: ParsePick(cell.Text)}
}
