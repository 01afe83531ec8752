// Package teams maps the pool's team codes to the codes used by external feeds.
package teams

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ErrAliasNotFound indicates a team code with no entry in the alias table.
var ErrAliasNotFound = errors.New("team alias not found")

// AliasTable maps a pool team code to one or more accepted external codes.
// The first accepted code is the one used for score lookups.
type AliasTable map[string][]string

// DefaultAliases returns the NFL alias table used by the pool sheets.
func DefaultAliases() AliasTable {
	return AliasTable{
		"ARZ":  {"ARI", "ARIZONA"},
		"ATL":  {"ATL", "ATLANTA"},
		"BALT": {"BAL", "BALTIMORE"},
		"BUFF": {"BUF", "BUFFALO"},
		"CAR":  {"CAR", "CAROLINA"},
		"CHI":  {"CHI", "CHICAGO"},
		"CIN":  {"CIN", "CINCINNATI"},
		"CLEV": {"CLE", "CLEV", "CLEVELAND"},
		"BOYS": {"DAL", "BOYS", "DALLAS"},
		"DEN":  {"DEN", "DENVER"},
		"DET":  {"DET", "DETROIT"},
		"G.B.": {"GB", "GREEN BAY"},
		"HOU":  {"HOU", "HOUSTON"},
		"INDY": {"IND", "INDIANAPOLIS"},
		"JAX":  {"JAX", "JACKSONVILLE"},
		"K.C.": {"KC", "KANSAS CITY"},
		"LVR":  {"LV"},
		"LAC":  {"LAC", "LOS ANGELES", "CHARGERS"},
		"RAMS": {"LAR", "LOS ANGELES", "RAMS"},
		"MIA":  {"MIA", "MIAMI"},
		"MIN":  {"MIN", "MINNESOTA"},
		"N.E.": {"NE", "NEW ENGLAND"},
		"N.O.": {"NO", "NEW ORLEANS"},
		"NYG":  {"NYG", "NEW YORK"},
		"NYJ":  {"NYJ", "NEW YORK"},
		"PHIL": {"PHI", "PHILADELPHIA"},
		"PITT": {"PIT", "PITTSBURGH"},
		"S.F.": {"SF", "SAN FRANCISCO"},
		"SEA":  {"SEA", "SEATTLE"},
		"T.B.": {"TB", "TAMPA BAY"},
		"TEN":  {"TEN", "TENNESSEE"},
		"WASH": {"WSH", "WASHINGTON"},
	}
}

// Resolve returns the primary external code for a pool team code.
func (t AliasTable) Resolve(team string) (string, error) {
	codes := t[normalize(team)]
	if len(codes) == 0 {
		return "", fmt.Errorf("%w: %q", ErrAliasNotFound, team)
	}
	return codes[0], nil
}

// Codes returns every accepted external code for a pool team code.
func (t AliasTable) Codes(team string) []string {
	return t[normalize(team)]
}

// Matches reports whether any external code in lookups belongs to either team.
// Both teams must be known to the table.
func (t AliasTable) Matches(team1, team2 string, lookups ...string) bool {
	a, b := t.Codes(team1), t.Codes(team2)
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	accepted := make(map[string]struct{}, len(a)+len(b))
	for _, code := range append(append([]string{}, a...), b...) {
		accepted[code] = struct{}{}
	}
	for _, l := range lookups {
		if _, ok := accepted[strings.ToUpper(strings.TrimSpace(l))]; ok {
			return true
		}
	}
	return false
}

// Merge returns a copy of t with every entry of other added or replaced.
func (t AliasTable) Merge(other AliasTable) AliasTable {
	merged := make(AliasTable, len(t)+len(other))
	for k, v := range t {
		merged[k] = v
	}
	for k, v := range other {
		merged[normalize(k)] = v
	}
	return merged
}

// aliasFile is the TOML layout of an alias override file:
//
//	[aliases]
//	BOYS = ["DAL", "DALLAS"]
type aliasFile struct {
	Aliases map[string][]string `toml:"aliases"`
}

// LoadAliases decodes an alias table from TOML.
func LoadAliases(r io.Reader) (AliasTable, error) {
	var file aliasFile
	if err := toml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode alias table: %w", err)
	}
	table := make(AliasTable, len(file.Aliases))
	for team, codes := range file.Aliases {
		upper := make([]string, 0, len(codes))
		for _, c := range codes {
			if c = strings.ToUpper(strings.TrimSpace(c)); c != "" {
				upper = append(upper, c)
			}
		}
		table[normalize(team)] = upper
	}
	return table, nil
}

func normalize(team string) string {
	return strings.ToUpper(strings.TrimSpace(team))
}
