package standings

import (
	"fmt"
	"math"
	"sort"
)

// OrphanPolicy controls how results naming an unregistered team are tallied.
type OrphanPolicy int

const (
	// ExcludeResult drops the whole result when either side is unknown.
	ExcludeResult OrphanPolicy = iota
	// CountKnownSide credits the registered side and drops the other.
	CountKnownSide
)

// String returns the config spelling of the policy.
func (p OrphanPolicy) String() string {
	switch p {
	case ExcludeResult:
		return "exclude"
	case CountKnownSide:
		return "count_known"
	default:
		return fmt.Sprintf("OrphanPolicy(%d)", int(p))
	}
}

// ParseOrphanPolicy maps a config value onto an OrphanPolicy.
// An empty string selects ExcludeResult.
func ParseOrphanPolicy(s string) (OrphanPolicy, error) {
	switch s {
	case "", "exclude":
		return ExcludeResult, nil
	case "count_known":
		return CountKnownSide, nil
	default:
		return ExcludeResult, fmt.Errorf("unknown orphan policy %q", s)
	}
}

// Result is a decided game: one winner, one loser.
type Result struct {
	Winner string `json:"winner"`
	Loser  string `json:"loser"`
}

// Row is one line of the league table.
type Row struct {
	TeamName    string  `json:"team_name"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	WinRate     float64 `json:"win_rate"`
	GamesBehind float64 `json:"games_behind"`
}

// Calculator derives league tables from team names and game results.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	policy OrphanPolicy
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithOrphanPolicy overrides the default ExcludeResult policy.
func WithOrphanPolicy(p OrphanPolicy) Option {
	return func(c *Calculator) {
		c.policy = p
	}
}

// NewCalculator creates a calculator with the given options applied.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{policy: ExcludeResult}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Policy reports the orphan policy in effect.
func (c *Calculator) Policy() OrphanPolicy {
	return c.policy
}

// Compute is shorthand for NewCalculator().Compute.
func Compute(teams []string, results []Result) []Row {
	return NewCalculator().Compute(teams, results)
}

type record struct {
	wins, losses int
}

// Compute returns one row per distinct team, sorted by win rate, then wins
// (both descending), then team name. Neither input is modified.
func (c *Calculator) Compute(teams []string, results []Result) []Row {
	if len(teams) == 0 {
		return []Row{}
	}

	// 1) tally
	records := make(map[string]*record, len(teams))
	order := make([]string, 0, len(teams))
	for _, name := range teams {
		if _, ok := records[name]; ok {
			continue
		}
		records[name] = &record{}
		order = append(order, name)
	}

	for _, res := range results {
		if res.Winner == res.Loser {
			continue
		}
		w, wok := records[res.Winner]
		l, lok := records[res.Loser]
		if !wok || !lok {
			if c.policy != CountKnownSide {
				continue
			}
		}
		if wok {
			w.wins++
		}
		if lok {
			l.losses++
		}
	}

	// 2) league-wide leader figures
	maxWins, minLosses := 0, math.MaxInt
	for _, rec := range records {
		if rec.wins > maxWins {
			maxWins = rec.wins
		}
		if rec.losses < minLosses {
			minLosses = rec.losses
		}
	}

	rows := make([]Row, 0, len(order))
	for _, name := range order {
		rec := records[name]
		rows = append(rows, Row{
			TeamName:    name,
			Wins:        rec.wins,
			Losses:      rec.losses,
			WinRate:     winRate(rec.wins, rec.losses),
			GamesBehind: gamesBehind(maxWins, minLosses, rec.wins, rec.losses),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.WinRate != b.WinRate {
			return a.WinRate > b.WinRate
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		return a.TeamName < b.TeamName
	})

	return rows
}

func winRate(wins, losses int) float64 {
	played := wins + losses
	if played == 0 {
		return 0
	}
	return round(float64(wins)/float64(played), 3)
}

func gamesBehind(maxWins, minLosses, wins, losses int) float64 {
	gb := float64((maxWins-wins)+(losses-minLosses)) / 2.0
	return round(gb, 1)
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	r := math.Round(v*scale) / scale
	if r == 0 {
		// fold -0 into 0
		return 0
	}
	return r
}
