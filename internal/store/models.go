package store

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire and form format for calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date. The zero value maps to SQL NULL and JSON null.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar day in UTC.
func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string. Empty input yields the zero Date.
func ParseDate(s string) (Date, error) {
	if s == "" {
		return Date{}, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD): %w", s, err)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// MarshalJSON implements json.Marshaler
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Scan implements sql.Scanner
func (d *Date) Scan(src interface{}) error {
	var nt sql.NullTime
	if err := nt.Scan(src); err != nil {
		return err
	}
	if !nt.Valid {
		*d = Date{}
		return nil
	}
	*d = NewDate(nt.Time)
	return nil
}

// Value implements driver.Valuer
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// Field is a venue teams play at
type Field struct {
	FieldName string `json:"field_name"`
	Address   string `json:"address,omitempty"`
	Capacity  int    `json:"capacity,omitempty"`
}

// Team represents a registered club
type Team struct {
	TeamID         int       `json:"team_id"`
	TeamName       string    `json:"team_name"`
	ChiefCoach     string    `json:"chief_coach,omitempty"`
	CompanyName    string    `json:"company_name,omitempty"`
	CompanyPhone   string    `json:"company_phone,omitempty"`
	CompanyAddress string    `json:"company_address,omitempty"`
	FieldName      string    `json:"field_name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Player is a rostered player, keyed by team and jersey number
type Player struct {
	TeamName  string `json:"team_name"`
	PlayerNo  string `json:"player_no"`
	Name      string `json:"name"`
	Birthday  Date   `json:"birthday"`
	Position  string `json:"position,omitempty"`
	Height    int    `json:"height,omitempty"`
	Weight    int    `json:"weight,omitempty"`
	Education string `json:"education,omitempty"`
}

// Coach is a member of a team's staff
type Coach struct {
	CoachNo  string `json:"coach_no"`
	Name     string `json:"name"`
	Birthday Date   `json:"birthday"`
	TeamName string `json:"team_name,omitempty"`
}

// Game is a recorded result. Draws are not recorded.
type Game struct {
	GameID      int       `json:"game_id"`
	WinningTeam string    `json:"winning_team"`
	LosingTeam  string    `json:"losing_team"`
	GameDate    Date      `json:"game_date"`
	FieldName   string    `json:"field_name,omitempty"`
	Result      string    `json:"result,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NullString maps "" to NULL
func NullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// NullInt maps 0 to NULL
func NullInt(i int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(i), Valid: i != 0}
}
