package schedule

// HomeAway is the resolved venue of a match.
type HomeAway string

const (
	Home    HomeAway = "H"
	Away    HomeAway = "A"
	Neutral HomeAway = "N"
)

// Status values written to the normalized file. "tbd" collapses to scheduled.
const (
	StatusScheduled = "scheduled"
	StatusFinal     = "final"
)

// ScheduleRow is the canonical, UI-ready representation of a match.
type ScheduleRow struct {
	Date      string   `json:"date"`
	TimeLocal string   `json:"time_local,omitempty"`
	HomeAway  HomeAway `json:"home_away"`
	NURank    *int     `json:"nu_rank"`
	Opponent  string   `json:"opponent"`
	OppRank   *int     `json:"opp_rank"`
	Title     string   `json:"title"`
	Arena     string   `json:"arena,omitempty"`
	City      string   `json:"city,omitempty"`
	ArenaKey  string   `json:"arena_key"`
	NULogo    string   `json:"nu_logo,omitempty"`
	OppLogo   string   `json:"opp_logo,omitempty"`
	TVLogo    string   `json:"tv_logo,omitempty"`
	TV        []string `json:"tv"`
	Status    string   `json:"status"`
	Result    string   `json:"result,omitempty"`
	ResultCSS string   `json:"result_css,omitempty"`
	Notes     *string  `json:"notes"`
	Links     []Link   `json:"links"`
}

// SchedulePayload is the normalized schedule file.
type SchedulePayload struct {
	Items []ScheduleRow `json:"items"`
}
