package schedule

import "encoding/json"

// Result is a finished match outcome as scraped.
type Result struct {
	Outcome string `json:"outcome"` // W, L or T
	Sets    string `json:"sets"`    // e.g. "3-1"
}

// Link is a media link attached to an event (tickets, stats, video).
type Link struct {
	Title string `json:"title"`
	Href  string `json:"href"`
}

// RawEvent represents one scraped schedule entry before normalization.
// Every field may legitimately be unknown.
type RawEvent struct {
	Date          string   `json:"date,omitempty"`      // ISO date when the page exposed one
	DateText      string   `json:"date_text,omitempty"` // visible label, e.g. "SEP 20"
	TimeLocal     string   `json:"time_local,omitempty"`
	VenueLabel    string   `json:"venue_label,omitempty"` // Home/Away/Neutral or a divider token
	DividerText   string   `json:"divider_text,omitempty"`
	OpponentName  string   `json:"opponent_name,omitempty"`
	NURank        *int     `json:"nu_rank,omitempty"`
	OppRank       *int     `json:"opp_rank,omitempty"`
	City          string   `json:"city,omitempty"`
	Arena         string   `json:"arena,omitempty"`
	Status        string   `json:"status,omitempty"`
	Result        *Result  `json:"result,omitempty"`
	NebraskaLogo  string   `json:"nebraska_logo_url,omitempty"`
	OpponentLogo  string   `json:"opponent_logo_url,omitempty"`
	TVNetworkLogo string   `json:"tv_network_logo_url,omitempty"`
	Networks      []string `json:"networks,omitempty"`
	Links         []Link   `json:"links,omitempty"`
}

// UnmarshalJSON accepts the current field names plus the ones written by
// older scraper builds (venue_type, home_away, opponent, location, date_hint).
func (r *RawEvent) UnmarshalJSON(data []byte) error {
	type plain RawEvent
	var aux struct {
		plain
		VenueType string `json:"venue_type"`
		HomeAway  string `json:"home_away"`
		Opponent  string `json:"opponent"`
		Location  string `json:"location"`
		DateHint  string `json:"date_hint"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = RawEvent(aux.plain)

	if r.VenueLabel == "" {
		r.VenueLabel = firstNonEmpty(aux.VenueType, aux.HomeAway)
	}
	if r.OpponentName == "" {
		r.OpponentName = aux.Opponent
	}
	if r.DateText == "" {
		r.DateText = aux.DateHint
	}
	if r.City == "" && r.Arena == "" && aux.Location != "" {
		r.City, r.Arena = SplitLocation(aux.Location)
	}
	return nil
}

// RawPayload is the raw events file written by the scrape stage.
type RawPayload struct {
	SourceURL string     `json:"source_url"`
	ScrapedAt string     `json:"scraped_at"`
	Items     []RawEvent `json:"items"`

	// Invalid counts items that could not be decoded and were skipped.
	Invalid int `json:"-"`
}

// UnmarshalJSON decodes items one at a time so a single badly typed entry
// is skipped instead of failing the whole file.
func (p *RawPayload) UnmarshalJSON(data []byte) error {
	var aux struct {
		SourceURL string            `json:"source_url"`
		ScrapedAt string            `json:"scraped_at"`
		Items     []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*p = RawPayload{SourceURL: aux.SourceURL, ScrapedAt: aux.ScrapedAt}
	if aux.Items == nil {
		return nil
	}
	p.Items = make([]RawEvent, 0, len(aux.Items))
	for _, item := range aux.Items {
		var ev RawEvent
		if err := json.Unmarshal(item, &ev); err != nil {
			p.Invalid++
			continue
		}
		p.Items = append(p.Items, ev)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
