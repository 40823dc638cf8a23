package schedule

import "strings"

// ResolveVenue maps an explicit Home/Away/Neutral label or a divider token
// ("vs.", "at") to H/A/N. A "vs" divider is home only when the city contains
// homeCity; anything unrecognised is neutral.
func ResolveVenue(label, city, homeCity string) HomeAway {
	l := strings.ToLower(strings.TrimSpace(label))
	switch l {
	case "home", "h":
		return Home
	case "away", "a":
		return Away
	case "neutral", "n":
		return Neutral
	}

	switch {
	case strings.HasPrefix(l, "at") || l == "@":
		return Away
	case strings.HasPrefix(l, "vs"):
		if homeCity != "" && strings.Contains(strings.ToLower(city), strings.ToLower(homeCity)) {
			return Home
		}
		return Neutral
	case strings.Contains(l, "home"):
		return Home
	case strings.Contains(l, "away"):
		return Away
	}
	return Neutral
}

// Divider is the preposition shown between the team and the opponent.
func (h HomeAway) Divider() string {
	if h == Away {
		return "at"
	}
	return "vs"
}
