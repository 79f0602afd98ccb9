// Package vibe maps a routine's financial performance onto the crowd
// energy meter shown during a deployment: a 0-100 damage score, a named
// level, and threshold-based feedback notes.
package vibe

// Score converts the current balance into a damage score: the percentage
// lost from the starting balance, clamped to [0, 100]. A routine that is
// flat or in profit scores 0.
func Score(balance, startingBalance float64) float64 {
	if startingBalance <= 0 {
		return 0
	}
	drawdown := (startingBalance - balance) / startingBalance * 100
	if drawdown < 0 {
		return 0
	}
	if drawdown > 100 {
		return 100
	}
	return drawdown
}

// Level names the crowd's mood for a damage score.
func Level(score float64) string {
	switch {
	case score <= 0:
		return "PERFECT PITCH"
	case score <= 10:
		return "MINOR STUMBLE"
	case score <= 25:
		return "LOSING THE BEAT"
	case score <= 50:
		return "TOUGH CROWD"
	case score <= 75:
		return "STAGE FRIGHT"
	default:
		return "SHOW STOPPED"
	}
}

// Severity grades a feedback note.
type Severity string

const (
	SeverityMinor     Severity = "minor"
	SeverityModerate  Severity = "moderate"
	SeverityMajor     Severity = "major"
	SeveritySevere    Severity = "severe"
	SeverityCritical  Severity = "critical"
	SeverityDestroyed Severity = "destroyed"
)

// Note is one piece of crowd feedback attached to a damage score.
type Note struct {
	Type        string   `json:"type"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
}

var thresholds = []struct {
	above float64
	note  Note
}{
	{5, Note{Type: "style", Severity: SeverityMinor, Description: "A little off-key"}},
	{15, Note{Type: "energy", Severity: SeverityModerate, Description: "Crowd is getting restless"}},
	{30, Note{Type: "presence", Severity: SeverityMajor, Description: "Spotlight is flickering"}},
	{50, Note{Type: "routine", Severity: SeveritySevere, Description: "Major performance glitch"}},
	{70, Note{Type: "integrity", Severity: SeverityCritical, Description: "Judges are checking their watches"}},
	{90, Note{Type: "exit", Severity: SeverityDestroyed, Description: "Curtain call initiated"}},
}

// Feedback returns every note whose threshold the score has crossed, in
// escalating order. A clean score returns an empty slice.
func Feedback(score float64) []Note {
	notes := []Note{}
	for _, t := range thresholds {
		if score > t.above {
			notes = append(notes, t.note)
		}
	}
	return notes
}
