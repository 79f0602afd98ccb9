// Package judges produces the judge panel's commentary on trade events
// during a deployment. Comments come from pre-written pools per judge and
// event kind; there is no model call behind them.
package judges

import (
	"math/rand"
	"time"

	"stagehand/internal/domain"
)

// Judge describes one member of the panel.
type Judge struct {
	ID    string
	Name  string
	Style string
}

// Panel is the fixed three-judge panel, in introduction order.
var Panel = []Judge{
	{ID: "rita", Name: "Judge Rita", Style: "supportive, encouraging, focused on safety and style"},
	{ID: "yang", Name: "Judge Yang", Style: "high-energy, bold, aggressive momentum seeker"},
	{ID: "sharpe", Name: "Judge Sharpe", Style: "precise, mathematical, focused on technical merit"},
}

// Comment is one judge reaction to a trade event.
type Comment struct {
	Judge     string `json:"judge"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

const defaultComment = "Monitoring market conditions..."

var pools = map[string]map[string][]string{
	"rita": {
		"ENTER": {
			"Ooh, bold entrance! I love the energy!",
			"A classic move. Let's see if you can nail the landing!",
			"Taking the stage with confidence. Show us what you've got!",
		},
		"EXIT_stop_loss": {
			"A bit of a stumble, but you kept your cool! Safety first!",
			"Ouch! But hey, every star has a bad night. Reset and come back!",
			"The spotlight was a bit bright there. Good job protecting your routine.",
		},
		"EXIT_take_profit": {
			"Bravo! That was a spectacular finish!",
			"Pure talent! You absolutely owned that performance.",
			"Encore! Encore! A perfectly timed exit.",
		},
	},
	"yang": {
		"ENTER": {
			"MOMENTUM! POWER! GO GO GO!",
			"THAT'S WHAT I CALL A SHOW-STOPPER!",
			"HERE WE GO! MAXIMUM VIBES INITIATED!",
		},
		"EXIT_stop_loss": {
			"TOUGH BREAK! BUT THE CROWD STILL LOVES YOU!",
			"TECHNICAL GLITCH! WE'LL FIX IT IN POST!",
			"HEART OF A CHAMPION! YOU'LL CRUSH IT NEXT TIME!",
		},
		"EXIT_take_profit": {
			"YES! THAT'S A GOLD MEDAL PERFORMANCE!",
			"YOU'RE A NATURAL! PURE ALPHA ENERGY!",
			"FLAWLESS! THE JUDGES ARE GIVING YOU A 10!",
		},
	},
	"sharpe": {
		"ENTER": {
			"Calculated confidence. A very professional start.",
			"Statistically, that was a brilliant opening. Carry on.",
			"I see the vision. The technical merit is high here.",
		},
		"EXIT_stop_loss": {
			"A minor setback in the data. Your risk management is commendable.",
			"Safety protocol engaged. You showed great discipline there.",
			"Protecting the routine is part of the talent. Wise choice.",
		},
		"EXIT_take_profit": {
			"Masterful execution. Your Sharpe ratio is singing!",
			"High technical scores all around. Very well done.",
			"Consistency is your greatest talent. Beautifully handled.",
		},
	},
}

// poolKey maps a decision to its comment pool: "ENTER", or "EXIT_<reason>"
// when a reason is present.
func poolKey(d domain.Decision) string {
	key := string(d.Action)
	if d.Action == domain.DecisionExit && d.Reason != "" {
		key = "EXIT_" + string(d.Reason)
	}
	return key
}

// commentFor picks a pool comment for the judge, falling back to the bare
// action key and finally to a neutral line when the judge has nothing
// written for the event (trailing-stop exits land here).
func commentFor(rng *rand.Rand, judgeID string, d domain.Decision) string {
	pool := pools[judgeID]
	options, ok := pool[poolKey(d)]
	if !ok {
		options, ok = pool[string(d.Action)]
	}
	if !ok || len(options) == 0 {
		return defaultComment
	}
	return options[rng.Intn(len(options))]
}

// React returns reactions from one or two randomly chosen judges for a
// trade event. The rng is supplied by the caller so sessions can be
// deterministic under test.
func React(rng *rand.Rand, d domain.Decision) []Comment {
	count := 1 + rng.Intn(2)
	order := rng.Perm(len(Panel))

	comments := make([]Comment, 0, count)
	for _, idx := range order[:count] {
		j := Panel[idx]
		comments = append(comments, Comment{
			Judge:     j.ID,
			Text:      commentFor(rng, j.ID, d),
			Timestamp: time.Now().UnixMilli(),
		})
	}
	return comments
}
