package personas

import (
	"fmt"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// warningTemplate carries the low/high phrasings for one category. The %s
// placeholder receives the formatted interval bound.
type warningTemplate struct {
	Low  string
	High string
}

var warningTemplates = map[string]warningTemplate{
	"Technical": {
		Low:  "Lowering Technical below %s may exclude core skills and tool proficiency.",
		High: "Raising Technical above %s may overweight hard skills and filter out adaptable talent.",
	},
	"Cognitive": {
		Low:  "Cognitive below %s may reduce emphasis on problem-solving and learning agility.",
		High: "Cognitive above %s may overshadow practical experience and delivery track record.",
	},
	"Values": {
		Low:  "Values below %s may weaken culture alignment and retention likelihood.",
		High: "Values above %s may underweight execution capability and speed to impact.",
	},
	"Behavioral": {
		Low:  "Behavioral below %s may overlook collaboration and stakeholder management.",
		High: "Behavioral above %s may underweight technical autonomy and depth.",
	},
	"Leadership": {
		Low:  "Leadership below %s may limit team direction and decision velocity.",
		High: "Leadership above %s may underweight hands-on contribution and detail orientation.",
	},
	"Communication": {
		Low:  "Communication below %s may hinder cross-functional alignment and clarity.",
		High: "Communication above %s may underweight deep work and builder mindset.",
	},
}

var titleCaser = cases.Title(language.English)

// RenderWeightWarnings maps each out-of-interval category to a human readable
// message, with distinct phrasing for below-minimum and above-maximum and a
// generic fallback for categories without a dedicated template. Categories
// lacking an interval are silently skipped. Output is sorted by category.
func RenderWeightWarnings(weights map[string]float64, intervals map[string]Interval) []string {
	cats := make([]string, 0, len(weights))
	for cat := range weights {
		cats = append(cats, cat)
	}
	sort.Strings(cats)

	var messages []string
	for _, cat := range cats {
		ival, ok := intervals[cat]
		if !ok {
			continue
		}
		w := weights[cat]
		canonical := titleCaser.String(cat)
		switch {
		case w < ival.Min:
			if tpl, ok := warningTemplates[canonical]; ok {
				messages = append(messages, fmt.Sprintf(tpl.Low, percent(ival.Min)))
			} else {
				messages = append(messages, fmt.Sprintf("%s below recommended %s.", canonical, percent(ival.Min)))
			}
		case w > ival.Max:
			if tpl, ok := warningTemplates[canonical]; ok {
				messages = append(messages, fmt.Sprintf(tpl.High, percent(ival.Max)))
			} else {
				messages = append(messages, fmt.Sprintf("%s above recommended %s.", canonical, percent(ival.Max)))
			}
		}
	}
	return messages
}

func percent(v float64) string {
	return fmt.Sprintf("%.0f%%", v*100)
}
