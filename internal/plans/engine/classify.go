package engine

import "strings"

// Rule maps any of its keywords to a label.
type Rule struct {
	Keywords []string
	Label    string
}

func (r Rule) matches(text string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// sectionRules classify a featured workout by its tags. Rules run in order and
// the last match wins, so strength keywords override cardio ones.
var sectionRules = [...]Rule{
	{Keywords: []string{"cardio", "hiit", "conditioning"}, Label: "Cardio"},
	{Keywords: []string{"strength", "hypertrophy", "upper", "lower"}, Label: "Strength"},
}

// featuredCardioRules decide whether an unclassified featured item counts as
// cardio minutes, by its title.
var featuredCardioRules = [...]Rule{
	{Keywords: []string{"hiit", "run", "bike"}, Label: TypeCardio},
}

const featuredSection = "Featured"

// SectionRules returns a copy of the tag classification rules in evaluation order.
func SectionRules() []Rule { return copyRules(sectionRules[:]) }

// FeaturedCardioRules returns a copy of the title rules for featured items.
func FeaturedCardioRules() []Rule { return copyRules(featuredCardioRules[:]) }

func copyRules(rules []Rule) []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		out[i] = Rule{Keywords: append([]string(nil), r.Keywords...), Label: r.Label}
	}
	return out
}

// classify applies rules to text and returns the label of the last rule that
// matched, or fallback.
func classify(rules []Rule, text, fallback string) string {
	label := fallback
	for _, r := range rules {
		if r.matches(text) {
			label = r.Label
		}
	}
	return label
}

// ClassifySection returns "Cardio", "Strength" or "Featured" for a tag set.
func ClassifySection(tags []string) string {
	return classify(sectionRules[:], strings.ToLower(strings.Join(tags, " ")), featuredSection)
}
