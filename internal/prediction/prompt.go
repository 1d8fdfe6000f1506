package prediction

import (
	"fmt"
	"strings"
)

// BuildPrompt renders the profile summary followed by PredictionInstruction.
// Only eight of the optional fields take part in the summary.
func BuildPrompt(p UserProfile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Name: %s, Age: %d\n", stringValue(p.Name), intValue(p.Age))
	fmt.Fprintf(&b,
		"School Interest: %s, Career Path: %s, Relationship Status: %s, Struggles Faced: %s, "+
			"Life Achievement: %s, Legacy Thoughts: %s, Health and Wellness: %s, Spirituality: %s\n",
		yesNo(p.SchoolInterest),
		orNA(p.CareerPath),
		yesNo(p.RelationshipStatus),
		orNA(p.Struggles),
		orNA(p.LifeAchievement),
		orNA(p.LegacyThoughts),
		yesNo(p.HealthAndWellness),
		yesNo(p.Spirituality),
	)
	b.WriteString(PredictionInstruction)

	return b.String()
}

func yesNo(v *bool) string {
	if v != nil && *v {
		return "Yes"
	}
	return "No"
}

func orNA(v *string) string {
	if v == nil || *v == "" {
		return "N/A"
	}
	return *v
}

func stringValue(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func intValue(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
