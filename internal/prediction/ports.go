package prediction

import "context"

// UserProfile is the request payload. Every field is a pointer so that an
// absent field (nil) stays distinguishable from an explicit false or "".
type UserProfile struct {
	Name *string `json:"name" validate:"required"`
	Age  *int    `json:"age" validate:"required"`

	SchoolInterest     *bool   `json:"school_interest,omitempty"`
	CareerDream        *string `json:"career_dream,omitempty"`
	Friendships        *bool   `json:"friendships,omitempty"`
	Struggles          *string `json:"struggles,omitempty"`
	CareerPath         *string `json:"career_path,omitempty"`
	RelationshipStatus *bool   `json:"relationship_status,omitempty"`
	FutureGoals        *string `json:"future_goals,omitempty"`
	LifeAchievement    *string `json:"life_achievement,omitempty"`
	WorkLifeBalance    *bool   `json:"work_life_balance,omitempty"`
	FinancialState     *bool   `json:"financial_state,omitempty"`
	LegacyThoughts     *string `json:"legacy_thoughts,omitempty"`
	RetirementPlans    *bool   `json:"retirement_plans,omitempty"`
	HealthAndWellness  *bool   `json:"health_and_wellness,omitempty"`
	Spirituality       *bool   `json:"spirituality,omitempty"`
	PeaceOfMind        *bool   `json:"peace_of_mind,omitempty"`
	LifeReflection     *string `json:"life_reflection,omitempty"`
}

// Service renders a profile and asks the completion provider for a prediction.
type Service interface {
	Predict(ctx context.Context, profile UserProfile) (string, error)
}
