package models

// Goal is a habit the user committed to. Strategy and SubPlans are empty
// until the plan-generation response fills them in; the user may edit or
// delete the goal afterward.
type Goal struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Emoji         string   `json:"emoji"`
	IsCustom      bool     `json:"is_custom"`
	Strategy      string   `json:"strategy"`
	SubPlans      []string `json:"sub_plans"`
	GeneratedPlan []string `json:"generated_plan,omitempty"`
}
