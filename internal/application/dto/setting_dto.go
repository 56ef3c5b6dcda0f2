package dto

// UpsertSettingRequest ayar yazma girdisi. Category boşsa bilinen varsayılan ya da general.
type UpsertSettingRequest struct {
	Value       string `json:"value"`
	Category    string `json:"category"`
	Description string `json:"description"`
}
