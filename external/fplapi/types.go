package fplapi

// bootstrapPayload mirrors the subset of bootstrap-static the service
// consumes. Slices stay nil when the upstream omits the key, which the
// mapper treats as a malformed payload.
type bootstrapPayload struct {
	Elements     []bootstrapElement `json:"elements"`
	Teams        []bootstrapTeam    `json:"teams"`
	ElementTypes []bootstrapRole    `json:"element_types"`
	Events       []bootstrapEvent   `json:"events"`
}

type bootstrapElement struct {
	ID                int    `json:"id"`
	FirstName         string `json:"first_name"`
	SecondName        string `json:"second_name"`
	WebName           string `json:"web_name"`
	Team              int    `json:"team"`
	ElementType       int    `json:"element_type"`
	NowCost           int    `json:"now_cost"`
	TotalPoints       int    `json:"total_points"`
	GoalsScored       int    `json:"goals_scored"`
	Assists           int    `json:"assists"`
	CleanSheets       int    `json:"clean_sheets"`
	Minutes           int    `json:"minutes"`
	Bonus             int    `json:"bonus"`
	Saves             int    `json:"saves"`
	GoalsConceded     int    `json:"goals_conceded"`
	YellowCards       int    `json:"yellow_cards"`
	RedCards          int    `json:"red_cards"`
	Form              string `json:"form"`
	SelectedByPercent string `json:"selected_by_percent"`
	ICTIndex          string `json:"ict_index"`
	Influence         string `json:"influence"`
	Creativity        string `json:"creativity"`
	Threat            string `json:"threat"`
	PointsPerGame     string `json:"points_per_game"`
	TransfersIn       int    `json:"transfers_in"`
	TransfersOut      int    `json:"transfers_out"`
	Status            string `json:"status"`
	News              string `json:"news"`
}

type bootstrapTeam struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type bootstrapRole struct {
	ID           int    `json:"id"`
	SingularName string `json:"singular_name"`
}

type bootstrapEvent struct {
	ID        int  `json:"id"`
	IsCurrent bool `json:"is_current"`
}

type elementSummaryPayload struct {
	HistoryPast []pastSeasonRow `json:"history_past"`
}

type pastSeasonRow struct {
	SeasonName  string `json:"season_name"`
	TotalPoints int    `json:"total_points"`
	Minutes     int    `json:"minutes"`
	GoalsScored int    `json:"goals_scored"`
	Assists     int    `json:"assists"`
	CleanSheets int    `json:"clean_sheets"`
}
