package dto

type TypeCount struct {
	EventType string `json:"event_type"`
	Count     int    `json:"count"`
}

type EventStatsResponse struct {
	Total     int         `json:"total"`
	Processed int         `json:"processed"`
	Failed    int         `json:"failed"`
	ByType    []TypeCount `json:"by_type"`
}
