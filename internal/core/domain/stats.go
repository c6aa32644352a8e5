package domain

// StatusCounts is a derived snapshot over a scope of orders,
// recomputed on every request. Total equals the sum of the three
// status buckets by construction.
type StatusCounts struct {
	Total     int `json:"total"`
	Ongoing   int `json:"ongoing"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}
