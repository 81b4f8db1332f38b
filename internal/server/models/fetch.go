package models

// FetchResult is a successful upstream response as relayed to the caller.
// Data holds decoded JSON when the body parses as JSON and the body text
// otherwise.
type FetchResult struct {
	Status  int               `json:"status"`
	Headers map[string]string `json:"headers"`
	Data    any               `json:"data"`
}
