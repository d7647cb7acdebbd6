/*
Package server implements msgpack IPC for n-gram word completion.

The server reads a stream of msgpack maps from stdin and writes one msgpack map per
request to stdout. Requests are processed sequentially in arrival order, with timing
info included in completion responses. Logs go to stderr only.

# IPC

Before reading anything the server writes a ready frame:

	{"status": "ready"}

Every request carries an ID which is echoed back, an action and the fields that
action needs. Requests without an ID get a generated "req-<uuid>" one. An empty
action means completion:

	{"id": "req_001", "p": "th", "l": 5}

The server responds with suggestions ranked by model probability, t is in microseconds:

	{"id": "req_001", "s": [{"w": "the", "r": 1, "p": 0.41}, {"w": "then", "r": 2, "p": 0.12}], "c": 2, "t": 87}

The words action answers with the same shape, listing corpus words that start with
the prefix by frequency instead of running the model search:

	{"id": "req_002", "a": "words", "p": "th", "l": 5}

Scoring a complete word returns both linear and log probability:

	{"id": "req_003", "a": "score", "w": "then"}
	{"id": "req_003", "w": "then", "p": 0.12, "lp": -2.12}

Model and cache counters:

	{"id": "req_004", "a": "stats"}
	{"id": "req_004", "stats": {"n": 2, "contexts": 27, "vocabulary": 812, ...}}

Liveness:

	{"id": "req_005", "a": "health"}
	{"id": "req_005", "status": "ok"}

# Errors

Failed requests get a short error with an HTTP-like code: 400 for malformed
requests and prefix bounds violations, 404 for unknown actions.

	{"id": "req_006", "e": "prefix exceeds maximum length of 60", "c": 400}

Prefixes rejected by the input filter (numbers only, symbols, repeated letters) are
not errors. They get an empty completion response.
*/
package server

// Request actions
const (
	ActionComplete = "complete"
	ActionWords    = "words"
	ActionScore    = "score"
	ActionStats    = "stats"
	ActionHealth   = "health"
)

// Request is the union of all request shapes. Unused fields are left empty.
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"a,omitempty"`
	Prefix string `msgpack:"p,omitempty"`
	Limit  int    `msgpack:"l,omitempty"`
	Word   string `msgpack:"w,omitempty"`
}

// CompletionSuggestion - minimal suggestion response
type CompletionSuggestion struct {
	Word        string  `msgpack:"w"`
	Rank        uint16  `msgpack:"r"`
	Probability float64 `msgpack:"p"`
}

// CompletionResponse - completion response
type CompletionResponse struct {
	ID          string                 `msgpack:"id"`
	Suggestions []CompletionSuggestion `msgpack:"s"`
	Count       int                    `msgpack:"c"`
	TimeTaken   int64                  `msgpack:"t"`
}

// ScoreResponse carries the probability of a single word
type ScoreResponse struct {
	ID             string  `msgpack:"id"`
	Word           string  `msgpack:"w"`
	Probability    float64 `msgpack:"p"`
	LogProbability float64 `msgpack:"lp"`
}

// StatsResponse carries model, cache and server counters
type StatsResponse struct {
	ID    string         `msgpack:"id"`
	Stats map[string]int `msgpack:"stats"`
}

// StatusResponse is used for the ready frame and health checks
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// CompletionError holds basic error information for failed requests
type CompletionError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
