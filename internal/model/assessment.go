package model

import "time"

// Assessment is one persisted engine run: the input snapshot and the result
// it produced. The engine itself never writes these; the CLI and HTTP
// surfaces do.
type Assessment struct {
	ID        string         `json:"id"`
	Label     string         `json:"label"`
	Inputs    ForensicInputs `json:"inputs"`
	Result    OpterraResult  `json:"result"`
	CreatedAt time.Time      `json:"created_at"`
}
