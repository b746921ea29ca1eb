package types

// Envelope is the wire shape every endpoint answers with. Count is only set
// on listing responses; Error only on failures.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Error   string `json:"error,omitempty"`
}
