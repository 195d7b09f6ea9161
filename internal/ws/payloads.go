package ws

// client → server
type Inbound struct {
	Type  string `json:"type"`
	Value string `json:"value,omitempty"` // pick: rock | paper | scissor
}

// server → client
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
