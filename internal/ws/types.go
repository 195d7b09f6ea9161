package ws

const (
	// client - server
	MsgPick    = "pick"
	MsgRestart = "restart"
	MsgState   = "state"
	MsgPing    = "ping"

	// server - client
	MsgReady  = "ready"
	MsgResult = "result"
	MsgError  = "error"
	MsgPong   = "pong"
)
