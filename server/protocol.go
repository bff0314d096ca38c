package server

import (
	"encoding/json"

	"github.com/inference-sim/port-sim/sim"
)

// Client to server command types.
const (
	CmdStart     = "start"
	CmdStop      = "stop"
	CmdConfigure = "configure"
)

// Server to client message types.
const (
	MsgSnapshot = "snapshot"
	MsgError    = "error"
)

// Command is one control message from a client. Config is a partial
// configuration document merged over the session's current config.
type Command struct {
	Type   string          `json:"type"`
	Config json.RawMessage `json:"config,omitempty"`
}

// Message is one document sent to a client.
type Message struct {
	Type    string        `json:"type"`
	Session string        `json:"session"`
	Payload *sim.Snapshot `json:"payload,omitempty"`
	Error   string        `json:"error,omitempty"`
}

func snapshotMessage(session string, s sim.Snapshot) Message {
	return Message{Type: MsgSnapshot, Session: session, Payload: &s}
}

func errorMessage(session string, err error) Message {
	return Message{Type: MsgError, Session: session, Error: err.Error()}
}
