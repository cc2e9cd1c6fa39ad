package server

import (
	"gridroute/core"
	"gridroute/pathfinding"
)

// Message types exchanged over the WebSocket.
const (
	TypeRoute = "route"
	TypePath  = "path"
	TypeError = "error"
)

type clientMessage struct {
	Type    string               `json:"type"`
	ID      string               `json:"id"`
	Request *pathfinding.Request `json:"request"`
}

type pathMessage struct {
	Type     string       `json:"type"`
	ID       string       `json:"id"`
	Points   []core.Point `json:"points"`
	Found    bool         `json:"found"`
	Expanded int          `json:"expanded"`
}

type errorMessage struct {
	Type  string `json:"type"`
	ID    string `json:"id,omitempty"`
	Error string `json:"error"`
}

type statsMessage struct {
	Status string `json:"status"`
	Hits   int    `json:"hits"`
	Misses int    `json:"misses"`
	Evicts int    `json:"evictions"`
	Size   int    `json:"size"`
}
