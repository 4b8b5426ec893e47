// Package wire defines the messages exchanged during a variable sync round
// and their JSON codec. It is internal: framing beyond this codec belongs to
// the transport collaborator.
package wire

import (
	"encoding/json"
	"fmt"
)

// VarMeta announces one pending host variable to the group. It carries
// everything needed to agree on the round's resolved set; plaintext never
// travels here.
type VarMeta struct {
	Name       string `json:"name"`
	Owner      uint32 `json:"owner"`
	Visibility int    `json:"visibility"`
	PtType     int    `json:"pt_type"`
	Field      int    `json:"field"`
	Shape      []int  `json:"shape"`
}

// Announce is the all-to-all metadata message opening a sync round.
type Announce struct {
	Vars []VarMeta `json:"vars"`
}

// ShareItem delivers one party's chunk set (or a public replica) for one
// variable.
type ShareItem struct {
	Name   string   `json:"name"`
	Chunks [][]byte `json:"chunks"`
}

// Payload batches every ShareItem one owner has for one receiver, so each
// ordered party pair exchanges at most one message per round.
type Payload struct {
	Items []ShareItem `json:"items"`
}

// Marshal serializes a message to JSON.
func Marshal[T any](msg *T) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("wire: marshal %T: %w", msg, err)
	}
	return data, nil
}

// Unmarshal deserializes a message from JSON.
func Unmarshal[T any](data []byte) (*T, error) {
	var msg T
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("wire: unmarshal %T: %w", &msg, err)
	}
	return &msg, nil
}
