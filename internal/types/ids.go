// internal/types/ids.go
package types

import "github.com/google/uuid"

type UserID string
type ChannelID string
type MessageID string
type EventID string
type RunID string

func NewRunID() RunID {
	return RunID(uuid.New().String())
}
