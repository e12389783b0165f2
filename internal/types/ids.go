// internal/types/ids.go
package types

import (
	"github.com/google/uuid"
)

type ConnID string
type SubscriptionID string
type EntryID string

func NewConnID() ConnID {
	return ConnID(uuid.New().String())
}

func NewSubscriptionID() SubscriptionID {
	return SubscriptionID(uuid.New().String())
}

func NewEntryID() EntryID {
	return EntryID(uuid.New().String())
}
