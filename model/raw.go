package model

import (
	"encoding/json"
	"time"
)

type RawResponse struct {
	Service   string
	Query     string
	FetchedAt time.Time
	Payload   json.RawMessage
}
