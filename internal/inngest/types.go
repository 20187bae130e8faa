package inngest

import (
	"github.com/inngest/inngestgo"
)

// EventClubDataChanged asks for a reload of the club feed.
const EventClubDataChanged = "club/data.changed"

type client struct {
	inngestClient inngestgo.Client
	feed          Refresher
	flusher       Flusher
}

// FlushResult is what the flush function reports back to Inngest.
type FlushResult struct {
	Pending int  `json:"pending"`
	Flushed bool `json:"flushed"`
}
