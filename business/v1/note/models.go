package note

import "time"

// Note is a single stored memory entry
type Note struct {
	Id         uint64    `json:"id" example:"1729252800000"`
	Content    string    `json:"content" example:"Remember to call mom about the birthday party"`
	Category   string    `json:"category" example:"personal"`
	Tags       []string  `json:"tags" example:"remember,birthday,party"`
	Importance int       `json:"importance" example:"3"`
	CreatedAt  time.Time `json:"createdAt" example:"2006-01-02T15:04:05Z"`
}

// NewNote is what callers hand to Store.Add. Category and Importance are optional,
// an empty Category is inferred from the content and a zero Importance is drawn
// from the store's importance source.
type NewNote struct {
	Content    string `json:"content" example:"Prepare slides for the client meeting"`
	Category   string `json:"category,omitempty" example:"work"`
	Importance int    `json:"importance,omitempty" example:"4"`
}

// Stats is a read-only aggregate over the collection
type Stats struct {
	Total            int            `json:"total" example:"12"`
	Categories       int            `json:"categories" example:"4"`
	ByCategory       map[string]int `json:"byCategory"`
	MostUsedCategory string         `json:"mostUsedCategory" example:"work"`
	Important        int            `json:"important" example:"3"`
	Today            int            `json:"today" example:"2"`
}

// Profile holds the display name of the collection owner
type Profile struct {
	Name string `json:"name" example:"User"`
}

// Event is the envelope of messages consumed from the notes topic
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// DeleteNote is the payload of a "delete" event
type DeleteNote struct {
	Id uint64 `json:"id"`
}

func (n Note) clone() Note {
	c := n
	c.Tags = append([]string{}, n.Tags...)
	return c
}
