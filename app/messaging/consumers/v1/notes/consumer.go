package notes

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/onelastai/memory-notes/business/v1/note"
	"github.com/onelastai/memory-notes/sys"
	"gocloud.dev/pubsub"
)

const (
	EventCreate = "create"
	EventDelete = "delete"
)

// Consume receives note events until ctx is done, running at most maxWorkers handlers at once.
// Every message is acked, malformed ones are logged and dropped.
func Consume(ctx context.Context, sub *pubsub.Subscription, maxWorkers int) error {
	logger := sys.R.Log
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	workers := make(chan int, maxWorkers)

	var err error
	for {
		var message *pubsub.Message
		message, err = sub.Receive(ctx)
		if err != nil {
			break
		}

		workers <- 1
		go func(m *pubsub.Message) {
			defer func() { <-workers }()
			defer m.Ack()

			logger.Infof("message received: %s", string(m.Body))

			// detached from ctx, an event already received is applied even during shutdown
			handleCtx, cancel := handleContext()
			defer cancel()
			if err := Handle(handleCtx, m.Body); err != nil {
				logger.Error("failed to handle message: ", err)
			}
		}(message)
	}

	for w := 0; w < maxWorkers; w++ {
		workers <- 1
	}

	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return nil
	}
	return err
}

func handleContext() (context.Context, context.CancelFunc) {
	if timeout := sys.Configs.Messaging.HandleTimeout; timeout > 0 {
		return context.WithTimeout(context.Background(), timeout)
	}
	return context.WithCancel(context.Background())
}

// Handle applies a single event body to the note store
func Handle(ctx context.Context, body []byte) error {
	var e struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &e); err != nil {
		return errors.New("failed to parse body: " + err.Error())
	}

	switch e.Type {
	case EventCreate:
		var c note.NewNote
		if err := json.Unmarshal(e.Data, &c); err != nil {
			return errors.New("failed to parse create data: " + err.Error())
		}
		created, err := sys.R.Notes.Add(ctx, c)
		if err != nil {
			return err
		}
		sys.R.Log.Infow("note created", "id", created.Id, "category", created.Category)
	case EventDelete:
		var d note.DeleteNote
		if err := json.Unmarshal(e.Data, &d); err != nil {
			return errors.New("failed to parse delete data: " + err.Error())
		}
		deleted, err := sys.R.Notes.Delete(ctx, d.Id)
		if err != nil {
			return err
		}
		sys.R.Log.Infow("note deleted", "id", d.Id, "found", deleted)
	default:
		return errors.New("unknown event type: " + e.Type)
	}
	return nil
}
