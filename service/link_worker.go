package service

import (
	"encoding/json"

	"github.com/streadway/amqp"

	"trackly-server/config"
	"trackly-server/models"
)

// LinkTitleMessage asks the worker to (re)resolve titles for one entry.
type LinkTitleMessage struct {
	EntryID int64 `json:"entry_id"`
}

// PublishLinkTitleJob queues an entry for title resolution. Best effort: a
// publish failure is logged, the entry just keeps its bare URLs.
func PublishLinkTitleJob(entryID int64) {
	body, _ := json.Marshal(LinkTitleMessage{EntryID: entryID})
	err := config.MQChannel.Publish("", config.LinkTitleQueue, false, false, amqp.Publishing{
		ContentType: "application/json", Body: body,
	})
	if err != nil {
		config.Log.Warn().Err(err).Int64("entry_id", entryID).Msg("link title publish failed")
	}
}

// StartLinkTitleWorker consumes the title queue: for each entry it fetches
// the titles of all URLs in its notes and stores them on the entry's links.
func StartLinkTitleWorker() {
	msgs, err := config.MQChannel.Consume(config.LinkTitleQueue, "", true, false, false, false, nil)
	if err != nil {
		config.Log.Fatal().Err(err).Msg("link title consume failed")
	}

	go func() {
		config.Log.Info().Msg("link title worker started")
		for d := range msgs {
			var msg LinkTitleMessage
			if err := json.Unmarshal(d.Body, &msg); err != nil {
				config.Log.Warn().Err(err).Msg("bad link title message")
				continue
			}

			var entry models.Entry
			if err := config.DB.First(&entry, msg.EntryID).Error; err != nil {
				// Entry deleted before the worker got to it.
				continue
			}

			urls := ExtractURLs(entry.Notes)
			if len(urls) == 0 {
				continue
			}

			links := ResolveTitles(config.Ctx, urls)
			linksJSON, _ := json.Marshal(links)
			err := config.DB.Model(&models.Entry{}).Where("id = ?", entry.ID).
				Update("links", string(linksJSON)).Error
			if err != nil {
				config.Log.Warn().Err(err).Int64("entry_id", entry.ID).Msg("link update failed")
				continue
			}

			config.Log.Info().Int64("entry_id", entry.ID).Int("links", len(links)).Msg("titles resolved")
		}
	}()
}
