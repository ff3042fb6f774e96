package Telegram

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"Workly/Models"
	"Workly/Stats"
)

// Evidence media kinds accepted from workers.
const (
	MediaPhoto    = "photo"
	MediaVideo    = "video"
	MediaVoice    = "voice"
	MediaAudio    = "audio"
	MediaDocument = "document"
	MediaText     = "text"
)

// SendCompletionEvidence forwards a worker's evidence to the branch group
// with the standard caption.
func (c *Client) SendCompletionEvidence(chatID int64, mediaType, fileID, text, caption string) error {
	switch mediaType {
	case MediaPhoto:
		return c.SendPhoto(chatID, fileID, caption)
	case MediaVideo:
		return c.SendVideo(chatID, fileID, caption)
	case MediaVoice:
		return c.SendVoice(chatID, fileID, caption)
	case MediaAudio:
		return c.SendAudio(chatID, fileID, caption)
	case MediaDocument:
		return c.SendDocument(chatID, fileID, caption)
	case MediaText:
		return c.SendMessage(chatID, fmt.Sprintf("%s\n\n💬 Xabar: %s", caption, text))
	}
	return fmt.Errorf("unsupported media type %q", mediaType)
}

// reportSummary is the JSON shape stored in the report audit log.
type reportSummary struct {
	Roles   []Stats.RoleStat   `json:"roles"`
	Workers []Stats.WorkerStat `json:"workers"`
}

// SendDailyStatistics computes and delivers the report for every branch. A
// branch without a group binding or with a failed send is logged and skipped;
// it never blocks the remaining branches.
func (c *Client) SendDailyStatistics(db *gorm.DB, date time.Time, opts Stats.ReportOptions) {
	branches, err := Models.GetAllBranches(db)
	if err != nil {
		log.Println("Error fetching branches for daily report:", err)
		return
	}

	for _, branch := range branches {
		chatID, err := Models.GetGroupChatID(db, branch.ID)
		if errors.Is(err, Models.ErrNotFound) {
			log.Printf("No group bound for branch %s, skipping report", branch.Name)
			continue
		}
		if err != nil {
			log.Printf("Error resolving group for branch %s: %v", branch.Name, err)
			continue
		}

		roleStats, workerStats, err := Stats.DailyStatistics(db, branch.ID, date)
		if err != nil {
			log.Printf("Error computing statistics for branch %s: %v", branch.Name, err)
			continue
		}
		if len(workerStats) == 0 {
			continue
		}

		summary, _ := json.Marshal(reportSummary{Roles: roleStats, Workers: workerStats})
		message := Stats.FormatDailyReport(branch.Name, roleStats, workerStats, date, opts)

		sendErr := c.SendMessage(chatID, message)
		errText := ""
		if sendErr != nil {
			errText = sendErr.Error()
			log.Printf("Error delivering report to branch %s: %v", branch.Name, sendErr)
		} else {
			log.Printf("Daily report delivered for branch %s", branch.Name)
		}

		if err := Models.LogReport(db, branch.ID, date, summary, sendErr == nil, errText); err != nil {
			log.Printf("Error writing report log for branch %s: %v", branch.Name, err)
		}
	}
}
