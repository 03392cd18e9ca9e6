package workers

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/Brighttier/Chatbot-Peptides-sub001/config"
	"github.com/Brighttier/Chatbot-Peptides-sub001/models"
	"github.com/Brighttier/Chatbot-Peptides-sub001/sales"
	"github.com/Brighttier/Chatbot-Peptides-sub001/tools"

	"github.com/jinzhu/gorm"
	"github.com/rs/zerolog/log"
)

// StartMessagesProcessor starts a loop that answers pending inbound messages
// whose debounce window has elapsed.
func StartMessagesProcessor(db *gorm.DB, cfg config.SalesConfiguration) {
	go func() {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()

		for range ticker.C {
			processDueMessages(db, cfg)
		}
	}()
}

func processDueMessages(db *gorm.DB, cfg config.SalesConfiguration) {
	now := time.Now()

	var msgs []models.Message
	if err := db.
		Where("status = ? AND sender = ?", models.MESSAGE_STATUS_PENDING, models.MESSAGE_SENDER_USER).
		Where("scheduled_at IS NOT NULL AND scheduled_at <= ?", now).
		Order("scheduled_at asc, id asc").
		Limit(50).
		Find(&msgs).Error; err != nil {
		log.Error().Err(err).Msg("messages worker: query error")
		return
	}

	handled := map[int64]bool{}
	for _, msg := range msgs {
		if handled[msg.ConversationID] {
			continue
		}
		handled[msg.ConversationID] = true
		go handleConversation(db, cfg, msg.ConversationID)
	}
}

// handleConversation claims every pending message in the conversation,
// answers them with one combined AI reply, relays it, and runs sale
// detection over the outbound text as well.
func handleConversation(db *gorm.DB, cfg config.SalesConfiguration, conversationID int64) {
	var pending []models.Message
	if err := db.
		Where("conversation_id = ? AND status = ? AND sender = ?",
			conversationID, models.MESSAGE_STATUS_PENDING, models.MESSAGE_SENDER_USER).
		Order("id asc").
		Find(&pending).Error; err != nil || len(pending) == 0 {
		return
	}

	// optimistic claim: only proceed with the rows we actually flipped
	claimed := make([]models.Message, 0, len(pending))
	for _, m := range pending {
		res := db.Model(&models.Message{}).
			Where("id = ? AND status = ?", m.ID, models.MESSAGE_STATUS_PENDING).
			Update("status", models.MESSAGE_STATUS_PROCESSING)
		if res.Error == nil && res.RowsAffected > 0 {
			claimed = append(claimed, m)
		}
	}
	if len(claimed) == 0 {
		return
	}

	var conv models.Conversation
	if err := db.First(&conv, conversationID).Error; err != nil {
		return
	}

	texts := make([]string, 0, len(claimed))
	for _, m := range claimed {
		texts = append(texts, strings.TrimSpace(m.Text))
	}
	question := strings.Join(texts, "\n")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	replyText, err := tools.GenerateAIReply(ctx, question)
	if err != nil {
		log.Error().Err(err).Int64("conversation_id", conv.ID).Msg("messages worker: openai error")
		replyText = "Sorry, I had trouble generating a reply. A team member will follow up shortly."
	}

	reply := models.Message{
		ConversationID: conv.ID,
		Sender:         models.MESSAGE_SENDER_ASSISTANT,
		Text:           replyText,
		Status:         models.MESSAGE_STATUS_DONE,
	}
	if err := db.Create(&reply).Error; err != nil {
		log.Error().Err(err).Int64("conversation_id", conv.ID).Msg("messages worker: reply write failed")
	}

	// Instagram conversations get the reply pushed back through the relay;
	// widget conversations poll for it.
	if conv.Channel() == models.CHANNEL_INSTAGRAM {
		recipient := strings.TrimPrefix(conv.UserMobileNumber, models.INSTAGRAM_NUMBER_PREFIX)
		if err := tools.SendInstagramText(ctx, recipient, replyText); err != nil {
			log.Error().Err(err).Int64("conversation_id", conv.ID).Msg("messages worker: instagram send error")
		}
	}

	// Keep the rep in the loop over SMS.
	if conv.RepPhoneNumber != "" {
		notice := "[conv #" + strconv.FormatInt(conv.ID, 10) + "] customer: " + question
		if err := tools.SendSMSText(ctx, conv.RepPhoneNumber, notice); err != nil {
			log.Error().Err(err).Int64("conversation_id", conv.ID).Msg("messages worker: sms notify error")
		}
	}

	// Outbound text passes through the detector too; never blocks the reply.
	mgr := sales.NewManager(db, cfg)
	if _, err := mgr.TrackMessage(conv.ID, reply); err != nil {
		log.Warn().Err(err).Int64("conversation_id", conv.ID).Msg("messages worker: sale tracking failed (ignored)")
	}

	t := time.Now()
	for _, m := range claimed {
		_ = db.Model(&models.Message{}).Where("id = ?", m.ID).Updates(map[string]any{
			"status":       models.MESSAGE_STATUS_DONE,
			"processed_at": &t,
		}).Error
	}
}
