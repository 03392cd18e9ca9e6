package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	dbpkg "github.com/Brighttier/Chatbot-Peptides-sub001/db"
	"github.com/Brighttier/Chatbot-Peptides-sub001/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
	"github.com/rs/zerolog/log"
)

// debounceWindow delays reply generation so rapid-fire messages get one
// combined answer.
const debounceWindow = 3 * time.Second

type WebhookPayload struct {
	Object string `json:"object"`
	Entry  []struct {
		ID      string `json:"id"`
		Changes []struct {
			Field string `json:"field"`
			Value struct {
				Messages []struct {
					From string `json:"from"`
					ID   string `json:"id"`
					Type string `json:"type"`
					Text struct {
						Body string `json:"body"`
					} `json:"text"`
				} `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

type IncomingTextMessage struct {
	From string
	ID   string
	Text string
}

func extractTextMessages(payload WebhookPayload) []IncomingTextMessage {
	var out []IncomingTextMessage

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			if strings.TrimSpace(change.Field) != "messages" {
				continue
			}
			for _, m := range change.Value.Messages {
				if strings.ToLower(strings.TrimSpace(m.Type)) != "text" {
					continue
				}
				body := strings.TrimSpace(m.Text.Body)
				if body == "" {
					continue
				}
				out = append(out, IncomingTextMessage{
					From: strings.TrimSpace(m.From),
					ID:   strings.TrimSpace(m.ID),
					Text: body,
				})
			}
		}
	}

	return out
}

// verifyProviderSignature validates the raw body against the provider's
// X-Hub-Signature-256 header (sha256=<hex>, HMAC with the app secret).
func verifyProviderSignature(c *gin.Context, rawBody []byte) (bool, string) {
	secret := strings.TrimSpace(os.Getenv("WEBHOOK_APP_SECRET"))
	if secret == "" {
		return false, "missing WEBHOOK_APP_SECRET"
	}

	sig := strings.TrimSpace(c.GetHeader("X-Hub-Signature-256"))
	if sig == "" {
		return false, "missing X-Hub-Signature-256"
	}
	if !strings.HasPrefix(sig, "sha256=") {
		return false, "invalid X-Hub-Signature-256 format"
	}

	providedHex := strings.TrimPrefix(sig, "sha256=")
	provided, err := hex.DecodeString(providedHex)
	if err != nil {
		return false, "invalid signature hex"
	}

	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write(rawBody)
	expected := mac.Sum(nil)

	if !hmac.Equal(provided, expected) {
		return false, "signature mismatch"
	}

	return true, ""
}

// GET /api/webhook
func WebhookVerify(c *gin.Context) {
	verifyToken := os.Getenv("WEBHOOK_VERIFY_TOKEN")
	if verifyToken == "" {
		RespondError(c, "WEBHOOK_VERIFY_TOKEN not set", http.StatusInternalServerError)
		return
	}

	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token == verifyToken && challenge != "" {
		c.String(http.StatusOK, "%s", challenge)
		return
	}

	RespondError(c, "forbidden", http.StatusForbidden)
}

// POST /api/webhook - Instagram messaging relay inbound
func WebhookUpdate(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	// Read raw body once so we can validate the signature.
	raw, err := c.GetRawData()
	if err != nil {
		RespondError(c, "failed to read body", http.StatusBadRequest)
		return
	}

	if ok, reason := verifyProviderSignature(c, raw); !ok {
		RespondError(c, "forbidden: "+reason, http.StatusForbidden)
		return
	}

	var payload WebhookPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		RespondError(c, "invalid json", http.StatusBadRequest)
		return
	}

	msgs := extractTextMessages(payload)

	// ack the provider fast
	c.String(http.StatusOK, "EVENT_RECEIVED")

	for _, m := range msgs {
		mobile := models.INSTAGRAM_NUMBER_PREFIX + m.From
		ingestUserMessage(db, mobile, "", m.ID, m.Text)
	}
}

type WidgetMessageRequest struct {
	MobileNumber string `json:"mobileNumber"`
	CustomerName string `json:"customerName"`
	Text         string `json:"text"`
}

// POST /api/widget/messages - website chat widget inbound
func WidgetMessage(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var req WidgetMessageRequest
	if err := c.BindJSON(&req); err != nil {
		RespondError(c, "invalid json", http.StatusBadRequest)
		return
	}
	req.Text = strings.TrimSpace(req.Text)
	req.MobileNumber = strings.TrimSpace(req.MobileNumber)
	if req.MobileNumber == "" || req.Text == "" {
		RespondError(c, "mobileNumber and text are required", http.StatusBadRequest)
		return
	}

	// Widget messages have no provider id; mint one.
	conv, msg := ingestUserMessage(db, req.MobileNumber, req.CustomerName, uuid.NewString(), req.Text)
	if conv == nil {
		RespondError(c, "failed to store message", http.StatusInternalServerError)
		return
	}

	RespondSuccess(c, gin.H{
		"conversationId": conv.ID,
		"messageId":      msg.MessageID,
	})
}

type RepSMSRequest struct {
	From string `form:"From" json:"From"`
	Body string `form:"Body" json:"Body"`
}

// POST /api/webhook/sms - sales rep inbound SMS. The rep addresses a
// conversation with a leading "#<conversationId>" token, e.g.
// "#42 sold! sending payment link".
func RepSMSInbound(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var req RepSMSRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, "invalid payload", http.StatusBadRequest)
		return
	}

	body := strings.TrimSpace(req.Body)
	if !strings.HasPrefix(body, "#") {
		RespondError(c, "message must start with #<conversationId>", http.StatusBadRequest)
		return
	}
	parts := strings.SplitN(body[1:], " ", 2)
	convID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || convID <= 0 || len(parts) < 2 || strings.TrimSpace(parts[1]) == "" {
		RespondError(c, "message must start with #<conversationId> followed by text", http.StatusBadRequest)
		return
	}
	text := strings.TrimSpace(parts[1])

	var conv models.Conversation
	if err := db.First(&conv, convID).Error; err != nil {
		RespondError(c, "conversation not found", http.StatusNotFound)
		return
	}

	// Rep replies go out directly; the worker only handles assistant replies.
	msg := models.Message{
		ConversationID: conv.ID,
		MessageID:      uuid.NewString(),
		Sender:         models.MESSAGE_SENDER_REP,
		Text:           text,
		Status:         models.MESSAGE_STATUS_DONE,
	}
	if err := db.Create(&msg).Error; err != nil {
		RespondError(c, "failed to store message", http.StatusInternalServerError)
		return
	}

	trackBestEffort(db, conv.ID, msg)

	c.String(http.StatusOK, "OK")
}

// ingestUserMessage persists one inbound customer message as pending for the
// messages worker and runs sale tracking over it. Returns nils only when the
// write failed.
func ingestUserMessage(db *gorm.DB, mobile, customerName, messageID, text string) (*models.Conversation, *models.Message) {
	conv, err := findOrCreateConversation(db, mobile, customerName)
	if err != nil {
		log.Error().Err(err).Str("mobile", mobile).Msg("webhook: conversation lookup failed")
		return nil, nil
	}

	scheduled := time.Now().Add(debounceWindow)
	msg := models.Message{
		ConversationID: conv.ID,
		MessageID:      messageID,
		Sender:         models.MESSAGE_SENDER_USER,
		Text:           text,
		Status:         models.MESSAGE_STATUS_PENDING,
		ScheduledAt:    &scheduled,
	}
	if err := db.Create(&msg).Error; err != nil {
		log.Error().Err(err).Int64("conversation_id", conv.ID).Msg("webhook: message write failed")
		return nil, nil
	}

	trackBestEffort(db, conv.ID, msg)

	return conv, &msg
}

// trackBestEffort runs sale detection without ever failing the messaging
// path: commission bookkeeping must not block user-facing traffic.
func trackBestEffort(db *gorm.DB, conversationID int64, msg models.Message) {
	mgr := newSalesManager(db)
	if _, err := mgr.TrackMessage(conversationID, msg); err != nil {
		log.Warn().Err(err).
			Int64("conversation_id", conversationID).
			Msg("sale tracking failed (ignored)")
	}
}

func findOrCreateConversation(db *gorm.DB, mobile, customerName string) (*models.Conversation, error) {
	var conv models.Conversation
	err := db.Where("user_mobile_number = ?", mobile).First(&conv).Error
	if err == nil {
		return &conv, nil
	}
	if !gorm.IsRecordNotFoundError(err) {
		return nil, err
	}

	conv = models.Conversation{
		UserMobileNumber: mobile,
		CustomerName:     customerName,
		RepName:          getenv("DEFAULT_REP_NAME", ""),
		RepPhoneNumber:   getenv("DEFAULT_REP_PHONE", ""),
	}
	if err := db.Create(&conv).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}
