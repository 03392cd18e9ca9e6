package sales

import (
	"strconv"
	"time"

	"github.com/Brighttier/Chatbot-Peptides-sub001/config"
	"github.com/Brighttier/Chatbot-Peptides-sub001/models"

	"github.com/jinzhu/gorm"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Actor is the identity stamped onto audit entries.
type Actor struct {
	UID   string `json:"uid"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func ActorFromUser(u models.User) Actor {
	role := u.Role
	if u.Admin {
		role = models.USER_ROLE_ADMIN
	}
	return Actor{
		UID:   strconv.FormatInt(u.ID, 10),
		Name:  u.Name,
		Email: u.Email,
		Role:  role,
	}
}

// SystemActor is used for keyword-detected mutations that no human performed.
var SystemActor = Actor{UID: "system", Name: "keyword-detector", Role: "system"}

// UpdateRequest is the tagged body for PUT /sales/:id. Nil pointers mean
// "leave unchanged". Reason is mandatory whenever Status differs from the
// sale's current status.
type UpdateRequest struct {
	Status     *string  `json:"status"`
	SaleAmount *float64 `json:"saleAmount"`
	Notes      *string  `json:"notes"`
	Reason     string   `json:"reason"`
}

// ManualSaleInput creates an admin-entered sale awaiting review.
type ManualSaleInput struct {
	ConversationID    int64   `json:"conversationId"`
	CustomerName      string  `json:"customerName"`
	CustomerPhone     string  `json:"customerPhone"`
	CustomerInstagram string  `json:"customerInstagram"`
	Channel           string  `json:"channel"`
	SaleAmount        float64 `json:"saleAmount"`
	ProductDetails    string  `json:"productDetails"`
	Notes             string  `json:"notes"`
}

// SaleDetail is the read model behind GET /sales/:id.
type SaleDetail struct {
	Sale      models.Sale           `json:"sale"`
	Evidence  *models.SaleEvidence  `json:"evidence"`
	AuditLogs []models.SaleAuditLog `json:"auditLogs"`
}

// Manager owns every mutation of Sale records. All state changes funnel
// through TrackMessage, CreateManualSale and UpdateSale; nothing else writes
// sale fields.
//
// A sale update and its audit entry are two writes. The audit row is only
// appended after the sale update succeeds, so the trail can miss an entry on
// a crash in between but can never describe a change that didn't happen.
type Manager struct {
	db             *gorm.DB
	detector       *Detector
	calc           *Calculator
	evidenceWindow int
}

func NewManager(db *gorm.DB, cfg config.SalesConfiguration) *Manager {
	return &Manager{
		db:             db,
		detector:       NewDetector(cfg),
		calc:           NewCalculator(cfg),
		evidenceWindow: cfg.EvidenceWindow,
	}
}

func (m *Manager) Detector() *Detector {
	return m.detector
}

func (m *Manager) Calculator() *Calculator {
	return m.calc
}

// TrackMessage runs keyword detection over one message and, when the match
// is confident enough, flags the conversation: creates the Sale (first flag)
// or accumulates evidence (later flags). Returns whether the conversation is
// flagged after this message.
//
// Callers on the messaging path treat errors as best-effort: log and move
// on, never block the message itself.
func (m *Manager) TrackMessage(conversationID int64, msg models.Message) (bool, error) {
	res := m.detector.Detect(msg.Text)
	if !res.Found {
		return false, nil
	}

	var conv models.Conversation
	if err := m.db.First(&conv, conversationID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return false, ErrConversationNotFound
		}
		return false, errors.Wrap(err, "load conversation")
	}

	now := time.Now()
	// SQL-side increment: concurrent trackers (webhook ingest and the reply
	// worker) must not lose counter bumps.
	convUpdates := map[string]any{
		"sale_keywords_count":  gorm.Expr("sale_keywords_count + ?", len(res.Keywords)),
		"last_sale_keyword_at": &now,
	}

	if !m.detector.ShouldFlag(res) {
		if err := m.db.Model(&models.Conversation{}).Where("id = ?", conv.ID).
			Updates(convUpdates).Error; err != nil {
			return false, errors.Wrap(err, "update conversation counters")
		}
		return conv.HasPotentialSale, nil
	}

	convUpdates["has_potential_sale"] = true

	matches := NewMatches(res.Keywords, msg)

	if conv.SaleID == nil {
		sale, err := m.createKeywordSale(conv, matches)
		if err != nil {
			return false, err
		}
		convUpdates["sale_id"] = sale.ID
		// Never regress a status an operator already set.
		if conv.SaleStatus == nil {
			convUpdates["sale_status"] = models.SALE_STATUS_POTENTIAL
		}
	} else if err := m.refreshEvidence(*conv.SaleID, conv.ID, matches); err != nil {
		return false, err
	}

	if err := m.db.Model(&models.Conversation{}).Where("id = ?", conv.ID).
		Updates(convUpdates).Error; err != nil {
		return false, errors.Wrap(err, "update conversation sale fields")
	}

	log.Info().
		Int64("conversation_id", conv.ID).
		Strs("keywords", res.Keywords).
		Msg("sale keywords flagged")

	return true, nil
}

func (m *Manager) createKeywordSale(conv models.Conversation, matches []models.KeywordMatch) (*models.Sale, error) {
	channel := conv.Channel()
	rate := m.calc.RateForChannel(channel)

	sale := models.Sale{
		ConversationID:  conv.ID,
		CustomerName:    conv.CustomerName,
		CustomerPhone:   conv.UserMobileNumber,
		Channel:         channel,
		CommissionRate:  rate,
		Status:          models.SALE_STATUS_POTENTIAL,
		DetectionMethod: models.DETECTION_METHOD_KEYWORD,
		RepName:         conv.RepName,
		RepPhoneNumber:  conv.RepPhoneNumber,
		SaleDate:        time.Now(),
	}
	if err := m.db.Create(&sale).Error; err != nil {
		return nil, errors.Wrap(err, "create sale")
	}

	history, err := m.recentMessages(conv.ID)
	if err != nil {
		return nil, err
	}
	ev := BuildEvidence(sale.ID, matches, history, m.evidenceWindow)
	if err := m.db.Create(&ev).Error; err != nil {
		return nil, errors.Wrap(err, "create sale evidence")
	}

	return &sale, nil
}

// refreshEvidence appends new keyword matches to the sale's evidence row and
// replaces the transcript snapshot with the current window.
func (m *Manager) refreshEvidence(saleID int64, conversationID int64, matches []models.KeywordMatch) error {
	history, err := m.recentMessages(conversationID)
	if err != nil {
		return err
	}

	var ev models.SaleEvidence
	err = m.db.Where("sale_id = ?", saleID).First(&ev).Error
	if gorm.IsRecordNotFoundError(err) {
		fresh := BuildEvidence(saleID, matches, history, m.evidenceWindow)
		return errors.Wrap(m.db.Create(&fresh).Error, "create sale evidence")
	}
	if err != nil {
		return errors.Wrap(err, "load sale evidence")
	}

	ev.SetMatches(MergeMatches(ev.Matches(), matches))
	ev.SetTranscript(BuildTranscript(history, m.evidenceWindow))

	return errors.Wrap(m.db.Model(&models.SaleEvidence{}).Where("id = ?", ev.ID).Updates(map[string]any{
		"keywords_found":      ev.KeywordsFound,
		"transcript_snapshot": ev.TranscriptSnapshot,
		"message_count":       ev.MessageCount,
	}).Error, "update sale evidence")
}

func (m *Manager) recentMessages(conversationID int64) ([]models.Message, error) {
	var msgs []models.Message
	if err := m.db.Where("conversation_id = ?", conversationID).
		Order("id desc").Limit(m.evidenceWindow).Find(&msgs).Error; err != nil {
		return nil, errors.Wrap(err, "load message history")
	}
	// newest-first from the query, evidence wants chronological order
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

// CreateManualSale registers an admin-entered sale as "pending" review. One
// active sale per conversation: fails when the conversation already points
// at one.
func (m *Manager) CreateManualSale(in ManualSaleInput, actor Actor) (*models.Sale, error) {
	if in.ConversationID <= 0 {
		return nil, validationf("conversationId is required")
	}
	if in.Channel == "" {
		in.Channel = models.CHANNEL_OTHER
	}
	if !models.IsValidChannel(in.Channel) {
		return nil, validationf("invalid channel: %s", in.Channel)
	}

	var conv models.Conversation
	if err := m.db.First(&conv, in.ConversationID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrConversationNotFound
		}
		return nil, errors.Wrap(err, "load conversation")
	}
	if conv.SaleID != nil {
		return nil, validationf("conversation %d already has an active sale", conv.ID)
	}

	rate := m.calc.RateForChannel(in.Channel)
	commission, err := m.calc.ComputeCommission(in.SaleAmount, rate)
	if err != nil {
		return nil, err
	}

	sale := models.Sale{
		ConversationID:    conv.ID,
		CustomerName:      in.CustomerName,
		CustomerPhone:     in.CustomerPhone,
		CustomerInstagram: in.CustomerInstagram,
		Channel:           in.Channel,
		SaleAmount:        RoundCents(in.SaleAmount),
		CommissionRate:    rate,
		CommissionAmount:  commission,
		Status:            models.SALE_STATUS_PENDING,
		DetectionMethod:   models.DETECTION_METHOD_MANUAL,
		ProductDetails:    in.ProductDetails,
		Notes:             in.Notes,
		RepName:           conv.RepName,
		RepPhoneNumber:    conv.RepPhoneNumber,
		SaleDate:          time.Now(),
	}
	if sale.CustomerName == "" {
		sale.CustomerName = conv.CustomerName
	}
	if sale.CustomerPhone == "" {
		sale.CustomerPhone = conv.UserMobileNumber
	}

	if err := m.db.Create(&sale).Error; err != nil {
		return nil, errors.Wrap(err, "create sale")
	}

	if err := m.db.Model(&models.Conversation{}).Where("id = ?", conv.ID).Updates(map[string]any{
		"has_potential_sale": true,
		"sale_status":        models.SALE_STATUS_PENDING,
		"sale_id":            sale.ID,
	}).Error; err != nil {
		return nil, errors.Wrap(err, "link sale to conversation")
	}

	log.Info().
		Int64("sale_id", sale.ID).
		Int64("conversation_id", conv.ID).
		Str("by", actor.Email).
		Msg("manual sale created")

	return &sale, nil
}

// GetSale returns the sale with its evidence and full audit history.
func (m *Manager) GetSale(saleID int64) (*SaleDetail, error) {
	var sale models.Sale
	if err := m.db.First(&sale, saleID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrSaleNotFound
		}
		return nil, errors.Wrap(err, "load sale")
	}

	detail := SaleDetail{Sale: sale, AuditLogs: []models.SaleAuditLog{}}

	var ev models.SaleEvidence
	if err := m.db.Where("sale_id = ?", sale.ID).First(&ev).Error; err == nil {
		detail.Evidence = &ev
	}

	if err := m.db.Where("sale_id = ?", sale.ID).
		Order("id asc").Find(&detail.AuditLogs).Error; err != nil {
		return nil, errors.Wrap(err, "load audit logs")
	}

	return &detail, nil
}

// UpdateSale applies a status change and/or an amount edit and appends one
// audit entry per mutation. Validation happens up front; nothing is written
// until the whole request is known to be valid.
func (m *Manager) UpdateSale(saleID int64, req UpdateRequest, actor Actor) (*models.Sale, error) {
	var sale models.Sale
	if err := m.db.First(&sale, saleID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrSaleNotFound
		}
		return nil, errors.Wrap(err, "load sale")
	}

	statusChanging := false
	if req.Status != nil {
		if !models.IsValidSaleStatus(*req.Status) {
			return nil, validationf("invalid status: %s", *req.Status)
		}
		statusChanging = *req.Status != sale.Status
		if statusChanging && req.Reason == "" {
			return nil, validationf("Reason is required for status changes")
		}
	}

	amountChanging := req.SaleAmount != nil && *req.SaleAmount != sale.SaleAmount
	var newCommission float64
	if req.SaleAmount != nil {
		// Recompute with the rate fixed at creation, never a fresh lookup.
		var err error
		newCommission, err = m.calc.ComputeCommission(*req.SaleAmount, sale.CommissionRate)
		if err != nil {
			return nil, err
		}
	}

	prev := models.SaleSnapshot{Status: sale.Status, SaleAmount: sale.SaleAmount}

	updates := map[string]any{}
	now := time.Now()

	if statusChanging {
		updates["status"] = *req.Status
		switch *req.Status {
		case models.SALE_STATUS_VERIFIED:
			updates["verified_at"] = &now
			updates["verified_by"] = actor.Name
		case models.SALE_STATUS_DISPUTED:
			updates["dispute_reason"] = req.Reason
			updates["disputed_at"] = &now
			updates["disputed_by"] = actor.Name
		}
	}
	if amountChanging {
		updates["sale_amount"] = RoundCents(*req.SaleAmount)
		updates["commission_amount"] = newCommission
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if len(updates) == 0 {
		return &sale, nil
	}

	// Every write re-checks the conversation linkage: it must still point at
	// this sale, or at nothing for sales being revived after a rejection.
	var conv models.Conversation
	if err := m.db.First(&conv, sale.ConversationID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrConversationNotFound
		}
		return nil, errors.Wrap(err, "load conversation")
	}
	if conv.SaleID != nil && *conv.SaleID != sale.ID {
		return nil, validationf("conversation %d is linked to a different sale", conv.ID)
	}

	if err := m.db.Model(&models.Sale{}).Where("id = ?", sale.ID).
		Updates(updates).Error; err != nil {
		return nil, errors.Wrap(err, "update sale")
	}

	if statusChanging {
		if err := m.propagateStatus(conv, sale.ID, *req.Status); err != nil {
			return nil, err
		}
	}

	var updated models.Sale
	if err := m.db.First(&updated, sale.ID).Error; err != nil {
		return nil, errors.Wrap(err, "reload sale")
	}

	cur := models.SaleSnapshot{Status: updated.Status, SaleAmount: updated.SaleAmount}
	if statusChanging {
		m.appendAudit(sale.ID, auditActionForStatus(*req.Status), actor, prev, cur, req.Reason)
	}
	if amountChanging {
		m.appendAudit(sale.ID, models.AUDIT_ACTION_AMOUNT_CHANGED, actor, prev, cur, req.Reason)
	}

	return &updated, nil
}

// propagateStatus mirrors verified/rejected transitions onto the parent
// conversation. Rejection clears the linkage; the conversation itself stays.
func (m *Manager) propagateStatus(conv models.Conversation, saleID int64, status string) error {
	switch status {
	case models.SALE_STATUS_VERIFIED:
		return errors.Wrap(m.db.Model(&models.Conversation{}).Where("id = ?", conv.ID).
			Updates(map[string]any{
				"sale_status": models.SALE_STATUS_VERIFIED,
				"sale_id":     saleID,
			}).Error, "propagate verified status")
	case models.SALE_STATUS_REJECTED:
		return errors.Wrap(m.db.Model(&models.Conversation{}).Where("id = ?", conv.ID).
			Updates(map[string]any{
				"sale_status": gorm.Expr("NULL"),
				"sale_id":     gorm.Expr("NULL"),
			}).Error, "clear conversation sale linkage")
	}
	return nil
}

// appendAudit writes the trail entry after the state change is already
// durable. A failure here leaves the change without its entry, which is the
// documented trade-off; it is logged loudly and never rolled back.
func (m *Manager) appendAudit(saleID int64, action string, actor Actor, prev, cur models.SaleSnapshot, reason string) {
	entry := models.SaleAuditLog{
		SaleID:           saleID,
		Action:           action,
		PerformedByUID:   actor.UID,
		PerformedByName:  actor.Name,
		PerformedByEmail: actor.Email,
		PerformedByRole:  actor.Role,
		Reason:           reason,
	}
	entry.SetPrevious(prev)
	entry.SetNew(cur)

	if err := m.db.Create(&entry).Error; err != nil {
		log.Error().Err(err).
			Int64("sale_id", saleID).
			Str("action", action).
			Msg("audit entry write failed after sale update")
	}
}

// auditActionForStatus maps a target status to its audit action. Transitions
// back to potential/pending (the permissive un-reject path) log the status
// name itself.
func auditActionForStatus(status string) string {
	switch status {
	case models.SALE_STATUS_VERIFIED:
		return models.AUDIT_ACTION_VERIFIED
	case models.SALE_STATUS_DISPUTED:
		return models.AUDIT_ACTION_DISPUTED
	case models.SALE_STATUS_REJECTED:
		return models.AUDIT_ACTION_REJECTED
	}
	return status
}
