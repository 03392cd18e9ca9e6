package sales

import (
	"testing"
	"time"

	"github.com/Brighttier/Chatbot-Peptides-sub001/config"
	"github.com/Brighttier/Chatbot-Peptides-sub001/models"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/require"
)

func testSalesConfig() config.SalesConfiguration {
	return config.SalesConfiguration{
		StrongKeywords:   []string{"i'll take it", "payment sent", "just bought", "sold"},
		WeakKeywords:     []string{"buy", "venmo", "deal"},
		KeywordThreshold: 2,
		InstagramRate:    0.15,
		WebsiteRate:      0.10,
		SmsRate:          0.10,
		DefaultRate:      0.10,
		EvidenceWindow:   5,
	}
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.DB().SetMaxOpenConns(1)
	db.LogMode(false)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Conversation{},
		&models.Message{},
		&models.Sale{},
		&models.SaleEvidence{},
		&models.SaleAuditLog{},
	).Error)

	t.Cleanup(func() { db.Close() })
	return db
}

func setupTestManager(t *testing.T) (*Manager, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	return NewManager(db, testSalesConfig()), db
}

func createConversation(t *testing.T, db *gorm.DB, mobile string) models.Conversation {
	t.Helper()
	conv := models.Conversation{
		UserMobileNumber: mobile,
		CustomerName:     "Jamie Customer",
		RepName:          "Alex Rep",
		RepPhoneNumber:   "+15550001111",
	}
	require.NoError(t, db.Create(&conv).Error)
	return conv
}

func createMessage(t *testing.T, db *gorm.DB, conversationID int64, messageID, text string) models.Message {
	t.Helper()
	msg := models.Message{
		ConversationID: conversationID,
		MessageID:      messageID,
		Sender:         models.MESSAGE_SENDER_USER,
		Text:           text,
		Status:         models.MESSAGE_STATUS_DONE,
	}
	require.NoError(t, db.Create(&msg).Error)
	return msg
}

func testActor() Actor {
	return Actor{UID: "7", Name: "Dana Admin", Email: "dana@example.com", Role: models.USER_ROLE_ADMIN}
}

func reloadConversation(t *testing.T, db *gorm.DB, id int64) models.Conversation {
	t.Helper()
	var conv models.Conversation
	require.NoError(t, db.First(&conv, id).Error)
	return conv
}

func reloadSale(t *testing.T, db *gorm.DB, id int64) models.Sale {
	t.Helper()
	var sale models.Sale
	require.NoError(t, db.First(&sale, id).Error)
	return sale
}

func auditEntries(t *testing.T, db *gorm.DB, saleID int64) []models.SaleAuditLog {
	t.Helper()
	var logs []models.SaleAuditLog
	require.NoError(t, db.Where("sale_id = ?", saleID).Order("id asc").Find(&logs).Error)
	return logs
}

func daysAgo(n int) time.Time {
	return time.Now().AddDate(0, 0, -n)
}
