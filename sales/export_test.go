package sales

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/Brighttier/Chatbot-Peptides-sub001/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	records, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteCSVHeaderContract(t *testing.T) {
	mgr, _ := setupTestManager(t)

	var buf bytes.Buffer
	require.NoError(t, mgr.WriteCSV(&buf, false))

	records := readCSV(t, &buf)
	require.Len(t, records, 1)
	assert.Equal(t, []string{
		"Sale ID", "Date", "Customer Name", "Customer Phone", "Customer Instagram",
		"Channel", "Sale Amount", "Commission Rate", "Commission Amount", "Status",
		"Detection Method", "Rep Name", "Rep Phone", "Product Details", "Notes",
		"Verified By", "Verified At", "Conversation ID",
	}, records[0])
}

func TestWriteCSVRowFormatting(t *testing.T) {
	mgr, db := setupTestManager(t)

	sale := seedSale(t, db, models.Sale{
		ConversationID:   3,
		CustomerName:     "Buyer, Pat",
		CustomerPhone:    "+15551234567",
		Channel:          models.CHANNEL_WEBSITE,
		SaleAmount:       150,
		CommissionRate:   0.1,
		CommissionAmount: 15,
		Status:           models.SALE_STATUS_PENDING,
		DetectionMethod:  models.DETECTION_METHOD_KEYWORD,
		RepName:          "Alex Rep",
		Notes:            "paid via venmo, screenshot attached",
	})

	var buf bytes.Buffer
	require.NoError(t, mgr.WriteCSV(&buf, false))

	records := readCSV(t, &buf)
	require.Len(t, records, 2)
	row := records[1]

	assert.Equal(t, sale.SaleDate.Format("2006-01-02"), row[1])
	assert.Equal(t, "Buyer; Pat", row[2], "literal commas become semicolons")
	assert.Equal(t, "150.00", row[6])
	assert.Equal(t, "0.1", row[7], "rate keeps full precision, money columns stay at cents")
	assert.Equal(t, "15.00", row[8])
	assert.Equal(t, models.SALE_STATUS_PENDING, row[9])
	assert.Equal(t, "paid via venmo; screenshot attached", row[14])
	assert.Equal(t, "", row[16], "unverified sale has no verified timestamp")
	assert.Equal(t, "3", row[17])
}

func TestWriteCSVRateKeepsFullPrecision(t *testing.T) {
	mgr, db := setupTestManager(t)

	seedSale(t, db, models.Sale{
		ConversationID:   5,
		Channel:          models.CHANNEL_WEBSITE,
		SaleAmount:       100,
		CommissionRate:   0.125,
		CommissionAmount: 12.50,
		Status:           models.SALE_STATUS_VERIFIED,
	})

	var buf bytes.Buffer
	require.NoError(t, mgr.WriteCSV(&buf, false))

	records := readCSV(t, &buf)
	require.Len(t, records, 2)
	assert.Equal(t, "0.125", records[1][7])
	assert.Equal(t, "12.50", records[1][8])
}

func TestWriteCSVEvidenceColumns(t *testing.T) {
	mgr, db := setupTestManager(t)
	conv := createConversation(t, db, "+15551234567")
	msg := createMessage(t, db, conv.ID, "m-1", "sold! payment sent")
	_, err := mgr.TrackMessage(conv.ID, msg)
	require.NoError(t, err)

	// a second sale without any evidence row
	seedSale(t, db, models.Sale{
		ConversationID:  77,
		Channel:         models.CHANNEL_OTHER,
		Status:          models.SALE_STATUS_PENDING,
		DetectionMethod: models.DETECTION_METHOD_MANUAL,
	})

	var buf bytes.Buffer
	require.NoError(t, mgr.WriteCSV(&buf, true))

	records := readCSV(t, &buf)
	require.Len(t, records, 3)

	header := records[0]
	require.Len(t, header, 20)
	assert.Equal(t, "Keywords Found", header[18])
	assert.Equal(t, "Message Count", header[19])

	keyword := records[1]
	assert.Equal(t, "payment sent; sold", keyword[18])
	assert.Equal(t, "1", keyword[19])

	manual := records[2]
	assert.Equal(t, "", manual[18])
	assert.Equal(t, "0", manual[19])
}
