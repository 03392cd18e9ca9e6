package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Brighttier/Chatbot-Peptides-sub001/config"
	dbpkg "github.com/Brighttier/Chatbot-Peptides-sub001/db"
	"github.com/Brighttier/Chatbot-Peptides-sub001/models"
	"github.com/Brighttier/Chatbot-Peptides-sub001/sales"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

var salesCfg = config.SalesConfiguration{}

// SetSalesConfiguration injects the sales section once at boot.
func SetSalesConfiguration(cfg config.SalesConfiguration) {
	salesCfg = cfg
}

func newSalesManager(db *gorm.DB) *sales.Manager {
	return sales.NewManager(db, salesCfg)
}

func salesManager(c *gin.Context) *sales.Manager {
	db := dbpkg.DBInstance(c)
	if db == nil {
		return nil
	}
	return newSalesManager(db)
}

func respondSalesError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, sales.ErrSaleNotFound), errors.Is(err, sales.ErrConversationNotFound):
		RespondError(c, err.Error(), http.StatusNotFound)
	case sales.IsValidation(err):
		RespondError(c, err.Error(), http.StatusBadRequest)
	default:
		RespondError(c, err.Error(), http.StatusInternalServerError)
	}
}

// GET /api/sales (admin)
func GetSales(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var list []models.Sale
	if err := db.Order("id desc").Limit(200).Find(&list).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"sales": list})
}

// GET /api/sales/:id (admin)
func GetSaleByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	mgr := salesManager(c)
	if mgr == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	detail, err := mgr.GetSale(id)
	if err != nil {
		respondSalesError(c, err)
		return
	}

	RespondSuccess(c, gin.H{
		"sale":      detail.Sale,
		"evidence":  detail.Evidence,
		"auditLogs": detail.AuditLogs,
	})
}

// POST /api/sales (admin) - manual entry, lands as "pending"
func CreateSale(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateSaleRequest
	if err := c.BindJSON(&req); err != nil {
		RespondError(c, "invalid json", http.StatusBadRequest)
		return
	}

	mgr := salesManager(c)
	if mgr == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	sale, err := mgr.CreateManualSale(req.toCore(), sales.ActorFromUser(user))
	if err != nil {
		respondSalesError(c, err)
		return
	}

	RespondSuccess(c, gin.H{"sale": sale})
}

// PUT /api/sales/:id (admin)
func UpdateSale(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var req UpdateSaleRequest
	if err := c.BindJSON(&req); err != nil {
		RespondError(c, "invalid json", http.StatusBadRequest)
		return
	}

	mgr := salesManager(c)
	if mgr == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	sale, err := mgr.UpdateSale(id, req.toCore(), sales.ActorFromUser(user))
	if err != nil {
		respondSalesError(c, err)
		return
	}

	RespondSuccess(c, gin.H{"sale": sale})
}

// GET /api/sales/summary?startDate=YYYY-MM-DD&endDate=YYYY-MM-DD (admin)
func GetSalesSummary(c *gin.Context) {
	start, end, ok := parseSummaryRange(c)
	if !ok {
		return
	}

	mgr := salesManager(c)
	if mgr == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	summary, err := mgr.Summarize(start, end)
	if err != nil {
		respondSalesError(c, err)
		return
	}

	RespondSuccess(c, summary)
}

// GET /api/sales/export?includeEvidence=true (admin)
func ExportSales(c *gin.Context) {
	mgr := salesManager(c)
	if mgr == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	includeEvidence := strings.EqualFold(c.Query("includeEvidence"), "true")

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="sales_export.csv"`)
	c.Status(http.StatusOK)

	if err := mgr.WriteCSV(c.Writer, includeEvidence); err != nil {
		// Headers are already out; nothing useful left to send.
		_ = c.Error(err)
	}
}

// parseSummaryRange reads plain YYYY-MM-DD bounds in server-local time and
// widens them to [start of day, end of day] so the range is inclusive on
// both calendar days. Defaults to the last 30 days.
func parseSummaryRange(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now()
	start := now.AddDate(0, 0, -29)
	end := now

	var err error
	if s := strings.TrimSpace(c.Query("startDate")); s != "" {
		start, err = time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			RespondError(c, "startDate is invalid (use YYYY-MM-DD)", http.StatusBadRequest)
			return time.Time{}, time.Time{}, false
		}
	}
	if s := strings.TrimSpace(c.Query("endDate")); s != "" {
		end, err = time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			RespondError(c, "endDate is invalid (use YYYY-MM-DD)", http.StatusBadRequest)
			return time.Time{}, time.Time{}, false
		}
	}
	if start.After(end) {
		RespondError(c, "startDate cannot be after endDate", http.StatusBadRequest)
		return time.Time{}, time.Time{}, false
	}

	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.Local)
	end = time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), time.Local)
	return start, end, true
}
