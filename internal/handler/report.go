package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/leoroquedesan-droid/leo/internal/billing"
	"github.com/leoroquedesan-droid/leo/internal/models"
	"github.com/leoroquedesan-droid/leo/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ReportHandler serves the dashboard cards and the monthly dues report.
// Both delegate everything with business meaning to the billing engine.
type ReportHandler struct {
	DB     *gorm.DB
	Engine *billing.Engine
}

func NewReportHandler(db *gorm.DB, engine *billing.Engine) *ReportHandler {
	return &ReportHandler{DB: db, Engine: engine}
}

// Dashboard backs the landing page: member total, arrears count and the
// rentals coming up within three days.
func (h *ReportHandler) Dashboard(c *gin.Context) {
	today := time.Now()

	total, err := h.Engine.TotalMembers()
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Falha ao montar o painel.")
		return
	}

	overdueCount, _, err := h.Engine.OverdueMembers(today, "")
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Falha ao montar o painel.")
		return
	}

	var bookings []models.Booking
	if err := h.DB.Preload("Member").Find(&bookings).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Falha ao montar o painel.")
		return
	}
	upcoming := billing.UpcomingBookings(today, bookings)

	util.Success(c, util.Response{
		"total_usuarios": total,
		"atrasos_count":  overdueCount,
		"proximos":       upcoming,
	})
}

// Dues is the monthly report: overdue members, payments of the selected
// month and members enrolled in the last 30 days, all honoring the same
// optional name filter. A missing or malformed month selector resolves to
// the current month and the response says which period was actually used.
func (h *ReportHandler) Dues(c *gin.Context) {
	today := time.Now()
	nameFilter := c.Query("nome_pesquisa")
	period := c.Query("mes")

	overdueCount, overdue, err := h.Engine.OverdueMembers(today, nameFilter)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Falha ao gerar relatório.")
		return
	}

	newMembers, err := h.Engine.NewMembers(today, nameFilter)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Falha ao gerar relatório.")
		return
	}

	year, month, entries, err := h.Engine.MonthLedger(period, today, nameFilter)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Falha ao gerar relatório.")
		return
	}

	util.Success(c, util.Response{
		"atrasadas":        overdue,
		"atrasos_count":    overdueCount,
		"novos_associados": newMembers,
		"pagamentos_mes":   entries,
		"mes_selecionado":  fmt.Sprintf("%04d-%02d", year, int(month)),
		"nome_pesquisa":    nameFilter,
	})
}
