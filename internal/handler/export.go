package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/leoroquedesan-droid/leo/internal/billing"
	"github.com/leoroquedesan-droid/leo/internal/models"
	"github.com/leoroquedesan-droid/leo/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler downloads the monthly dues report as CSV or XLSX. Same
// filters as the on-screen report, same engine underneath.
type ExportHandler struct {
	Engine *billing.Engine
}

func NewExportHandler(engine *billing.Engine) *ExportHandler {
	return &ExportHandler{Engine: engine}
}

type duesReportData struct {
	Overdue    []models.Member
	Entries    []models.Payment
	PeriodName string
}

func (h *ExportHandler) loadDues(c *gin.Context) (*duesReportData, bool) {
	today := time.Now()
	nameFilter := c.Query("nome_pesquisa")
	period := c.Query("mes")

	_, overdue, err := h.Engine.OverdueMembers(today, nameFilter)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Falha ao gerar relatório.")
		return nil, false
	}

	year, month, entries, err := h.Engine.MonthLedger(period, today, nameFilter)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Falha ao gerar relatório.")
		return nil, false
	}

	return &duesReportData{
		Overdue:    overdue,
		Entries:    entries,
		PeriodName: fmt.Sprintf("%04d-%02d", year, int(month)),
	}, true
}

// DuesCSV streams the dues report as CSV: overdue section first, then the
// month's payments.
func (h *ExportHandler) DuesCSV(c *gin.Context) {
	data, ok := h.loadDues(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"mensalidades_%s.csv\"", data.PeriodName))

	// UTF-8 BOM so Excel reads the accents
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"Mensalidades atrasadas"})
	writer.Write([]string{"Nome", "Telefone", "Vencimento"})
	for _, m := range data.Overdue {
		due := ""
		if m.NextDueDate != nil {
			due = m.NextDueDate.Format(billing.DateLayout)
		}
		writer.Write([]string{m.Name, m.Phone, due})
	}

	writer.Write([]string{})
	writer.Write([]string{"Pagamentos de " + data.PeriodName})
	writer.Write([]string{"Nome", "Data do pagamento", "Próximo vencimento", "Valor", "Recibo"})
	for _, p := range data.Entries {
		writer.Write([]string{
			p.Member.Name,
			p.PaidOn.Format(billing.DateLayout),
			p.CoversUntil.Format(billing.DateLayout),
			util.FormatCents(p.AmountCents),
			p.ReceiptRef,
		})
	}
}

// DuesXLSX renders the same report as a two-sheet spreadsheet.
func (h *ExportHandler) DuesXLSX(c *gin.Context) {
	data, ok := h.loadDues(c)
	if !ok {
		return
	}

	f := excelize.NewFile()

	overdueSheet := "Atrasados"
	f.SetSheetName("Sheet1", overdueSheet)
	headers := []string{"Nome", "Telefone", "Vencimento"}
	for i, name := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(overdueSheet, cell, name)
	}
	for idx, m := range data.Overdue {
		row := idx + 2
		due := ""
		if m.NextDueDate != nil {
			due = m.NextDueDate.Format(billing.DateLayout)
		}
		f.SetCellValue(overdueSheet, fmt.Sprintf("A%d", row), m.Name)
		f.SetCellValue(overdueSheet, fmt.Sprintf("B%d", row), m.Phone)
		f.SetCellValue(overdueSheet, fmt.Sprintf("C%d", row), due)
	}
	f.SetColWidth(overdueSheet, "A", "A", 30)
	f.SetColWidth(overdueSheet, "B", "C", 15)

	paySheet := "Pagamentos " + data.PeriodName
	if _, err := f.NewSheet(paySheet); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Falha ao criar planilha.")
		return
	}
	payHeaders := []string{"Nome", "Data do pagamento", "Próximo vencimento", "Valor", "Recibo"}
	for i, name := range payHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(paySheet, cell, name)
	}
	for idx, p := range data.Entries {
		row := idx + 2
		f.SetCellValue(paySheet, fmt.Sprintf("A%d", row), p.Member.Name)
		f.SetCellValue(paySheet, fmt.Sprintf("B%d", row), p.PaidOn.Format(billing.DateLayout))
		f.SetCellValue(paySheet, fmt.Sprintf("C%d", row), p.CoversUntil.Format(billing.DateLayout))
		f.SetCellValue(paySheet, fmt.Sprintf("D%d", row), util.FormatCents(p.AmountCents))
		f.SetCellValue(paySheet, fmt.Sprintf("E%d", row), p.ReceiptRef)
	}
	f.SetColWidth(paySheet, "A", "A", 30)
	f.SetColWidth(paySheet, "B", "E", 18)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"mensalidades_%s.xlsx\"", data.PeriodName))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Falha ao exportar relatório.")
	}
}
