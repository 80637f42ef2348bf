package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/leoroquedesan-droid/leo/internal/models"
	"github.com/leoroquedesan-droid/leo/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BookingHandler covers venue rentals (locações de salão).
type BookingHandler struct {
	DB *gorm.DB
}

func NewBookingHandler(db *gorm.DB) *BookingHandler {
	return &BookingHandler{DB: db}
}

type bookingReq struct {
	Venue         string `json:"salao" binding:"required"`
	Date          string `json:"dia" binding:"required"`
	Time          string `json:"hora"`
	PaymentMethod string `json:"pagamento"`
	Deposit       string `json:"valor_entrada"`
	Balance       string `json:"valor_segunda_parte"`
	MemberID      uint   `json:"usuario" binding:"required"`
}

// Create records a new rental. The date is stored as given; validity only
// matters for the upcoming-bookings window, which skips what it cannot
// parse.
func (h *BookingHandler) Create(c *gin.Context) {
	var req bookingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Os campos Local, Dia e Usuário são obrigatórios para a locação.")
		return
	}

	deposit, err := util.ParseAmountCents(req.Deposit)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Os valores de pagamento devem ser números válidos.")
		return
	}
	balance, err := util.ParseAmountCents(req.Balance)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Os valores de pagamento devem ser números válidos.")
		return
	}

	var member models.Member
	if err := h.DB.First(&member, req.MemberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Usuário não encontrado.")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Falha ao consultar usuário.")
		}
		return
	}

	booking := models.Booking{
		Venue:         req.Venue,
		Date:          req.Date,
		Time:          req.Time,
		PaymentMethod: req.PaymentMethod,
		DepositCents:  deposit,
		BalanceCents:  balance,
		MemberID:      member.ID,
	}

	if err := h.DB.Create(&booking).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao cadastrar locação.")
		return
	}

	util.Success(c, util.Response{
		"locacao": booking,
	})
}

// List returns all rentals, most recent date first.
func (h *BookingHandler) List(c *gin.Context) {
	var bookings []models.Booking
	if err := h.DB.Preload("Member").Order("date DESC").Find(&bookings).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Falha ao listar locações.")
		return
	}

	util.Success(c, util.Response{
		"locacoes": bookings,
	})
}

// Update edits a rental.
func (h *BookingHandler) Update(c *gin.Context) {
	booking, ok := h.findByParam(c)
	if !ok {
		return
	}

	var req bookingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Os campos Local, Dia e Usuário são obrigatórios para a locação.")
		return
	}

	deposit, err := util.ParseAmountCents(req.Deposit)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Os valores de pagamento devem ser números válidos.")
		return
	}
	balance, err := util.ParseAmountCents(req.Balance)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Os valores de pagamento devem ser números válidos.")
		return
	}

	booking.Venue = req.Venue
	booking.Date = req.Date
	booking.Time = req.Time
	booking.PaymentMethod = req.PaymentMethod
	booking.DepositCents = deposit
	booking.BalanceCents = balance
	booking.MemberID = req.MemberID

	if err := h.DB.Save(booking).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao salvar locação.")
		return
	}

	util.Success(c, util.Response{
		"locacao": booking,
	})
}

// Delete removes a rental.
func (h *BookingHandler) Delete(c *gin.Context) {
	booking, ok := h.findByParam(c)
	if !ok {
		return
	}

	if err := h.DB.Delete(booking).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao excluir locação.")
		return
	}

	util.Success(c, util.Response{
		"mensagem": "Locação do dia " + booking.Date + " excluída com sucesso!",
	})
}

func (h *BookingHandler) findByParam(c *gin.Context) (*models.Booking, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "ID não é válido.")
		return nil, false
	}

	var booking models.Booking
	if err := h.DB.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Locação não encontrada.")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Falha ao consultar locação.")
		}
		return nil, false
	}
	return &booking, true
}
