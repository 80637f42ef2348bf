package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/leoroquedesan-droid/leo/internal/billing"
	"github.com/leoroquedesan-droid/leo/internal/models"
	"github.com/leoroquedesan-droid/leo/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PaymentHandler is the thin shell around the ledger: it parses the form
// fields into the engine's typed input and translates the engine's errors
// back to HTTP. All billing semantics live in the engine.
type PaymentHandler struct {
	DB     *gorm.DB
	Engine *billing.Engine
}

func NewPaymentHandler(db *gorm.DB, engine *billing.Engine) *PaymentHandler {
	return &PaymentHandler{DB: db, Engine: engine}
}

type registerPaymentReq struct {
	MemberID    uint   `json:"usuario" binding:"required"`
	PaidOn      string `json:"data_pagamento" binding:"required"`
	CoversUntil string `json:"proximo_pagamento" binding:"required"`
	Amount      string `json:"valor"`
	Memo        string `json:"observacao" binding:"max=255"`
}

// Register records a dues payment and advances the member's next due date,
// atomically.
func (h *PaymentHandler) Register(c *gin.Context) {
	var req registerPaymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Campo obrigatório do formulário ausente ou inválido.")
		return
	}

	amountCents, err := util.ParseAmountCents(req.Amount)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Os valores de pagamento devem ser números válidos.")
		return
	}

	member, payment, err := h.Engine.RegisterPayment(billing.RegisterPaymentInput{
		MemberID:    req.MemberID,
		PaidOn:      req.PaidOn,
		CoversUntil: req.CoversUntil,
		AmountCents: amountCents,
		Memo:        req.Memo,
	})
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrUnknownMember):
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Usuário não encontrado.")
		case errors.Is(err, billing.ErrInvalidAmount):
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "O valor do pagamento não pode ser negativo.")
		case errors.Is(err, billing.ErrInvalidDate):
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Data inválida. Use o formato AAAA-MM-DD.")
		default:
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao registrar pagamento.")
		}
		return
	}

	util.Success(c, util.Response{
		"mensagem":  "Pagamento registrado para " + member.Name + "!",
		"usuario":   member,
		"pagamento": payment,
	})
}

// List returns ledger entries, newest payment first, optionally restricted
// to one member. An unparseable member id is ignored, mirroring the report
// page's forgiving filter.
func (h *PaymentHandler) List(c *gin.Context) {
	q := h.DB.Model(&models.Payment{}).Preload("Member").Order("paid_on DESC")

	if idStr := c.Query("usuario_id"); idStr != "" {
		if id, err := strconv.Atoi(idStr); err == nil && id > 0 {
			q = q.Where("member_id = ?", id)
		}
	}

	var payments []models.Payment
	if err := q.Find(&payments).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Falha ao listar pagamentos.")
		return
	}

	util.Success(c, util.Response{
		"pagamentos": payments,
	})
}
