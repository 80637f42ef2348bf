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

// TicketHandler covers internal support requests (chamados).
type TicketHandler struct {
	DB *gorm.DB
}

func NewTicketHandler(db *gorm.DB) *TicketHandler {
	return &TicketHandler{DB: db}
}

type createTicketReq struct {
	Subject     string `json:"assunto" binding:"required,max=150"`
	Description string `json:"descricao" binding:"required"`
}

type updateTicketStatusReq struct {
	Status string `json:"status" binding:"required,oneof=aberto andamento fechado"`
}

// Create opens a ticket in the requester's name.
func (h *TicketHandler) Create(c *gin.Context) {
	op, ok := currentOperator(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Você precisa estar logado para acessar esta página.")
		return
	}

	var req createTicketReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Assunto e descrição são obrigatórios.")
		return
	}

	ticket := models.Ticket{
		Subject:     req.Subject,
		Description: req.Description,
		Requester:   op.Name,
		Status:      "aberto",
	}
	if err := h.DB.Create(&ticket).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao abrir chamado.")
		return
	}

	util.Success(c, util.Response{
		"chamado": ticket,
	})
}

// List returns all tickets, newest first.
func (h *TicketHandler) List(c *gin.Context) {
	var tickets []models.Ticket
	if err := h.DB.Order("created_at DESC").Find(&tickets).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Falha ao listar chamados.")
		return
	}

	util.Success(c, util.Response{
		"chamados": tickets,
	})
}

// UpdateStatus moves a ticket between aberto/andamento/fechado.
func (h *TicketHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "ID não é válido.")
		return
	}

	var req updateTicketStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Status inválido.")
		return
	}

	var ticket models.Ticket
	if err := h.DB.First(&ticket, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Chamado não encontrado.")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Falha ao consultar chamado.")
		}
		return
	}

	ticket.Status = req.Status
	if err := h.DB.Save(&ticket).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao salvar chamado.")
		return
	}

	util.Success(c, util.Response{
		"chamado": ticket,
	})
}
