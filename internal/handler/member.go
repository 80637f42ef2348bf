package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/leoroquedesan-droid/leo/internal/billing"
	"github.com/leoroquedesan-droid/leo/internal/models"
	"github.com/leoroquedesan-droid/leo/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MemberHandler covers the member roster CRUD. Creation is the one place
// the due-date calculator runs outside payment registration: the enrollment
// form carries a billing day-of-month and the member starts out owing on
// the next occurrence of that day.
type MemberHandler struct {
	DB *gorm.DB
}

func NewMemberHandler(db *gorm.DB) *MemberHandler {
	return &MemberHandler{DB: db}
}

type createMemberReq struct {
	Name       string `json:"nome" binding:"required"`
	BirthDate  string `json:"data_nascimento"`
	CPF        string `json:"cpf"`
	RG         string `json:"rg"`
	Dependents string `json:"dependentes"`
	Phone      string `json:"numero"`
	BillingDay int    `json:"pagamento" binding:"required"`

	PostalCode  string `json:"cep"`
	Street      string `json:"endereco"`
	HouseNumber string `json:"numero_casa"`
	District    string `json:"bairro"`
	City        string `json:"cidade"`
	State       string `json:"estado" binding:"max=2"`
}

type updateMemberReq struct {
	Name       string `json:"nome" binding:"required"`
	BirthDate  string `json:"data_nascimento"`
	CPF        string `json:"cpf"`
	RG         string `json:"rg"`
	Dependents string `json:"dependentes"`
	Phone      string `json:"numero"`

	PostalCode  string `json:"cep"`
	Street      string `json:"endereco"`
	HouseNumber string `json:"numero_casa"`
	District    string `json:"bairro"`
	City        string `json:"cidade"`
	State       string `json:"estado" binding:"max=2"`
}

// Create registers a new member. An enrollment day that does not exist in
// the target month is a validation error for the operator to fix, never a
// clamped date.
func (h *MemberHandler) Create(c *gin.Context) {
	var req createMemberReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Campo obrigatório do formulário ausente ou inválido.")
		return
	}

	if err := util.ValidateBillingDay(req.BillingDay); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Dia de pagamento deve estar entre 1 e 31.")
		return
	}

	today := time.Now()
	due, err := billing.NextDueDate(req.BillingDay, today)
	if err != nil {
		if errors.Is(err, billing.ErrInvalidDueDay) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Dia de pagamento inválido ou data não existe. Por favor, ajuste.")
			return
		}
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro inesperado ao calcular vencimento.")
		return
	}

	member := models.Member{
		Name:        strings.TrimSpace(req.Name),
		BirthDate:   req.BirthDate,
		CPF:         req.CPF,
		RG:          req.RG,
		Dependents:  req.Dependents,
		Phone:       req.Phone,
		PostalCode:  req.PostalCode,
		Street:      req.Street,
		HouseNumber: req.HouseNumber,
		District:    req.District,
		City:        req.City,
		State:       req.State,
		NextDueDate: &due,
		EnrolledOn:  today,
	}

	if err := h.DB.Create(&member).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao cadastrar. Verifique se o usuário já existe.")
		return
	}

	util.Success(c, util.Response{
		"usuario": member,
	})
}

// List returns the roster, optionally filtered by name substring
// (case-insensitive).
func (h *MemberHandler) List(c *gin.Context) {
	q := h.DB.Model(&models.Member{})
	if nome := c.Query("nome"); nome != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(nome)+"%")
	}

	var members []models.Member
	if err := q.Order("id ASC").Find(&members).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Falha ao listar usuários.")
		return
	}

	util.Success(c, util.Response{
		"usuarios": members,
	})
}

// Get returns one member by id.
func (h *MemberHandler) Get(c *gin.Context) {
	member, ok := h.findByParam(c)
	if !ok {
		return
	}
	util.Success(c, util.Response{
		"usuario": member,
	})
}

// Update edits the contact and address fields. The due date is deliberately
// untouchable here: only payment registration moves it.
func (h *MemberHandler) Update(c *gin.Context) {
	member, ok := h.findByParam(c)
	if !ok {
		return
	}

	var req updateMemberReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Campo obrigatório do formulário ausente ou inválido.")
		return
	}

	member.Name = strings.TrimSpace(req.Name)
	member.BirthDate = req.BirthDate
	member.CPF = req.CPF
	member.RG = req.RG
	member.Dependents = req.Dependents
	member.Phone = req.Phone
	member.PostalCode = req.PostalCode
	member.Street = req.Street
	member.HouseNumber = req.HouseNumber
	member.District = req.District
	member.City = req.City
	member.State = req.State

	if err := h.DB.Save(member).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao salvar usuário.")
		return
	}

	util.Success(c, util.Response{
		"usuario": member,
	})
}

// Delete removes a member; bookings and ledger entries follow via the
// foreign-key cascade.
func (h *MemberHandler) Delete(c *gin.Context) {
	member, ok := h.findByParam(c)
	if !ok {
		return
	}

	if err := h.DB.Delete(member).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao excluir usuário.")
		return
	}

	util.Success(c, util.Response{
		"mensagem": "Usuário " + member.Name + " excluído com sucesso!",
	})
}

func (h *MemberHandler) findByParam(c *gin.Context) (*models.Member, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "ID não é válido.")
		return nil, false
	}

	var member models.Member
	if err := h.DB.First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Usuário não encontrado.")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Falha ao consultar usuário.")
		}
		return nil, false
	}
	return &member, true
}
