package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Subcategory struct {
	ID         string    `json:"id"`
	CategoryID string    `json:"category_id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}

type PhoneModel struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Brand         string    `json:"brand"`
	Storage       string    `json:"storage"`
	CategoryID    string    `json:"category_id"`
	SubcategoryID string    `json:"subcategory_id"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (m *PhoneModel) SelectionID() string { return m.ID }
func (m *PhoneModel) SearchText() string {
	return strings.Join([]string{m.Name, m.Brand, m.Storage}, " ")
}
func (m *PhoneModel) CategoryKey() string { return m.CategoryID }
func (m *PhoneModel) IsActive() bool      { return m.Active }

type TradeInDevice struct {
	ID            string    `json:"id"`
	ModelID       string    `json:"model_id"`
	Name          string    `json:"name"`
	SubcategoryID string    `json:"subcategory_id"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (d *TradeInDevice) SelectionID() string { return d.ID }
func (d *TradeInDevice) SearchText() string  { return d.Name }
func (d *TradeInDevice) CategoryKey() string { return d.SubcategoryID }
func (d *TradeInDevice) IsActive() bool      { return d.Active }

type DamageType struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// DamageMatrixRow é a visão de uma célula da matriz de descontos por avaria
type DamageMatrixRow struct {
	SubcategoryID string `json:"subcategory_id"`
	DamageTypeID  string `json:"damage_type_id"`
	DiscountCents Cents  `json:"discount_cents"`
}

func (r *DamageMatrixRow) SelectionID() string {
	return DamageMatrixEntityID(r.SubcategoryID, r.DamageTypeID)
}
func (r *DamageMatrixRow) SearchText() string  { return r.SubcategoryID + " " + r.DamageTypeID }
func (r *DamageMatrixRow) CategoryKey() string { return r.SubcategoryID }
func (r *DamageMatrixRow) IsActive() bool      { return true }

type InstallmentRate struct {
	Installments int             `json:"installments"`
	RatePercent  decimal.Decimal `json:"rate_percent"`
}

type CardMachine struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Active    bool              `json:"active"`
	Rates     []InstallmentRate `json:"rates"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// InitialPrice é um valor informado no cadastro, ainda em texto digitado
type InitialPrice struct {
	Field   string `json:"field"`
	StoreID string `json:"store_id"`
	Amount  string `json:"amount"`
}

type CreatePhoneModelRequest struct {
	Name          string         `json:"name"`
	Brand         string         `json:"brand"`
	Storage       string         `json:"storage"`
	CategoryID    string         `json:"category_id"`
	SubcategoryID string         `json:"subcategory_id"`
	Prices        []InitialPrice `json:"prices"`
}

type UpdatePhoneModelRequest struct {
	ID            string  `json:"id"`
	Name          *string `json:"name"`
	Brand         *string `json:"brand"`
	Storage       *string `json:"storage"`
	CategoryID    *string `json:"category_id"`
	SubcategoryID *string `json:"subcategory_id"`
}

type CreateTradeInDeviceRequest struct {
	ModelID       string         `json:"model_id"`
	Name          string         `json:"name"`
	SubcategoryID string         `json:"subcategory_id"`
	Prices        []InitialPrice `json:"prices"`
}

type UpdateTradeInDeviceRequest struct {
	ID            string  `json:"id"`
	Name          *string `json:"name"`
	SubcategoryID *string `json:"subcategory_id"`
	Active        *bool   `json:"active"`
}

type CreateCardMachineRequest struct {
	Name  string            `json:"name"`
	Rates []InstallmentRate `json:"rates"`
}

type UpdateCardMachineRequest struct {
	ID     string             `json:"id"`
	Name   *string            `json:"name"`
	Active *bool              `json:"active"`
	Rates  *[]InstallmentRate `json:"rates"`
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

type CreateSubcategoryRequest struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
}

type CreateDamageTypeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateDamageTypeRequest struct {
	ID          string  `json:"id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// PhoneModelView junta o modelo aos seus preços formatados
type PhoneModelView struct {
	*PhoneModel

	Prices []*PriceCellView `json:"prices"`
}

type TradeInDeviceView struct {
	*TradeInDevice

	Prices []*PriceCellView `json:"prices"`
}
