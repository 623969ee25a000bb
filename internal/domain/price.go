package domain

import (
	"fmt"
	"strings"
	"time"
)

// Cents é o valor monetário canônico: inteiro de centavos
type Cents = int64

type EntityKind string

const (
	KindPhoneModel   EntityKind = "phone_model"
	KindTradeIn      EntityKind = "trade_in"
	KindDamageMatrix EntityKind = "damage_matrix"
)

func (k EntityKind) Valid() bool {
	_, ok := FieldRegistry[k]
	return ok
}

const (
	FieldPrice    = "price"
	FieldCost     = "cost"
	FieldMinValue = "min_value"
	FieldMaxValue = "max_value"
	FieldDiscount = "discount"
)

type FieldSpec struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	StoreScoped bool   `json:"store_scoped"`
}

// FieldRegistry descreve os campos monetários de cada tipo de entidade
var FieldRegistry = map[EntityKind][]FieldSpec{
	KindPhoneModel: {
		{Name: FieldPrice, Label: "Preço de venda", StoreScoped: true},
		{Name: FieldCost, Label: "Custo", StoreScoped: false},
	},
	KindTradeIn: {
		{Name: FieldMinValue, Label: "Valor mínimo", StoreScoped: true},
		{Name: FieldMaxValue, Label: "Valor máximo", StoreScoped: true},
	},
	KindDamageMatrix: {
		{Name: FieldDiscount, Label: "Desconto", StoreScoped: false},
	},
}

func LookupField(kind EntityKind, name string) (FieldSpec, bool) {
	for _, spec := range FieldRegistry[kind] {
		if spec.Name == name {
			return spec, true
		}
	}
	return FieldSpec{}, false
}

// CellKey endereça um valor monetário: entidade, campo e loja (vazia quando o campo é global)
type CellKey struct {
	Kind     EntityKind `json:"kind"`
	EntityID string     `json:"entity_id"`
	Field    string     `json:"field"`
	StoreID  string     `json:"store_id,omitempty"`
}

func (k CellKey) String() string {
	return fmt.Sprintf("%s/%s/%s/%s", k.Kind, k.EntityID, k.Field, k.StoreID)
}

type PriceCell struct {
	CellKey

	Cents     Cents     `json:"cents"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PriceCellView é a célula pronta para exibição
type PriceCellView struct {
	CellKey

	Cents   Cents  `json:"cents"`
	Display string `json:"display"`
}

type PriceOperation string

const (
	OperationPercentage PriceOperation = "percentage"
	OperationFixed      PriceOperation = "fixed"
	OperationCustom     PriceOperation = "custom"
	OperationCopy       PriceOperation = "copy"
	OperationManual     PriceOperation = "manual"
	OperationImport     PriceOperation = "import"
)

// PriceChange é uma alteração calculada, com o valor anterior para rollback e histórico
type PriceChange struct {
	CellKey

	Before    Cents          `json:"before"`
	After     Cents          `json:"after"`
	Existed   bool           `json:"existed"`
	Operation PriceOperation `json:"operation"`
	Magnitude string         `json:"magnitude,omitempty"`
	UserID    int            `json:"user_id,omitempty"`
}

type PriceHistoryEntry struct {
	CellKey

	ID        string         `json:"id"`
	OldCents  Cents          `json:"old_cents"`
	NewCents  Cents          `json:"new_cents"`
	Operation PriceOperation `json:"operation"`
	Magnitude string         `json:"magnitude,omitempty"`
	UserID    int            `json:"user_id,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

const damageMatrixSeparator = ":"

func DamageMatrixEntityID(subcategoryID, damageTypeID string) string {
	return subcategoryID + damageMatrixSeparator + damageTypeID
}

func SplitDamageMatrixEntityID(entityID string) (subcategoryID, damageTypeID string, ok bool) {
	return strings.Cut(entityID, damageMatrixSeparator)
}
