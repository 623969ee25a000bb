package domain

import "time"

const (
	TableStores         = "stores"
	TableModels         = "models"
	TableTradeInDevices = "trade_in_devices"
	TableCategories     = "categories"
	TableSubcategories  = "subcategories"
	TableDamageMatrix   = "damage_matrix"
	TableDamageTypes    = "damage_types"
	TableCardMachines   = "card_machines"
	TableUsers          = "users"
	TablePriceCells     = "price_cells"
)

// RequiredBackupTables são as tabelas obrigatórias de um arquivo de backup, na ordem de validação
var RequiredBackupTables = []string{
	TableStores,
	TableModels,
	TableTradeInDevices,
	TableCategories,
	TableSubcategories,
	TableDamageMatrix,
	TableDamageTypes,
	TableCardMachines,
	TableUsers,
}

type BackupData struct {
	Stores         []*Store           `json:"stores"`
	Models         []*PhoneModel      `json:"models"`
	TradeInDevices []*TradeInDevice   `json:"trade_in_devices"`
	Categories     []*Category        `json:"categories"`
	Subcategories  []*Subcategory     `json:"subcategories"`
	DamageMatrix   []*DamageMatrixRow `json:"damage_matrix"`
	DamageTypes    []*DamageType      `json:"damage_types"`
	CardMachines   []*CardMachine     `json:"card_machines"`
	Users          []*User            `json:"users"`
	PriceCells     []*PriceCell       `json:"price_cells"`
}

type BackupDocument struct {
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      *BackupData `json:"data"`
}

type BackupValidationResult struct {
	Valid    bool           `json:"valid"`
	Errors   []string       `json:"errors"`
	Warnings []string       `json:"warnings"`
	Counts   map[string]int `json:"counts,omitempty"`
}

type BackupImportResponse struct {
	Validation *BackupValidationResult `json:"validation"`
	Imported   bool                    `json:"imported"`
}
