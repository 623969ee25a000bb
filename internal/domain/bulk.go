package domain

import "time"

type SessionState string

const (
	SessionIdle          SessionState = "idle"
	SessionConfiguring   SessionState = "configuring"
	SessionPreviewing    SessionState = "previewing"
	SessionCustomEditing SessionState = "custom_editing"
	SessionApplying      SessionState = "applying"
	SessionCommitted     SessionState = "committed"
	SessionFailed        SessionState = "failed"
)

type AdjustDirection string

const (
	DirectionIncrease AdjustDirection = "increase"
	DirectionDecrease AdjustDirection = "decrease"
)

type CreateBulkSessionRequest struct {
	Kind EntityKind `json:"kind"`
}

type ConfigureBulkSessionRequest struct {
	Operation PriceOperation `json:"operation"`
	Fields    []string       `json:"fields"`
	StoreIDs  []string       `json:"store_ids"`
}

type SelectionAction string

const (
	SelectionSelect    SelectionAction = "select"
	SelectionDeselect  SelectionAction = "deselect"
	SelectionToggle    SelectionAction = "toggle"
	SelectionSelectAll SelectionAction = "select_all"
	SelectionClear     SelectionAction = "clear"
	// SelectionSetFilter troca só o filtro; a seleção continua igual
	SelectionSetFilter SelectionAction = "filter"
)

type SelectionFilter struct {
	Text       string `json:"text"`
	CategoryID string `json:"category_id"`
	Status     string `json:"status"`
}

type UpdateSelectionRequest struct {
	Action SelectionAction `json:"action"`
	IDs    []string        `json:"ids"`
	Filter SelectionFilter `json:"filter"`
}

// BulkSessionItem é uma linha da tabela do editor em massa
type BulkSessionItem struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	CategoryID string `json:"category_id"`
	Active     bool   `json:"active"`
	Selected   bool   `json:"selected"`
}

type PreviewBulkRequest struct {
	Magnitude string          `json:"magnitude"`
	Direction AdjustDirection `json:"direction"`
}

type CustomPriceInput struct {
	CellKey

	Amount string `json:"amount"`
}

type ApplyCustomRequest struct {
	Cells []CustomPriceInput `json:"cells"`
}

type BulkPreview struct {
	Operation        PriceOperation  `json:"operation"`
	Direction        AdjustDirection `json:"direction,omitempty"`
	Magnitude        string          `json:"magnitude"`
	AffectedEntities int             `json:"affected_entities"`
	AffectedCells    int             `json:"affected_cells"`
	Fields           []FieldSpec     `json:"fields"`
	Stores           []*Store        `json:"stores"`
	Changes          []PriceChange   `json:"changes"`
}

type BulkSessionResponse struct {
	ID          string          `json:"id"`
	Kind        EntityKind      `json:"kind"`
	State       SessionState    `json:"state"`
	Operation   PriceOperation  `json:"operation,omitempty"`
	Fields      []string        `json:"fields"`
	StoreIDs    []string        `json:"store_ids"`
	SelectedIDs []string        `json:"selected_ids"`
	Filter      SelectionFilter `json:"filter"`
	Preview     *BulkPreview    `json:"preview,omitempty"`
	Error       string          `json:"error,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type BulkApplyResponse struct {
	SessionID    string       `json:"session_id"`
	State        SessionState `json:"state"`
	AppliedCells int          `json:"applied_cells"`
	Message      string       `json:"message"`
}

type CopyPricesRequest struct {
	Kind          EntityKind `json:"kind"`
	SourceStoreID string     `json:"source_store_id"`
	TargetStoreID string     `json:"target_store_id"`
	Confirm       bool       `json:"confirm"`
}

type CopyPricesResponse struct {
	Applied bool          `json:"applied"`
	Changes []PriceChange `json:"changes"`
	Message string        `json:"message"`
}

type UpdateCellRequest struct {
	CellKey

	Amount string `json:"amount"`
}
