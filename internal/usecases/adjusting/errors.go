package adjusting

import (
	"errors"
	"fmt"

	"github.com/vfg2006/phone-retail-admin-api/pkg/apiErrors"
)

var (
	// Erros de sessão
	ErrSessionNotFound = errors.New("sessão de edição em massa não encontrada")
	ErrInvalidState    = errors.New("operação não permitida no estado atual da sessão")
	ErrApplyInProgress = errors.New("já existe uma aplicação em andamento para esta sessão")

	// Erros de validação
	ErrInvalidKind          = errors.New("tipo de entidade inválido")
	ErrInvalidField         = errors.New("campo inválido para o tipo de entidade")
	ErrInvalidOperation     = errors.New("operação inválida")
	ErrInvalidMagnitude     = errors.New("valor do ajuste inválido")
	ErrInvalidAmount        = errors.New("valor monetário inválido")
	ErrNegativeValue        = errors.New("valores negativos não são permitidos")
	ErrEmptySelection       = errors.New("nenhum item selecionado")
	ErrNoStores             = errors.New("nenhuma loja ativa selecionada")
	ErrInvalidStore         = errors.New("loja inválida para o campo")
	ErrSameStore            = errors.New("loja de origem e destino devem ser diferentes")
	ErrConfirmationRequired = errors.New("confirmação necessária para sobrescrever os preços da loja de destino")
	ErrInvalidFilter        = errors.New("filtro inválido")

	// Erros de consulta
	ErrEntityNotFound = errors.New("item não encontrado")
	ErrStoreNotFound  = errors.New("loja não encontrada ou inativa")

	ErrStoreForbidden = errors.New("usuário sem acesso à loja")

	// Erros de persistência
	ErrPersistenceRejected = errors.New("gravação rejeitada, valores anteriores restaurados")
)

// AdjustError carrega o código de API junto do erro base
type AdjustError struct {
	Err     error
	Code    string
	Details string
}

func (e *AdjustError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *AdjustError) Unwrap() error {
	return e.Err
}

func (e *AdjustError) APICode() string {
	return e.Code
}

func NewAdjustError(baseErr error, code string, details string) *AdjustError {
	return &AdjustError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}

// codeFor associa os erros base aos códigos da API
func codeFor(err error) string {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return apiErrors.ErrSessionNotFound
	case errors.Is(err, ErrInvalidState):
		return apiErrors.ErrInvalidSessionState
	case errors.Is(err, ErrApplyInProgress):
		return apiErrors.ErrApplyInProgress
	case errors.Is(err, ErrNegativeValue):
		return apiErrors.ErrNegativeValue
	case errors.Is(err, ErrConfirmationRequired):
		return apiErrors.ErrConfirmationRequired
	case errors.Is(err, ErrEntityNotFound), errors.Is(err, ErrStoreNotFound):
		return apiErrors.ErrNotFound
	case errors.Is(err, ErrStoreForbidden):
		return apiErrors.ErrInsufficientPrivilege
	case errors.Is(err, ErrPersistenceRejected):
		return apiErrors.ErrPriceRolledBack
	case errors.Is(err, ErrInvalidMagnitude), errors.Is(err, ErrInvalidAmount):
		return apiErrors.ErrInvalidFormat
	case errors.Is(err, ErrEmptySelection), errors.Is(err, ErrNoStores):
		return apiErrors.ErrMissingRequiredData
	default:
		return apiErrors.ErrInvalidRequest
	}
}

func newError(baseErr error, details string) *AdjustError {
	return NewAdjustError(baseErr, codeFor(baseErr), details)
}
