package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrNotImplemented = errors.New("funcionalidade em desenvolvimento")

	ErrMissingRequiredData = errors.New("dados obrigatórios ausentes")
	ErrInvalidRequest      = errors.New("requisição inválida")
	ErrAlreadyExists       = errors.New("registro já existe")
	ErrNotFound            = errors.New("registro não encontrado")
	ErrNegativeValue       = errors.New("valores negativos não são permitidos")
	ErrInvalidAmount       = errors.New("valor monetário inválido")
	ErrInvalidRate         = errors.New("taxa de parcelamento inválida")
	ErrStoreForbidden      = errors.New("usuário sem acesso à loja")

	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

// CatalogError é um erro de cadastro com o código de API correspondente
type CatalogError struct {
	Err     error
	Code    string
	Details string
}

func (e *CatalogError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}

func (e *CatalogError) APICode() string {
	return e.Code
}

func NewCatalogError(baseErr error, code string, details string) *CatalogError {
	return &CatalogError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}
