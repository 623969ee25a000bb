package apiErrors

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// Erros de autenticação
	ErrInvalidCredentials    = "AUTH_001" // Credenciais inválidas
	ErrUserDisabled          = "AUTH_002" // Usuário desativado
	ErrUserNotFound          = "AUTH_003" // Usuário não encontrado
	ErrUserLocked            = "AUTH_004" // Usuário bloqueado temporariamente
	ErrPasswordExpired       = "AUTH_005" // Senha expirada
	ErrInvalidToken          = "AUTH_006" // Token inválido
	ErrExpiredToken          = "AUTH_007" // Token expirado
	ErrInsufficientPrivilege = "AUTH_008" // Privilégios insuficientes
	ErrUserAlreadyExists     = "AUTH_009" // Login ou email já cadastrado

	// Erros de validação
	ErrInvalidRequest       = "VAL_001" // Requisição inválida
	ErrMissingRequiredData  = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat        = "VAL_003" // Formato de dados inválido
	ErrNegativeValue        = "VAL_004" // Valor monetário negativo
	ErrConfirmationRequired = "VAL_005" // Operação destrutiva sem confirmação
	ErrNotFound             = "VAL_006" // Registro não encontrado

	// Erros do editor de preços em massa
	ErrInvalidSessionState = "BULK_001" // Sessão fora do estado esperado
	ErrApplyInProgress     = "BULK_002" // Já existe uma aplicação em andamento
	ErrSessionNotFound     = "BULK_003" // Sessão inexistente ou expirada

	// Erros de preço
	ErrPriceRolledBack = "PRC_001" // Persistência rejeitada, valores restaurados

	// Erros do servidor
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrExternalService   = "SRV_003" // Erro em serviço externo
	ErrCommunication     = "SRV_004" // Erro de comunicação
	ErrNotImplemented    = "SRV_005" // Funcionalidade em desenvolvimento
)

var httpStatusMap = map[string]int{
	ErrInvalidCredentials:    http.StatusUnauthorized,
	ErrUserDisabled:          http.StatusForbidden,
	ErrUserNotFound:          http.StatusNotFound,
	ErrUserLocked:            http.StatusForbidden,
	ErrPasswordExpired:       http.StatusUnauthorized,
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrUserAlreadyExists:     http.StatusBadRequest,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrNegativeValue:         http.StatusBadRequest,
	ErrConfirmationRequired:  http.StatusConflict,
	ErrNotFound:              http.StatusNotFound,
	ErrInvalidSessionState:   http.StatusConflict,
	ErrApplyInProgress:       http.StatusConflict,
	ErrSessionNotFound:       http.StatusNotFound,
	ErrPriceRolledBack:       http.StatusConflict,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDatabaseOperation:     http.StatusInternalServerError,
	ErrExternalService:       http.StatusBadGateway,
	ErrCommunication:         http.StatusServiceUnavailable,
	ErrNotImplemented:        http.StatusNotImplemented,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// StatusFor devolve o status HTTP associado ao código, 500 quando desconhecido
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(apiErr)
}

// CodedError é implementado pelos erros tipados dos casos de uso
type CodedError interface {
	error
	APICode() string
}

// FromError cria um erro de API a partir de um erro Go, usando o código do erro quando houver
func FromError(err error, fallbackCode string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	code := fallbackCode
	var coded CodedError
	if errors.As(err, &coded) && coded.APICode() != "" {
		code = coded.APICode()
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
