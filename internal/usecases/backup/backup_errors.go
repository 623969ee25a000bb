package backup

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDocument   = errors.New("arquivo de backup inválido")
	ErrSnapshot          = errors.New("erro ao ler dados para exportação")
	ErrRestore           = errors.New("erro ao restaurar backup")
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

type BackupError struct {
	Err     error
	Code    string
	Details string
}

func (e *BackupError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *BackupError) Unwrap() error {
	return e.Err
}

func (e *BackupError) APICode() string {
	return e.Code
}

func NewBackupError(baseErr error, code string, details string) *BackupError {
	return &BackupError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}
