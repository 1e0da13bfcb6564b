package moderating

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de moderação
var (
	ErrInvalidSeal       = errors.New("selo desconhecido")
	ErrStationNotFound   = errors.New("posto não encontrado")
	ErrComplaintNotFound = errors.New("denúncia não encontrada")
	ErrAlreadyReviewed   = errors.New("denúncia já foi analisada")

	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

// ModerationError é um erro com contexto adicional para moderação
type ModerationError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *ModerationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *ModerationError) Unwrap() error {
	return e.Err
}

// NewModerationError cria um novo ModerationError
func NewModerationError(err error, code string, details string) *ModerationError {
	return &ModerationError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
