package reviewing

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de avaliações e denúncias
var (
	ErrInvalidRating      = errors.New("nota deve estar entre 1 e 5")
	ErrStationNotFound    = errors.New("posto não encontrado")
	ErrInvalidFuelType    = errors.New("tipo de combustível desconhecido")
	ErrInvalidRefuelDate  = errors.New("data de abastecimento inválida")
	ErrDescriptionTooLong = errors.New("descrição da denúncia excede o limite")

	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

// ReviewError é um erro com contexto adicional para avaliações
type ReviewError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *ReviewError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *ReviewError) Unwrap() error {
	return e.Err
}

// NewReviewError cria um novo ReviewError
func NewReviewError(err error, code string, details string) *ReviewError {
	return &ReviewError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
