package refueling

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de abastecimentos
var (
	ErrStationNotFound   = errors.New("posto não encontrado")
	ErrInvalidFuelType   = errors.New("tipo de combustível desconhecido")
	ErrInvalidLiters     = errors.New("quantidade de litros inválida")
	ErrInvalidTotalPaid  = errors.New("valor pago inválido")
	ErrInvalidRefuelDate = errors.New("data de abastecimento inválida")

	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

// RefuelError é um erro com contexto adicional para abastecimentos
type RefuelError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *RefuelError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *RefuelError) Unwrap() error {
	return e.Err
}

// NewRefuelError cria um novo RefuelError
func NewRefuelError(err error, code string, details string) *RefuelError {
	return &RefuelError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
