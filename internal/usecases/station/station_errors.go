package station

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de postos
var (
	// Erros de validação
	ErrNameRequired    = errors.New("nome do posto é obrigatório")
	ErrAddressRequired = errors.New("endereço do posto é obrigatório")
	ErrStationNotFound = errors.New("posto não encontrado")
	ErrInvalidFuelType = errors.New("tipo de combustível desconhecido")
	ErrInvalidPrice    = errors.New("preço inválido")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

// StationError é um erro com contexto adicional para postos
type StationError struct {
	Err       error  // Erro base
	Code      string // Código de erro para API
	StationID string // ID do posto envolvido (quando aplicável)
	Details   string // Detalhes adicionais
}

// Error implementa a interface error
func (e *StationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *StationError) Unwrap() error {
	return e.Err
}

// NewStationError cria um novo StationError
func NewStationError(err error, code string, details string) *StationError {
	return &StationError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// NewStationErrorWithID cria um novo StationError com ID do posto
func NewStationErrorWithID(err error, code string, stationID string, details string) *StationError {
	return &StationError{
		Err:       err,
		Code:      code,
		StationID: stationID,
		Details:   details,
	}
}
