package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrConflict         = errors.New("conflicto con el estado actual")
	ErrHasChildren      = errors.New("la categoría tiene subcategorías")
	ErrInvalidReference = errors.New("referencia a un recurso inexistente")
	ErrCyclicParent     = errors.New("la categoría no puede ser su propio ancestro")
)
