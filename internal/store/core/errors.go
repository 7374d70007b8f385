package core

import "errors"

var (
	// ErrNotFound: la fila buscada no existe. Es un resultado válido, no una falla.
	ErrNotFound = errors.New("not found")
	// ErrConflict: violación de clave primaria (p.ej. dos primeros logins en carrera).
	ErrConflict = errors.New("conflict")
	// ErrPoolUnavailable: el pool no pudo abrirse o ya fue cerrado.
	ErrPoolUnavailable = errors.New("pool unavailable")
)
