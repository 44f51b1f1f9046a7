package domain

import "errors"

// Errores de dominio (sin dependencias externas). Cada operación de los motores
// termina en uno de estos sentinels o en éxito; nunca se filtra un error del
// store al llamador.
var (
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	// ErrNotFound cubre también entidades de otro tenant: el llamador no puede
	// distinguir "no existe" de "fuera de su tenant".
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")

	ErrTenantSuspended = errors.New("tenant suspendido: solo lectura")

	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrInsufficientPayment = errors.New("pago insuficiente")
	ErrOverReceipt         = errors.New("cantidad recibida excede lo ordenado")
	ErrOverRefund          = errors.New("cantidad devuelta excede lo vendido")

	ErrSessionAlreadyOpen   = errors.New("la caja ya tiene una sesión abierta")
	ErrSessionAlreadyClosed = errors.New("la sesión de caja ya está cerrada")

	ErrSelfApproval      = errors.New("el aprobador debe ser distinto del solicitante")
	ErrInvalidTransition = errors.New("transición de estado no permitida")
)
