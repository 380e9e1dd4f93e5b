package pkg

import (
	"errors"
	"net/http"
)

// Kind 错误类别，决定 HTTP 状态码和返回的 code 字段
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindInvalidType
	KindWrongContentType
	KindAlreadyAdmin
	KindSelfRemoval
	KindLastAdminProtected
	KindReadOnlyRegistry
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindStore
	KindMail
)

var kindNames = map[Kind]string{
	KindInternal:           "InternalError",
	KindValidation:         "ValidationError",
	KindInvalidType:        "InvalidType",
	KindWrongContentType:   "WrongContentType",
	KindAlreadyAdmin:       "AlreadyAdmin",
	KindSelfRemoval:        "SelfRemoval",
	KindLastAdminProtected: "LastAdminProtected",
	KindReadOnlyRegistry:   "ReadOnlyRegistry",
	KindUnauthenticated:    "Unauthenticated",
	KindForbidden:          "Forbidden",
	KindNotFound:           "NotFound",
	KindStore:              "StoreError",
	KindMail:               "MailError",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindInternal]
}

// Status 映射到 HTTP 状态码
func (k Kind) Status() int {
	switch k {
	case KindValidation, KindInvalidType, KindWrongContentType,
		KindAlreadyAdmin, KindSelfRemoval, KindLastAdminProtected, KindReadOnlyRegistry:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// AppError 业务错误。Message 面向用户，Err 保存下游原始错误
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// Is 同类别同消息即视为相同，便于 errors.Is 比较哨兵错误
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == e.Message
}

// Detail 下游原始错误信息，无则为空
func (e *AppError) Detail() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

var (
	ErrUnauthenticated  = &AppError{Kind: KindUnauthenticated, Message: "No autorizado. Token requerido."}
	ErrInvalidToken     = &AppError{Kind: KindUnauthenticated, Message: "Token inválido o expirado."}
	ErrForbidden        = &AppError{Kind: KindForbidden, Message: "Acceso denegado. Solo administradores."}
	ErrInvalidType      = &AppError{Kind: KindInvalidType, Message: "Tipo inválido."}
	ErrTitleRequired    = &AppError{Kind: KindValidation, Message: "El título es requerido."}
	ErrContentRequired  = &AppError{Kind: KindValidation, Message: "El contenido es requerido."}
	ErrCommentRequired  = &AppError{Kind: KindValidation, Message: "El comentario no puede estar vacío."}
	ErrAllFieldsNeeded  = &AppError{Kind: KindValidation, Message: "Todos los campos son obligatorios"}
	ErrInvalidID        = &AppError{Kind: KindValidation, Message: "Identificador inválido."}
	ErrInvalidParams    = &AppError{Kind: KindValidation, Message: "Parámetros inválidos."}
	ErrInvalidEmail     = &AppError{Kind: KindValidation, Message: "El correo no es válido."}
	ErrPublicationGone  = &AppError{Kind: KindNotFound, Message: "Publicación no encontrada."}
	ErrCommentGone      = &AppError{Kind: KindNotFound, Message: "Comentario no encontrado."}
	ErrAccountGone      = &AppError{Kind: KindNotFound, Message: "No existe un usuario con ese correo."}
	ErrAdminGone        = &AppError{Kind: KindNotFound, Message: "El administrador no existe"}
	ErrWrongContentType = &AppError{Kind: KindWrongContentType, Message: "Solo las entradas del blog admiten comentarios."}
	ErrAlreadyAdmin     = &AppError{Kind: KindAlreadyAdmin, Message: "El administrador ya existe"}
	ErrSelfRemoval      = &AppError{Kind: KindSelfRemoval, Message: "No puedes eliminarte a ti mismo como administrador."}
	ErrLastAdmin        = &AppError{Kind: KindLastAdminProtected, Message: "No se puede eliminar al último administrador."}
	ErrReadOnlyRegistry = &AppError{Kind: KindReadOnlyRegistry, Message: "La lista de administradores se gestiona por configuración."}
)

// Store 包装数据库错误
func Store(err error) error {
	return &AppError{Kind: KindStore, Message: "Error de base de datos", Err: err}
}

// Mail 包装邮件发送错误
func Mail(err error) error {
	return &AppError{Kind: KindMail, Message: "Error al enviar el correo", Err: err}
}

// Validation 自定义校验错误
func Validation(msg string) error {
	return &AppError{Kind: KindValidation, Message: msg}
}

// AsAppError 非 AppError 一律视为内部错误
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{Kind: KindInternal, Message: "Error interno del servidor.", Err: err}
}
