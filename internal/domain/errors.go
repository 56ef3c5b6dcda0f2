package domain

import "errors"

// Domain hataları (dış bağımlılık yok).
var (
	ErrNotFound                 = errors.New("kayıt bulunamadı")
	ErrUserNotFound             = errors.New("kullanıcı bulunamadı")
	ErrEmailAlreadyExists       = errors.New("bu e-posta adresi zaten kayıtlı")
	ErrInvalidInput             = errors.New("geçersiz giriş")
	ErrDuplicate                = errors.New("kayıt zaten mevcut")
	ErrUnauthorized             = errors.New("yetkisiz erişim")
	ErrForbidden                = errors.New("bu işlem için yetkiniz yok")
	ErrConflict                 = errors.New("kaydın mevcut durumu ile çakışma")
	ErrInvalidTransition        = errors.New("geçersiz durum geçişi")
	ErrLeaveOverlap             = errors.New("bu tarihlerde başka bir izin talebi mevcut")
	ErrInsufficientLeaveBalance = errors.New("yetersiz izin bakiyesi")
	ErrModuleDisabled           = errors.New("modül bu şirket için aktif değil")
)
