package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo is a code plus a user-facing explanation.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError classifies store errors from Postgres or SQLite without leaking driver detail.
// context names the entity involved ("venue", "specialist", ...).
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Sunucu hatası oluştu",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	if errors.Is(err, gorm.ErrRecordNotFound) || strings.Contains(errStrLower, "not found") {
		return ErrorInfo{
			Code:    notFoundCode(context),
			Message: getNotFoundMessage(context),
		}
	}

	// 23505 / UNIQUE constraint failed
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStrLower)
	}

	// 23503 / FOREIGN KEY constraint failed
	if strings.Contains(errStrLower, "foreign key constraint") {
		return parseForeignKeyError(errStrLower)
	}

	// 23502 / NOT NULL constraint failed
	if strings.Contains(errStrLower, "not-null constraint") || strings.Contains(errStrLower, "not null constraint") {
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "Zorunlu bir alan boş bırakıldı",
		}
	}

	if strings.Contains(errStrLower, "check constraint") {
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "Girilen değer izin verilen aralığın dışında",
		}
	}

	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "Veritabanına bağlanılamadı, lütfen daha sonra tekrar deneyin",
		}
	}

	return ErrorInfo{
		Code:    InternalDatabaseError,
		Message: getDefaultErrorMessage(context),
	}
}

func parseDuplicateKeyError(errLower string) ErrorInfo {
	if strings.Contains(errLower, "venue_services") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "Aynı hizmet bir işletmeye iki kez eklenemez",
		}
	}
	if strings.Contains(errLower, "venues_subscription") {
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "İşletmenin zaten bir aboneliği var",
		}
	}
	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "Bu kayıt zaten mevcut",
	}
}

func parseForeignKeyError(errLower string) ErrorInfo {
	switch {
	case strings.Contains(errLower, "category"):
		return ErrorInfo{Code: VenueReferenceNotFound, Message: "Seçilen kategori bulunamadı"}
	case strings.Contains(errLower, "province"):
		return ErrorInfo{Code: VenueReferenceNotFound, Message: "Seçilen il bulunamadı"}
	case strings.Contains(errLower, "district"):
		return ErrorInfo{Code: VenueReferenceNotFound, Message: "Seçilen ilçe bulunamadı"}
	case strings.Contains(errLower, "service"):
		return ErrorInfo{Code: VenueReferenceNotFound, Message: "Seçilen hizmet katalogda bulunamadı"}
	case strings.Contains(errLower, "venue"):
		return ErrorInfo{Code: VenueNotFound, Message: "İşletme bulunamadı"}
	}
	// SQLite does not name the constraint.
	return ErrorInfo{
		Code:    VenueReferenceNotFound,
		Message: "Başvurulan kayıt bulunamadı",
	}
}

func notFoundCode(context string) string {
	switch context {
	case "venue":
		return VenueNotFound
	case "specialist":
		return SpecialistNotFound
	case "photo":
		return PhotoNotFound
	}
	return ResourceNotFound
}

func getNotFoundMessage(context string) string {
	switch context {
	case "venue":
		return "İşletme bulunamadı"
	case "specialist":
		return "Uzman bulunamadı"
	case "photo":
		return "Fotoğraf bulunamadı"
	case "subscription":
		return "Abonelik bulunamadı"
	}
	return "Kayıt bulunamadı"
}

func getDefaultErrorMessage(context string) string {
	switch context {
	case "venue":
		return "İşletme kaydedilirken bir hata oluştu"
	case "upload":
		return "Dosya yüklenirken bir hata oluştu"
	}
	return "Sunucu hatası oluştu, lütfen daha sonra tekrar deneyin"
}
