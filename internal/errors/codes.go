package errors

// Error codes returned in the "error" field of every JSON error body.
// Format: CATEGORY_SPECIFIC_DETAIL. Clients map these to localized text.

const (
	// ==================== AUTH_ ====================
	AuthUnauthorized = "AUTH_UNAUTHORIZED"  // missing credentials
	AuthTokenExpired = "AUTH_TOKEN_EXPIRED" // access token expired
	AuthTokenInvalid = "AUTH_TOKEN_INVALID" // malformed or wrongly signed token

	// ==================== AUTHZ_ ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"     // role not allowed
	AuthzVenueAccess  = "AUTHZ_VENUE_ACCESS"  // business token for another venue
	AuthzOperatorOnly = "AUTHZ_OPERATOR_ONLY" // platform operators only

	// ==================== VALIDATION_ ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // body could not be parsed
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationRequired     = "VALIDATION_REQUIRED" // required or malformed fields, see "fields"

	// ==================== RESOURCE_ ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== VENUE_ ====================
	VenueNotFound          = "VENUE_NOT_FOUND"
	VenueReferenceNotFound = "VENUE_REFERENCE_NOT_FOUND" // unknown category, province, district or service
	SpecialistNotFound     = "SPECIALIST_NOT_FOUND"
	PhotoNotFound          = "PHOTO_NOT_FOUND"
	SubscriptionInvalid    = "SUBSCRIPTION_INVALID_PLAN"

	// ==================== UPLOAD_ ====================
	UploadFailed        = "UPLOAD_FAILED"
	UploadInvalidFile   = "UPLOAD_INVALID_FILE"
	UploadTooLarge      = "UPLOAD_TOO_LARGE"
	UploadPresignFailed = "UPLOAD_PRESIGN_FAILED"

	// ==================== PUSH_ ====================
	PushNotConfigured = "PUSH_NOT_CONFIGURED"
	PushGatewayFailed = "PUSH_GATEWAY_FAILED"

	// ==================== INTERNAL_ ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
)
