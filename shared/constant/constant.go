package constant

import (
	"time"
)

// Context key types to avoid collisions
type contextKey string

const (
	ContextKeyStaffID contextKey = "staff_id"
	ContextKeyTokenID contextKey = "token_id"
)

const (
	RequestParamID        = "id"
	RequestParamAmenityID = "amenityId"
	RequestParamDate      = "date"
	RequestMaxMemory      = 2 << 20
)

const (
	RequestParamPage    = "page"
	RequestParamLimit   = "limit"
	RequestParamSortBy  = "sort_by"
	RequestParamSortDir = "sort_dir"
	RequestParamStatus  = "status"
	RequestParamRoomID  = "room_id"
	RequestParamGuestID = "guest_id"
	RequestParamType    = "room_type"
)

const (
	DefaultValuePage    = 1
	DefaultValueLimit   = 0
	DefaultValueSortBy  = "id"
	DefaultValueSortDir = "ASC"
	MaxValueLimit       = 500
)

const (
	FieldID        = "id"
	FieldEmail     = "email"
	FieldUpdatedAt = "updated_at"
)

const (
	RoomStatusAvailable   = "available"
	RoomStatusOccupied    = "occupied"
	RoomStatusMaintenance = "maintenance"
)

const (
	ReservationStatusConfirmed  = "confirmed"
	ReservationStatusCheckedIn  = "checked-in"
	ReservationStatusCheckedOut = "checked-out"
	ReservationStatusCancelled  = "cancelled"
)

// ActiveReservationStatuses are the statuses that occupy a room.
var ActiveReservationStatuses = []string{ReservationStatusConfirmed, ReservationStatusCheckedIn}

const (
	ReservationEventCreated = "reservation.created"
	ReservationEventUpdated = "reservation.updated"
	ReservationEventDeleted = "reservation.deleted"
)

const (
	PqErrorCodeUniqueViolation = "23505"
	PqErrorCodeFkViolation     = "23503"
)

const (
	DateFormat     = "2006-01-02"
	DateTimeFormat = time.RFC3339
	// ISODateTimeFormat renders stored wall-clock timestamps without an offset.
	ISODateTimeFormat = "2006-01-02T15:04:05"
)

const (
	MinutesToSeconds = 60
)

const (
	MinPasswordLength = 8
	RoomImageMaxSize  = 1 << 20
	RoomImageDir      = "rooms"
)

const (
	SessionKeyPrefix = "session"
	RateLimitPrefix  = "ratelimit"
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelEventScopeName      = "event"
	OtelSessionScopeName    = "session"
	OtelS3ScopeName         = "s3"

	OtelQueryAttributeKey = "query"
)

const (
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
	RequestHeaderRetryAfter         = "Retry-After"
	RequestHeaderRequestID          = "X-Request-ID"
	RequestHeaderForwardedFor       = "X-Forwarded-For"
	RequestHeaderRealIP             = "X-Real-IP"
)

const (
	ContentTypeJSON = "application/json"
	ContentTypePNG  = "image/png"
	ContentTypeJPEG = "image/jpeg"
	FormFileImage   = "image"
)

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy            = "SERVER UNHEALTHY"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

const (
	Asterix = "*"
	Empty   = ""
)
