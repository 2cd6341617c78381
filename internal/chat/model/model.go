// Package model defines the shared types exchanged between the chat engine,
// the backend data client, and the HTTP layer.
package model

// Language is a supported conversation language code.
type Language string

const (
	LangEnglish Language = "en"
	LangKannada Language = "kn"
)

// Normalize maps any unknown language code to English.
func (l Language) Normalize() Language {
	if l == LangKannada {
		return LangKannada
	}
	return LangEnglish
}

// Role is the platform role carried on a user record. Anything that is not
// exactly OWNER or ADMIN is treated as a renter.
type Role string

const (
	RoleRenter Role = "RENTER"
	RoleOwner  Role = "OWNER"
	RoleAdmin  Role = "ADMIN"
)

// CanManageEquipment reports whether the role may see equipment listings and
// incoming booking requests.
func (r Role) CanManageEquipment() bool {
	return r == RoleOwner || r == RoleAdmin
}

// ActionKind identifies a state-changing action dispatched to the backend.
type ActionKind string

const (
	ActionCancelBooking  ActionKind = "cancel_booking"
	ActionApproveRequest ActionKind = "approve_request"
	ActionRejectRequest  ActionKind = "reject_request"
)

// TargetField returns the JSON field name the backend expects the target id
// under for this action.
func (k ActionKind) TargetField() string {
	if k == ActionCancelBooking {
		return "bookingId"
	}
	return "candidateId"
}

// EquipmentRef is the nested equipment summary the backend embeds in a booking.
type EquipmentRef struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Booking is one rental booking belonging to the user.
type Booking struct {
	ID         int64        `json:"id"`
	Equipment  EquipmentRef `json:"equipment"`
	Status     string       `json:"status"`
	StartDate  string       `json:"startDate"`
	TotalPrice float64      `json:"totalPrice"`
}

// EquipmentItem is one piece of equipment owned by the user.
// Available is a pointer because older backend payloads omit the field,
// and an omitted flag means the item is rentable.
type EquipmentItem struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	PricePerDay float64 `json:"pricePerDay"`
	Available   *bool   `json:"available,omitempty"`
}

// IsAvailable reports whether the item can currently be rented.
func (e EquipmentItem) IsAvailable() bool {
	return e.Available == nil || *e.Available
}

// RenterRef is the nested renter summary on a pending request.
type RenterRef struct {
	Name string `json:"name"`
}

// PendingRequest is a booking request awaiting the owner's decision.
type PendingRequest struct {
	CandidateID   int64     `json:"candidateId"`
	EquipmentName string    `json:"equipmentName"`
	Renter        RenterRef `json:"renter"`
	StartDate     string    `json:"startDate"`
	TotalPrice    float64   `json:"totalPrice"`
}

// UserRecord is the per-request snapshot of a user fetched from the backend.
// The engine never mutates or retains it.
type UserRecord struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	District string `json:"district"`
	FarmSize string `json:"farmSize"`
	CropType string `json:"cropType"`

	Bookings  []Booking        `json:"bookings"`
	Equipment []EquipmentItem  `json:"equipment"`
	Requests  []PendingRequest `json:"requests"`
}

// Reply is the single output shape the dialogue engine produces. It is built
// fresh per request and never mutated afterwards.
type Reply struct {
	Text        string   `json:"response"`
	Intent      string   `json:"detected_intent"`
	Language    Language `json:"language"`
	Suggestions []string `json:"suggestions"`

	// Data carries the structured payload backing a data-summary reply:
	// the full user record for a profile, a keyed list otherwise.
	Data interface{} `json:"data,omitempty"`

	// ActionRequired plus the matching id field form the stateless pending
	// action: the client echoes the id back in a "confirm ... #<id>" message.
	ActionRequired ActionKind `json:"action_required,omitempty"`
	BookingID      string     `json:"booking_id,omitempty"`
	CandidateID    string     `json:"candidate_id,omitempty"`
}

// WithTarget attaches the pending-action target id to the field matching the
// action kind.
func (r Reply) WithTarget(kind ActionKind, id string) Reply {
	r.ActionRequired = kind
	if kind == ActionCancelBooking {
		r.BookingID = id
	} else {
		r.CandidateID = id
	}
	return r
}
