package action

import "farmtech-assist/internal/chat/model"

// Outcome classifies the result of a dispatched action.
type Outcome string

const (
	OutcomeSuccess   Outcome = "success"
	OutcomeRejected  Outcome = "rejected"
	OutcomeTransport Outcome = "transport_failure"
)

// replyText is the localized template for one action outcome. The format
// string takes a single argument: the target id on success, the failure
// message otherwise.
type replyText struct {
	Format      string
	Intent      string
	Suggestions []string
}

var outcomeTexts = map[model.ActionKind]map[Outcome]map[model.Language]replyText{
	model.ActionCancelBooking: {
		OutcomeSuccess: {
			model.LangEnglish: {
				Format:      "✅ Booking #%s has been cancelled successfully!\n\nYou can make a new booking anytime.",
				Intent:      "cancel_booking_confirmed",
				Suggestions: []string{"My bookings", "Find equipment", "Help"},
			},
			model.LangKannada: {
				Format:      "✅ ಬುಕಿಂಗ್ #%s ಯಶಸ್ವಿಯಾಗಿ ರದ್ದುಗೊಂಡಿದೆ!\n\nನೀವು ಯಾವಾಗ ಬೇಕಾದರೂ ಹೊಸ ಬುಕಿಂಗ್ ಮಾಡಬಹುದು.",
				Intent:      "cancel_booking_confirmed",
				Suggestions: []string{"ನನ್ನ ಬುಕಿಂಗ್‌ಗಳು", "ಉಪಕರಣ ಹುಡುಕಿ", "ಸಹಾಯ"},
			},
		},
		OutcomeRejected: {
			model.LangEnglish: {
				Format:      "❌ Failed to cancel booking: %s\n\nPlease try again or contact support.",
				Intent:      "cancel_booking_failed",
				Suggestions: []string{"My bookings", "Help"},
			},
			model.LangKannada: {
				Format:      "❌ ಬುಕಿಂಗ್ ರದ್ದುಮಾಡಲು ವಿಫಲವಾಗಿದೆ: %s\n\nದಯವಿಟ್ಟು ಮತ್ತೆ ಪ್ರಯತ್ನಿಸಿ ಅಥವಾ ಬೆಂಬಲವನ್ನು ಸಂಪರ್ಕಿಸಿ.",
				Intent:      "cancel_booking_failed",
				Suggestions: []string{"ನನ್ನ ಬುಕಿಂಗ್‌ಗಳು", "ಸಹಾಯ"},
			},
		},
		OutcomeTransport: {
			model.LangEnglish: {
				Format:      "❌ Error cancelling booking: %s\n\nPlease try again later.",
				Intent:      "cancel_booking_error",
				Suggestions: []string{"My bookings", "Help"},
			},
			model.LangKannada: {
				Format:      "❌ ಬುಕಿಂಗ್ ರದ್ದುಮಾಡುವಲ್ಲಿ ದೋಷ: %s\n\nದಯವಿಟ್ಟು ನಂತರ ಪ್ರಯತ್ನಿಸಿ.",
				Intent:      "cancel_booking_error",
				Suggestions: []string{"ನನ್ನ ಬುಕಿಂಗ್‌ಗಳು", "ಸಹಾಯ"},
			},
		},
	},
	model.ActionApproveRequest: {
		OutcomeSuccess: {
			model.LangEnglish: {
				Format:      "✅ Request #%s has been approved successfully!\n\nThe booking is now confirmed. The renter will be notified.",
				Intent:      "approve_request_confirmed",
				Suggestions: []string{"Pending requests", "My equipment", "Help"},
			},
			model.LangKannada: {
				Format:      "✅ ವಿನಂತಿ #%s ಯಶಸ್ವಿಯಾಗಿ ಅನುಮೋದಿಸಲಾಗಿದೆ!\n\nಬುಕಿಂಗ್ ಈಗ ದೃಢೀಕರಿಸಲಾಗಿದೆ. ಬಾಡಿಗೆದಾರರಿಗೆ ತಿಳಿಸಲಾಗುವುದು.",
				Intent:      "approve_request_confirmed",
				Suggestions: []string{"ಬಾಕಿ ವಿನಂತಿಗಳು", "ನನ್ನ ಉಪಕರಣ", "ಸಹಾಯ"},
			},
		},
		OutcomeRejected: {
			model.LangEnglish: {
				Format:      "❌ Failed to approve request: %s\n\nPlease try again or contact support.",
				Intent:      "approve_request_failed",
				Suggestions: []string{"Pending requests", "Help"},
			},
			model.LangKannada: {
				Format:      "❌ ವಿನಂತಿ ಅನುಮೋದಿಸಲು ವಿಫಲವಾಗಿದೆ: %s\n\nದಯವಿಟ್ಟು ಮತ್ತೆ ಪ್ರಯತ್ನಿಸಿ ಅಥವಾ ಬೆಂಬಲವನ್ನು ಸಂಪರ್ಕಿಸಿ.",
				Intent:      "approve_request_failed",
				Suggestions: []string{"ಬಾಕಿ ವಿನಂತಿಗಳು", "ಸಹಾಯ"},
			},
		},
		OutcomeTransport: {
			model.LangEnglish: {
				Format:      "❌ Error approving request: %s\n\nPlease try again later.",
				Intent:      "approve_request_error",
				Suggestions: []string{"Pending requests", "Help"},
			},
			model.LangKannada: {
				Format:      "❌ ವಿನಂತಿ ಅನುಮೋದಿಸುವಲ್ಲಿ ದೋಷ: %s\n\nದಯವಿಟ್ಟು ನಂತರ ಪ್ರಯತ್ನಿಸಿ.",
				Intent:      "approve_request_error",
				Suggestions: []string{"ಬಾಕಿ ವಿನಂತಿಗಳು", "ಸಹಾಯ"},
			},
		},
	},
	model.ActionRejectRequest: {
		OutcomeSuccess: {
			model.LangEnglish: {
				Format:      "✅ Request #%s has been rejected.\n\nThe renter will be notified that their request was declined.",
				Intent:      "reject_request_confirmed",
				Suggestions: []string{"Pending requests", "My equipment", "Help"},
			},
			model.LangKannada: {
				Format:      "✅ ವಿನಂತಿ #%s ತಿರಸ್ಕರಿಸಲಾಗಿದೆ.\n\nಅವರ ವಿನಂತಿಯನ್ನು ನಿರಾಕರಿಸಲಾಗಿದೆ ಎಂದು ಬಾಡಿಗೆದಾರರಿಗೆ ತಿಳಿಸಲಾಗುವುದು.",
				Intent:      "reject_request_confirmed",
				Suggestions: []string{"ಬಾಕಿ ವಿನಂತಿಗಳು", "ನನ್ನ ಉಪಕರಣ", "ಸಹಾಯ"},
			},
		},
		OutcomeRejected: {
			model.LangEnglish: {
				Format:      "❌ Failed to reject request: %s\n\nPlease try again or contact support.",
				Intent:      "reject_request_failed",
				Suggestions: []string{"Pending requests", "Help"},
			},
			model.LangKannada: {
				Format:      "❌ ವಿನಂತಿ ತಿರಸ್ಕರಿಸಲು ವಿಫಲವಾಗಿದೆ: %s\n\nದಯವಿಟ್ಟು ಮತ್ತೆ ಪ್ರಯತ್ನಿಸಿ ಅಥವಾ ಬೆಂಬಲವನ್ನು ಸಂಪರ್ಕಿಸಿ.",
				Intent:      "reject_request_failed",
				Suggestions: []string{"ಬಾಕಿ ವಿನಂತಿಗಳು", "ಸಹಾಯ"},
			},
		},
		OutcomeTransport: {
			model.LangEnglish: {
				Format:      "❌ Error rejecting request: %s\n\nPlease try again later.",
				Intent:      "reject_request_error",
				Suggestions: []string{"Pending requests", "Help"},
			},
			model.LangKannada: {
				Format:      "❌ ವಿನಂತಿ ತಿರಸ್ಕರಿಸುವಲ್ಲಿ ದೋಷ: %s\n\nದಯವಿಟ್ಟು ನಂತರ ಪ್ರಯತ್ನಿಸಿ.",
				Intent:      "reject_request_error",
				Suggestions: []string{"ಬಾಕಿ ವಿನಂತಿಗಳು", "ಸಹಾಯ"},
			},
		},
	},
}
