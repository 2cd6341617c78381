package engine

import (
	"fmt"
	"strconv"
	"strings"

	"farmtech-assist/internal/chat/model"
)

// listLimit caps how many items a summary reply renders before the
// "...and N more" trailer.
const listLimit = 5

func (e *Engine) renderPersonalized(personalIntent string, lang model.Language, rec *model.UserRecord, message string) model.Reply {
	switch personalIntent {
	case "my_profile":
		return profileReply(lang, rec)
	case "my_bookings":
		return bookingsReply(lang, rec)
	case "my_equipment":
		return equipmentReply(lang, rec)
	case "pending_requests":
		return requestsReply(lang, rec)
	case "cancel_booking":
		return actionPrompt(model.ActionCancelBooking, lang, message)
	case "approve_request":
		return actionPrompt(model.ActionApproveRequest, lang, message)
	case "reject_request":
		return actionPrompt(model.ActionRejectRequest, lang, message)
	}
	return personalizedFallback(lang)
}

// formatPrice renders a price without a trailing .0 for whole amounts.
func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func profileReply(lang model.Language, rec *model.UserRecord) model.Reply {
	name := orDefault(rec.Name, "User")
	role := orDefault(string(rec.Role), string(model.RoleRenter))

	var b strings.Builder
	var suggestions []string
	if lang == model.LangEnglish {
		b.WriteString("👤 **Your Profile**\n\n")
		fmt.Fprintf(&b, "Name: %s\n", name)
		fmt.Fprintf(&b, "Role: %s\n", role)
		if rec.District != "" {
			fmt.Fprintf(&b, "Location: %s\n", rec.District)
		}
		if rec.FarmSize != "" {
			fmt.Fprintf(&b, "Farm Size: %s\n", rec.FarmSize)
		}
		if rec.CropType != "" {
			fmt.Fprintf(&b, "Crop Type: %s\n", rec.CropType)
		}
		suggestions = []string{"My bookings", "My equipment", "Update profile", "Help"}
	} else {
		b.WriteString("👤 **ನಿಮ್ಮ ಪ್ರೊಫೈಲ್**\n\n")
		fmt.Fprintf(&b, "ಹೆಸರು: %s\n", name)
		fmt.Fprintf(&b, "ಪಾತ್ರ: %s\n", role)
		if rec.District != "" {
			fmt.Fprintf(&b, "ಸ್ಥಳ: %s\n", rec.District)
		}
		if rec.FarmSize != "" {
			fmt.Fprintf(&b, "ಜಮೀನು ಗಾತ್ರ: %s\n", rec.FarmSize)
		}
		if rec.CropType != "" {
			fmt.Fprintf(&b, "ಬೆಳೆ ಪ್ರಕಾರ: %s\n", rec.CropType)
		}
		suggestions = []string{"ನನ್ನ ಬುಕಿಂಗ್‌ಗಳು", "ನನ್ನ ಉಪಕರಣ", "ಪ್ರೊಫೈಲ್ ನವೀಕರಿಸಿ", "ಸಹಾಯ"}
	}

	return model.Reply{
		Text:        b.String(),
		Intent:      "my_profile",
		Language:    lang,
		Suggestions: suggestions,
		Data:        rec,
	}
}

func bookingsReply(lang model.Language, rec *model.UserRecord) model.Reply {
	bookings := rec.Bookings

	var text string
	var suggestions []string
	if lang == model.LangEnglish {
		if len(bookings) == 0 {
			text = "📋 You don't have any bookings yet.\n\nWould you like to browse available equipment?"
			suggestions = []string{"Find equipment", "View all equipment", "Help"}
		} else {
			var b strings.Builder
			fmt.Fprintf(&b, "📋 **Your Bookings** (%d total)\n\n", len(bookings))
			for i, bk := range bookings {
				if i == listLimit {
					break
				}
				fmt.Fprintf(&b, "%d. %s\n", i+1, orDefault(bk.Equipment.Name, "Equipment"))
				fmt.Fprintf(&b, "   Status: %s\n", orDefault(bk.Status, "PENDING"))
				fmt.Fprintf(&b, "   Date: %s\n", bk.StartDate)
				fmt.Fprintf(&b, "   Price: ₹%s\n", formatPrice(bk.TotalPrice))
				fmt.Fprintf(&b, "   ID: %d\n\n", bk.ID)
			}
			if len(bookings) > listLimit {
				fmt.Fprintf(&b, "...and %d more bookings\n", len(bookings)-listLimit)
			}
			text = b.String()
			suggestions = []string{"Cancel booking", "View details", "New booking", "Help"}
		}
	} else {
		if len(bookings) == 0 {
			text = "📋 ನಿಮಗೆ ಇನ್ನೂ ಯಾವುದೇ ಬುಕಿಂಗ್‌ಗಳಿಲ್ಲ.\n\nನೀವು ಲಭ್ಯವಿರುವ ಉಪಕರಣಗಳನ್ನು ಬ್ರೌಸ್ ಮಾಡಲು ಬಯಸುವಿರಾ?"
			suggestions = []string{"ಉಪಕರಣ ಹುಡುಕಿ", "ಎಲ್ಲಾ ಉಪಕರಣಗಳನ್ನು ನೋಡಿ", "ಸಹಾಯ"}
		} else {
			var b strings.Builder
			fmt.Fprintf(&b, "📋 **ನಿಮ್ಮ ಬುಕಿಂಗ್‌ಗಳು** (%d ಒಟ್ಟು)\n\n", len(bookings))
			for i, bk := range bookings {
				if i == listLimit {
					break
				}
				fmt.Fprintf(&b, "%d. %s\n", i+1, orDefault(bk.Equipment.Name, "ಉಪಕರಣ"))
				fmt.Fprintf(&b, "   ಸ್ಥಿತಿ: %s\n", orDefault(bk.Status, "ಬಾಕಿ"))
				fmt.Fprintf(&b, "   ದಿನಾಂಕ: %s\n", bk.StartDate)
				fmt.Fprintf(&b, "   ಬೆಲೆ: ₹%s\n", formatPrice(bk.TotalPrice))
				fmt.Fprintf(&b, "   ID: %d\n\n", bk.ID)
			}
			if len(bookings) > listLimit {
				fmt.Fprintf(&b, "...ಮತ್ತು %d ಹೆಚ್ಚಿನ ಬುಕಿಂಗ್‌ಗಳು\n", len(bookings)-listLimit)
			}
			text = b.String()
			suggestions = []string{"ಬುಕಿಂಗ್ ರದ್ದುಮಾಡಿ", "ವಿವರಗಳನ್ನು ನೋಡಿ", "ಹೊಸ ಬುಕಿಂಗ್", "ಸಹಾಯ"}
		}
	}

	return model.Reply{
		Text:        text,
		Intent:      "my_bookings",
		Language:    lang,
		Suggestions: suggestions,
		Data:        map[string]interface{}{"bookings": bookings},
	}
}

func equipmentReply(lang model.Language, rec *model.UserRecord) model.Reply {
	equipment := rec.Equipment

	var text string
	var suggestions []string
	switch {
	case !rec.Role.CanManageEquipment():
		if lang == model.LangEnglish {
			text = "You are registered as a RENTER. To list equipment, please register as an OWNER."
			suggestions = []string{"Find equipment", "My bookings", "Help"}
		} else {
			text = "ನೀವು ಬಾಡಿಗೆದಾರರಾಗಿ ನೋಂದಾಯಿಸಿದ್ದೀರಿ. ಉಪಕರಣವನ್ನು ಪಟ್ಟಿ ಮಾಡಲು, ದಯವಿಟ್ಟು ಮಾಲೀಕರಾಗಿ ನೋಂದಾಯಿಸಿ."
			suggestions = []string{"ಉಪಕರಣ ಹುಡುಕಿ", "ನನ್ನ ಬುಕಿಂಗ್‌ಗಳು", "ಸಹಾಯ"}
		}

	case lang == model.LangEnglish:
		if len(equipment) == 0 {
			text = "🚜 You don't have any equipment listed yet.\n\nWould you like to add equipment for rental?"
			suggestions = []string{"Add equipment", "View requests", "Help"}
		} else {
			var b strings.Builder
			fmt.Fprintf(&b, "🚜 **Your Equipment** (%d items)\n\n", len(equipment))
			for i, eq := range equipment {
				if i == listLimit {
					break
				}
				status := "✅ Available"
				if !eq.IsAvailable() {
					status = "❌ Not Available"
				}
				fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, orDefault(eq.Name, "Equipment"), eq.Type)
				fmt.Fprintf(&b, "   Price: ₹%s/day\n", formatPrice(eq.PricePerDay))
				fmt.Fprintf(&b, "   Status: %s\n\n", status)
			}
			if len(equipment) > listLimit {
				fmt.Fprintf(&b, "...and %d more items\n", len(equipment)-listLimit)
			}
			text = b.String()
			suggestions = []string{"Add equipment", "View requests", "Update equipment", "Help"}
		}

	default:
		if len(equipment) == 0 {
			text = "🚜 ನೀವು ಇನ್ನೂ ಯಾವುದೇ ಉಪಕರಣವನ್ನು ಪಟ್ಟಿ ಮಾಡಿಲ್ಲ.\n\nನೀವು ಬಾಡಿಗೆಗೆ ಉಪಕರಣವನ್ನು ಸೇರಿಸಲು ಬಯಸುವಿರಾ?"
			suggestions = []string{"ಉಪಕರಣ ಸೇರಿಸಿ", "ವಿನಂತಿಗಳನ್ನು ನೋಡಿ", "ಸಹಾಯ"}
		} else {
			var b strings.Builder
			fmt.Fprintf(&b, "🚜 **ನಿಮ್ಮ ಉಪಕರಣ** (%d ವಸ್ತುಗಳು)\n\n", len(equipment))
			for i, eq := range equipment {
				if i == listLimit {
					break
				}
				status := "✅ ಲಭ್ಯವಿದೆ"
				if !eq.IsAvailable() {
					status = "❌ ಲಭ್ಯವಿಲ್ಲ"
				}
				fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, orDefault(eq.Name, "ಉಪಕರಣ"), eq.Type)
				fmt.Fprintf(&b, "   ಬೆಲೆ: ₹%s/ದಿನ\n", formatPrice(eq.PricePerDay))
				fmt.Fprintf(&b, "   ಸ್ಥಿತಿ: %s\n\n", status)
			}
			if len(equipment) > listLimit {
				fmt.Fprintf(&b, "...ಮತ್ತು %d ಹೆಚ್ಚಿನ ವಸ್ತುಗಳು\n", len(equipment)-listLimit)
			}
			text = b.String()
			suggestions = []string{"ಉಪಕರಣ ಸೇರಿಸಿ", "ವಿನಂತಿಗಳನ್ನು ನೋಡಿ", "ಉಪಕರಣ ನವೀಕರಿಸಿ", "ಸಹಾಯ"}
		}
	}

	return model.Reply{
		Text:        text,
		Intent:      "my_equipment",
		Language:    lang,
		Suggestions: suggestions,
		Data:        map[string]interface{}{"equipment": equipment},
	}
}

func requestsReply(lang model.Language, rec *model.UserRecord) model.Reply {
	requests := rec.Requests

	var text string
	var suggestions []string
	switch {
	case !rec.Role.CanManageEquipment():
		if lang == model.LangEnglish {
			text = "You don't have any pending requests. Only equipment owners receive booking requests."
			suggestions = []string{"My bookings", "Find equipment", "Help"}
		} else {
			text = "ನಿಮಗೆ ಯಾವುದೇ ಬಾಕಿ ವಿನಂತಿಗಳಿಲ್ಲ. ಉಪಕರಣ ಮಾಲೀಕರು ಮಾತ್ರ ಬುಕಿಂಗ್ ವಿನಂತಿಗಳನ್ನು ಸ್ವೀಕರಿಸುತ್ತಾರೆ."
			suggestions = []string{"ನನ್ನ ಬುಕಿಂಗ್‌ಗಳು", "ಉಪಕರಣ ಹುಡುಕಿ", "ಸಹಾಯ"}
		}

	case lang == model.LangEnglish:
		if len(requests) == 0 {
			text = "📬 You don't have any pending requests at the moment.\n\nI'll notify you when someone requests your equipment!"
			suggestions = []string{"My equipment", "Add equipment", "Help"}
		} else {
			var b strings.Builder
			fmt.Fprintf(&b, "📬 **Pending Requests** (%d total)\n\n", len(requests))
			for i, rq := range requests {
				if i == listLimit {
					break
				}
				fmt.Fprintf(&b, "%d. %s\n", i+1, orDefault(rq.EquipmentName, "Equipment"))
				fmt.Fprintf(&b, "   Renter: %s\n", orDefault(rq.Renter.Name, "Renter"))
				fmt.Fprintf(&b, "   Date: %s\n", rq.StartDate)
				fmt.Fprintf(&b, "   Price: ₹%s\n", formatPrice(rq.TotalPrice))
				fmt.Fprintf(&b, "   ID: %d\n\n", rq.CandidateID)
			}
			if len(requests) > listLimit {
				fmt.Fprintf(&b, "...and %d more requests\n", len(requests)-listLimit)
			}
			text = b.String()
			suggestions = []string{"Approve request", "Reject request", "View details", "Help"}
		}

	default:
		if len(requests) == 0 {
			text = "📬 ಈ ಸಮಯದಲ್ಲಿ ನಿಮಗೆ ಯಾವುದೇ ಬಾಕಿ ವಿನಂತಿಗಳಿಲ್ಲ.\n\nಯಾರಾದರೂ ನಿಮ್ಮ ಉಪಕರಣವನ್ನು ವಿನಂತಿಸಿದಾಗ ನಾನು ನಿಮಗೆ ತಿಳಿಸುತ್ತೇನೆ!"
			suggestions = []string{"ನನ್ನ ಉಪಕರಣ", "ಉಪಕರಣ ಸೇರಿಸಿ", "ಸಹಾಯ"}
		} else {
			var b strings.Builder
			fmt.Fprintf(&b, "📬 **ಬಾಕಿ ವಿನಂತಿಗಳು** (%d ಒಟ್ಟು)\n\n", len(requests))
			for i, rq := range requests {
				if i == listLimit {
					break
				}
				fmt.Fprintf(&b, "%d. %s\n", i+1, orDefault(rq.EquipmentName, "ಉಪಕರಣ"))
				fmt.Fprintf(&b, "   ಬಾಡಿಗೆದಾರ: %s\n", orDefault(rq.Renter.Name, "ಬಾಡಿಗೆದಾರ"))
				fmt.Fprintf(&b, "   ದಿನಾಂಕ: %s\n", rq.StartDate)
				fmt.Fprintf(&b, "   ಬೆಲೆ: ₹%s\n", formatPrice(rq.TotalPrice))
				fmt.Fprintf(&b, "   ID: %d\n\n", rq.CandidateID)
			}
			if len(requests) > listLimit {
				fmt.Fprintf(&b, "...ಮತ್ತು %d ಹೆಚ್ಚಿನ ವಿನಂತಿಗಳು\n", len(requests)-listLimit)
			}
			text = b.String()
			suggestions = []string{"ವಿನಂತಿ ಅನುಮೋದಿಸಿ", "ವಿನಂತಿ ತಿರಸ್ಕರಿಸಿ", "ವಿವರಗಳನ್ನು ನೋಡಿ", "ಸಹಾಯ"}
		}
	}

	return model.Reply{
		Text:        text,
		Intent:      "pending_requests",
		Language:    lang,
		Suggestions: suggestions,
		Data:        map[string]interface{}{"requests": requests},
	}
}

// actionPrompt asks the user to confirm an action. With an id in the message
// it proposes the confirmation phrase; without one it asks for the id.
func actionPrompt(kind model.ActionKind, lang model.Language, message string) model.Reply {
	id, hasID := extractNumber(message)

	var text string
	var suggestions []string
	switch kind {
	case model.ActionCancelBooking:
		if lang == model.LangEnglish {
			if hasID {
				text = fmt.Sprintf("To cancel booking #%s, please confirm by clicking the button below.", id)
				suggestions = []string{fmt.Sprintf("Confirm cancel #%s", id), "View bookings", "Cancel"}
			} else {
				text = "Which booking would you like to cancel? Please provide the booking ID or select from your bookings."
				suggestions = []string{"View my bookings", "Help"}
			}
		} else {
			if hasID {
				text = fmt.Sprintf("ಬುಕಿಂಗ್ #%s ರದ್ದುಮಾಡಲು, ದಯವಿಟ್ಟು ಕೆಳಗಿನ ಬಟನ್ ಕ್ಲಿಕ್ ಮಾಡಿ ದೃಢೀಕರಿಸಿ.", id)
				suggestions = []string{fmt.Sprintf("ರದ್ದು ದೃಢೀಕರಿಸಿ #%s", id), "ಬುಕಿಂಗ್‌ಗಳನ್ನು ನೋಡಿ", "ರದ್ದುಮಾಡಿ"}
			} else {
				text = "ನೀವು ಯಾವ ಬುಕಿಂಗ್ ಅನ್ನು ರದ್ದುಮಾಡಲು ಬಯಸುತ್ತೀರಿ? ದಯವಿಟ್ಟು ಬುಕಿಂಗ್ ID ಒದಗಿಸಿ ಅಥವಾ ನಿಮ್ಮ ಬುಕಿಂಗ್‌ಗಳಿಂದ ಆಯ್ಕೆಮಾಡಿ."
				suggestions = []string{"ನನ್ನ ಬುಕಿಂಗ್‌ಗಳನ್ನು ನೋಡಿ", "ಸಹಾಯ"}
			}
		}

	case model.ActionApproveRequest:
		if lang == model.LangEnglish {
			if hasID {
				text = fmt.Sprintf("To approve request #%s, please confirm.", id)
				suggestions = []string{fmt.Sprintf("Confirm approve #%s", id), "View requests", "Cancel"}
			} else {
				text = "Which request would you like to approve? Please provide the request ID."
				suggestions = []string{"View pending requests", "Help"}
			}
		} else {
			if hasID {
				text = fmt.Sprintf("ವಿನಂತಿ #%s ಅನುಮೋದಿಸಲು, ದಯವಿಟ್ಟು ದೃಢೀಕರಿಸಿ.", id)
				suggestions = []string{fmt.Sprintf("ಅನುಮೋದನೆ ದೃಢೀಕರಿಸಿ #%s", id), "ವಿನಂತಿಗಳನ್ನು ನೋಡಿ", "ರದ್ದುಮಾಡಿ"}
			} else {
				text = "ನೀವು ಯಾವ ವಿನಂತಿಯನ್ನು ಅನುಮೋದಿಸಲು ಬಯಸುತ್ತೀರಿ? ದಯವಿಟ್ಟು ವಿನಂತಿ ID ಒದಗಿಸಿ."
				suggestions = []string{"ಬಾಕಿ ವಿನಂತಿಗಳನ್ನು ನೋಡಿ", "ಸಹಾಯ"}
			}
		}

	case model.ActionRejectRequest:
		if lang == model.LangEnglish {
			if hasID {
				text = fmt.Sprintf("To reject request #%s, please confirm.", id)
				suggestions = []string{fmt.Sprintf("Confirm reject #%s", id), "View requests", "Cancel"}
			} else {
				text = "Which request would you like to reject? Please provide the request ID."
				suggestions = []string{"View pending requests", "Help"}
			}
		} else {
			if hasID {
				text = fmt.Sprintf("ವಿನಂತಿ #%s ತಿರಸ್ಕರಿಸಲು, ದಯವಿಟ್ಟು ದೃಢೀಕರಿಸಿ.", id)
				suggestions = []string{fmt.Sprintf("ತಿರಸ್ಕಾರ ದೃಢೀಕರಿಸಿ #%s", id), "ವಿನಂತಿಗಳನ್ನು ನೋಡಿ", "ರದ್ದುಮಾಡಿ"}
			} else {
				text = "ನೀವು ಯಾವ ವಿನಂತಿಯನ್ನು ತಿರಸ್ಕರಿಸಲು ಬಯಸುತ್ತೀರಿ? ದಯವಿಟ್ಟು ವಿನಂತಿ ID ಒದಗಿಸಿ."
				suggestions = []string{"ಬಾಕಿ ವಿನಂತಿಗಳನ್ನು ನೋಡಿ", "ಸಹಾಯ"}
			}
		}
	}

	reply := model.Reply{
		Text:        text,
		Intent:      string(kind),
		Language:    lang,
		Suggestions: suggestions,
	}
	return reply.WithTarget(kind, id)
}

func personalizedFallback(lang model.Language) model.Reply {
	if lang == model.LangEnglish {
		return model.Reply{
			Text:        "I can help you with:\n• View your profile\n• Check your bookings\n• Manage your equipment\n• Handle requests\n\nWhat would you like to do?",
			Intent:      "general",
			Language:    lang,
			Suggestions: []string{"My profile", "My bookings", "My equipment", "Help"},
		}
	}
	return model.Reply{
		Text:        "ನಾನು ನಿಮಗೆ ಸಹಾಯ ಮಾಡಬಹುದು:\n• ನಿಮ್ಮ ಪ್ರೊಫೈಲ್ ನೋಡಿ\n• ನಿಮ್ಮ ಬುಕಿಂಗ್‌ಗಳನ್ನು ಪರಿಶೀಲಿಸಿ\n• ನಿಮ್ಮ ಉಪಕರಣವನ್ನು ನಿರ್ವಹಿಸಿ\n• ವಿನಂತಿಗಳನ್ನು ನಿರ್ವಹಿಸಿ\n\nನೀವು ಏನು ಮಾಡಲು ಬಯಸುತ್ತೀರಿ?",
		Intent:      "general",
		Language:    lang,
		Suggestions: []string{"ನನ್ನ ಪ್ರೊಫೈಲ್", "ನನ್ನ ಬುಕಿಂಗ್‌ಗಳು", "ನನ್ನ ಉಪಕರಣ", "ಸಹಾಯ"},
	}
}
