package messaging

import (
	"strings"

	"github.com/lensflow/backend/internal/domain/client"
	"github.com/lensflow/backend/internal/domain/shared"
)

// messageTemplates is the bilingual string table. Placeholders use
// {name} form and are substituted verbatim; unknown placeholders are
// left in place so missing variables are visible in the output.
var messageTemplates = map[NotificationType]map[client.Language]string{
	TypeBookingConfirmed: {
		client.LanguageEnglish: "Dear {clientName}, your {functionType} booking on {functionDate} at {venue} is confirmed. Advance received: Rs.{advanceAmount}, balance: Rs.{remainingAmount}. View details: {link}",
		client.LanguageHindi:   "प्रिय {clientName}, {functionDate} को {venue} में आपकी {functionType} बुकिंग पक्की हो गई है। अग्रिम राशि: Rs.{advanceAmount}, शेष: Rs.{remainingAmount}। विवरण देखें: {link}",
	},
	TypeQuotationCreated: {
		client.LanguageEnglish: "Dear {clientName}, your quotation {quotationNumber} for Rs.{totalAmount} is ready. It is valid until {validUntil}. View it here: {link}",
		client.LanguageHindi:   "प्रिय {clientName}, आपका कोटेशन {quotationNumber} (Rs.{totalAmount}) तैयार है। यह {validUntil} तक मान्य है। यहां देखें: {link}",
	},
	TypeTaskAssigned: {
		client.LanguageEnglish: "Hi {staffName}, you have been assigned to \"{taskTitle}\" on {scheduledDate} ({scheduledTime}) as {role}. Venue: {venue}.",
		client.LanguageHindi:   "नमस्ते {staffName}, आपको {scheduledDate} ({scheduledTime}) को \"{taskTitle}\" के लिए {role} के रूप में नियुक्त किया गया है। स्थान: {venue}।",
	},
	TypeStaffAssigned: {
		client.LanguageEnglish: "Dear {clientName}, our team for your {functionType} on {functionDate}: {staffList}. Equipment: {equipmentList}.",
		client.LanguageHindi:   "प्रिय {clientName}, {functionDate} को आपके {functionType} के लिए हमारी टीम: {staffList}। उपकरण: {equipmentList}।",
	},
	TypeTaskSkipped: {
		client.LanguageEnglish: "Dear {clientName}, the task \"{taskTitle}\" for your booking was skipped: {reason}. Our team will contact you shortly.",
		client.LanguageHindi:   "प्रिय {clientName}, आपकी बुकिंग का कार्य \"{taskTitle}\" छोड़ दिया गया: {reason}। हमारी टीम शीघ्र संपर्क करेगी।",
	},
	TypePaymentReminder: {
		client.LanguageEnglish: "Dear {clientName}, a payment of Rs.{dueAmount} on invoice {invoiceNumber} was due on {dueDate}. Kindly pay at your earliest: {link}",
		client.LanguageHindi:   "प्रिय {clientName}, इनवॉइस {invoiceNumber} पर Rs.{dueAmount} का भुगतान {dueDate} को देय था। कृपया शीघ्र भुगतान करें: {link}",
	},
	TypeAppointmentReminder: {
		client.LanguageEnglish: "Dear {clientName}, a reminder for your {functionType} tomorrow, {functionDate} at {venue}. Our team arrives at {startTime}.",
		client.LanguageHindi:   "प्रिय {clientName}, कल {functionDate} को {venue} में आपके {functionType} की याद दिला रहे हैं। हमारी टीम {startTime} बजे पहुंचेगी।",
	},
	TypeFollowUp: {
		client.LanguageEnglish: "Dear {clientName}, just checking in on quotation {quotationNumber} (Rs.{totalAmount}). It stays valid until {validUntil}. Review it here: {link}",
		client.LanguageHindi:   "प्रिय {clientName}, कोटेशन {quotationNumber} (Rs.{totalAmount}) के बारे में याद दिला रहे हैं। यह {validUntil} तक मान्य है। यहां देखें: {link}",
	},
}

// RenderMessage substitutes {placeholder} tokens into the template for
// the given type and language. Hindi is the default; an unknown
// language falls back to Hindi, and a type missing in the requested
// language falls back to its English text.
func RenderMessage(notifType NotificationType, vars map[string]string, language client.Language) (string, error) {
	byLanguage, ok := messageTemplates[notifType]
	if !ok {
		return "", shared.NewDomainError("UNKNOWN_TEMPLATE", "No message template for type "+notifType.String())
	}
	if !language.IsValid() {
		language = client.LanguageHindi
	}
	template, ok := byLanguage[language]
	if !ok {
		template = byLanguage[client.LanguageEnglish]
	}

	pairs := make([]string, 0, len(vars)*2)
	for name, value := range vars {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template), nil
}
