package utils

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// WhatsAppBaseURL is the click-to-chat endpoint used for outbound messages.
const WhatsAppBaseURL = "https://wa.me/"

// WhatsAppLink builds a prefilled chat link. Non-digit characters are dropped
// from the phone number; the text is query-escaped with %20 for spaces, the
// way encodeURIComponent does it.
func WhatsAppLink(phone, text string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	return WhatsAppBaseURL + digits.String() + "?text=" + strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

var ptWeekdays = [...]string{
	"domingo", "segunda-feira", "terça-feira", "quarta-feira",
	"quinta-feira", "sexta-feira", "sábado",
}

var ptMonths = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// FormatLongDatePtBR renders a date as "terça-feira, 14 de outubro".
func FormatLongDatePtBR(d time.Time) string {
	return fmt.Sprintf("%s, %02d de %s", ptWeekdays[d.Weekday()], d.Day(), ptMonths[d.Month()-1])
}

// FirstName returns the first whitespace-separated word of a full name.
func FirstName(fullName string) string {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
