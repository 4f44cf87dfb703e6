package notify

import (
	"fmt"
	"strings"
	"time"
)

// Confirmation is the data shown in a booking confirmation email.
type Confirmation struct {
	Reference string
	Name      string
	Email     string
	Date      time.Time
	Time      string
	Notes     string
	Lang      string
}

var weekdaysES = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}

// ConfirmationEmail renders the confirmation in Spanish, or English when
// lang is "en".
func ConfirmationEmail(c Confirmation) EmailMessage {
	var subject string
	var b strings.Builder

	if c.Lang == "en" {
		subject = "Your appointment is confirmed"
		fmt.Fprintf(&b, "Hi %s,\n\n", c.Name)
		fmt.Fprintf(&b, "Your appointment on %s at %s is confirmed.\n", c.Date.Format("Monday, January 2, 2006"), c.Time)
		if c.Notes != "" {
			fmt.Fprintf(&b, "Notes: %s\n", c.Notes)
		}
		fmt.Fprintf(&b, "\nReference: %s\n", c.Reference)
	} else {
		subject = "Tu cita está confirmada"
		fmt.Fprintf(&b, "Hola %s,\n\n", c.Name)
		fmt.Fprintf(&b, "Tu cita del %s %s a las %s está confirmada.\n",
			weekdaysES[c.Date.Weekday()], c.Date.Format("02/01/2006"), c.Time)
		if c.Notes != "" {
			fmt.Fprintf(&b, "Notas: %s\n", c.Notes)
		}
		fmt.Fprintf(&b, "\nReferencia: %s\n", c.Reference)
	}

	return EmailMessage{
		To:      c.Email,
		ToName:  c.Name,
		Subject: subject,
		Body:    b.String(),
	}
}
