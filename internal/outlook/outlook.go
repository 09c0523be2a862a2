// Package outlook builds Outlook Web deep links: URLs that open the
// provider's mail or calendar compose view pre-populated through query
// parameters. Link construction is purely textual; no network I/O happens
// here.
package outlook

import (
	"net/url"
	"strings"
	"time"
)

const (
	mailComposeBase     = "https://outlook.office.com/mail/deeplink/compose"
	calendarComposeBase = "https://outlook.office.com/calendar/0/deeplink/compose"

	// calendarComposePath selects the compose-meeting view inside the
	// calendar app.
	calendarComposePath = "/calendar/action/compose"

	// timeLayout is local ISO-8601 without a timezone suffix; Outlook
	// interprets the times in the user's calendar timezone.
	timeLayout = "2006-01-02T15:04:05"
)

// escape percent-encodes a query component. Spaces become %20, not +;
// Outlook renders + literally in subjects and bodies.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// encodeBody percent-encodes a plain-text mail body. Newlines must arrive
// as CRLF escapes (%0D%0A) or Outlook collapses the body onto one line.
func encodeBody(body string) string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	return strings.ReplaceAll(escape(body), "%0A", "%0D%0A")
}

// htmlBody converts a plain-text body to the minimal HTML the calendar
// compose view expects: blank lines separate paragraphs, single newlines
// become line breaks, and the whole body sits in one paragraph element.
func htmlBody(body string) string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	body = strings.ReplaceAll(body, "\n\n", "</p><p>")
	body = strings.ReplaceAll(body, "\n", "<br>")
	return "<p>" + body + "</p>"
}

// BuildMailLink returns a mail-compose deep link. Subject and body are
// always present; to, cc and bcc are appended in that order and omitted
// entirely when empty.
func BuildMailLink(subject, body, to, cc, bcc string) string {
	pairs := []string{
		"subject=" + escape(subject),
		"body=" + encodeBody(body),
	}
	if to != "" {
		pairs = append(pairs, "to="+escape(to))
	}
	if cc != "" {
		pairs = append(pairs, "cc="+escape(cc))
	}
	if bcc != "" {
		pairs = append(pairs, "bcc="+escape(bcc))
	}
	return mailComposeBase + "?" + strings.Join(pairs, "&")
}

// BuildCalendarLink returns a calendar-compose deep link for a meeting from
// start to end. An empty attendees value omits the to parameter and lets
// the compose view prompt for attendees.
func BuildCalendarLink(subject, body, attendees string, start, end time.Time, location string) string {
	pairs := []string{
		"subject=" + escape(subject),
		"body=" + escape(htmlBody(body)),
		"startdt=" + escape(start.Format(timeLayout)),
		"enddt=" + escape(end.Format(timeLayout)),
		"path=" + escape(calendarComposePath),
	}
	if attendees != "" {
		pairs = append(pairs, "to="+escape(attendees))
	}
	if location != "" {
		pairs = append(pairs, "location="+escape(location))
	}
	return calendarComposeBase + "?" + strings.Join(pairs, "&")
}
