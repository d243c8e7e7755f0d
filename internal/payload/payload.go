// Package payload derives informational, non-authoritative format details
// from decoded barcode contents: check-digit validity notes for the GTIN
// family and lightweight content classification for matrix payloads.
package payload

import (
	"fmt"
	"strings"

	"github.com/MeKo-Tech/labelscan/internal/symbology"
)

// Describe returns free-text format details for the payload, or the generic
// note when the symbology has no dedicated parser.
func Describe(sym symbology.Symbology, data string) string {
	switch {
	case sym.IsNumericCheckDigit():
		return DescribeGTIN(data)
	case sym == symbology.QRCode:
		return DescribeQR(data)
	case sym == symbology.DataMatrix:
		return DescribeDataMatrix(data)
	default:
		return "Standard format"
	}
}

// DescribeGTIN reports the expected check digit for a numeric GTIN payload
// and whether the final digit matches it.
func DescribeGTIN(data string) string {
	if len(data) < 8 {
		return "Invalid GTIN"
	}
	for _, r := range data {
		if r < '0' || r > '9' {
			return "Invalid GTIN"
		}
	}

	// Weights alternate 3,1 from the leftmost digit of the body when the
	// payload length is even (EAN-8, EAN-13 with check digit, UPC-A).
	sum := 0
	body := data[:len(data)-1]
	for i := 0; i < len(body); i++ {
		digit := int(body[i] - '0')
		if (len(body)-i)%2 == 1 {
			sum += digit * 3
		} else {
			sum += digit
		}
	}
	check := (10 - sum%10) % 10
	valid := "No"
	if check == int(data[len(data)-1]-'0') {
		valid = "Yes"
	}
	return fmt.Sprintf("GTIN: %s\nCheck Digit: %d\nValid: %s", data, check, valid)
}

// DescribeQR classifies QR contents as URL, vCard, WiFi configuration, or
// plain text, extracting the common fields for the structured forms.
func DescribeQR(data string) string {
	var b strings.Builder
	b.WriteString("QR Code Data:\n")
	switch {
	case strings.HasPrefix(data, "http://"), strings.HasPrefix(data, "https://"):
		b.WriteString("Type: URL\n")
		b.WriteString("URL: " + data)
	case strings.Contains(data, "BEGIN:VCARD"):
		b.WriteString("Type: vCard\n")
		for _, line := range strings.Split(data, "\n") {
			line = strings.TrimRight(line, "\r")
			switch {
			case strings.HasPrefix(line, "FN:"):
				b.WriteString("Name: " + line[3:] + "\n")
			case strings.HasPrefix(line, "TEL:"):
				b.WriteString("Phone: " + line[4:] + "\n")
			case strings.HasPrefix(line, "EMAIL:"):
				b.WriteString("Email: " + line[6:] + "\n")
			}
		}
	case strings.HasPrefix(data, "WIFI:"):
		b.WriteString("Type: WiFi Configuration\n")
		for _, field := range strings.Split(strings.TrimPrefix(data, "WIFI:"), ";") {
			switch {
			case strings.HasPrefix(field, "S:"):
				b.WriteString("SSID: " + field[2:] + "\n")
			case strings.HasPrefix(field, "T:"):
				b.WriteString("Security: " + field[2:] + "\n")
			case strings.HasPrefix(field, "P:"):
				b.WriteString("Password: " + field[2:] + "\n")
			}
		}
	default:
		b.WriteString("Type: Text\n")
		b.WriteString("Content: " + data)
	}
	return b.String()
}

// DescribeDataMatrix classifies DataMatrix contents, parsing GS1 application
// identifiers of the form (AI)value when present.
func DescribeDataMatrix(data string) string {
	var b strings.Builder
	b.WriteString("DataMatrix Content:\n")
	if strings.HasPrefix(data, "(01)") || strings.HasPrefix(data, "(10)") || strings.HasPrefix(data, "(21)") {
		b.WriteString("Type: GS1\n")
		for _, part := range strings.Split(data, "(") {
			if part == "" {
				continue
			}
			if end := strings.Index(part, ")"); end >= 0 {
				b.WriteString(fmt.Sprintf("AI %s: %s\n", part[:end], part[end+1:]))
			}
		}
		return b.String()
	}
	b.WriteString("Type: Raw Data\n")
	b.WriteString("Content: " + data)
	return b.String()
}
