package payload

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MeKo-Tech/labelscan/internal/symbology"
)

func TestDescribeGTINValidEAN13(t *testing.T) {
	out := DescribeGTIN("4006381333931")
	assert.Contains(t, out, "GTIN: 4006381333931")
	assert.Contains(t, out, "Check Digit: 1")
	assert.Contains(t, out, "Valid: Yes")
}

func TestDescribeGTINInvalidCheckDigit(t *testing.T) {
	out := DescribeGTIN("4006381333930")
	assert.Contains(t, out, "Check Digit: 1")
	assert.Contains(t, out, "Valid: No")
}

func TestDescribeGTINValidEAN8(t *testing.T) {
	out := DescribeGTIN("96385074")
	assert.Contains(t, out, "Valid: Yes")
}

func TestDescribeGTINRejectsNonNumeric(t *testing.T) {
	assert.Equal(t, "Invalid GTIN", DescribeGTIN("40063813339a1"))
	assert.Equal(t, "Invalid GTIN", DescribeGTIN("1234"))
}

func TestDescribeQRURL(t *testing.T) {
	out := DescribeQR("https://example.com/track?id=1")
	assert.Contains(t, out, "Type: URL")
	assert.Contains(t, out, "URL: https://example.com/track?id=1")
}

func TestDescribeQRVCard(t *testing.T) {
	data := "BEGIN:VCARD\nVERSION:3.0\nFN:Jane Doe\nTEL:+4912345\nEMAIL:jane@example.com\nEND:VCARD"
	out := DescribeQR(data)
	assert.Contains(t, out, "Type: vCard")
	assert.Contains(t, out, "Name: Jane Doe")
	assert.Contains(t, out, "Phone: +4912345")
	assert.Contains(t, out, "Email: jane@example.com")
}

func TestDescribeQRWiFi(t *testing.T) {
	out := DescribeQR("WIFI:T:WPA;S:warehouse;P:secret;;")
	assert.Contains(t, out, "Type: WiFi Configuration")
	assert.Contains(t, out, "SSID: warehouse")
	assert.Contains(t, out, "Security: WPA")
	assert.Contains(t, out, "Password: secret")
}

func TestDescribeQRPlainText(t *testing.T) {
	out := DescribeQR("hello")
	assert.Contains(t, out, "Type: Text")
	assert.Contains(t, out, "Content: hello")
}

func TestDescribeDataMatrixGS1(t *testing.T) {
	out := DescribeDataMatrix("(01)04012345123456(10)LOT42")
	assert.Contains(t, out, "Type: GS1")
	assert.Contains(t, out, "AI 01: 04012345123456")
	assert.Contains(t, out, "AI 10: LOT42")
}

func TestDescribeDataMatrixRaw(t *testing.T) {
	out := DescribeDataMatrix("serial-7")
	assert.Contains(t, out, "Type: Raw Data")
	assert.Contains(t, out, "Content: serial-7")
}

func TestDescribeDispatch(t *testing.T) {
	assert.Contains(t, Describe(symbology.EAN13, "4006381333931"), "GTIN")
	assert.Contains(t, Describe(symbology.QRCode, "hi"), "QR Code Data")
	assert.Contains(t, Describe(symbology.DataMatrix, "x"), "DataMatrix Content")
	assert.Equal(t, "Standard format", Describe(symbology.Code39, "ABC"))
}
