package payment

import (
	"fmt"
	"net/url"
	"strconv"
)

// qrImageEndpoint renders an arbitrary string into a scannable QR image.
const qrImageEndpoint = "https://api.qrserver.com/v1/create-qr-code/"

// BuildUPILink constructs a UPI deep link understood by merchant payment
// apps. Parameter order (pa, pn, am, cu, tn) matches the wire format those
// apps expect and must not be reordered.
func BuildUPILink(payeeID, payeeName string, amount float64, note string) string {
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%s&cu=INR&tn=%s",
		url.QueryEscape(payeeID),
		url.QueryEscape(payeeName),
		strconv.FormatFloat(amount, 'f', 2, 64),
		url.QueryEscape(note),
	)
}

// QRImageURL returns the URL of a rendered QR image for a payment link.
func QRImageURL(link string) string {
	v := url.Values{}
	v.Set("size", "300x300")
	v.Set("data", link)
	return qrImageEndpoint + "?" + v.Encode()
}
