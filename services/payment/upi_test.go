package payment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildUPILink(t *testing.T) {
	t.Run("builds the exact deep link", func(t *testing.T) {
		link := BuildUPILink("cityhospital@upi", "City Hospital", 500, "Consultation with Dr. Sarah Johnson")
		assert.Equal(t,
			"upi://pay?pa=cityhospital%40upi&pn=City+Hospital&am=500.00&cu=INR&tn=Consultation+with+Dr.+Sarah+Johnson",
			link)
	})

	t.Run("preserves parameter order", func(t *testing.T) {
		link := BuildUPILink("a@b", "n", 1, "t")
		paIdx := strings.Index(link, "pa=")
		pnIdx := strings.Index(link, "pn=")
		amIdx := strings.Index(link, "am=")
		cuIdx := strings.Index(link, "cu=")
		tnIdx := strings.Index(link, "tn=")
		assert.True(t, paIdx < pnIdx && pnIdx < amIdx && amIdx < cuIdx && cuIdx < tnIdx)
	})

	t.Run("formats amounts with two decimals", func(t *testing.T) {
		link := BuildUPILink("a@b", "n", 1234.5, "t")
		assert.Contains(t, link, "am=1234.50")
	})
}

func TestQRImageURL(t *testing.T) {
	link := BuildUPILink("a@b", "n", 1, "t")
	u := QRImageURL(link)

	require.True(t, strings.HasPrefix(u, "https://api.qrserver.com/v1/create-qr-code/?"))
	assert.Contains(t, u, "size=300x300")
	assert.Contains(t, u, "data=")
}
