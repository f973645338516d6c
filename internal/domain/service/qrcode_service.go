package service

// QRCodeService defines the interface for QR code generation
type QRCodeService interface {
	// GenerateLinkQR renders link as a PNG QR code.
	GenerateLinkQR(link string) ([]byte, error)
}
