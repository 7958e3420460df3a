package entity

import "time"

// Tipos de identificador físico/virtual que anclan una comanda.
const (
	IdentifierTypeNFC     = "nfc"
	IdentifierTypeBarcode = "barcode"
	IdentifierTypeQR      = "qr"
	IdentifierTypeManual  = "manual"
)

// Políticas de comanda que un identificador puede imponer al abrirla.
const (
	TabPolicyPrepaid = "prepaid"
	TabPolicyCredit  = "credit"
)

// Identifier representa un token (NFC, código de barras, QR o código manual)
// que resuelve a un cliente y define la política de la comanda que abre.
// El código es único por tenant mientras el identificador esté activo; al
// cerrar la comanda se desactiva (no se borra) para liberar el código.
type Identifier struct {
	ID         string
	TenantID   string
	CustomerID string
	Type       string // ver constantes IdentifierType*
	Code       string
	TabPolicy  string // prepaid | credit; el caller no puede sobreescribirla
	IsMaster   bool
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
