package dto

// Snapshot heredado del navegador. Las claves JSON replican exactamente lo
// que la aplicación vieja guardaba en localStorage (adminCategories,
// adminBrands, adminProducts, servicosRecebidos), nombres en portugués
// incluidos: este es el contrato con los datos existentes.

// LegacySnapshot entrada completa de la migración única.
type LegacySnapshot struct {
	Categories []string        `json:"adminCategories"`
	Brands     []string        `json:"adminBrands"`
	Products   []LegacyProduct `json:"adminProducts"`
	Services   []LegacyService `json:"servicosRecebidos"`
}

// LegacyProduct producto del snapshot; categoría y marca van por nombre.
type LegacyProduct struct {
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	Brand           string  `json:"brand"`
	Barcode         string  `json:"barcode"`
	SKU             string  `json:"sku"`
	PackageQuantity float64 `json:"packageQuantity"`
	Unit            string  `json:"unit"`
	PurchasePrice   float64 `json:"purchasePrice"`
	ImageURL        string  `json:"imageUrl"`
}

// LegacyServiceProduct línea heredada; la cantidad es una cadena con
// separador de miles brasileño ("1.500").
type LegacyServiceProduct struct {
	Name     string `json:"nome"`
	Quantity string `json:"quantidade"`
}

// LegacyService servicio heredado; dataCriacao viene como "DD/MM/YYYY" y el
// estado puede venir en portugués ("pendente").
type LegacyService struct {
	ProfessionalName string                 `json:"nomeProfissional"`
	ClientName       string                 `json:"nomeCliente"`
	ServiceName      string                 `json:"nomeServico"`
	CreatedAtBR      string                 `json:"dataCriacao"`
	Status           string                 `json:"status"`
	Products         []LegacyServiceProduct `json:"produtos"`
}

// MigrationStepResult resultado por paso; los pasos completados no se
// revierten si uno posterior falla.
type MigrationStepResult struct {
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
	Error     string `json:"error,omitempty"`
}

// MigrationResponse resultados de los cuatro pasos en orden.
type MigrationResponse struct {
	Steps []MigrationStepResult `json:"steps"`
}
