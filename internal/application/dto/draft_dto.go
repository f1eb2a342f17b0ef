package dto

// DraftLineItem una línea de borrador: producto elegido y cantidad tal como
// la tecleó la profesional (cadena, aún sin validar).
type DraftLineItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	ImageURL  string `json:"image_url"`
	Quantity  string `json:"quantity"`
}

// SaveDraftRequest cuerpo para guardar el formulario en curso antes de
// navegar a la selección de productos.
type SaveDraftRequest struct {
	ClientName  string          `json:"client_name"`
	ServiceName string          `json:"service_name"`
	ServiceDate string          `json:"service_date"` // YYYY-MM-DD
	Products    []DraftLineItem `json:"products"`
}

// AppendDraftProductsRequest productos recién elegidos en la pantalla de
// selección; se agregan al borrador con cantidad vacía.
type AppendDraftProductsRequest struct {
	Products []DraftLineItem `json:"products"`
}

// DraftResponse el borrador restaurado. Tras servirlo, la entrada se borra:
// un borrador jamás se lee dos veces.
type DraftResponse struct {
	ClientName  string          `json:"client_name"`
	ServiceName string          `json:"service_name"`
	ServiceDate string          `json:"service_date"`
	Products    []DraftLineItem `json:"products"`
}
