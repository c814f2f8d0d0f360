package domain

// Place is one ranked candidate from the address lookup service.
type Place struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// ShippingAddress is the single default address kept per identity.
// Coordinates are optional; display text is not.
type ShippingAddress struct {
	DisplayText string   `json:"display_text"`
	Lat         *float64 `json:"lat,omitempty"`
	Lon         *float64 `json:"lon,omitempty"`
}

// FromPlace freezes a selected candidate into a shipping address.
func FromPlace(p Place) ShippingAddress {
	lat, lon := p.Lat, p.Lon
	return ShippingAddress{DisplayText: p.DisplayName, Lat: &lat, Lon: &lon}
}
