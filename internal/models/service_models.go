package models

// ServiceType is the fixed enumeration of salon services. The value doubles
// as the service id.
type ServiceType string

const (
	ServiceManicure ServiceType = "Manicure"
	ServicePedicure ServiceType = "Pedicure"
	ServiceCombo    ServiceType = "Manicure + Pedicure"
)

// Service is one row of the price list.
type Service struct {
	ID       ServiceType `json:"id"`
	Name     string      `json:"name"`
	Duration int         `json:"duration"` // minutes
	Price    float64     `json:"price"`
}

// DefaultServices returns the seed rows written on first run.
func DefaultServices() []Service {
	return []Service{
		{ID: ServiceManicure, Name: "Manicure", Duration: 45, Price: 30},
		{ID: ServicePedicure, Name: "Pedicure", Duration: 60, Price: 40},
		{ID: ServiceCombo, Name: "Manicure + Pedicure", Duration: 105, Price: 65},
	}
}

// UpdatePriceRequest is the body of a price change.
type UpdatePriceRequest struct {
	Price *float64 `json:"price" binding:"required"`
}
