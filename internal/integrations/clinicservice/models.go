package clinicservice

// Clinic is the catalog view of a clinic exposed by the main platform.
type Clinic struct {
	ID      int64  `json:"id"`
	OwnerID int64  `json:"ownerId"`
	Name    string `json:"name"`
	Region  string `json:"region"`
	Status  string `json:"status"`
}

// Treatment is one treatment offered by a clinic.
type Treatment struct {
	ID       int64    `json:"id"`
	ClinicID int64    `json:"clinicId"`
	Name     string   `json:"name"`
	Price    *float64 `json:"price,omitempty"`
	Active   bool     `json:"active"`
}
