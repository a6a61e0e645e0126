package types

// OrganizationShortView is one row of the organizations list
type OrganizationShortView struct {
	ID    int     `json:"id_organizacion"`
	NIF   string  `json:"nif"`
	Name  string  `json:"nombre"`
	Phone *string `json:"telefono"`
	Email *string `json:"email"`
}

// Organization is the full organization record
type Organization struct {
	ID          int     `json:"id_organizacion"`
	NIF         string  `json:"nif"`
	Name        string  `json:"nombre"`
	Description *string `json:"descripcion"`
	IBAN        *string `json:"iban"`
	Address     string  `json:"direccion"`
	City        string  `json:"poblacion"`
	PostalCode  string  `json:"codigo_postal"`
	Province    *string `json:"provincia"`
	Country     *string `json:"pais"`
	Email       *string `json:"email"`
	Phone       *string `json:"telefono"`
}

// OrganizationCreate is the create request
type OrganizationCreate struct {
	NIF         string  `json:"nif"`
	Name        string  `json:"nombre"`
	Description *string `json:"descripcion"`
	IBAN        *string `json:"iban"`
	Address     string  `json:"direccion"`
	City        string  `json:"poblacion"`
	PostalCode  string  `json:"codigo_postal"`
	Province    *string `json:"provincia"`
	Country     *string `json:"pais"`
	Email       *string `json:"email"`
	Phone       *string `json:"telefono"`
}

// Validate checks required fields and formats
func (o OrganizationCreate) Validate() error {
	checks := []error{
		ValidateCompanyNIF(o.NIF),
		Required("nombre", o.Name),
		MaxLen("nombre", o.Name, 255),
		Required("direccion", o.Address),
		Required("poblacion", o.City),
		Required("codigo_postal", o.PostalCode),
		MaxLen("codigo_postal", o.PostalCode, 10),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	if o.Email != nil && *o.Email != "" {
		if err := ValidateEmail(*o.Email); err != nil {
			return err
		}
	}
	if o.Phone != nil {
		return MaxLen("telefono", *o.Phone, 50)
	}
	return nil
}

// OrganizationUpdate is the partial update request
type OrganizationUpdate struct {
	ID          int     `json:"id_organizacion"`
	NIF         *string `json:"nif"`
	Name        *string `json:"nombre"`
	Description *string `json:"descripcion"`
	IBAN        *string `json:"iban"`
	Address     *string `json:"direccion"`
	City        *string `json:"poblacion"`
	PostalCode  *string `json:"codigo_postal"`
	Province    *string `json:"provincia"`
	Country     *string `json:"pais"`
	Email       *string `json:"email"`
	Phone       *string `json:"telefono"`
}
