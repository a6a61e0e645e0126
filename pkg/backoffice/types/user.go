package types

// UserProfile is the current user's profile
type UserProfile struct {
	Name           string  `json:"name"`
	Surname        string  `json:"surname"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	NIFNIE         string  `json:"nif_nie"`
	BirthDate      Date    `json:"birth_date"`
	SignupDate     Date    `json:"signup_date"`
	Address        *string `json:"address"`
	City           *string `json:"city"`
	SocialSecurity *string `json:"social_security"`
	AccountHolder  string  `json:"account_holder"`
	IBAN           string  `json:"iban"`
	Parent1Name    *string `json:"parent1_name"`
	Parent2Name    *string `json:"parent2_name"`
	Parent1ID      *string `json:"parent1_id"`
	Parent2ID      *string `json:"parent2_id"`
	Parent1Phone   *string `json:"parent1_phone"`
	Parent2Phone   *string `json:"parent2_phone"`
	Parent1Email   *string `json:"parent1_email"`
	Parent2Email   *string `json:"parent2_email"`
	Notes          *string `json:"notes"`
}

// FullName joins name and surname
func (u UserProfile) FullName() string {
	return u.Name + " " + u.Surname
}

// UserShortView is one row of the users list
type UserShortView struct {
	ID        int     `json:"id_user"`
	Name      string  `json:"name"`
	Surname   string  `json:"surname"`
	NIFNIE    string  `json:"nif_nie"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Status    string  `json:"ind_estado"`
	CRE       *string `json:"ind_cre"`
	RGCRE     *string `json:"ind_rgcre"`
	Parent1ID *string `json:"parent1_id"`
	Parent2ID *string `json:"parent2_id"`
}

// Active reports whether the user is in the active state
func (u UserShortView) Active() bool {
	return u.Status == UserStatusActive
}

// UserDetail is the full user record
type UserDetail struct {
	UserProfile
	ID                   int      `json:"id_user"`
	Status               string   `json:"ind_estado"`
	CRE                  string   `json:"ind_cre"`
	RGCRE                string   `json:"ind_rgcre"`
	DirectDebitReference string   `json:"direct_debit_reference"`
	CreatedBy            int      `json:"created_by"`
	CreationDate         DateTime `json:"creation_date"`
	UpdatedBy            int      `json:"updated_by"`
	UpdateDate           DateTime `json:"update_date"`
}

// Active reports whether the user is in the active state
func (u UserDetail) Active() bool {
	return u.Status == UserStatusActive
}

// UserCreate is the create-user request. Optional fields are pointers so
// that unset values travel as null and are stripped by the client.
type UserCreate struct {
	Nombre              string  `json:"nombre"`
	Apellidos           string  `json:"apellidos"`
	NIFNIE              string  `json:"nif_nie"`
	Password            string  `json:"password"`
	FechaNacimiento     string  `json:"fecha_nacimiento"`
	Domicilio           *string `json:"domicilio"`
	Poblacion           *string `json:"poblacion"`
	Telefono            string  `json:"telefono"`
	Email               string  `json:"email"`
	TitularCuenta       string  `json:"titular_cuenta"`
	IBAN                string  `json:"iban"`
	NumeroSS            *string `json:"numero_ss"`
	NombreProgenitor1   *string `json:"nombre_progenitor1"`
	NombreProgenitor2   *string `json:"nombre_progenitor2"`
	NIFNIEProgenitor1   *string `json:"nif_nie_progenitor1"`
	NIFNIEProgenitor2   *string `json:"nif_nie_progenitor2"`
	TelefonoProgenitor1 *string `json:"telefono_progenitor1"`
	TelefonoProgenitor2 *string `json:"telefono_progenitor2"`
	EmailProgenitor1    *string `json:"email_progenitor1"`
	EmailProgenitor2    *string `json:"email_progenitor2"`
	PathDerechosImagen  *string `json:"path_derechos_imagen"`
	Consideraciones     *string `json:"consideraciones"`
	IndCRE              int     `json:"ind_cre"`
	IndRGCRE            int     `json:"ind_rgcre"`
	IndEstado           int     `json:"ind_estado"`
}

// NewUserCreate returns a request with the server defaults for the state flags
func NewUserCreate() UserCreate {
	return UserCreate{IndCRE: 1, IndRGCRE: 1, IndEstado: UserStatusActiveID}
}

// Validate checks required fields, lengths and formats
func (u UserCreate) Validate() error {
	checks := []error{
		Required("nombre", u.Nombre),
		MaxLen("nombre", u.Nombre, 64),
		Required("apellidos", u.Apellidos),
		MaxLen("apellidos", u.Apellidos, 255),
		ValidateNIFNIE(u.NIFNIE),
		ValidatePassword(u.Password),
		Required("fecha_nacimiento", u.FechaNacimiento),
		ValidatePhone(u.Telefono),
		ValidateEmail(u.Email),
		Required("titular_cuenta", u.TitularCuenta),
		ValidateIBAN(u.IBAN),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	if _, err := NewDate(u.FechaNacimiento); err != nil {
		return err
	}
	return nil
}

// UserUpdate is the partial update request; nil fields are left untouched
// by the server because the client strips them.
type UserUpdate struct {
	ID                  int     `json:"id_usuario"`
	Nombre              *string `json:"nombre"`
	Apellidos           *string `json:"apellidos"`
	NIFNIE              *string `json:"nif_nie"`
	IndEstado           *int    `json:"ind_estado"`
	IndCRE              *int    `json:"ind_cre"`
	IndRGCRE            *int    `json:"ind_rgcre"`
	FechaNacimiento     *string `json:"fecha_nacimiento"`
	Domicilio           *string `json:"domicilio"`
	Poblacion           *string `json:"poblacion"`
	Telefono            *string `json:"telefono"`
	Email               *string `json:"email"`
	NumeroSS            *string `json:"numero_ss"`
	TitularCuenta       *string `json:"titular_cuenta"`
	IBAN                *string `json:"iban"`
	NombreProgenitor1   *string `json:"nombre_progenitor1"`
	NombreProgenitor2   *string `json:"nombre_progenitor2"`
	NIFNIEProgenitor1   *string `json:"nif_nie_progenitor1"`
	NIFNIEProgenitor2   *string `json:"nif_nie_progenitor2"`
	TelefonoProgenitor1 *string `json:"telefono_progenitor1"`
	TelefonoProgenitor2 *string `json:"telefono_progenitor2"`
	EmailProgenitor1    *string `json:"email_progenitor1"`
	EmailProgenitor2    *string `json:"email_progenitor2"`
	Consideraciones     *string `json:"consideraciones"`
}

// Ptr returns a pointer to v, for filling optional request fields
func Ptr[T any](v T) *T {
	return &v
}

// Deref returns the pointed-to value or the zero value
func Deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
