package types

// User es un miembro de la red. El id es el CID de VATSIM y nunca cambia.
type User struct {
	ID        string `json:"id"`
	NameFirst string `json:"name_first"`
	NameLast  string `json:"name_last"`
	NameFull  string `json:"name_full"`

	ControllerRatingID    int    `json:"controller_rating_id"`
	ControllerRatingShort string `json:"controller_rating_short"`
	ControllerRatingLong  string `json:"controller_rating_long"`
	PilotRatingID         int    `json:"pilot_rating_id"`
	PilotRatingShort      string `json:"pilot_rating_short"`
	PilotRatingLong       string `json:"pilot_rating_long"`

	RegionID        string  `json:"region_id"`
	RegionName      string  `json:"region_name"`
	DivisionID      string  `json:"division_id"`
	DivisionName    string  `json:"division_name"`
	SubdivisionID   *string `json:"subdivision_id"`
	SubdivisionName *string `json:"subdivision_name"`

	// Role referencia Role.ID.
	Role string `json:"role"`
	// Vacc es la afiliación local (vACC), nil si no tiene.
	Vacc *string `json:"vacc"`
}

// ItemRef es la referencia tipada que usa el audit log para este usuario.
func (u User) ItemRef() string {
	return UserItem(u.ID)
}
