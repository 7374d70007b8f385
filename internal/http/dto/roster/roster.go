// Package roster contiene los DTOs del roster de la división.
package roster

// HomeUser es una fila del roster. Rating es el rating corto de controlador.
type HomeUser struct {
	CID       string  `json:"cid"`
	NameFirst string  `json:"name_first"`
	NameLast  string  `json:"name_last"`
	Role      string  `json:"role"`
	Rating    string  `json:"rating"`
	Vacc      *string `json:"vacc"`
}

type HomeRoster struct {
	Users []HomeUser `json:"users"`
}
