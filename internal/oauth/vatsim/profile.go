package vatsim

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Profile es el bloque "data" de /api/user.
type Profile struct {
	CID      SubjectID `json:"cid"`
	Personal Personal  `json:"personal"`
	Vatsim   Details   `json:"vatsim"`
}

type Personal struct {
	NameFirst string `json:"name_first"`
	NameLast  string `json:"name_last"`
	NameFull  string `json:"name_full"`
}

type Rating struct {
	ID    int    `json:"id"`
	Short string `json:"short"`
	Long  string `json:"long"`
}

// Area es region/division/subdivision; VATSIM manda null en cualquiera de los campos.
type Area struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`
}

type Details struct {
	Rating      Rating `json:"rating"`
	PilotRating Rating `json:"pilotrating"`
	Region      Area   `json:"region"`
	Division    Area   `json:"division"`
	Subdivision Area   `json:"subdivision"`
}

// SubjectID acepta el cid como string o como número.
type SubjectID string

func (s *SubjectID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = SubjectID(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("cid: %w", err)
	}
	*s = SubjectID(n.String())
	return nil
}

// Value retorna el valor apuntado o "" si es nil.
func Value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
