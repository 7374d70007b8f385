package auth

import (
	"errors"

	"github.com/dropDatabas3/menahq/internal/domain/types"
	"github.com/dropDatabas3/menahq/internal/oauth/vatsim"
)

// Valores de VATSIM que habilitan el rol controller en el primer login.
const (
	ElevatedRegionID   = "EMEA"
	ElevatedDivisionID = "MENA"
)

var ErrIncompleteProfile = errors.New("VATSIM profile is missing region or division")

// ClassifyRole decide el rol de un usuario nuevo. Función pura del perfil.
func ClassifyRole(p *vatsim.Profile) string {
	if vatsim.Value(p.Vatsim.Region.ID) == ElevatedRegionID &&
		vatsim.Value(p.Vatsim.Division.ID) == ElevatedDivisionID {
		return types.RoleControllerID
	}
	return types.RoleMemberID
}

// NewUserFromProfile arma la fila de un usuario nuevo. Region y division son
// columnas obligatorias: si VATSIM no las manda es una falla, no un default.
func NewUserFromProfile(p *vatsim.Profile) (*types.User, error) {
	v := p.Vatsim
	if v.Region.ID == nil || v.Region.Name == nil || v.Division.ID == nil || v.Division.Name == nil {
		return nil, ErrIncompleteProfile
	}
	return &types.User{
		ID:                    string(p.CID),
		NameFirst:             p.Personal.NameFirst,
		NameLast:              p.Personal.NameLast,
		NameFull:              p.Personal.NameFull,
		ControllerRatingID:    v.Rating.ID,
		ControllerRatingShort: v.Rating.Short,
		ControllerRatingLong:  v.Rating.Long,
		PilotRatingID:         v.PilotRating.ID,
		PilotRatingShort:      v.PilotRating.Short,
		PilotRatingLong:       v.PilotRating.Long,
		RegionID:              *v.Region.ID,
		RegionName:            *v.Region.Name,
		DivisionID:            *v.Division.ID,
		DivisionName:          *v.Division.Name,
		SubdivisionID:         v.Subdivision.ID,
		SubdivisionName:       v.Subdivision.Name,
		Role:                  ClassifyRole(p),
		Vacc:                  nil,
	}, nil
}
