package rbac

import "strings"

// Can evalúa required contra los permisos otorgados.
//
//	"&perm" o "perm" tiene que estar presente (all-of); un faltante deniega siempre.
//	"|perm" forma un grupo any-of: si hay entradas "|", al menos una debe estar presente.
func Can(granted []string, required []string) bool {
	have := make(map[string]struct{}, len(granted))
	for _, p := range granted {
		have[p] = struct{}{}
	}

	sawAny, anyHit := false, false
	for _, req := range required {
		if strings.HasPrefix(req, "|") {
			sawAny = true
			if _, ok := have[req[1:]]; ok {
				anyHit = true
			}
			continue
		}
		if _, ok := have[strings.TrimPrefix(req, "&")]; !ok {
			return false
		}
	}
	return !sawAny || anyHit
}

// Missing retorna el primer permiso all-of ausente, o "" si no falta ninguno.
func Missing(granted []string, required []string) string {
	have := make(map[string]struct{}, len(granted))
	for _, p := range granted {
		have[p] = struct{}{}
	}
	for _, req := range required {
		if strings.HasPrefix(req, "|") {
			continue
		}
		p := strings.TrimPrefix(req, "&")
		if _, ok := have[p]; !ok {
			return p
		}
	}
	return ""
}
