package vatsim

import "fmt"

// Step es la etapa del intercambio que falló.
type Step string

const (
	StepToken Step = "token"
	StepUser  Step = "user"
)

// Kind distingue falla de conexión de respuesta de error.
type Kind int

const (
	KindConnect Kind = iota + 1
	KindResponse
)

func (k Kind) String() string {
	switch k {
	case KindConnect:
		return "connect"
	case KindResponse:
		return "response"
	default:
		return "unknown"
	}
}

// Error conserva status y body upstream para diagnóstico.
type Error struct {
	Step       Step
	Kind       Kind
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.Body != "":
		return "VATSIM returned error: " + e.Body
	case e.Err != nil:
		return "VATSIM returned error: " + e.Err.Error()
	default:
		return fmt.Sprintf("VATSIM returned error: status %d", e.StatusCode)
	}
}

func (e *Error) Unwrap() error { return e.Err }
