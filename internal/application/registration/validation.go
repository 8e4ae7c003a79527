package registration

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/stockfacil/kiosco-pos/internal/application/dto"
)

var (
	personaRegex  = regexp.MustCompile(`^[A-Za-zÀ-ÿ\s]{3,80}$`)
	telefonoRegex = regexp.MustCompile(`^\d{6,20}$`)
)

// ValidationError datos de registro rechazados, con el detalle por campo.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "datos de registro inválidos" }

// newValidator registra las reglas propias del alta: nombre de persona y
// teléfono con los mismos formatos que acepta el frontend.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("persona", func(fl validator.FieldLevel) bool {
		return personaRegex.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("telefono", func(fl validator.FieldLevel) bool {
		return telefonoRegex.MatchString(fl.Field().String())
	})
	return v
}

// validateRegister valida el alta y traduce cada violación a un mensaje por campo.
func validateRegister(v *validator.Validate, in dto.RegisterEmployerRequest) *ValidationError {
	err := v.Struct(in)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		fields["request"] = "cuerpo de la solicitud inválido"
		return &ValidationError{Fields: fields}
	}
	for _, fe := range verrs {
		switch fe.Field() {
		case "Name":
			fields["nombre"] = "el nombre debe tener entre 3 y 80 letras"
		case "Phone":
			fields["telefono"] = "el teléfono debe tener entre 6 y 20 dígitos"
		case "Email":
			fields["email"] = "el email no tiene un formato válido"
		case "Password":
			fields["password"] = "la contraseña debe tener al menos 6 caracteres"
		case "Business":
			fields["negocio"] = "el nombre del negocio debe tener entre 2 y 120 caracteres"
		default:
			fields[fe.Field()] = "valor inválido"
		}
	}
	return &ValidationError{Fields: fields}
}
