package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/inventra-api/internal/application/dto"
	"github.com/invorya/inventra-api/pkg/validator"
)

// Un struct válido no produce errores.
func TestValidate_StructValido(t *testing.T) {
	errs := validator.Validate(dto.RegisterRequest{
		Name:                 "Ana Gómez",
		Email:                "ana@example.com",
		Password:             "secreto-123",
		PasswordConfirmation: "secreto-123",
	})
	assert.Nil(t, errs)
}

// Los campos se reportan por su nombre json, con mensajes en español.
func TestValidate_CamposRequeridos(t *testing.T) {
	errs := validator.Validate(dto.LoginRequest{})
	require.NotNil(t, errs)

	require.Contains(t, errs, "email", "el campo se reporta por su nombre json")
	require.Contains(t, errs, "password")
	assert.Contains(t, errs["email"][0], "requerido")
}

func TestValidate_EmailInvalido(t *testing.T) {
	errs := validator.Validate(dto.LoginRequest{Email: "no-es-un-email", Password: "x"})
	require.Contains(t, errs, "email")
	assert.Contains(t, errs["email"][0], "email válido")
}

// eqfield: la confirmación debe coincidir con el password.
func TestValidate_ConfirmacionNoCoincide(t *testing.T) {
	errs := validator.Validate(dto.RegisterRequest{
		Name:                 "Ana Gómez",
		Email:                "ana@example.com",
		Password:             "secreto-123",
		PasswordConfirmation: "otra-cosa",
	})
	require.Contains(t, errs, "password_confirmation")
}

// min sobre strings habla de caracteres.
func TestValidate_PasswordCorto(t *testing.T) {
	errs := validator.Validate(dto.RegisterRequest{
		Name:                 "Ana Gómez",
		Email:                "ana@example.com",
		Password:             "corto",
		PasswordConfirmation: "corto",
	})
	require.Contains(t, errs, "password")
	assert.Contains(t, errs["password"][0], "al menos 8 caracteres")
}

// oneof: solo los roles conocidos.
func TestValidate_RolDesconocido(t *testing.T) {
	errs := validator.Validate(dto.RegisterRequest{
		Name:                 "Ana Gómez",
		Email:                "ana@example.com",
		Password:             "secreto-123",
		PasswordConfirmation: "secreto-123",
		Role:                 "superadmin",
	})
	require.Contains(t, errs, "role")
	assert.Contains(t, errs["role"][0], "admin staff")
}

// datetime: las fechas de compras y ventas son YYYY-MM-DD.
func TestValidate_FechaDeVenta(t *testing.T) {
	in := dto.CreateSaleRequest{
		ProductID:    "p-1",
		QuantitySold: 1,
		SaleDate:     "15/08/2026",
	}
	errs := validator.Validate(in)
	require.Contains(t, errs, "sale_date")

	in.SaleDate = "2026-08-15"
	assert.Nil(t, validator.Validate(in))
}

// min=1: las cantidades de cero o negativas se rechazan.
func TestValidate_CantidadMinima(t *testing.T) {
	errs := validator.Validate(dto.CreatePurchaseRequest{
		ProductID:    "p-1",
		SupplierID:   "s-1",
		Quantity:     0,
		PurchaseDate: "2026-08-15",
	})
	require.Contains(t, errs, "quantity")
}
