package schemas

import "github.com/andesmarket/bulkimport/internal/core"

// The seller and user schemas keep the Spanish canonical names of the
// upstream export format; "ñ" is declared significant so "contraseña"
// survives header normalization intact.
func init() {
	core.Register(core.Schema{
		Key:        "sellers",
		Label:      "Sellers",
		ExtraRunes: "ñ",

		Fields: []core.FieldSpec{
			{
				Name:       "nombre",
				Type:       core.ValueString,
				Required:   true,
				Variations: []string{"name", "first_name", "firstname"},
				Example:    "Maria",
			},
			{
				Name:       "apellido",
				Type:       core.ValueString,
				Required:   true,
				Variations: []string{"last_name", "lastname", "surname"},
				Example:    "Gomez",
			},
			{
				Name:       "correo",
				Type:       core.ValueString,
				Required:   true,
				UniqueKey:  true,
				Variations: []string{"email", "e_mail", "mail"},
				Example:    "maria.gomez@example.com",
			},
			{
				Name:       "identificacion",
				Type:       core.ValueString,
				Required:   true,
				UniqueKey:  true,
				Variations: []string{"id", "documento", "document", "cedula", "dni"},
				Example:    "1032456789",
			},
			{
				Name:       "telefono",
				Type:       core.ValueString,
				Required:   true,
				Variations: []string{"phone", "telephone", "celular", "mobile"},
				Example:    "3001234567",
			},
			{
				Name:       "zona",
				Type:       core.ValueString,
				Required:   true,
				Variations: []string{"zone", "region", "región"},
				Example:    "Norte",
			},
			{
				Name:       "contraseña",
				Type:       core.ValueString,
				Required:   true,
				Variations: []string{"contrasea", "contrasena", "password", "pass", "passwd"},
				Example:    "Vendedor2024!",
			},
		},

		Rules: []core.RowRule{
			emailFormat("correo"),
			// Sellers arrive with plaintext passwords; the backend hashes
			// them on insert, so the full policy applies here.
			passwordPolicy("contraseña", false),
		},

		ValidatePath: "users/sellers/upload/validate",
		InsertPath:   "users/sellers/upload/insert",
		SamplePath:   "users/sellers/available",
		SampleKey:    "sellers",
		ValidatedKey: "validated_sellers",
	})
}
