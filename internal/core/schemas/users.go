package schemas

import "github.com/andesmarket/bulkimport/internal/core"

func init() {
	core.Register(core.Schema{
		Key:        "users",
		Label:      "Users",
		ExtraRunes: "ñ",

		Fields: []core.FieldSpec{
			{
				Name:       "nombre",
				Type:       core.ValueString,
				Required:   true,
				Variations: []string{"name", "first_name", "firstname"},
				Example:    "Juan",
			},
			{
				Name:       "apellido",
				Type:       core.ValueString,
				Required:   true,
				Variations: []string{"last_name", "lastname", "surname"},
				Example:    "Perez",
			},
			{
				Name:       "correo",
				Type:       core.ValueString,
				Required:   true,
				UniqueKey:  true,
				Variations: []string{"email", "e_mail", "mail"},
				Example:    "juan.perez@example.com",
			},
			{
				// The system of record speaks English for this field.
				Name:       "identificacion",
				WireName:   "identification",
				Type:       core.ValueString,
				Required:   true,
				UniqueKey:  true,
				Variations: []string{"identification", "id", "documento", "document", "cedula", "dni"},
				Example:    "1018765432",
			},
			{
				Name:       "telefono",
				WireName:   "phone",
				Type:       core.ValueString,
				Required:   true,
				Variations: []string{"phone", "telephone", "celular", "mobile"},
				Example:    "3109876543",
			},
			{
				Name:       "rol",
				Type:       core.ValueString,
				Required:   true,
				Variations: []string{"role", "tipo", "type", "perfil"},
				Example:    "SELLER",
			},
			{
				Name:       "contraseña",
				Type:       core.ValueString,
				Required:   true,
				Variations: []string{"contrasea", "contrasena", "password", "pass", "passwd"},
				Example:    "$2a$10$N9qo8uLOickgx2ZMRZoMye",
			},
		},

		Rules: []core.RowRule{
			emailFormat("correo"),
			oneOf("rol", "SELLER", "CLIENT", "ADMIN", "PROVIDER"),
			// User exports may carry bcrypt hashes; those bypass the
			// plaintext policy.
			passwordPolicy("contraseña", true),
		},

		ValidatePath: "users/upload/validate",
		InsertPath:   "users/upload/insert",
		SamplePath:   "users/available",
		SampleKey:    "users",
		ValidatedKey: "validated_users",
	})
}
