package schemas

import "github.com/andesmarket/bulkimport/internal/core"

func init() {
	core.Register(core.Schema{
		Key:   "providers",
		Label: "Providers",

		Fields: []core.FieldSpec{
			{
				Name:       "name",
				Type:       core.ValueString,
				Required:   true,
				UniqueKey:  true,
				Variations: []string{"nombre", "provider_name", "proveedor", "razon_social", "razón_social"},
				Example:    "Distribuidora Andina",
			},
		},

		ValidatePath: "providers/upload/validate",
		InsertPath:   "providers/upload/insert",
		SamplePath:   "providers/available",
		SampleKey:    "providers",
		ValidatedKey: "validated_providers",
	})
}
