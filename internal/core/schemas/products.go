package schemas

import "github.com/andesmarket/bulkimport/internal/core"

func init() {
	core.Register(core.Schema{
		Key:   "products",
		Label: "Products",

		Fields: []core.FieldSpec{
			{
				Name:       "sku",
				Type:       core.ValueString,
				Required:   true,
				UniqueKey:  true,
				Variations: []string{"codigo", "code", "cod", "id_producto", "product_id"},
				Example:    "EXAMPLE-001",
			},
			{
				Name:       "name",
				Type:       core.ValueString,
				Required:   true,
				UniqueKey:  true,
				Variations: []string{"nombre", "producto", "product", "item"},
				Example:    "Sample Product",
			},
			{
				Name:       "value",
				Type:       core.ValueNumber,
				Required:   true,
				Variations: []string{"precio", "price", "costo", "cost", "valor"},
				Example:    "5000",
			},
			{
				Name:       "category_name",
				Type:       core.ValueString,
				Required:   true,
				Variations: []string{"categoria", "category", "categ", "tipo", "type"},
				Example:    "Sample Category",
			},
			{
				Name:       "quantity",
				Type:       core.ValueNumber,
				Required:   true,
				Variations: []string{"stock_minimo", "stock_min", "minimo", "minimum", "min_stock", "stock"},
				Example:    "50",
			},
			{
				Name:       "warehouse_id",
				Type:       core.ValueNumber,
				Required:   true,
				Variations: []string{"warehouse", "bodega", "bodega_id", "almacen", "almacen_id"},
				Example:    "1",
			},
		},

		ValidatePath: "products/upload3/validate",
		InsertPath:   "products/upload3/insert",
		SamplePath:   "products/available",
		SampleKey:    "products",
		ValidatedKey: "validated_products",
	})
}
