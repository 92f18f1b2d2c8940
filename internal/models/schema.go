package models

// Column describes one column of a persisted table.
type Column struct {
	Name     string
	Type     string
	Nullable bool
	Default  string
	Indexed  bool
}

// ForeignKey describes a reference from a column to another table's key.
type ForeignKey struct {
	Column    string
	RefTable  string
	RefColumn string
}

// Table describes one persisted table: its columns and outgoing references.
type Table struct {
	Name        string
	Columns     []Column
	ForeignKeys []ForeignKey
}

// SchemaRegistry holds the definitions of every persisted table. It is built
// once at process start and handed to the migration tooling, which uses it
// to check that the migration set covers every registered table. There is no
// implicit registration: adding an entity means adding it here.
type SchemaRegistry struct {
	tables []Table
}

// NewRegistry builds the registry for all five entities. Column order
// matches the physical table layout so the registry can double as schema
// documentation.
func NewRegistry() *SchemaRegistry {
	return &SchemaRegistry{tables: []Table{
		{
			Name: "users",
			Columns: []Column{
				{Name: "id", Type: "serial", Indexed: true},
				{Name: "fullname", Type: "text", Indexed: true},
				{Name: "email", Type: "text", Indexed: true},
				{Name: "hashed_password", Type: "text"},
				{Name: "is_admin", Type: "boolean", Default: "false"},
				{Name: "is_active", Type: "boolean", Default: "false"},
				{Name: "created_at", Type: "timestamptz", Default: "now()"},
			},
		},
		{
			Name: "categories",
			Columns: []Column{
				{Name: "id", Type: "serial", Indexed: true},
				{Name: "name", Type: "text", Indexed: true},
				{Name: "description", Type: "text", Nullable: true},
			},
		},
		{
			Name: "products",
			Columns: []Column{
				{Name: "id", Type: "serial", Indexed: true},
				{Name: "name", Type: "text"},
				{Name: "description", Type: "text", Nullable: true},
				{Name: "price", Type: "numeric(10,2)"},
				{Name: "stock_qty", Type: "integer", Default: "0"},
				{Name: "category_id", Type: "integer"},
				{Name: "image_url", Type: "text", Nullable: true},
			},
			ForeignKeys: []ForeignKey{
				{Column: "category_id", RefTable: "categories", RefColumn: "id"},
			},
		},
		{
			Name: "orders",
			Columns: []Column{
				{Name: "id", Type: "serial", Indexed: true},
				{Name: "total_price", Type: "numeric(10,2)", Nullable: true},
				{Name: "status", Type: "text", Default: "'pending'"},
				{Name: "mpesa_checkout_id", Type: "text", Nullable: true},
				{Name: "mpesa_receipt", Type: "text", Nullable: true, Indexed: true},
				{Name: "phone_number", Type: "text", Nullable: true},
				{Name: "created_at", Type: "timestamptz", Default: "now()"},
				{Name: "user_id", Type: "integer"},
			},
			ForeignKeys: []ForeignKey{
				{Column: "user_id", RefTable: "users", RefColumn: "id"},
			},
		},
		{
			Name: "order_items",
			Columns: []Column{
				{Name: "id", Type: "serial", Indexed: true},
				{Name: "order_id", Type: "integer"},
				{Name: "product_id", Type: "integer"},
				{Name: "quantity", Type: "integer"},
				{Name: "price_at_purchase", Type: "numeric(10,2)"},
			},
			ForeignKeys: []ForeignKey{
				{Column: "order_id", RefTable: "orders", RefColumn: "id"},
				{Column: "product_id", RefTable: "products", RefColumn: "id"},
			},
		},
	}}
}

// Register appends a table definition. The migration tooling refuses to run
// when a registered table is not covered by the migration set.
func (r *SchemaRegistry) Register(t Table) {
	r.tables = append(r.tables, t)
}

// Tables returns all registered tables in creation order.
func (r *SchemaRegistry) Tables() []Table {
	return r.tables
}

// Table looks up a registered table by name.
func (r *SchemaRegistry) Table(name string) (Table, bool) {
	for _, t := range r.tables {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}
