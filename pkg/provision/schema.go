package provision

import (
	"fmt"
	"strings"
)

// tableSpec declares one tenant-local table: its columns, the tables it
// references, and its supporting indexes. The DDL is generated from these
// specs so the creation order and the declared dependencies can be checked
// against each other instead of being an implicit property of a script.
type tableSpec struct {
	name      string
	dependsOn []string
	columns   []string
	indexes   []indexSpec
}

type indexSpec struct {
	suffix string // index name is idx_<table>_<suffix>
	expr   string // parenthesized column list or expression, may carry USING
}

func (s tableSpec) createSQL() string {
	return fmt.Sprintf("CREATE TABLE %s (\n\t%s\n)", s.name, strings.Join(s.columns, ",\n\t"))
}

func (s tableSpec) indexSQL() []string {
	out := make([]string, 0, len(s.indexes))
	for _, idx := range s.indexes {
		out = append(out, fmt.Sprintf("CREATE INDEX idx_%s_%s ON %s %s", s.name, idx.suffix, s.name, idx.expr))
	}
	return out
}

// tenantTables is the full shape of a tenant schema in creation order.
// validateTableOrder guards the ordering; TestTenantTablesOrder keeps it
// honest against the FK clauses.
var tenantTables = []tableSpec{
	{
		name: "products",
		columns: []string{
			"id uuid PRIMARY KEY DEFAULT gen_random_uuid()",
			"name text NOT NULL",
			"description text",
			"category text",
			"tags text[] NOT NULL DEFAULT '{}'",
			"active boolean NOT NULL DEFAULT true",
			"created_at timestamptz NOT NULL DEFAULT now()",
			"updated_at timestamptz NOT NULL DEFAULT now()",
		},
		indexes: []indexSpec{
			{suffix: "active", expr: "(active)"},
			{suffix: "category", expr: "(category)"},
			{suffix: "tags", expr: "USING gin (tags)"},
		},
	},
	{
		name:      "product_variants",
		dependsOn: []string{"products"},
		columns: []string{
			"id uuid PRIMARY KEY DEFAULT gen_random_uuid()",
			"product_id uuid NOT NULL REFERENCES products (id) ON DELETE CASCADE",
			"sku text",
			"options jsonb NOT NULL DEFAULT '{}'",
			"created_at timestamptz NOT NULL DEFAULT now()",
			"updated_at timestamptz NOT NULL DEFAULT now()",
		},
		indexes: []indexSpec{
			{suffix: "sku", expr: "(sku)"},
			{suffix: "product_id", expr: "(product_id)"},
		},
	},
	{
		name:      "prices",
		dependsOn: []string{"product_variants"},
		columns: []string{
			"id uuid PRIMARY KEY DEFAULT gen_random_uuid()",
			"variant_id uuid NOT NULL REFERENCES product_variants (id) ON DELETE CASCADE",
			"amount_cents bigint NOT NULL",
			"currency char(3) NOT NULL",
			"active boolean NOT NULL DEFAULT true",
			"created_at timestamptz NOT NULL DEFAULT now()",
		},
		indexes: []indexSpec{
			{suffix: "variant_id", expr: "(variant_id)"},
			{suffix: "active", expr: "(active)"},
		},
	},
	{
		name:      "inventory",
		dependsOn: []string{"product_variants"},
		columns: []string{
			"id uuid PRIMARY KEY DEFAULT gen_random_uuid()",
			"variant_id uuid NOT NULL REFERENCES product_variants (id) ON DELETE CASCADE",
			"location text NOT NULL DEFAULT 'default'",
			"quantity integer NOT NULL DEFAULT 0",
			"updated_at timestamptz NOT NULL DEFAULT now()",
			"UNIQUE (variant_id, location)",
		},
		indexes: []indexSpec{
			{suffix: "variant_id", expr: "(variant_id)"},
		},
	},
	{
		name: "customers",
		columns: []string{
			"id uuid PRIMARY KEY DEFAULT gen_random_uuid()",
			"name text",
			"email text",
			"phone text",
			"telegram_id bigint",
			"created_at timestamptz NOT NULL DEFAULT now()",
			"updated_at timestamptz NOT NULL DEFAULT now()",
		},
		indexes: []indexSpec{
			{suffix: "email", expr: "(email)"},
			{suffix: "phone", expr: "(phone)"},
			{suffix: "telegram_id", expr: "(telegram_id)"},
		},
	},
	{
		name:      "orders",
		dependsOn: []string{"customers"},
		columns: []string{
			"id uuid PRIMARY KEY DEFAULT gen_random_uuid()",
			// Deleting a customer keeps their historical orders.
			"customer_id uuid REFERENCES customers (id) ON DELETE SET NULL",
			"status text NOT NULL DEFAULT 'new'",
			"total_cents bigint NOT NULL DEFAULT 0",
			"currency char(3) NOT NULL DEFAULT 'USD'",
			"paid boolean NOT NULL DEFAULT false",
			"created_at timestamptz NOT NULL DEFAULT now()",
			"updated_at timestamptz NOT NULL DEFAULT now()",
		},
		indexes: []indexSpec{
			{suffix: "customer_id", expr: "(customer_id)"},
			{suffix: "status", expr: "(status)"},
			{suffix: "paid", expr: "(paid)"},
			{suffix: "created_at", expr: "(created_at)"},
		},
	},
	{
		name:      "order_items",
		dependsOn: []string{"orders", "product_variants"},
		columns: []string{
			"id uuid PRIMARY KEY DEFAULT gen_random_uuid()",
			"order_id uuid NOT NULL REFERENCES orders (id) ON DELETE CASCADE",
			// Line items carry a title/price snapshot, so losing the variant
			// reference does not lose the sale record.
			"variant_id uuid REFERENCES product_variants (id) ON DELETE SET NULL",
			"title text NOT NULL",
			"quantity integer NOT NULL DEFAULT 1",
			"unit_price_cents bigint NOT NULL",
			"created_at timestamptz NOT NULL DEFAULT now()",
		},
		indexes: []indexSpec{
			{suffix: "order_id", expr: "(order_id)"},
			{suffix: "variant_id", expr: "(variant_id)"},
		},
	},
	{
		name: "outbox",
		columns: []string{
			"id bigint GENERATED ALWAYS AS IDENTITY PRIMARY KEY",
			"event_type text NOT NULL",
			"aggregate_type text NOT NULL",
			"aggregate_id text NOT NULL",
			"payload jsonb NOT NULL",
			"created_at timestamptz NOT NULL DEFAULT now()",
			"processed_at timestamptz",
		},
		indexes: []indexSpec{
			{suffix: "processed_at", expr: "(processed_at)"},
			{suffix: "event_type", expr: "(event_type)"},
			{suffix: "aggregate", expr: "(aggregate_type, aggregate_id)"},
		},
	},
	{
		name: "store_settings",
		columns: []string{
			"id smallint PRIMARY KEY DEFAULT 1 CHECK (id = 1)",
			"title text NOT NULL",
			"accent_color text NOT NULL",
			"logo_path text",
			"currency char(3) NOT NULL DEFAULT 'USD'",
			"updated_at timestamptz NOT NULL DEFAULT now()",
		},
	},
}

// validateTableOrder checks that every declared dependency of a table
// appears earlier in the list, so executing the specs front to back never
// references a table that does not exist yet.
func validateTableOrder(specs []tableSpec) error {
	seen := make(map[string]bool, len(specs))
	for _, s := range specs {
		for _, dep := range s.dependsOn {
			if !seen[dep] {
				return fmt.Errorf("table %s depends on %s which is not created before it", s.name, dep)
			}
		}
		if seen[s.name] {
			return fmt.Errorf("table %s declared twice", s.name)
		}
		seen[s.name] = true
	}
	return nil
}
