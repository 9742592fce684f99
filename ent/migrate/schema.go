// Code generated by ent, DO NOT EDIT.

package migrate

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// AiRequestsColumns holds the columns for the "ai_requests" table.
	AiRequestsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "session_id", Type: field.TypeString, Default: ""},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "prompt", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	// AiRequestsTable holds the schema information for the "ai_requests" table.
	AiRequestsTable = &schema.Table{
		Name:       "ai_requests",
		Columns:    AiRequestsColumns,
		PrimaryKey: []*schema.Column{AiRequestsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "airequest_timestamp",
				Unique:  false,
				Columns: []*schema.Column{AiRequestsColumns[1]},
			},
			{
				Name:    "airequest_purpose",
				Unique:  false,
				Columns: []*schema.Column{AiRequestsColumns[4]},
			},
			{
				Name:    "airequest_success",
				Unique:  false,
				Columns: []*schema.Column{AiRequestsColumns[9]},
			},
		},
	}
	// KeyValuesColumns holds the columns for the "key_values" table.
	KeyValuesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "key", Type: field.TypeString, Unique: true},
		{Name: "payload", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// KeyValuesTable holds the schema information for the "key_values" table.
	KeyValuesTable = &schema.Table{
		Name:       "key_values",
		Columns:    KeyValuesColumns,
		PrimaryKey: []*schema.Column{KeyValuesColumns[0]},
	}
	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		AiRequestsTable,
		KeyValuesTable,
	}
)

func init() {
}
