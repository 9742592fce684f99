package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// KeyValue is one entry of the local persistent key-value store. Values are
// opaque strings; callers own their serialization.
type KeyValue struct {
	ent.Schema
}

func (KeyValue) Fields() []ent.Field {
	return []ent.Field{
		field.String("key").
			NotEmpty().
			Unique().
			Comment("Storage key, e.g. medtrix_analytics"),
		field.Text("payload").
			Default("").
			Comment("Stored value"),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now).
			Comment("Last write time"),
	}
}
