// Code generated by ent, DO NOT EDIT.

package predicate

import (
	"entgo.io/ent/dialect/sql"
)

// AIRequest is the predicate function for airequest builders.
type AIRequest func(*sql.Selector)

// KeyValue is the predicate function for keyvalue builders.
type KeyValue func(*sql.Selector)
