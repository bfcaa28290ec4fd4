package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const llmEventsTableName = "llm_request_events"

// llmEventsColumns lists the columns of the generation-call event log. Each
// row carries the shared event fields (sequence, timestamp) followed by the
// request details.
var llmEventsColumns = []*schema.Column{
	{Name: "id", Type: field.TypeInt, Increment: true},
	{Name: "sequence", Type: field.TypeInt64, Unique: true},
	{Name: "timestamp", Type: field.TypeTime},
	{Name: "request_id", Type: field.TypeString, Default: ""},
	{Name: "provider", Type: field.TypeString},
	{Name: "model", Type: field.TypeString},
	{Name: "purpose", Type: field.TypeString},
	{Name: "input_tokens", Type: field.TypeInt, Default: 0},
	{Name: "output_tokens", Type: field.TypeInt, Default: 0},
	{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
	{Name: "success", Type: field.TypeBool},
	{Name: "error_message", Type: field.TypeString, Default: ""},
	{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
}

var llmEventsTable = &schema.Table{
	Name:       llmEventsTableName,
	Columns:    llmEventsColumns,
	PrimaryKey: []*schema.Column{llmEventsColumns[0]},
	Indexes: []*schema.Index{
		{Name: "llmrequestevent_timestamp", Columns: []*schema.Column{llmEventsColumns[2]}},
		{Name: "llmrequestevent_provider", Columns: []*schema.Column{llmEventsColumns[4]}},
		{Name: "llmrequestevent_purpose", Columns: []*schema.Column{llmEventsColumns[6]}},
		{Name: "llmrequestevent_success", Columns: []*schema.Column{llmEventsColumns[10]}},
	},
}

var tables = []*schema.Table{
	llmEventsTable,
}
