package store

import (
	"context"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	submissionsTable = "submissions"
	llmEventsTable   = "llm_request_events"
)

var (
	submissionColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeString},
		{Name: "dataset", Type: field.TypeString},
		{Name: "mode", Type: field.TypeString},
		{Name: "prompt", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "answer", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "correct", Type: field.TypeBool},
		{Name: "score", Type: field.TypeInt},
		{Name: "total", Type: field.TypeInt},
		{Name: "feedback", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	submissionsSchema = &schema.Table{
		Name:       submissionsTable,
		Columns:    submissionColumns,
		PrimaryKey: []*schema.Column{submissionColumns[0]},
		Indexes: []*schema.Index{
			{Name: "submission_session_id", Columns: []*schema.Column{submissionColumns[3]}},
		},
	}

	llmEventColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt},
		{Name: "output_tokens", Type: field.TypeInt},
		{Name: "latency_ms", Type: field.TypeInt64},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	llmEventsSchema = &schema.Table{
		Name:       llmEventsTable,
		Columns:    llmEventColumns,
		PrimaryKey: []*schema.Column{llmEventColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llm_request_event_purpose", Columns: []*schema.Column{llmEventColumns[5]}},
		},
	}
)

// migrate creates or upgrades the tables.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, submissionsSchema, llmEventsSchema)
}
