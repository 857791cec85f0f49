package telemetry

import (
	"context"
	"log"

	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	ingesterContext "github.com/GreptimeTeam/greptimedb-ingester-go/context"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"
)

// GreptimeDBWriter writes state rows to GreptimeDB via the ingester client.
type GreptimeDBWriter struct {
	client greptime.Client
	db     string
	table  string
}

// NewGreptimeDBWriter creates a GreptimeDB writer and auto-creates the
// table if needed.
func NewGreptimeDBWriter(endpoint, database string) (*GreptimeDBWriter, error) {
	ctx := ingesterContext.NewContext(context.Background())
	client, err := greptime.NewClient(ctx, &greptime.Config{
		Endpoint: endpoint,
	})
	if err != nil {
		return nil, err
	}

	ddl := `
CREATE TABLE IF NOT EXISTS ` + StateTableName + ` (
  mission_id STRING TAG,
  x DOUBLE,
  y DOUBLE,
  heading DOUBLE,
  speed DOUBLE,
  t DOUBLE,
  ts TIMESTAMP TIME INDEX
) WITH (ttl='30d')
`
	if _, err := client.SQL(ctx, ddl); err != nil {
		return nil, err
	}

	return &GreptimeDBWriter{
		client: client,
		db:     database,
		table:  StateTableName,
	}, nil
}

// WriteState inserts a single state row.
func (w *GreptimeDBWriter) WriteState(row StateRow) error {
	return w.WriteStates([]StateRow{row})
}

// WriteStates inserts multiple state rows.
func (w *GreptimeDBWriter) WriteStates(rows []StateRow) error {
	if len(rows) == 0 {
		return nil
	}

	ctx := ingesterContext.NewContext(context.Background())

	tbl := table.New(w.table)
	tbl.AddTagColumn("mission_id", types.StringType, 0)
	tbl.AddFieldColumn("x", types.Float64Type)
	tbl.AddFieldColumn("y", types.Float64Type)
	tbl.AddFieldColumn("heading", types.Float64Type)
	tbl.AddFieldColumn("speed", types.Float64Type)
	tbl.AddFieldColumn("t", types.Float64Type)
	tbl.SetTimeIndex("ts", types.TimestampType)

	for _, r := range rows {
		tbl.AppendTagValue("mission_id", r.MissionID)
		tbl.AppendFieldValue("x", r.X)
		tbl.AppendFieldValue("y", r.Y)
		tbl.AppendFieldValue("heading", r.Heading)
		tbl.AppendFieldValue("speed", r.Speed)
		tbl.AppendFieldValue("t", r.PlanTime)
		tbl.AppendTimeIndex(r.Timestamp)
	}

	if err := w.client.Write(ctx, w.db, []*table.Table{tbl}); err != nil {
		log.Printf("[GreptimeDBWriter] Write failed: %v", err)
		return err
	}
	return nil
}
