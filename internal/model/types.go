/*
PURPOSE:
  Defines the record written for every message the host's logger receives.

REQUIREMENTS:
  User-specified:
  - Keep the rendered message exactly as the redirector produced it.

  Implementation-discovered:
  - Sequence numbers keep ordering stable when timestamps collide.
  - Need JSON tags for the NDJSON and bolt sinks.

ARCHITECTURE INTEGRATION:
  - Used by: internal/host, internal/output
  - Shared across boundaries.

ERROR HANDLING:
  - None (pure data structs).

IMPLEMENTATION RULES:
  - Keep structs simple and public.

USAGE:
  c := model.Capture{Seq: 1, Time: time.Now(), Message: "3-ok"}

SELF-HEALING INSTRUCTIONS:
  - If new fields are needed, update the CSV header and record mapping.

RELATED FILES:
  - internal/output/csv.go
  - internal/output/json.go
  - internal/output/bolt.go

MAINTENANCE:
  - Update when capture metadata changes.
*/

package model

import (
	"time"
)

// Capture is one rendered message delivered to the host's logger.
type Capture struct {
	Seq     uint64    `json:"seq"`
	Time    time.Time `json:"time"`
	Message string    `json:"message"`
}
