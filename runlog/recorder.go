// Package runlog writes one JSON record per lookup, so a household running
// the tool on a schedule keeps a trail of what resolved and what failed.
package runlog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusStarted   Status = "started"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

type LookupRecord struct {
	ID          string    `json:"id"`
	Postcode    string    `json:"postcode"`
	HouseNumber string    `json:"house_number,omitempty"`
	UPRN        string    `json:"uprn,omitempty"`
	Streams     int       `json:"streams,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at,omitempty"`
	Status      Status    `json:"status"`
	Error       string    `json:"error,omitempty"`
}

type Recorder struct {
	dir string
	now func() time.Time
}

func NewRecorder(dir string) *Recorder {
	return &Recorder{
		dir: dir,
		now: time.Now,
	}
}

func (r *Recorder) Start(postcode, houseNumber string) (*LookupRecord, error) {
	if r == nil {
		return nil, errors.New("runlog: recorder is nil")
	}
	if r.dir == "" {
		return nil, errors.New("runlog: directory is required")
	}

	record := &LookupRecord{
		ID:          uuid.NewString(),
		Postcode:    postcode,
		HouseNumber: houseNumber,
		StartedAt:   r.now(),
		Status:      StatusStarted,
	}
	if err := r.write(record); err != nil {
		return nil, err
	}
	return record, nil
}

func (r *Recorder) Finish(record *LookupRecord, lookupErr error) error {
	if r == nil {
		return errors.New("runlog: recorder is nil")
	}
	if record == nil {
		return errors.New("runlog: record is nil")
	}
	record.CompletedAt = r.now()
	if lookupErr != nil {
		record.Status = StatusFailed
		record.Error = lookupErr.Error()
	} else {
		record.Status = StatusCompleted
		record.Error = ""
	}
	return r.write(record)
}

func (r *Recorder) write(record *LookupRecord) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return err
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	path := filepath.Join(r.dir, fmt.Sprintf("lookup-%s.json", record.ID))
	return os.WriteFile(path, append(payload, '\n'), 0o644)
}
