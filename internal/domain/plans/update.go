package plans

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// PlanUpdate is the typed partial update for a plan record. Only the fields
// listed here may be changed through the update endpoint; unknown JSON keys
// are rejected at the boundary.
type PlanUpdate struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *Status    `json:"status,omitempty"`
	Column      *string    `json:"column,omitempty"`
	Position    *int       `json:"position,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// DecodePlanUpdate parses a strict partial update from a request body.
func DecodePlanUpdate(r io.Reader) (*PlanUpdate, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var u PlanUpdate
	if err := dec.Decode(&u); err != nil {
		return nil, err
	}
	// Trailing garbage after the JSON object is also a malformed payload.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("unexpected trailing data in update payload")
	}
	if u.Status != nil && !u.Status.Valid() {
		return nil, fmt.Errorf("invalid status %q", *u.Status)
	}
	return &u, nil
}

// DecodePlanUpdateBytes is DecodePlanUpdate over an in-memory payload.
func DecodePlanUpdateBytes(b []byte) (*PlanUpdate, error) {
	return DecodePlanUpdate(bytes.NewReader(b))
}

// Fields maps the set fields to their storage columns for a single atomic
// partial update. An empty map means there is nothing to apply.
func (u *PlanUpdate) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if u.Title != nil {
		fields["title"] = *u.Title
	}
	if u.Description != nil {
		fields["description"] = *u.Description
	}
	if u.Status != nil {
		fields["status"] = string(*u.Status)
	}
	if u.Column != nil {
		fields["board_column"] = *u.Column
	}
	if u.Position != nil {
		fields["position"] = *u.Position
	}
	if u.DueDate != nil {
		fields["due_date"] = *u.DueDate
	}
	return fields
}
