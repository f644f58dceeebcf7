package models

import (
	"encoding/json"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Operations are the stitching steps a job card row assigns workers to.
var Operations = []string{"front", "back", "zip"}

// JobCardRow is one line of a job card. The front/back/zip assignment
// fields belong to the job card alone; a lot never carries them.
type JobCardRow struct {
	RowID        string  `json:"rowId,omitempty"`
	SerialNumber int     `json:"serialNumber"`
	Layer        int     `json:"layer"`
	Pieces       float64 `json:"pieces"`
	Color        string  `json:"color"`
	Shade        string  `json:"shade"`

	Front       string `json:"front"`
	FrontWorker string `json:"frontWorker"`
	FrontDate   string `json:"frontDate"`
	FrontRate   string `json:"frontRate"`
	Back        string `json:"back"`
	BackWorker  string `json:"backWorker"`
	BackDate    string `json:"backDate"`
	BackRate    string `json:"backRate"`
	Zip         string `json:"zip"`
	ZipWorker   string `json:"zipWorker"`
	ZipDate     string `json:"zipDate"`
	ZipRate     string `json:"zipRate"`

	ZipCode    string `json:"zip_code"`
	ThreadCode string `json:"thread_code"`
}

func (r *JobCardRow) UnmarshalJSON(b []byte) error {
	type alias JobCardRow
	aux := struct {
		*alias
		SerialNumber any `json:"serialNumber"`
		Layer        any `json:"layer"`
		Pieces       any `json:"pieces"`
		FrontRate    any `json:"frontRate"`
		BackRate     any `json:"backRate"`
		ZipRate      any `json:"zipRate"`
	}{alias: (*alias)(r)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	r.SerialNumber = int(looseFloat(aux.SerialNumber))
	r.Layer = int(looseFloat(aux.Layer))
	r.Pieces = looseFloat(aux.Pieces)
	r.FrontRate = looseString(aux.FrontRate)
	r.BackRate = looseString(aux.BackRate)
	r.ZipRate = looseString(aux.ZipRate)
	return nil
}

// Assignment is a worker booked for one operation on a row.
type Assignment struct {
	Operation string
	WorkerRef string
	Date      string
	Rate      string
}

// Assignments lists the row's operations in front, back, zip order,
// including empty ones.
func (r JobCardRow) Assignments() []Assignment {
	return []Assignment{
		{Operation: "front", WorkerRef: r.FrontWorker, Date: r.FrontDate, Rate: r.FrontRate},
		{Operation: "back", WorkerRef: r.BackWorker, Date: r.BackDate, Rate: r.BackRate},
		{Operation: "zip", WorkerRef: r.ZipWorker, Date: r.ZipDate, Rate: r.ZipRate},
	}
}

// AdditionalInfo holds the finishing details written on a job card.
type AdditionalInfo struct {
	Belt         string `json:"belt"`
	Bottom       string `json:"bottom"`
	Pasting      string `json:"pasting"`
	Bone         string `json:"bone"`
	Hala         string `json:"hala"`
	TicketPocket string `json:"ticketPocket"`
}

// JobCard is the worker task sheet for a lot, at most one per lot number.
type JobCard struct {
	ID             string         `json:"_id,omitempty"`
	LotNumber      string         `json:"lotNumber"`
	Date           string         `json:"date"`
	Brand          string         `json:"brand"`
	Ratios         Ratios         `json:"ratios"`
	ProductionData []JobCardRow   `json:"productionData"`
	FlyWidth       string         `json:"flyWidth"`
	AdditionalInfo AdditionalInfo `json:"additionalInfo"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

func (jc JobCard) Validate() error {
	return validation.ValidateStruct(&jc,
		validation.Field(&jc.LotNumber, validation.Required, validation.Length(1, 100)),
	)
}

// looseString keeps strings as-is and renders numbers without noise, so a
// rate typed as 12.5 or "12.5" is stored the same way.
func looseString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}
