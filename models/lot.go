// Package models holds the documents stored in the factory collections.
// JSON names follow the wire shape the front end already speaks.
package models

import (
	"encoding/json"
	"math"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/cast"
)

// SizeKeys are the nine garment sizes a ratio is kept for, in display order.
var SizeKeys = []string{"r28", "r30", "r32", "r34", "r36", "r38", "r40", "r42", "r44"}

// TukdaSizes are the sizes a tukda allotment can be cut in.
var TukdaSizes = []string{"28", "30", "32", "34", "36", "38", "40", "42", "44"}

const DefaultTukdaSize = "28"

// Ratios maps a size key to its per-layer multiplier. Only SizeKeys are kept.
type Ratios map[string]float64

// NewRatios returns a Ratios with every size present and zero.
func NewRatios() Ratios {
	r := make(Ratios, len(SizeKeys))
	for _, k := range SizeKeys {
		r[k] = 0
	}
	return r
}

// UnmarshalJSON accepts numbers or numeric strings; anything else is 0.
func (r *Ratios) UnmarshalJSON(b []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := NewRatios()
	for _, k := range SizeKeys {
		out[k] = looseFloat(raw[k])
	}
	*r = out
	return nil
}

// LotRow is one line of a lot's production table.
type LotRow struct {
	RowID        string  `json:"rowId,omitempty"`
	SerialNumber int     `json:"serialNumber"`
	Meter        float64 `json:"meter"`
	Layer        int     `json:"layer"`
	Pieces       float64 `json:"pieces"`
	Color        string  `json:"color"`
	Shade        string  `json:"shade"`
	ZipCode      string  `json:"zip_code"`
	ThreadCode   string  `json:"thread_code"`
}

// UnmarshalJSON tolerates the form inputs' habit of sending numbers as strings.
func (r *LotRow) UnmarshalJSON(b []byte) error {
	type alias LotRow
	aux := struct {
		*alias
		SerialNumber any `json:"serialNumber"`
		Meter        any `json:"meter"`
		Layer        any `json:"layer"`
		Pieces       any `json:"pieces"`
	}{alias: (*alias)(r)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	r.SerialNumber = int(looseFloat(aux.SerialNumber))
	r.Meter = looseFloat(aux.Meter)
	r.Layer = int(looseFloat(aux.Layer))
	r.Pieces = looseFloat(aux.Pieces)
	return nil
}

func (r LotRow) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Meter, validation.Min(0.0)),
	)
}

// Tukda is an extra allotment of a single size kept outside the row table.
type Tukda struct {
	Count int    `json:"count"`
	Size  string `json:"size"`
}

func (t *Tukda) UnmarshalJSON(b []byte) error {
	var aux struct {
		Count any `json:"count"`
		Size  any `json:"size"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	t.Count = int(math.Floor(looseFloat(aux.Count)))
	t.Size = cast.ToString(aux.Size)
	return nil
}

func (t Tukda) Validate() error {
	sizes := make([]any, len(TukdaSizes))
	for i, s := range TukdaSizes {
		sizes[i] = s
	}
	return validation.ValidateStruct(&t,
		validation.Field(&t.Count, validation.Min(0)),
		validation.Field(&t.Size, validation.In(sizes...)),
	)
}

// Lot is one production run.
type Lot struct {
	ID                   string    `json:"_id,omitempty"`
	LotNumber            string    `json:"lotNumber"`
	Date                 string    `json:"date"`
	Fabric               string    `json:"fabric"`
	Pattern              string    `json:"pattern"`
	Brand                string    `json:"brand"`
	Ratios               Ratios    `json:"ratios"`
	ProductionData       []LotRow  `json:"productionData"`
	Tukda                Tukda     `json:"tukda"`
	TotalMeter           float64   `json:"totalMeter"`
	TotalPieces          float64   `json:"totalPieces"`
	TotalPiecesWithTukda float64   `json:"totalPiecesWithTukda"`
	Average              float64   `json:"average"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

func (l Lot) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.LotNumber, validation.Required, validation.Length(1, 100)),
		validation.Field(&l.ProductionData),
		validation.Field(&l.Tukda),
	)
}

// looseFloat turns a JSON value into a finite float, or 0.
func looseFloat(v any) float64 {
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
