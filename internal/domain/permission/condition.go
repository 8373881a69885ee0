package permission

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // zonas IANA de TimeWindow en imágenes sin tzdata

	"github.com/jhoicas/Estoque-api/internal/domain"
)

// ConditionKind discriminador de la variante serializada en JSON ("type").
type ConditionKind string

// Variantes admitidas.
const (
	KindResourceIDIn ConditionKind = "resource_id_in"
	KindStoreIDIn    ConditionKind = "store_id_in"
	KindTimeWindow   ConditionKind = "time_window"
)

// RequestContext datos de la petición contra los que se evalúan las condiciones.
type RequestContext struct {
	ResourceID string
	StoreID    string
	At         time.Time
}

// Condition es una variante cerrada: solo los tipos de este paquete la implementan.
type Condition interface {
	Kind() ConditionKind
	Matches(ctx RequestContext) bool
	validate() error
}

// ResourceIDIn restringe el permiso a recursos concretos.
type ResourceIDIn struct {
	IDs []string `json:"ids"`
}

// Kind implementa Condition.
func (ResourceIDIn) Kind() ConditionKind { return KindResourceIDIn }

// Matches exige un ResourceID presente en la lista.
func (c ResourceIDIn) Matches(ctx RequestContext) bool {
	return ctx.ResourceID != "" && contains(c.IDs, ctx.ResourceID)
}

func (c ResourceIDIn) validate() error {
	if len(c.IDs) == 0 {
		return fmt.Errorf("%w: resource_id_in sin ids", domain.ErrInvalidCondition)
	}
	return nil
}

// StoreIDIn restringe el permiso a un conjunto de tiendas.
type StoreIDIn struct {
	IDs []string `json:"ids"`
}

// Kind implementa Condition.
func (StoreIDIn) Kind() ConditionKind { return KindStoreIDIn }

// Matches exige un StoreID presente en la lista.
func (c StoreIDIn) Matches(ctx RequestContext) bool {
	return ctx.StoreID != "" && contains(c.IDs, ctx.StoreID)
}

func (c StoreIDIn) validate() error {
	if len(c.IDs) == 0 {
		return fmt.Errorf("%w: store_id_in sin ids", domain.ErrInvalidCondition)
	}
	return nil
}

// TimeWindow limita el permiso a días de la semana y a una franja horaria [Start, End).
// Si Start > End la franja cruza la medianoche.
type TimeWindow struct {
	Weekdays []time.Weekday `json:"weekdays,omitempty"` // vacío = todos los días
	Start    string         `json:"start"`              // "HH:MM"
	End      string         `json:"end"`                // "HH:MM"
	Timezone string         `json:"timezone,omitempty"` // IANA, vacío = UTC
}

// Kind implementa Condition.
func (TimeWindow) Kind() ConditionKind { return KindTimeWindow }

// Matches evalúa ctx.At en la zona horaria de la ventana.
func (c TimeWindow) Matches(ctx RequestContext) bool {
	loc, err := c.location()
	if err != nil {
		return false
	}
	start, err1 := parseClock(c.Start)
	end, err2 := parseClock(c.End)
	if err1 != nil || err2 != nil {
		return false
	}
	at := ctx.At.In(loc)
	if len(c.Weekdays) > 0 {
		found := false
		for _, d := range c.Weekdays {
			if d == at.Weekday() {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	minute := at.Hour()*60 + at.Minute()
	if start <= end {
		return minute >= start && minute < end
	}
	return minute >= start || minute < end
}

func (c TimeWindow) validate() error {
	if _, err := parseClock(c.Start); err != nil {
		return fmt.Errorf("%w: time_window.start: %v", domain.ErrInvalidCondition, err)
	}
	if _, err := parseClock(c.End); err != nil {
		return fmt.Errorf("%w: time_window.end: %v", domain.ErrInvalidCondition, err)
	}
	if c.Start == c.End {
		return fmt.Errorf("%w: time_window vacía", domain.ErrInvalidCondition)
	}
	for _, d := range c.Weekdays {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("%w: weekday %d", domain.ErrInvalidCondition, d)
		}
	}
	if _, err := c.location(); err != nil {
		return fmt.Errorf("%w: timezone %q", domain.ErrInvalidCondition, c.Timezone)
	}
	return nil
}

func (c TimeWindow) location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}

func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// ConditionSet conjunción de condiciones: todas deben cumplirse. Vacío = sin restricción.
type ConditionSet []Condition

// Matches evalúa todas las condiciones.
func (s ConditionSet) Matches(ctx RequestContext) bool {
	for _, c := range s {
		if !c.Matches(ctx) {
			return false
		}
	}
	return true
}

// Validate valida cada variante.
func (s ConditionSet) Validate() error {
	for _, c := range s {
		if c == nil {
			return fmt.Errorf("%w: condición nula", domain.ErrInvalidCondition)
		}
		if err := c.validate(); err != nil {
			return err
		}
	}
	return nil
}

// MarshalJSON serializa como arreglo de objetos {"type": ..., ...campos}.
func (s ConditionSet) MarshalJSON() ([]byte, error) {
	if len(s) == 0 {
		return []byte("[]"), nil
	}
	parts := make([]json.RawMessage, 0, len(s))
	for _, c := range s {
		body, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		// {"ids":[...]} → {"type":"...","ids":[...]}
		head := fmt.Sprintf(`{"type":%q`, c.Kind())
		inner := bytes.TrimPrefix(bytes.TrimSpace(body), []byte("{"))
		if len(bytes.TrimSpace(inner)) > 1 {
			head += ","
		}
		parts = append(parts, append([]byte(head), inner...))
	}
	return json.Marshal(parts)
}

// UnmarshalJSON decodifica y valida (ver ParseConditions).
func (s *ConditionSet) UnmarshalJSON(b []byte) error {
	set, err := ParseConditions(b)
	if err != nil {
		return err
	}
	*s = set
	return nil
}

// ParseConditions decodifica el JSON persistido o recibido por la API y lo valida.
// null, "" y [] producen un conjunto vacío. Un tipo desconocido es un error.
func ParseConditions(raw []byte) (ConditionSet, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("%w: se esperaba un arreglo: %v", domain.ErrInvalidCondition, err)
	}
	set := make(ConditionSet, 0, len(items))
	for i, item := range items {
		var head struct {
			Type ConditionKind `json:"type"`
		}
		if err := json.Unmarshal(item, &head); err != nil {
			return nil, fmt.Errorf("%w: condición %d: %v", domain.ErrInvalidCondition, i, err)
		}
		var (
			c   Condition
			err error
		)
		switch ConditionKind(strings.ToLower(string(head.Type))) {
		case KindResourceIDIn:
			var v ResourceIDIn
			err = json.Unmarshal(item, &v)
			c = v
		case KindStoreIDIn:
			var v StoreIDIn
			err = json.Unmarshal(item, &v)
			c = v
		case KindTimeWindow:
			var v TimeWindow
			err = json.Unmarshal(item, &v)
			c = v
		default:
			return nil, fmt.Errorf("%w: tipo desconocido %q", domain.ErrInvalidCondition, head.Type)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: condición %d: %v", domain.ErrInvalidCondition, i, err)
		}
		set = append(set, c)
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return set, nil
}
