package types

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document flattens the record into the key/value form handed to storage:
// dates as ISO strings, lists as string slices, invalid_code as a sorted list
// that is omitted when empty. Fields that were never supplied are left out.
func (r *Record) Document() map[string]any {
	doc := map[string]any{
		FieldJobID:    r.JobID,
		FieldEnhanced: string(r.Layout),
	}
	for _, name := range KnownFields {
		if name == FieldJobID {
			continue
		}
		if d := r.DateField(name); d != nil {
			if d.Present() {
				doc[name] = d.Interface()
			}
			continue
		}
		if v := r.TextField(name); v != nil && v.Present() {
			doc[name] = v.Interface()
		}
	}
	for _, e := range r.Extras {
		if _, taken := doc[e.Key]; !taken {
			doc[e.Key] = e.Value.Interface()
		}
	}
	if r.SalaryMin != nil {
		doc[FieldSalaryMin] = *r.SalaryMin
	}
	if r.SalaryMax != nil {
		doc[FieldSalaryMax] = *r.SalaryMax
	}
	if r.SalaryMedian != nil {
		doc[FieldSalaryMedian] = *r.SalaryMedian
	}
	if r.DurationAdDays != nil {
		doc[FieldDurationAdDays] = *r.DurationAdDays
	}
	if r.Date != nil {
		doc[FieldDate] = r.Date.Format(DateLayout)
	}
	if r.UKUniversity != nil {
		doc[FieldUKUniversity] = *r.UKUniversity
	}
	if r.UKPostcode != nil {
		doc[FieldUKPostcode] = *r.UKPostcode
	}
	if r.InUK != nil {
		doc[FieldInUK] = *r.InUK
	}
	if r.NotStudent != nil {
		doc[FieldNotStudent] = *r.NotStudent
	}
	if codes := r.InvalidCodes.Sorted(); codes != nil {
		doc[FieldInvalidCode] = codes
	}
	return doc
}

// RecordFromDocument rebuilds a Record from its flat document form.
func RecordFromDocument(doc map[string]any) (*Record, error) {
	r := &Record{}

	jobID, ok := doc[FieldJobID].(string)
	if !ok || jobID == "" {
		return nil, fmt.Errorf("document has no %s", FieldJobID)
	}
	r.JobID = jobID

	if layout, ok := doc[FieldEnhanced].(string); ok {
		r.Layout = Layout(layout)
	}

	if raw, ok := doc[FieldInvalidCode]; ok {
		v, err := ValueOf(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", FieldInvalidCode, err)
		}
		r.InvalidCodes = NewInvalidCodes(v.Items()...)
	}

	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		raw := doc[key]
		var err error
		switch key {
		case FieldJobID, FieldEnhanced, FieldInvalidCode:
			continue
		case FieldPlacedOn, FieldCloses:
			err = decodeDate(r, key, raw)
		case FieldSalaryMin:
			r.SalaryMin, err = intField(raw)
		case FieldSalaryMax:
			r.SalaryMax, err = intField(raw)
		case FieldDurationAdDays:
			r.DurationAdDays, err = intField(raw)
		case FieldSalaryMedian:
			var f float64
			f, err = toFloat(raw)
			r.SalaryMedian = &f
		case FieldDate:
			var t time.Time
			t, err = isoDate(raw)
			r.Date = &t
		case FieldUKUniversity:
			r.UKUniversity, err = stringField(raw)
		case FieldUKPostcode:
			r.UKPostcode, err = stringField(raw)
		case FieldInUK:
			r.InUK, err = boolField(raw)
		case FieldNotStudent:
			r.NotStudent, err = boolField(raw)
		default:
			var v Value
			v, err = ValueOf(raw)
			if err != nil {
				break
			}
			if field := r.TextField(key); field != nil {
				*field = v
			} else {
				r.Extras = append(r.Extras, Extra{Key: key, Value: v})
			}
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
	}
	return r, nil
}

// decodeDate restores a date field. A date not flagged invalid was parsed
// by the cleaner, so it must be an ISO date string.
func decodeDate(r *Record, key string, raw any) error {
	field := r.DateField(key)
	v, err := ValueOf(raw)
	if err != nil {
		return err
	}
	if r.InvalidCodes.Has(key) || !v.IsText() {
		field.Raw = v
		return nil
	}
	t, err := time.Parse(DateLayout, v.String())
	if err != nil {
		return err
	}
	*field = ParsedDate(v, t)
	return nil
}

func isoDate(raw any) (time.Time, error) {
	s, ok := raw.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("got %T, want date string", raw)
	}
	return time.Parse(DateLayout, s)
}

func intField(raw any) (*int, error) {
	f, err := toFloat(raw)
	if err != nil {
		return nil, err
	}
	if f != math.Trunc(f) {
		return nil, fmt.Errorf("%v is not an integer", f)
	}
	i := int(f)
	return &i, nil
}

func toFloat(raw any) (float64, error) {
	switch x := raw.(type) {
	case int:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case float64:
		return x, nil
	case json.Number:
		return x.Float64()
	}
	return 0, fmt.Errorf("got %T, want number", raw)
}

func stringField(raw any) (*string, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("got %T, want string", raw)
	}
	return &s, nil
}

func boolField(raw any) (*bool, error) {
	b, ok := raw.(bool)
	if !ok {
		return nil, fmt.Errorf("got %T, want bool", raw)
	}
	return &b, nil
}

// MarshalJSON encodes the flat document.
func (r *Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Document())
}

// UnmarshalJSON decodes a flat document.
func (r *Record) UnmarshalJSON(data []byte) error {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	parsed, err := RecordFromDocument(doc)
	if err != nil {
		return err
	}
	*r = *parsed
	return nil
}

// MarshalBSON encodes the flat document for a MongoDB collection.
func (r *Record) MarshalBSON() ([]byte, error) {
	return bson.Marshal(bson.M(r.Document()))
}

// UnmarshalBSON decodes a document written by MarshalBSON.
func (r *Record) UnmarshalBSON(data []byte) error {
	var doc bson.M
	if err := bson.Unmarshal(data, &doc); err != nil {
		return err
	}
	flat := make(map[string]any, len(doc))
	for k, v := range doc {
		flat[k] = fromBSON(v)
	}
	parsed, err := RecordFromDocument(flat)
	if err != nil {
		return err
	}
	*r = *parsed
	return nil
}

func fromBSON(v any) any {
	if arr, ok := v.(primitive.A); ok {
		out := make([]any, len(arr))
		for i, item := range arr {
			out[i] = fromBSON(item)
		}
		return out
	}
	return v
}
