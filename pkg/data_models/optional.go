package dto

import (
	"bytes"
	"encoding/json"
)

// OptionalString tells an absent JSON key (Set == false) apart from an
// explicit null (Set == true, Value == nil).
type OptionalString struct {
	Set   bool
	Value *string
}

func Some(v string) OptionalString {
	return OptionalString{Set: true, Value: &v}
}

func Null() OptionalString {
	return OptionalString{Set: true}
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Value = nil
		return nil
	}

	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

func (o OptionalString) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Value)
}

func (o OptionalString) IsZero() bool {
	return !o.Set
}
