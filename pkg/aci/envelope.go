package aci

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Well-known class names.
const (
	ClassTenant       = "fvTenant"
	ClassLogin        = "aaaLogin"
	ClassUser         = "aaaUser"
	ClassConfigExport = "configExportP"
	ClassError        = "error"
)

const (
	keyImdata     = "imdata"
	keyTotalCount = "totalCount"
	keyAttributes = "attributes"
)

// Envelope is the controller's uniform response wrapper.
type Envelope struct {
	// TotalCount is the controller's count of matching objects, as sent
	// (a decimal string). Empty when the response omits it.
	TotalCount string
	// Imdata is the raw imdata array, verbatim.
	Imdata json.RawMessage
}

// DecodeEnvelope parses a response body and requires the imdata key.
func DecodeEnvelope(body []byte) (*Envelope, error) {
	var top map[string]json.RawMessage

	err := json.Unmarshal(body, &top)
	if err != nil {
		return nil, fmt.Errorf("parsing envelope: %w", err)
	}

	imdata, ok := top[keyImdata]
	if !ok {
		return nil, ErrMissingImdata
	}

	envelope := &Envelope{Imdata: imdata}

	if raw, ok := top[keyTotalCount]; ok {
		var count string

		err = json.Unmarshal(raw, &count)
		if err != nil {
			// Some controller builds send a bare number.
			count = string(bytes.TrimSpace(raw))
		}

		envelope.TotalCount = count
	}

	return envelope, nil
}

// Len returns the number of elements in imdata.
func (e *Envelope) Len() int {
	var items []json.RawMessage

	err := json.Unmarshal(e.Imdata, &items)
	if err != nil {
		return 0
	}

	return len(items)
}

// Total returns TotalCount as an integer.
func (e *Envelope) Total() (int, bool) {
	if e.TotalCount == "" {
		return 0, false
	}

	total, err := strconv.Atoi(e.TotalCount)
	if err != nil {
		return 0, false
	}

	return total, true
}

// Partial reports whether the controller matched more objects than it
// returned in this response.
func (e *Envelope) Partial() bool {
	total, ok := e.Total()

	return ok && total > e.Len()
}

// Wrappers decodes imdata into class wrappers.
func (e *Envelope) Wrappers() ([]ClassWrapper, error) {
	return DecodeWrappers(e.Imdata)
}

// ClassWrapper is a single managed object: {"<class>": {"attributes": {...}}}.
type ClassWrapper struct {
	Class      string
	Attributes map[string]interface{}
	Children   []ClassWrapper
}

// NewClassWrapper builds a wrapper with the given attributes.
func NewClassWrapper(className string, attributes map[string]interface{}) ClassWrapper {
	return ClassWrapper{Class: className, Attributes: attributes}
}

// Attribute returns an attribute rendered as a string.
func (w ClassWrapper) Attribute(name string) string {
	value, ok := w.Attributes[name]
	if !ok || value == nil {
		return ""
	}

	if s, ok := value.(string); ok {
		return s
	}

	return fmt.Sprint(value)
}

// DN returns the dn attribute.
func (w ClassWrapper) DN() string {
	return w.Attribute("dn")
}

type wrapperBody struct {
	Attributes map[string]interface{} `json:"attributes"`
	Children   []ClassWrapper         `json:"children,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (w ClassWrapper) MarshalJSON() ([]byte, error) {
	attributes := w.Attributes
	if attributes == nil {
		attributes = map[string]interface{}{}
	}

	return json.Marshal(map[string]wrapperBody{
		w.Class: {Attributes: attributes, Children: w.Children},
	})
}

// UnmarshalJSON implements json.Unmarshaler. Numbers are kept as json.Number.
func (w *ClassWrapper) UnmarshalJSON(data []byte) error {
	var top map[string]json.RawMessage

	err := json.Unmarshal(data, &top)
	if err != nil {
		return fmt.Errorf("parsing class wrapper: %w", err)
	}

	if len(top) != 1 {
		return fmt.Errorf("%w: %d top-level keys", ErrNotClassWrapper, len(top))
	}

	for className, raw := range top {
		var body struct {
			Attributes map[string]interface{} `json:"attributes"`
			Children   []ClassWrapper         `json:"children"`
		}

		decoder := json.NewDecoder(bytes.NewReader(raw))
		decoder.UseNumber()

		err = decoder.Decode(&body)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", className, err)
		}

		w.Class = className
		w.Attributes = body.Attributes
		w.Children = body.Children
	}

	return nil
}

// DecodeWrappers decodes an imdata array into class wrappers.
func DecodeWrappers(imdata json.RawMessage) ([]ClassWrapper, error) {
	var wrappers []ClassWrapper

	err := json.Unmarshal(imdata, &wrappers)
	if err != nil {
		return nil, fmt.Errorf("parsing imdata: %w", err)
	}

	return wrappers, nil
}

// EncodeObject renders a class wrapper as a request document.
func EncodeObject(obj ClassWrapper) ([]byte, error) {
	if obj.Class == "" {
		return nil, fmt.Errorf("%w: empty class name", ErrNotClassWrapper)
	}

	body, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", obj.Class, err)
	}

	return body, nil
}

// ParseDocument checks that a caller-supplied document is valid JSON.
func ParseDocument(body []byte) (json.RawMessage, error) {
	if !json.Valid(body) {
		return nil, ErrInvalidBody
	}

	return json.RawMessage(body), nil
}

// TopLevelClasses returns the sorted top-level keys of a JSON object. For a
// managed-object document this is the single class name being written.
func TopLevelClasses(body []byte) ([]string, error) {
	var top map[string]json.RawMessage

	err := json.Unmarshal(body, &top)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}

	classes := make([]string, 0, len(top))
	for className := range top {
		classes = append(classes, className)
	}

	sort.Strings(classes)

	return classes, nil
}
