package ishare

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// LocationSearchResponse is the iShare search payload: a list of column names
// and rows of cell values in the same order.
type LocationSearchResponse struct {
	Columns []string           `json:"columns"`
	Data    [][]StringOrNumber `json:"data"`
}

// LocalInfoItem is one element of the LocalInfo payload. Results holds the
// stream attributes in the order the service sent them; that order is also
// the display order, so it cannot go through a Go map.
type LocalInfoItem struct {
	Results []ResultAttribute
}

// ResultAttribute pairs a stream key (e.g. "Bulky_Waste_Collection_Day")
// with its detail.
type ResultAttribute struct {
	Name   string
	Detail AttributeDetail
}

func (i *LocalInfoItem) UnmarshalJSON(data []byte) error {
	var envelope struct {
		Results json.RawMessage `json:"Results"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}
	if len(envelope.Results) == 0 || string(envelope.Results) == "null" {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(envelope.Results))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("ishare: Results is not an object")
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("ishare: unexpected Results key %v", keyTok)
		}
		var detail AttributeDetail
		if err := dec.Decode(&detail); err != nil {
			return err
		}
		i.Results = append(i.Results, ResultAttribute{Name: key, Detail: detail})
	}
	return nil
}

// AttributeDetail tolerates the two shapes the service uses for a stream
// detail: a bare string, or an object whose "_" member carries the main text
// alongside optional alternate keys.
type AttributeDetail struct {
	Text            string `json:"_"`
	Info            string `json:"Info"`
	CollectDay      string `json:"collectday"`
	CollectionRoute string `json:"collectionroute"`
	CollectionDay   string `json:"collectionday"`
}

func (d *AttributeDetail) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*d = AttributeDetail{Text: v}
		return nil
	}
	if data[0] != '{' {
		// Neither string nor object; nothing displayable in it.
		return nil
	}
	type plain AttributeDetail
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*d = AttributeDetail(v)
	return nil
}

type StringOrNumber string

func (s *StringOrNumber) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = StringOrNumber(v)
		return nil
	}
	var v json.Number
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = StringOrNumber(v.String())
	return nil
}
