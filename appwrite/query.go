package appwrite

import "encoding/json"

// Queries use the JSON wire form understood by Appwrite 1.4+.

type query struct {
	Method    string        `json:"method"`
	Attribute string        `json:"attribute,omitempty"`
	Values    []interface{} `json:"values,omitempty"`
}

func encodeQuery(q query) string {
	data, _ := json.Marshal(q)
	return string(data)
}

// QueryEqual matches documents whose attribute equals value.
func QueryEqual(attribute string, value interface{}) string {
	return encodeQuery(query{Method: "equal", Attribute: attribute, Values: []interface{}{value}})
}

// QueryOrderDesc sorts descending by attribute; pass "$createdAt" for
// newest-first.
func QueryOrderDesc(attribute string) string {
	return encodeQuery(query{Method: "orderDesc", Attribute: attribute})
}
