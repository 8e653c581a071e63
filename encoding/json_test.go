package encoding

import (
	"bytes"
	"errors"
	"testing"

	"continents/continent"

	"github.com/stretchr/testify/assert"
)

// test that we didn't break JSON.
func TestJSON(t *testing.T) {
	type T1 struct {
		T1int0    int    `json:"t1int0"`
		T1int1    int    `json:"t1int1"`
		T1string0 string `json:"t1string0"`
		T1string1 string `json:"t1string1"`
	}

	type T2 struct {
		T2slice []T1        `json:"t2slice"`
		T2map   map[int]*T1 `json:"t2map"`
	}

	e0 := errorCount

	t1 := T1{
		T1int1:    1,
		T1string1: "6.5840",
	}
	t2 := T2{
		T2slice: []T1{{}, t1},
		T2map:   map[int]*T1{99: {1, 2, "x", "y"}},
	}

	writer := new(bytes.Buffer)
	enc := NewEncoder(writer)
	assert.Nil(t, enc.Encode(t1))

	var r1 T1
	assert.Nil(t, NewDecoder(bytes.NewReader(writer.Bytes())).Decode(&r1))
	assert.Equal(t, t1, r1)

	data, err := Marshal(t2)
	assert.Nil(t, err)

	var r2 T2
	assert.Nil(t, Unmarshal(data, &r2))
	assert.Equal(t, 2, len(r2.T2slice))
	assert.Equal(t, T1{}, r2.T2slice[0])
	assert.Equal(t, t1, r2.T2slice[1])
	assert.Equal(t, &T1{1, 2, "x", "y"}, r2.T2map[99])

	assert.Equal(t, e0, errorCount)
}

func TestContinentWireFormat(t *testing.T) {
	c := continent.Continent{Name: "zealandia", Area: 4900000, Population: 0}

	writer := new(bytes.Buffer)
	assert.Nil(t, NewEncoder(writer).Encode(c))
	assert.Equal(t, `{"name":"zealandia","area":4900000,"population":0}`+"\n", writer.String())
}

func TestContinentRoundTrip(t *testing.T) {
	records := []continent.Continent{
		{},
		{Name: "zealandia", Area: 4900000, Population: 0},
		{Name: "big", Area: -1, Population: 9223372036854775807},
		{Name: "ünïcode & <tags>", Area: 1, Population: -9223372036854775808},
	}
	for _, c := range continent.Seed() {
		records = append(records, c)
	}

	for _, c := range records {
		data, err := Marshal(c)
		assert.Nil(t, err)

		var got continent.Continent
		assert.Nil(t, Unmarshal(data, &got))
		assert.Equal(t, c, got)
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := map[string]string{
		"empty":         ``,
		"truncated":     `{"name":"zealandia","area":49`,
		"array":         `[1,2,3]`,
		"string":        `"zealandia"`,
		"area as text":  `{"name":"zealandia","area":"big","population":0}`,
		"float area":    `{"name":"zealandia","area":1.5,"population":0}`,
		"unknown field": `{"name":"zealandia","area":1,"population":0,"moons":2}`,
		"trailing":      `{"name":"zealandia","area":1,"population":0} {}`,
		"not json":      `name=zealandia`,
	}

	for name, body := range cases {
		var c continent.Continent
		err := Unmarshal([]byte(body), &c)
		var de *DecodeError
		assert.True(t, errors.As(err, &de), name)
	}

	var c continent.Continent
	assert.ErrorIs(t, Unmarshal(nil, &c), ErrEmpty)
	assert.ErrorIs(t, Unmarshal([]byte(`{} 1`), &c), ErrTrailingData)
}

func TestMissingFieldsStayZero(t *testing.T) {
	var c continent.Continent
	assert.Nil(t, Unmarshal([]byte(` {"name":"mu"} `), &c))
	assert.Equal(t, continent.Continent{Name: "mu"}, c)
}

// make sure we check json tags.
// encoding prints one warning during this test.
func TestTag(t *testing.T) {
	type T4 struct {
		Yes int `json:"yes"`
		No  int
		no  int
	}

	e0 := errorCount

	var val []map[string]*T4

	_, err := Marshal(val)
	assert.Nil(t, err)

	assert.Equal(t, e0+1, errorCount)
}

// check that we warn when decoding into a target that already
// holds non-default values, which encoding/json leaves in place
// for fields missing from the input.
func TestDefault(t *testing.T) {
	type DD struct {
		X int `json:"x"`
	}

	e0 := errorCount

	reply := DD{99}
	err := Unmarshal([]byte(`{}`), &reply)
	assert.Nil(t, err)
	assert.Equal(t, 99, reply.X)

	assert.Equal(t, e0+1, errorCount)
}
