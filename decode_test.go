package jsonvalue

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type celsius float64

type level int

func (l *level) UnmarshalText(text []byte) error {
	switch string(text) {
	case "low":
		*l = 1
	case "high":
		*l = 2
	default:
		return errors.New("unknown level " + string(text))
	}
	return nil
}

type Embedded struct {
	Inner string `json:"inner"`
}

type Config struct {
	Embedded
	Name     string            `json:"name"`
	Port     uint16            `json:"port"`
	Ratio    float32           `json:"ratio"`
	Temp     celsius           `json:"temp"`
	Enabled  bool              `json:"enabled"`
	Hosts    []string          `json:"hosts"`
	Pair     [2]int            `json:"pair"`
	Limits   map[string]int    `json:"limits"`
	Level    level             `json:"level"`
	Started  time.Time         `json:"started"`
	Optional *int              `json:"optional"`
	Any      any               `json:"any"`
	Raw      *Value            `json:"raw"`
	Ignored  string            `json:"-"`
	Labels   map[string]string `json:"labels"`
}

func TestDecodeStruct(t *testing.T) {
	input := `{
		"inner": "yes",
		"NAME": "svc",
		"port": 8080,
		"ratio": 0.5,
		"temp": 21,
		"enabled": true,
		"hosts": ["a", "b"],
		"pair": [1, 2],
		"limits": {"cpu": 2},
		"level": "high",
		"started": "2024-01-02T03:04:05Z",
		"optional": 7,
		"any": {"k": [1, 2.5, "s"]},
		"raw": {"kept": [true]},
		"Ignored": "nope",
		"unknown": 1
	}`
	var cfg Config
	require.NoError(t, Unmarshal([]byte(input), &cfg))

	seven := 7
	expected := Config{
		Embedded: Embedded{Inner: "yes"},
		Name:     "svc",
		Port:     8080,
		Ratio:    0.5,
		Temp:     21,
		Enabled:  true,
		Hosts:    []string{"a", "b"},
		Pair:     [2]int{1, 2},
		Limits:   map[string]int{"cpu": 2},
		Level:    2,
		Started:  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Optional: &seven,
		Any:      map[string]any{"k": []any{int64(1), 2.5, "s"}},
	}
	require.NotNil(t, cfg.Raw)
	require.Equal(t, `{"kept":[true]}`, cfg.Raw.String())
	cfg.Raw = nil

	if diff := cmp.Diff(expected, cfg); diff != "" {
		t.Fatalf("decoded config mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeNull(t *testing.T) {
	n := 5
	target := struct {
		P *int           `json:"p"`
		M map[string]int `json:"m"`
		S []int          `json:"s"`
		I any            `json:"i"`
		N int            `json:"n"`
	}{P: &n, M: map[string]int{"a": 1}, S: []int{1}, I: "x", N: 3}

	require.NoError(t, Unmarshal([]byte(`{"p":null,"m":null,"s":null,"i":null,"n":null}`), &target))
	require.Nil(t, target.P)
	require.Nil(t, target.M)
	require.Nil(t, target.S)
	require.Nil(t, target.I)
	require.Equal(t, 3, target.N)
}

func TestDecodeReplacesMapContents(t *testing.T) {
	m := map[string]int{"old": 1}
	require.NoError(t, Unmarshal([]byte(`{"new":2}`), &m))
	require.Equal(t, map[string]int{"new": 2}, m)
}

func TestDecodeIntoValue(t *testing.T) {
	var v Value
	require.NoError(t, Unmarshal([]byte(`[1,{"a":2}]`), &v))
	require.Equal(t, `[1,{"a":2}]`, v.String())

	inner, _ := v.At(1)
	inner.Set("b", NewInt(3))
	require.Equal(t, `[1,{"a":2,"b":3}]`, v.String())

	var p *Value
	require.NoError(t, Unmarshal([]byte(`"s"`), &p))
	require.Equal(t, `"s"`, p.String())
}

func TestDecodeIntoParsedInvalidValue(t *testing.T) {
	bad := FromString("bad")
	require.ErrorIs(t, bad.UnmarshalJSON([]byte("1")), ErrInvalidTarget)
	require.False(t, bad.IsValid())
	require.Equal(t, Invalid, bad.Type())
	require.Equal(t, "(Invalid JSON: bad)", bad.String())

	require.ErrorIs(t, Unmarshal([]byte("1"), bad), ErrInvalidTarget)
	require.False(t, bad.IsValid())

	var holder struct{ V Value }
	holder.V = *FromString("[1,]")
	require.ErrorIs(t, Unmarshal([]byte(`{"V":2}`), &holder), ErrInvalidTarget)
	require.False(t, holder.V.IsValid())

	var zero Value
	require.NoError(t, zero.UnmarshalJSON([]byte("1")))
	require.Equal(t, Integer, zero.Type())
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		target func() any
		err    string
	}{
		{
			name:   "string into int",
			input:  `"x"`,
			target: func() any { return new(int) },
			err:    "jsonvalue: cannot unmarshal string into Go value of type int",
		},
		{
			name:   "float into int",
			input:  `1.5`,
			target: func() any { return new(int) },
			err:    "jsonvalue: cannot unmarshal float into Go value of type int",
		},
		{
			name:   "int overflow",
			input:  `300`,
			target: func() any { return new(int8) },
			err:    "jsonvalue: integer value 300 overflows Go value of type int8",
		},
		{
			name:   "negative into uint",
			input:  `-1`,
			target: func() any { return new(uint) },
			err:    "jsonvalue: integer value -1 overflows Go value of type uint",
		},
		{
			name:   "bool into string",
			input:  `true`,
			target: func() any { return new(string) },
			err:    "jsonvalue: cannot unmarshal boolean into Go value of type string",
		},
		{
			name:   "array length",
			input:  `[1,2,3]`,
			target: func() any { return new([2]int) },
			err:    "jsonvalue: cannot unmarshal array of length 3 into Go array of length 2",
		},
		{
			name:   "array into struct",
			input:  `[1]`,
			target: func() any { return new(Config) },
			err:    "jsonvalue: cannot unmarshal array into Go value of type jsonvalue.Config",
		},
		{
			name:   "object into slice",
			input:  `{}`,
			target: func() any { return new([]int) },
			err:    "jsonvalue: cannot unmarshal object into Go value of type []int",
		},
		{
			name:   "non-string map key",
			input:  `{"1":1}`,
			target: func() any { return new(map[int]int) },
			err:    "jsonvalue: cannot unmarshal object into map with non-string key type int",
		},
		{
			name:   "non-empty interface",
			input:  `1`,
			target: func() any { return new(error) },
			err:    "jsonvalue: cannot unmarshal into non-empty interface error",
		},
		{
			name:   "text unmarshaler failure",
			input:  `"medium"`,
			target: func() any { return new(level) },
			err:    "jsonvalue: error calling unmarshaler for type *jsonvalue.level: unknown level medium",
		},
		{
			name:   "syntax",
			input:  `[1,`,
			target: func() any { return new([]int) },
			err:    `jsonvalue: invalid number literal in "[1,": invalid number syntax`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Unmarshal([]byte(tt.input), tt.target())
			require.EqualError(t, err, tt.err)
		})
	}
}

func TestDecodeRequiresPointer(t *testing.T) {
	var n int
	require.EqualError(t, FromString("1").Decode(n), "jsonvalue: Decode(non-pointer int or nil)")
	require.EqualError(t, FromString("1").Decode(nil), "jsonvalue: Decode(non-pointer <nil> or nil)")
}

func TestDecodeInvalidValue(t *testing.T) {
	var out any
	err := FromString("[1,]").Decode(&out)
	require.EqualError(t, err, "jsonvalue: empty value")

	arr := NewArray(FromString("bad"))
	err = arr.Decode(&out)
	var syntaxErr *SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
}

func TestDecoder(t *testing.T) {
	var out map[string][]int
	dec := NewDecoder(strings.NewReader(`{"a":[1,2]}`))
	require.NoError(t, dec.Decode(&out))
	require.Equal(t, map[string][]int{"a": {1, 2}}, out)

	v, err := NewDecoder(strings.NewReader(" [true] ")).DecodeValue()
	require.NoError(t, err)
	require.Equal(t, "[true]", v.String())

	_, err = NewDecoder(strings.NewReader(`[1,2,3]`), MaxInputSize(4)).DecodeValue()
	require.EqualError(t, err, "jsonvalue: input exceeds maximum size 4 bytes")

	_, err = NewDecoder(strings.NewReader(`[[[]]]`), MaxDepth(2)).DecodeValue()
	require.ErrorContains(t, err, "maximum nesting depth exceeded")

	_, err = NewDecoder(nil).DecodeValue()
	require.EqualError(t, err, "jsonvalue: Decode(nil reader)")

	_, err = NewDecoder(strings.NewReader("1"), MaxInputSize(0)).DecodeValue()
	require.EqualError(t, err, "jsonvalue: max input size must be a positive integer")
}

func TestEncoder(t *testing.T) {
	var b strings.Builder
	enc := NewEncoder(&b, Indent(2))
	require.NoError(t, enc.Encode(FromString(`{"a":[1]}`)))
	require.Equal(t, "{\n  \"a\": [\n    1\n  ]\n}", b.String())
}

func TestEncodingJSONInterop(t *testing.T) {
	type envelope struct {
		Kind    string `json:"kind"`
		Payload *Value `json:"payload"`
	}

	var env envelope
	require.NoError(t, json.Unmarshal([]byte(`{"kind":"k","payload":{"b":[1,2.5],"a":null}}`), &env))
	require.Equal(t, `{"a":null,"b":[1,2.5]}`, env.Payload.String())

	out, err := json.Marshal(env)
	require.NoError(t, err)
	require.Equal(t, `{"kind":"k","payload":{"a":null,"b":[1,2.5]}}`, string(out))

	var v Value
	require.Error(t, json.Unmarshal([]byte(`{"a":1}x`), &v))

	_, err = json.Marshal(envelope{Payload: FromString("bad")})
	var invalidErr *InvalidValueError
	require.ErrorAs(t, err, &invalidErr)
}
