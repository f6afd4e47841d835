// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package jsontext

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/tidwall/jsonc"

	"github.com/dmtf-tools/bej/bej"
)

// Parse decodes JSON (or JSON-with-comments) text into a [bej.Value]
// tree suitable for [bej.Encode].
//
// Object members are read off the decoder's own token stream, in the
// order they appear in the text, and appended to the result with
// [bej.Value.Set] in that same order — not routed through a Go map,
// whose iteration order bears no relation to the source text and
// whose keys encoding/json always re-sorts on marshal. The wire
// encoder walks an object's members in this order, so the order
// needs to survive the JSON front end intact.
func Parse(data []byte) (*bej.Value, error) {
	stripped := jsonc.ToJSON(data)

	decoder := json.NewDecoder(bytes.NewReader(stripped))
	decoder.UseNumber()

	value, err := decodeValue(decoder)
	if err != nil {
		return nil, fmt.Errorf("jsontext: parsing JSON: %w", err)
	}
	if _, err := decoder.Token(); err != io.EOF {
		return nil, fmt.Errorf("jsontext: trailing data after top-level value")
	}
	return value, nil
}

// decodeValue reads one complete JSON value from decoder's token
// stream.
func decodeValue(decoder *json.Decoder) (*bej.Value, error) {
	token, err := decoder.Token()
	if err != nil {
		return nil, err
	}
	return decodeToken(decoder, token)
}

// decodeToken converts an already-read token into a bej.Value,
// consuming the rest of the value from decoder when the token opened
// an array or object.
func decodeToken(decoder *json.Decoder, token json.Token) (*bej.Value, error) {
	switch t := token.(type) {
	case nil:
		return bej.NewNull(), nil
	case bool:
		return bej.NewBool(t), nil
	case json.Number:
		return bej.NewNumber(numberToFloat(t)), nil
	case string:
		return bej.NewString(t), nil
	case json.Delim:
		switch t {
		case '[':
			return decodeArray(decoder)
		case '{':
			return decodeObject(decoder)
		default:
			return nil, fmt.Errorf("jsontext: unexpected closing delimiter %q", t)
		}
	default:
		return nil, fmt.Errorf("jsontext: unexpected token %T", token)
	}
}

// decodeArray reads array elements up to the closing ']', preserving
// index order.
func decodeArray(decoder *json.Decoder) (*bej.Value, error) {
	array := bej.NewArray()
	for decoder.More() {
		element, err := decodeValue(decoder)
		if err != nil {
			return nil, err
		}
		array.Append(element)
	}
	if _, err := decoder.Token(); err != nil { // consume ']'
		return nil, err
	}
	return array, nil
}

// decodeObject reads (key, value) members up to the closing '}', in
// source order, appending each with [bej.Value.Set] in the order
// read.
func decodeObject(decoder *json.Decoder) (*bej.Value, error) {
	object := bej.NewObject()
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyToken.(string)
		if !ok {
			return nil, fmt.Errorf("jsontext: object key %v is not a string", keyToken)
		}
		value, err := decodeValue(decoder)
		if err != nil {
			return nil, err
		}
		object.Set(key, value)
	}
	if _, err := decoder.Token(); err != nil { // consume '}'
		return nil, err
	}
	return object, nil
}

// numberToFloat resolves a json.Number to the float64 bej.Value
// stores internally, parsing it as int64 first when it is an integer.
// Integers beyond ±2^53 are rounded by the conversion to float64.
func numberToFloat(n json.Number) float64 {
	if i, err := n.Int64(); err == nil {
		return float64(i)
	}
	f, err := n.Float64()
	if err != nil {
		// json.Number that parses as neither should not occur for
		// text that already passed the decoder's own tokenizer.
		panic(fmt.Sprintf("jsontext: json.Number %q is neither int64 nor float64", n.String()))
	}
	return f
}
